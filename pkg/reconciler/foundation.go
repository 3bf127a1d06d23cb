package reconciler

import (
	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/pkg/models"
	"github.com/braunma/netbox-baseline/pkg/report"
	"github.com/braunma/netbox-baseline/pkg/utils"
)

// reconcileManufacturers creates missing manufacturers
func (r *Reconciler) reconcileManufacturers(manufacturers []*models.Manufacturer) error {
	r.phase(constants.KindManufacturer, len(manufacturers))

	for _, m := range manufacturers {
		if missing := m.Missing(); len(missing) > 0 {
			r.invalid(constants.KindManufacturer, m.Raw, missing)
			continue
		}

		name := m.DisplayName()
		existing, err := r.find(constants.KindManufacturer, constants.EndpointManufacturers, "name", name)
		if err != nil {
			return err
		}
		if existing != nil {
			r.exists(constants.KindManufacturer, name, existing)
			continue
		}

		payload := map[string]interface{}{
			"name": name,
			"slug": m.Slug(),
		}

		if _, err := r.create(constants.KindManufacturer, constants.EndpointManufacturers, name, payload); err != nil {
			return err
		}
	}

	return nil
}

// reconcileDeviceRoles creates missing device roles
func (r *Reconciler) reconcileDeviceRoles(roles []*models.DeviceRole) error {
	r.phase(constants.KindDeviceRole, len(roles))

	for _, role := range roles {
		if missing := role.Missing(); len(missing) > 0 {
			r.invalid(constants.KindDeviceRole, role.Raw, missing)
			continue
		}

		name := role.DisplayName()
		existing, err := r.find(constants.KindDeviceRole, constants.EndpointDeviceRoles, "name", name)
		if err != nil {
			return err
		}
		if existing != nil {
			r.exists(constants.KindDeviceRole, name, existing)
			continue
		}

		payload := map[string]interface{}{
			"name": name,
			"slug": role.Slug(),
		}

		if present(role.Color) {
			if color := utils.NormalizeColor(*role.Color); color != "" {
				payload["color"] = color
			} else {
				r.emit(report.Diagnostic{
					Severity: report.SeverityWarning,
					Event:    report.EventNotice,
					Kind:     constants.KindDeviceRole,
					Record:   name,
					Message:  "invalid color ignored",
					Fields:   map[string]interface{}{"color": *role.Color},
				})
			}
		}

		if _, err := r.create(constants.KindDeviceRole, constants.EndpointDeviceRoles, name, payload); err != nil {
			return err
		}
	}

	return nil
}

// reconcileSites creates missing sites, then the racks and devices of every
// valid site, existing or new
func (r *Reconciler) reconcileSites(sites []*models.Site) error {
	r.phase(constants.KindSite, len(sites))

	for _, site := range sites {
		if missing := site.Missing(); len(missing) > 0 {
			r.invalid(constants.KindSite, site.Raw, missing)
			continue
		}

		name := site.DisplayName()
		working, err := r.find(constants.KindSite, constants.EndpointSites, "name", name)
		if err != nil {
			return err
		}

		if working != nil {
			r.exists(constants.KindSite, name, working)
		} else {
			payload := map[string]interface{}{
				"name":   name,
				"slug":   site.Slug(),
				"status": constants.StatusActive,
			}

			if present(site.PhysicalAddress) {
				payload["physical_address"] = *site.PhysicalAddress
			}
			if present(site.Description) {
				payload["description"] = *site.Description
			}

			working, err = r.create(constants.KindSite, constants.EndpointSites, name, payload)
			if err != nil {
				return err
			}
		}

		siteID := working.ID()

		if err := r.reconcileRacks(siteID, site.Racks); err != nil {
			return err
		}
		if err := r.reconcileDevices(siteID, site.Devices); err != nil {
			return err
		}
	}

	return nil
}

// reconcileRacks creates the missing racks of one site
func (r *Reconciler) reconcileRacks(siteID int, racks []*models.Rack) error {
	for _, rack := range racks {
		if missing := rack.Missing(); len(missing) > 0 {
			r.invalid(constants.KindRack, rack.Raw, missing)
			continue
		}

		name := rack.DisplayName()

		// Existing racks are matched on the name as configured
		existing, err := r.find(constants.KindRack, constants.EndpointRacks, "name", rack.LookupName())
		if err != nil {
			return err
		}
		if existing != nil {
			r.exists(constants.KindRack, name, existing)
			continue
		}

		payload := map[string]interface{}{
			"name":   name,
			"site":   siteID,
			"status": constants.StatusActive,
		}

		if rack.UHeight != nil && *rack.UHeight != 0 {
			payload["u_height"] = *rack.UHeight
		}

		if _, err := r.create(constants.KindRack, constants.EndpointRacks, name, payload); err != nil {
			return err
		}
	}

	return nil
}
