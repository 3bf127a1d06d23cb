package reconciler

import (
	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/pkg/models"
)

// reconcileDeviceTypes creates missing device types. The manufacturer must
// already exist, either in NetBox or from the manufacturers phase.
func (r *Reconciler) reconcileDeviceTypes(deviceTypes []*models.DeviceType) error {
	r.phase(constants.KindDeviceType, len(deviceTypes))

	for _, dt := range deviceTypes {
		if missing := dt.Missing(); len(missing) > 0 {
			r.invalid(constants.KindDeviceType, dt.Raw, missing)
			continue
		}

		model := dt.DisplayName()
		existing, err := r.find(constants.KindDeviceType, constants.EndpointDeviceTypes, "model", model)
		if err != nil {
			return err
		}
		if existing != nil {
			r.exists(constants.KindDeviceType, model, existing)
			continue
		}

		// Get manufacturer ID
		mfg, err := r.find(constants.KindManufacturer, constants.EndpointManufacturers, "name", dt.ManufacturerName())
		if err != nil {
			return err
		}
		if mfg == nil {
			r.unresolved(constants.KindDeviceType, model, "manufacturer", dt.ManufacturerName())
			continue
		}

		payload := map[string]interface{}{
			"model":        model,
			"slug":         dt.Slug(),
			"manufacturer": mfg.ID(),
		}

		if dt.UHeight != nil && *dt.UHeight != 0 {
			payload["u_height"] = *dt.UHeight
		}

		if _, err := r.create(constants.KindDeviceType, constants.EndpointDeviceTypes, model, payload); err != nil {
			return err
		}
	}

	return nil
}
