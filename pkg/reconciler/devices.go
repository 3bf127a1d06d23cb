package reconciler

import (
	"fmt"

	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/pkg/models"
	"github.com/braunma/netbox-baseline/pkg/report"
	"github.com/braunma/netbox-baseline/pkg/utils"
)

// reconcileDevices creates the missing devices of one site. A device whose
// rack placement cannot be honored is still created, without placement.
func (r *Reconciler) reconcileDevices(siteID int, devices []*models.Device) error {
	for _, device := range devices {
		if missing := device.Missing(); len(missing) > 0 {
			r.invalid(constants.KindDevice, device.Raw, missing)
			continue
		}

		name := device.DisplayName()
		existing, err := r.find(constants.KindDevice, constants.EndpointDevices, "name", name)
		if err != nil {
			return err
		}
		if existing != nil {
			r.exists(constants.KindDevice, name, existing)
			continue
		}

		payload := map[string]interface{}{
			"name": name,
			"site": siteID,
		}

		// Get the device type ID
		deviceType, err := r.find(constants.KindDeviceType, constants.EndpointDeviceTypes, "slug", device.DeviceTypeSlug())
		if err != nil {
			return err
		}
		if deviceType == nil {
			r.unresolved(constants.KindDevice, name, "device_type", device.DeviceTypeSlug())
			continue
		}
		payload["device_type"] = deviceType.ID()

		// Get the role ID
		role, err := r.find(constants.KindDeviceRole, constants.EndpointDeviceRoles, "name", device.RoleName())
		if err != nil {
			return err
		}
		if role == nil {
			r.unresolved(constants.KindDevice, name, "role", device.RoleName())
			continue
		}
		payload["role"] = role.ID()

		if hasPlacement(device) {
			if err := r.place(name, device.Rack, payload); err != nil {
				return err
			}
		}

		if _, err := r.create(constants.KindDevice, constants.EndpointDevices, name, payload); err != nil {
			return err
		}
	}

	return nil
}

// hasPlacement reports whether the device carries a non-empty rack block
func hasPlacement(device *models.Device) bool {
	return device.Rack != nil && (device.Rack.Name != "" || device.Rack.Position != nil)
}

// place adds rack, position and face to payload when the rack exists and the
// position fits in it. Otherwise the device loses its placement.
func (r *Reconciler) place(name string, placement *models.RackPlacement, payload map[string]interface{}) error {
	if placement.Name == "" {
		r.emit(report.Diagnostic{
			Severity: report.SeverityWarning,
			Event:    report.EventNotice,
			Kind:     constants.KindDevice,
			Record:   name,
			Message:  "rack block has no name",
			Fields:   placementFields(placement),
		})
	}

	rack, err := r.find(constants.KindRack, constants.EndpointRacks, "name", placement.DisplayName())
	if err != nil {
		return err
	}
	if rack == nil {
		r.degraded(name, "rack not found, creating without placement", placement)
		return nil
	}

	if placement.Position == nil {
		r.degraded(name, "rack position missing, creating without placement", placement)
		return nil
	}

	position := *placement.Position
	height, ok := utils.GetNumber(rack, "u_height")
	if !ok {
		height = constants.DefaultRackUHeight
	}

	if position < 1 || position > height {
		r.degraded(name, fmt.Sprintf("rack position %g does not fit in %gU rack, creating without placement", position, height), placement)
		return nil
	}

	payload["rack"] = rack.ID()
	payload["position"] = position
	payload["face"] = constants.FaceFront
	return nil
}

func (r *Reconciler) degraded(name, msg string, placement *models.RackPlacement) {
	r.emit(report.Diagnostic{
		Severity: report.SeverityWarning,
		Event:    report.EventDegraded,
		Kind:     constants.KindDevice,
		Record:   name,
		Message:  msg,
		Fields:   placementFields(placement),
	})
}

func placementFields(placement *models.RackPlacement) map[string]interface{} {
	fields := map[string]interface{}{"rack": placement.Name}
	if placement.Position != nil {
		fields["position"] = *placement.Position
	}
	return fields
}
