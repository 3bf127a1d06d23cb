package loader

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/pkg/models"
	"github.com/braunma/netbox-baseline/pkg/report"
	"github.com/braunma/netbox-baseline/pkg/utils"
)

// DataLoader reads the baseline file and decodes it into typed records
type DataLoader struct {
	logger *utils.Logger
}

// NewDataLoader creates a new data loader
func NewDataLoader(logger *utils.Logger) *DataLoader {
	return &DataLoader{logger: logger}
}

// LoadBaseline parses the baseline YAML at path. A missing or malformed file
// is an error; records that cannot be decoded are dropped and reported.
func (dl *DataLoader) LoadBaseline(path string) (*models.Baseline, []report.Diagnostic, error) {
	raw, err := dl.readFile(path)
	if err != nil {
		return nil, nil, err
	}

	baseline, diags := Decode(raw)

	dl.logger.Debug("Loaded %d manufacturers, %d device roles, %d device types, %d sites from %s",
		len(baseline.Manufacturers), len(baseline.DeviceRoles), len(baseline.DeviceTypes), len(baseline.Sites), path)

	return baseline, diags, nil
}

// readFile loads the YAML document as a raw mapping
func (dl *DataLoader) readFile(path string) (map[string]interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if raw == nil {
		return nil, fmt.Errorf("baseline %s is empty", path)
	}

	return raw, nil
}

// Decode turns the raw baseline mapping into typed records
func Decode(raw map[string]interface{}) (*models.Baseline, []report.Diagnostic) {
	d := &decoder{}
	baseline := &models.Baseline{}

	for i, item := range d.collection(raw, constants.KeyManufacturers, constants.KindManufacturer, true) {
		m := &models.Manufacturer{}
		if d.decode(constants.KindManufacturer, i, item, m) {
			m.Raw = item
			baseline.Manufacturers = append(baseline.Manufacturers, m)
		}
	}

	for i, item := range d.collection(raw, constants.KeyDeviceRoles, constants.KindDeviceRole, true) {
		r := &models.DeviceRole{}
		if d.decode(constants.KindDeviceRole, i, item, r) {
			r.Raw = item
			baseline.DeviceRoles = append(baseline.DeviceRoles, r)
		}
	}

	for i, item := range d.collection(raw, constants.KeyDeviceTypes, constants.KindDeviceType, true) {
		dt := &models.DeviceType{}
		if d.decode(constants.KindDeviceType, i, item, dt) {
			dt.Raw = item
			baseline.DeviceTypes = append(baseline.DeviceTypes, dt)
		}
	}

	for i, item := range d.collection(raw, constants.KeySites, constants.KindSite, true) {
		site := &models.Site{}
		if !d.decode(constants.KindSite, i, item, site) {
			continue
		}
		site.Raw = item

		for j, rackItem := range d.collection(item, "racks", constants.KindRack, false) {
			rack := &models.Rack{}
			if d.decode(constants.KindRack, j, rackItem, rack) {
				rack.Raw = rackItem
				site.Racks = append(site.Racks, rack)
			}
		}

		for j, devItem := range d.collection(item, "devices", constants.KindDevice, false) {
			device := &models.Device{}
			if d.decode(constants.KindDevice, j, devItem, device) {
				device.Raw = devItem
				site.Devices = append(site.Devices, device)
			}
		}

		baseline.Sites = append(baseline.Sites, site)
	}

	return baseline, d.diags
}

type decoder struct {
	diags []report.Diagnostic
}

// collection returns the records stored under key. Records that are not
// mappings are reported and left out.
func (d *decoder) collection(parent map[string]interface{}, key, kind string, required bool) []models.Raw {
	value, ok := parent[key]
	if !ok || value == nil {
		if required {
			d.diags = append(d.diags, report.Diagnostic{
				Severity: report.SeverityWarning,
				Event:    report.EventNotice,
				Kind:     constants.KindBaseline,
				Message:  fmt.Sprintf("collection %q missing, nothing to reconcile", key),
			})
		}
		return nil
	}

	list, ok := value.([]interface{})
	if !ok {
		d.diags = append(d.diags, report.Diagnostic{
			Severity: report.SeverityError,
			Event:    report.EventNotice,
			Kind:     constants.KindBaseline,
			Message:  fmt.Sprintf("collection %q is not a list, ignoring it", key),
			Fields:   map[string]interface{}{"value": value},
		})
		return nil
	}

	records := make([]models.Raw, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			d.diags = append(d.diags, report.Diagnostic{
				Severity: report.SeverityError,
				Event:    report.EventSkipped,
				Kind:     kind,
				Record:   fmt.Sprintf("%v", item),
				Message:  "record is not a mapping",
				Fields:   map[string]interface{}{"index": i},
			})
			// Keep indexes aligned with the file
			records = append(records, nil)
			continue
		}
		records = append(records, models.Raw(m))
	}

	return records
}

// decode fills target from item, reporting failures
func (d *decoder) decode(kind string, index int, item models.Raw, target interface{}) bool {
	if item == nil {
		return false
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err == nil {
		err = dec.Decode(map[string]interface{}(item))
	}

	if err != nil {
		d.diags = append(d.diags, report.Diagnostic{
			Severity: report.SeverityError,
			Event:    report.EventSkipped,
			Kind:     kind,
			Record:   item.String(),
			Message:  "could not decode record",
			Fields:   map[string]interface{}{"index": index, "error": err.Error()},
		})
		return false
	}

	return true
}
