package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/braunma/netbox-baseline/pkg/utils"
)

// Baseline is the decoded inventory description
type Baseline struct {
	Manufacturers []*Manufacturer
	DeviceRoles   []*DeviceRole
	DeviceTypes   []*DeviceType
	Sites         []*Site
}

// Raw is the configuration mapping a record was decoded from
type Raw map[string]interface{}

// String renders the raw record with sorted keys so diagnostics are stable
func (r Raw) String() string {
	if len(r) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, r[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Manufacturer represents a hardware manufacturer
type Manufacturer struct {
	Name string `mapstructure:"name"`
	Raw  Raw    `mapstructure:"-"`
}

// Missing returns the required fields that are absent
func (m *Manufacturer) Missing() []string {
	return missing(field{"name", m.Name})
}

// DisplayName is the upper-cased name
func (m *Manufacturer) DisplayName() string { return utils.DisplayName(m.Name) }

// Slug is the lower-cased name without spaces
func (m *Manufacturer) Slug() string { return utils.CompactSlug(m.Name) }

// DeviceRole represents a device role
type DeviceRole struct {
	Name  string  `mapstructure:"name"`
	Color *string `mapstructure:"color"`
	Raw   Raw     `mapstructure:"-"`
}

// Missing returns the required fields that are absent
func (r *DeviceRole) Missing() []string {
	return missing(field{"name", r.Name})
}

// DisplayName is the upper-cased name
func (r *DeviceRole) DisplayName() string { return utils.DisplayName(r.Name) }

// Slug is the lower-cased name without spaces
func (r *DeviceRole) Slug() string { return utils.CompactSlug(r.Name) }

// DeviceType represents a device type definition
type DeviceType struct {
	Model        string   `mapstructure:"model"`
	Manufacturer string   `mapstructure:"manufacturer"`
	UHeight      *float64 `mapstructure:"u_height"`
	Raw          Raw      `mapstructure:"-"`
}

// Missing returns the required fields that are absent, in check order
func (dt *DeviceType) Missing() []string {
	return missing(field{"model", dt.Model}, field{"manufacturer", dt.Manufacturer})
}

// DisplayName is the upper-cased model
func (dt *DeviceType) DisplayName() string { return utils.DisplayName(dt.Model) }

// Slug is the lower-cased model without spaces
func (dt *DeviceType) Slug() string { return utils.CompactSlug(dt.Model) }

// ManufacturerName is the display name the manufacturer is looked up by
func (dt *DeviceType) ManufacturerName() string { return utils.DisplayName(dt.Manufacturer) }

// Site represents a site together with the racks and devices it holds
type Site struct {
	Name            string    `mapstructure:"name"`
	PhysicalAddress *string   `mapstructure:"physical_address"`
	Description     *string   `mapstructure:"description"`
	Racks           []*Rack   `mapstructure:"-"`
	Devices         []*Device `mapstructure:"-"`
	Raw             Raw       `mapstructure:"-"`
}

// Missing returns the required fields that are absent
func (s *Site) Missing() []string {
	return missing(field{"name", s.Name})
}

// DisplayName is the upper-cased name
func (s *Site) DisplayName() string { return utils.DisplayName(s.Name) }

// Slug is the lower-cased name. Unlike the other kinds, spaces are kept.
func (s *Site) Slug() string { return utils.LowerSlug(s.Name) }

// Rack represents a rack nested under a site
type Rack struct {
	Name    string `mapstructure:"name"`
	UHeight *int   `mapstructure:"u_height"`
	Raw     Raw    `mapstructure:"-"`
}

// Missing returns the required fields that are absent
func (r *Rack) Missing() []string {
	return missing(field{"name", r.Name})
}

// DisplayName is the upper-cased name
func (r *Rack) DisplayName() string { return utils.DisplayName(r.Name) }

// LookupName is the name an existing rack is searched by: the configured
// name as written, not the display name it is created with.
func (r *Rack) LookupName() string { return r.Name }

// Slug is the lower-cased name without spaces. NetBox racks carry no slug,
// so it is never sent.
func (r *Rack) Slug() string { return utils.CompactSlug(r.Name) }

// RackPlacement is the optional rack block of a device. Position is decimal,
// NetBox allows half units.
type RackPlacement struct {
	Name     string   `mapstructure:"name"`
	Position *float64 `mapstructure:"position"`
}

// DisplayName is the upper-cased rack name
func (p *RackPlacement) DisplayName() string { return utils.DisplayName(p.Name) }

// Device represents a device nested under a site
type Device struct {
	Name       string         `mapstructure:"name"`
	DeviceType string         `mapstructure:"device_type"`
	Role       string         `mapstructure:"role"`
	Rack       *RackPlacement `mapstructure:"rack"`
	Raw        Raw            `mapstructure:"-"`
}

// Missing returns the required fields that are absent, in check order
func (d *Device) Missing() []string {
	return missing(field{"name", d.Name}, field{"device_type", d.DeviceType}, field{"role", d.Role})
}

// DisplayName is the upper-cased name
func (d *Device) DisplayName() string { return utils.DisplayName(d.Name) }

// DeviceTypeSlug is the slug the device type is looked up by (lower-cased only)
func (d *Device) DeviceTypeSlug() string { return utils.LowerSlug(d.DeviceType) }

// RoleName is the display name the role is looked up by
func (d *Device) RoleName() string { return utils.DisplayName(d.Role) }

type field struct {
	name  string
	value string
}

func missing(fields ...field) []string {
	var out []string
	for _, f := range fields {
		if f.value == "" {
			out = append(out, f.name)
		}
	}
	return out
}
