// Package reconciler seeds NetBox with the records of a baseline, creating
// whatever is missing and leaving existing objects untouched.
package reconciler

import (
	"fmt"
	"strings"

	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/pkg/client"
	"github.com/braunma/netbox-baseline/pkg/models"
	"github.com/braunma/netbox-baseline/pkg/report"
)

// Inventory is the remote store the reconciler reads and creates objects in.
// *client.NetBoxClient satisfies it.
type Inventory interface {
	// Find returns the single object whose field equals value, nil if none
	Find(endpoint, field, value string) (client.Object, error)
	// Create creates an object and returns it with its assigned ID
	Create(endpoint string, attrs map[string]interface{}) (client.Object, error)
}

// Reconciler applies a baseline to an Inventory
type Reconciler struct {
	inv     Inventory
	sink    report.Sink
	summary *report.Summary
}

// NewReconciler creates a reconciler reporting to sink
func NewReconciler(inv Inventory, sink report.Sink) *Reconciler {
	return &Reconciler{
		inv:  inv,
		sink: sink,
	}
}

// Reconcile creates every record of the baseline that does not exist yet.
// Phases run in dependency order: manufacturers, device roles, device types,
// then each site followed by its racks and devices. Invalid records are
// reported and skipped; any remote failure aborts the run.
func (r *Reconciler) Reconcile(baseline *models.Baseline) (*report.Summary, error) {
	r.summary = report.NewSummary(constants.Kinds...)

	if baseline == nil {
		return r.summary, nil
	}

	if err := r.reconcileManufacturers(baseline.Manufacturers); err != nil {
		return r.summary, err
	}
	if err := r.reconcileDeviceRoles(baseline.DeviceRoles); err != nil {
		return r.summary, err
	}
	if err := r.reconcileDeviceTypes(baseline.DeviceTypes); err != nil {
		return r.summary, err
	}
	if err := r.reconcileSites(baseline.Sites); err != nil {
		return r.summary, err
	}

	return r.summary, nil
}

func (r *Reconciler) emit(d report.Diagnostic) {
	if r.sink != nil {
		r.sink.Emit(d)
	}
	if r.summary != nil {
		r.summary.Add(d)
	}
}

func (r *Reconciler) phase(kind string, n int) {
	r.emit(report.Diagnostic{
		Severity: report.SeverityInfo,
		Event:    report.EventNotice,
		Kind:     kind,
		Message:  fmt.Sprintf("reconciling %d records", n),
	})
}

// invalid reports a record that lacks required fields
func (r *Reconciler) invalid(kind string, raw models.Raw, missing []string) {
	r.emit(report.Diagnostic{
		Severity: report.SeverityWarning,
		Event:    report.EventSkipped,
		Kind:     kind,
		Record:   raw.String(),
		Message:  "missing required fields, skipping",
		Fields:   map[string]interface{}{"missing": strings.Join(missing, ",")},
	})
}

func (r *Reconciler) exists(kind, name string, obj client.Object) {
	r.emit(report.Diagnostic{
		Severity: report.SeverityInfo,
		Event:    report.EventExists,
		Kind:     kind,
		Record:   name,
		Message:  "already exists, skipping",
		Fields:   map[string]interface{}{"id": obj.ID()},
	})
}

func (r *Reconciler) unresolved(kind, name, ref, value string) {
	r.emit(report.Diagnostic{
		Severity: report.SeverityWarning,
		Event:    report.EventSkipped,
		Kind:     kind,
		Record:   name,
		Message:  fmt.Sprintf("%s not found, skipping", ref),
		Fields:   map[string]interface{}{ref: value},
	})
}

func (r *Reconciler) created(kind, name string, obj client.Object) {
	r.emit(report.Diagnostic{
		Severity: report.SeverityInfo,
		Event:    report.EventCreated,
		Kind:     kind,
		Record:   name,
		Message:  "created",
		Fields:   map[string]interface{}{"id": obj.ID()},
	})
}

// find wraps Inventory.Find with the record context
func (r *Reconciler) find(kind, endpoint, field, value string) (client.Object, error) {
	obj, err := r.inv.Find(endpoint, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s %s=%q: %w", kind, field, value, err)
	}
	return obj, nil
}

// create wraps Inventory.Create with the record context
func (r *Reconciler) create(kind, endpoint, name string, attrs map[string]interface{}) (client.Object, error) {
	obj, err := r.inv.Create(endpoint, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s: %w", kind, name, err)
	}
	r.created(kind, name, obj)
	return obj, nil
}

// present reports whether an optional string carries a value
func present(s *string) bool {
	return s != nil && *s != ""
}
