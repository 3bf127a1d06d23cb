// Package report carries reconciliation diagnostics from the reconciler to
// whatever renders them.
package report

import (
	"fmt"
	"sort"
	"strings"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event says what happened to a record
type Event string

const (
	EventCreated  Event = "created"
	EventExists   Event = "exists"
	EventSkipped  Event = "skipped"
	EventDegraded Event = "degraded" // created, but an optional part was dropped
	EventNotice   Event = "notice"
)

// Diagnostic is a single event emitted while loading or reconciling
type Diagnostic struct {
	Severity Severity
	Event    Event
	Kind     string
	Record   string
	Message  string
	Fields   map[string]interface{}
}

// String renders the diagnostic on one line
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Kind != "" {
		b.WriteString(d.Kind)
		if d.Record != "" {
			b.WriteString(" " + d.Record)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)

	if len(d.Fields) > 0 {
		keys := make([]string, 0, len(d.Fields))
		for k := range d.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, d.Fields[k]))
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}

	return b.String()
}

// Sink receives diagnostics
type Sink interface {
	Emit(d Diagnostic)
}

// Renderer is a Sink that can also print the end-of-run summary
type Renderer interface {
	Sink
	Summarize(s *Summary)
	Close() error
}

// Collector keeps diagnostics in memory
type Collector struct {
	items []Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Emit appends a diagnostic
func (c *Collector) Emit(d Diagnostic) {
	c.items = append(c.items, d)
}

// All returns every collected diagnostic in emission order
func (c *Collector) All() []Diagnostic {
	return c.items
}

// Filter returns diagnostics for a kind and event. Empty arguments match anything.
func (c *Collector) Filter(kind string, event Event) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.items {
		if kind != "" && d.Kind != kind {
			continue
		}
		if event != "" && d.Event != event {
			continue
		}
		out = append(out, d)
	}
	return out
}
