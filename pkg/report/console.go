package report

import (
	"github.com/braunma/netbox-baseline/pkg/utils"
)

// ConsoleSink renders diagnostics as colored console lines
type ConsoleSink struct {
	logger *utils.Logger
}

// NewConsoleSink creates a console sink on top of a logger
func NewConsoleSink(logger *utils.Logger) *ConsoleSink {
	return &ConsoleSink{logger: logger}
}

// Emit prints one diagnostic
func (cs *ConsoleSink) Emit(d Diagnostic) {
	line := d.String()

	switch {
	case d.Severity == SeverityError:
		cs.logger.Error("%s", nil, line)
	case d.Severity == SeverityWarning:
		cs.logger.Warning("%s", line)
	case d.Event == EventCreated:
		cs.logger.Success("%s", line)
	case d.Event == EventExists:
		cs.logger.Debug("%s", line)
	default:
		cs.logger.Info("%s", line)
	}
}

// Summarize prints the per-kind tally
func (cs *ConsoleSink) Summarize(s *Summary) {
	cs.logger.Info("═══════════════════════════════════════════════════════")
	for _, kind := range s.Kinds() {
		c := s.For(kind)
		cs.logger.Info("%-13s created=%d existing=%d skipped=%d degraded=%d",
			kind, c.Created, c.Existing, c.Skipped, c.Degraded)
	}
	if cs.logger.IsDryRun() {
		cs.logger.Warning("DRY RUN COMPLETE: No changes applied")
	} else {
		cs.logger.Success("BASELINE COMPLETE: %d objects created", s.TotalCreated())
	}
	cs.logger.Info("═══════════════════════════════════════════════════════")
}

// Close is a no-op for the console
func (cs *ConsoleSink) Close() error {
	return nil
}
