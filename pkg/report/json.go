package report

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// JSONSink renders diagnostics as one JSON object per line
type JSONSink struct {
	logger *zap.Logger
	dryRun bool
}

// NewJSONSink creates a JSON sink writing to w
func NewJSONSink(w io.Writer, dryRun bool) *JSONSink {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)

	return &JSONSink{logger: zap.New(core), dryRun: dryRun}
}

// Emit writes one diagnostic
func (js *JSONSink) Emit(d Diagnostic) {
	fields := []zap.Field{
		zap.String("event", string(d.Event)),
		zap.String("kind", d.Kind),
	}
	if d.Record != "" {
		fields = append(fields, zap.String("record", d.Record))
	}
	if len(d.Fields) > 0 {
		fields = append(fields, zap.Any("fields", d.Fields))
	}
	if js.dryRun {
		fields = append(fields, zap.Bool("dry_run", true))
	}

	switch d.Severity {
	case SeverityError:
		js.logger.Error(d.Message, fields...)
	case SeverityWarning:
		js.logger.Warn(d.Message, fields...)
	default:
		js.logger.Info(d.Message, fields...)
	}
}

// Summarize writes one entry per kind
func (js *JSONSink) Summarize(s *Summary) {
	for _, kind := range s.Kinds() {
		c := s.For(kind)
		js.logger.Info("summary",
			zap.String("kind", kind),
			zap.Int("created", c.Created),
			zap.Int("existing", c.Existing),
			zap.Int("skipped", c.Skipped),
			zap.Int("degraded", c.Degraded),
			zap.Bool("dry_run", js.dryRun),
		)
	}
}

// Close flushes the underlying logger
func (js *JSONSink) Close() error {
	return js.logger.Sync()
}
