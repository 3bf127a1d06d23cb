package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLoggerTo(&out, &errOut, false)

	logger.Info("site %s", "DC1")
	logger.Warning("rack %s skipped", "R1")
	logger.Error("request failed", errors.New("boom"))

	if !strings.Contains(out.String(), "site DC1") {
		t.Errorf("stdout = %q, expected it to contain %q", out.String(), "site DC1")
	}
	if !strings.Contains(out.String(), "rack R1 skipped") {
		t.Errorf("stdout = %q, expected it to contain %q", out.String(), "rack R1 skipped")
	}
	if !strings.Contains(errOut.String(), "request failed: boom") {
		t.Errorf("stderr = %q, expected it to contain %q", errOut.String(), "request failed: boom")
	}
	if strings.Contains(out.String(), "boom") {
		t.Errorf("errors should not be written to stdout: %q", out.String())
	}
}

func TestLoggerDryRun(t *testing.T) {
	var out bytes.Buffer
	logger := NewLoggerTo(&out, &out, true)

	if !logger.IsDryRun() {
		t.Error("IsDryRun() = false, expected true")
	}

	logger.DryRun("POST", "/api/dcim/sites/")
	if !strings.Contains(out.String(), "[DRY-RUN] POST: /api/dcim/sites/") {
		t.Errorf("DryRun output = %q", out.String())
	}
}
