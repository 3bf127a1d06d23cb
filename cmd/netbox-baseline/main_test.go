package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/internal/netboxtest"
	"github.com/braunma/netbox-baseline/pkg/config"
)

const testToken = "cli-token"

const testBaseline = `
manufacturers:
  - name: Cisco
  - bogus
device_roles:
  - name: access
    color: "#00f"
device_types:
  - model: C9300
    manufacturer: cisco
    u_height: 1
sites:
  - name: DC1
    racks:
      - name: R1
        u_height: 42
    devices:
      - name: sw1
        device_type: c9300
        role: access
        rack:
          name: r1
          position: 50
`

func writeFiles(t *testing.T, srv *netboxtest.Server) (creds, baseline, envFile string) {
	t.Helper()
	dir := t.TempDir()

	creds = filepath.Join(dir, "creds.yml")
	content := fmt.Sprintf("host: %s\ntoken: %s\ninsecure_skip_verify: true\n", strings.TrimPrefix(srv.URL, "https://"), testToken)
	require.NoError(t, os.WriteFile(creds, []byte(content), 0o600))

	baseline = filepath.Join(dir, "baseline.yml")
	require.NoError(t, os.WriteFile(baseline, []byte(testBaseline), 0o600))

	return creds, baseline, filepath.Join(dir, ".env")
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunBaseline(t *testing.T) {
	srv := netboxtest.NewTLSServer(testToken)
	defer srv.Close()
	creds, baseline, envFile := writeFiles(t, srv)

	stdout, stderr, err := execute(t, "--creds", creds, "--baseline", baseline, "--env-file", envFile)
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "BASELINE COMPLETE: 6 objects created")
	assert.Contains(t, stdout, "does not fit")
	assert.Contains(t, stderr, "record is not a mapping")

	devices := srv.Objects(constants.EndpointDevices)
	require.Len(t, devices, 1)
	assert.Equal(t, "SW1", devices[0]["name"])
	assert.NotContains(t, devices[0], "rack")

	// Second run finds everything
	stdout, _, err = execute(t, "--creds", creds, "--baseline", baseline, "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "BASELINE COMPLETE: 0 objects created")
	assert.Len(t, srv.Objects(constants.EndpointManufacturers), 1)
}

func TestRunBaselineWithTag(t *testing.T) {
	srv := netboxtest.NewTLSServer(testToken)
	defer srv.Close()
	creds, baseline, envFile := writeFiles(t, srv)

	stdout, stderr, err := execute(t,
		"--creds", creds, "--baseline", baseline, "--env-file", envFile, "--tag", "Baseline Managed")
	require.NoError(t, err, stderr)

	tags := srv.Objects(constants.EndpointTags)
	require.Len(t, tags, 1)
	assert.Equal(t, "baseline-managed", tags[0]["slug"])
	assert.Contains(t, stdout, fmt.Sprintf("Tagging created objects with baseline-managed (id %d)", tags[0]["id"]))

	for _, m := range srv.Objects(constants.EndpointManufacturers) {
		assert.Equal(t, []interface{}{float64(tags[0]["id"].(int))}, m["tags"])
	}
}

func TestRunBaselineJSONDryRun(t *testing.T) {
	srv := netboxtest.NewTLSServer(testToken)
	defer srv.Close()
	creds, baseline, envFile := writeFiles(t, srv)

	stdout, stderr, err := execute(t,
		"--creds", creds, "--baseline", baseline, "--env-file", envFile,
		"--dry-run", "--output", "json", "--tag", "baseline")
	require.NoError(t, err, stderr)

	for _, r := range srv.Requests() {
		assert.Equal(t, http.MethodGet, r.Method, "dry run only reads")
	}
	assert.Contains(t, stderr, "[DRY-RUN] POST")

	var summaries int
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		assert.Equal(t, true, entry["dry_run"])
		if entry["message"] == "summary" {
			summaries++
		}
	}
	assert.Equal(t, len(constants.Kinds), summaries)
}

func TestRunBaselineErrors(t *testing.T) {
	srv := netboxtest.NewTLSServer(testToken)
	defer srv.Close()
	creds, baseline, envFile := writeFiles(t, srv)
	dir := t.TempDir()

	t.Run("unknown output", func(t *testing.T) {
		_, _, err := execute(t, "--creds", creds, "--baseline", baseline, "--output", "xml")
		assert.Error(t, err)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, stderr, err := execute(t, "--creds", filepath.Join(dir, "none.yml"), "--baseline", baseline, "--env-file", envFile)
		require.Error(t, err)
		assert.Equal(t, config.ErrConfig, errors.Cause(err))
		assert.Contains(t, stderr, "Failed to load credentials")
	})

	t.Run("missing baseline", func(t *testing.T) {
		_, stderr, err := execute(t, "--creds", creds, "--baseline", filepath.Join(dir, "none.yml"), "--env-file", envFile)
		require.Error(t, err)
		assert.Contains(t, stderr, "Failed to load baseline")
		assert.Empty(t, srv.Requests())
	})

	t.Run("remote failure aborts", func(t *testing.T) {
		srv.FailWith(constants.EndpointManufacturers, http.StatusServiceUnavailable)
		_, stderr, err := execute(t, "--creds", creds, "--baseline", baseline, "--env-file", envFile)
		require.Error(t, err)
		assert.Contains(t, stderr, "Baseline aborted")
		assert.Empty(t, srv.Objects(constants.EndpointManufacturers))
	})
}
