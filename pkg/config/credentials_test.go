package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("NETBOX_HOST", "")
	t.Setenv("NETBOX_TOKEN", "")
	os.Unsetenv("NETBOX_HOST")
	os.Unsetenv("NETBOX_TOKEN")

	path := writeFile(t, "creds.yml", "host: netbox.example.com\ntoken: abc123\n")

	creds, err := LoadCredentials(path, "")
	require.NoError(t, err)

	assert.Equal(t, "netbox.example.com", creds.Host)
	assert.Equal(t, "abc123", creds.Token)
	assert.False(t, creds.InsecureSkipVerify)
	assert.Equal(t, "https://netbox.example.com", creds.URL())
	assert.NotContains(t, creds.String(), "abc123")
}

func TestLoadCredentialsEnvOverride(t *testing.T) {
	t.Setenv("NETBOX_TOKEN", "from-env")
	t.Setenv("NETBOX_INSECURE_SKIP_VERIFY", "true")

	path := writeFile(t, "creds.yml", "host: netbox.example.com\ntoken: from-file\n")

	creds, err := LoadCredentials(path, "")
	require.NoError(t, err)

	assert.Equal(t, "from-env", creds.Token)
	assert.True(t, creds.InsecureSkipVerify)
}

func TestLoadCredentialsEnvFile(t *testing.T) {
	// Registered so the value set by godotenv is cleaned up after the test
	t.Setenv("NETBOX_HOST", "")
	os.Unsetenv("NETBOX_HOST")

	envFile := writeFile(t, ".env", "NETBOX_HOST=dotenv.example.com\n")
	path := writeFile(t, "creds.yml", "host: netbox.example.com\ntoken: abc\n")

	creds, err := LoadCredentials(path, envFile)
	require.NoError(t, err)

	assert.Equal(t, "dotenv.example.com", creds.Host)
}

func TestLoadCredentialsMissingEnvFileIgnored(t *testing.T) {
	path := writeFile(t, "creds.yml", "host: h\ntoken: t\n")

	_, err := LoadCredentials(path, filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestLoadCredentialsErrors(t *testing.T) {
	t.Setenv("NETBOX_HOST", "")
	t.Setenv("NETBOX_TOKEN", "")
	os.Unsetenv("NETBOX_HOST")
	os.Unsetenv("NETBOX_TOKEN")

	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{
			name:    "missing file",
			missing: true,
		},
		{
			name:    "malformed yaml",
			content: "host: [unclosed\n",
		},
		{
			name:    "no host",
			content: "token: abc\n",
		},
		{
			name:    "no token",
			content: "host: netbox.example.com\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "creds.yml")
			if !tt.missing {
				path = writeFile(t, "creds.yml", tt.content)
			}

			_, err := LoadCredentials(path, "")
			require.Error(t, err)
			assert.Equal(t, ErrConfig, errors.Cause(err))
		})
	}
}
