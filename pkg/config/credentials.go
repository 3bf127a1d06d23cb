// Package config loads the NetBox connection credentials.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/braunma/netbox-baseline/internal/constants"
)

var (
	ErrConfig = errors.New("configuration error")
)

// EnvPrefix is prepended to credential keys when read from the environment (NETBOX_HOST, ...)
const EnvPrefix = "NETBOX"

var credentialKeys = []string{"host", "token", "insecure_skip_verify"}

// Credentials holds what is needed to reach the NetBox API
type Credentials struct {
	Host               string `mapstructure:"host"`
	Token              string `mapstructure:"token"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// URL returns the API base URL for the configured host
func (c *Credentials) URL() string {
	return constants.URLScheme + c.Host
}

// String describes the credentials without leaking the token
func (c *Credentials) String() string {
	token := "<empty>"
	if c.Token != "" {
		token = "<redacted>"
	}
	return "host=" + c.Host + " token=" + token
}

// LoadCredentials reads the credentials YAML at path. Values from the
// environment (optionally seeded from envFile) override the file.
func LoadCredentials(path, envFile string) (*Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(ErrConfig, "env file "+envFile+": "+err.Error())
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// Bind explicitly so keys present only in the environment reach Unmarshal
	for _, key := range credentialKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrap(ErrConfig, err.Error())
		}
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(ErrConfig, err.Error())
	}
	defer fh.Close()

	if err := v.ReadConfig(fh); err != nil {
		return nil, errors.Wrap(ErrConfig, "ReadConfig error: "+err.Error())
	}

	creds := &Credentials{}
	if err := v.Unmarshal(creds); err != nil {
		return nil, errors.Wrap(ErrConfig, err.Error())
	}

	if err := creds.validate(); err != nil {
		return nil, err
	}

	return creds, nil
}

func (c *Credentials) validate() error {
	if c.Host == "" {
		return errors.Wrap(ErrConfig, "no host")
	}

	if c.Token == "" {
		return errors.Wrap(ErrConfig, "no token")
	}

	return nil
}
