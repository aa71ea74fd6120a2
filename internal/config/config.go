// Package config reads the service configuration from etc/main.toml and the environment.
package config

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// JSONOverrideEnv names the env var holding a JSON document merged over the file config.
const JSONOverrideEnv = "CASHGLITCH_CONFIG_JSON"

const redacted = "********"

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := newViper(path)

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(JSONOverrideEnv)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

// newViper prepares a viper instance with defaults and env bindings.
func newViper(path string) *viper.Viper {
	v := viper.New()

	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("CASHGLITCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// keys must be known to viper so AutomaticEnv applies on Unmarshal
	v.SetDefault("Title", "CashGlitch")
	v.SetDefault("Environment", "development")
	v.SetDefault("DB.GormEngine", EngineSQLite)
	v.SetDefault("DB.Name", "cashglitch.db")
	v.SetDefault("DB.LogLevel", "warn")
	v.SetDefault("Webserver.ShutDownTime", 5) //nolint:mnd
	v.SetDefault("Webserver.AllowOrigins", "*")
	v.SetDefault("Webserver.SessionSecret", "")
	v.SetDefault("Webserver.CookieEncryptionKey", "")
	v.SetDefault("Webserver.Session.ExpiryTime", "168h")
	v.SetDefault("Webserver.RateLimit.Max", 30)       //nolint:mnd
	v.SetDefault("Webserver.RateLimit.ClickMax", 600) //nolint:mnd
	v.SetDefault("Webserver.RateLimit.Expiration", "1m")
	v.SetDefault("Auth.AdminEmail", "")
	v.SetDefault("Auth.AccessCodeHash", "")
	v.SetDefault("Payment.StripeSecretKey", "")

	// well known deployment variables
	_ = v.BindEnv("Environment", "NODE_ENV")
	_ = v.BindEnv("Auth.AdminEmail", "ADMIN_EMAIL")
	_ = v.BindEnv("Payment.StripeSecretKey", "STRIPE_SECRET_KEY")

	return v
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	out := *c
	maskSecret(&out.DB.Password)
	maskSecret(&out.Webserver.SessionSecret)
	maskSecret(&out.Webserver.CookieEncryptionKey)
	maskSecret(&out.Payment.StripeSecretKey)

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(out); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func maskSecret(s *string) {
	if *s != "" {
		*s = redacted
	}
}

// validate minimal config settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.Webserver.SessionSecret == "" && !c.DevMode && c.IsProduction() {
		return errors.Wrap(ErrSessionSecretRequired, invalidErrMessage)
	}

	if key := c.Webserver.CookieEncryptionKey; key != "" {
		raw, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return errors.Wrap(ErrInvalidCookieEncryptionKey, invalidErrMessage)
		}

		switch len(raw) {
		case 16, 24, 32: //nolint:mnd
		default:
			return errors.Wrap(ErrInvalidCookieEncryptionKey, invalidErrMessage)
		}
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	return nil
}
