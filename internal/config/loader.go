package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration wraps failures to read or decode configuration sources.
var ErrConfiguration = errors.New("configuration error")

// legacyEnv lists environment names accepted in addition to the BOT_* form.
var legacyEnv = map[string]string{
	"telegram.token": "TELEGRAM_BOT_TOKEN",
	"gemini.api_key": "GEMINI_API_KEY",
	"openai.api_key": "OPENAI_API_KEY",
	"database.path":  "DATABASE_PATH",
}

// Load loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path, or ./config.yaml when path is empty
// 3. a .env file in the working directory
// 4. BOT_* environment variables
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to load .env: %w", ErrConfiguration, err)
	}

	v := viper.New()
	setDefaults(v, "", reflect.ValueOf(*Default()))

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envKey := "BOT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %w", ErrConfiguration, key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: failed to read config file: %w", ErrConfiguration, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// setDefaults registers every leaf of val under its mapstructure key so that
// environment overrides are visible to Unmarshal.
func setDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		setDefault(v, key, val.Field(i))
	}
}

func setDefault(v *viper.Viper, key string, fv reflect.Value) {
	switch {
	case fv.Kind() == reflect.Struct && fv.Type() != durationType:
		setDefaults(v, key, fv)
	case fv.Kind() == reflect.Map && fv.Type().Key().Kind() == reflect.String:
		iter := fv.MapRange()
		for iter.Next() {
			setDefault(v, key+"."+iter.Key().String(), iter.Value())
		}
	default:
		v.SetDefault(key, fv.Interface())
	}
}
