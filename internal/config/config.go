// Package config loads wikihtml settings from struct-tag defaults, an
// optional TOML file, WIKIHTML_* environment variables and command line
// flags, in that order of precedence.
package config

import (
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment key, e.g. WIKIHTML_THEME.
const EnvPrefix = "WIKIHTML"

// Config holds the settings shared by the CLI modes.
type Config struct {
	Theme            string        `toml:"theme" env:"THEME" flag:"theme" default:"default" description:"Page theme"`
	Page             bool          `toml:"page" env:"PAGE" flag:"page" default:"false" description:"Wrap output in a standalone HTML page"`
	Title            string        `toml:"title" env:"TITLE" flag:"title" default:"" description:"Page title (default: first heading)"`
	StripFrontMatter bool          `toml:"strip_front_matter" env:"STRIP_FRONT_MATTER" flag:"strip-front-matter" default:"false" description:"Drop a leading front matter block"`
	Validate         bool          `toml:"validate" env:"VALIDATE" default:"true" description:"Reject invalid UTF-8 and binary input"`
	ServeAddr        string        `toml:"serve_addr" env:"SERVE_ADDR" default:"127.0.0.1:8080" description:"Preview server listen address"`
	LogLevel         string        `toml:"log_level" env:"LOG_LEVEL" flag:"log-level" default:"info" description:"Logging level (debug, info, warn, error)"`
	WatchDebounce    time.Duration `toml:"watch_debounce" env:"WATCH_DEBOUNCE" flag:"watch-debounce" default:"100ms" description:"Delay before re-rendering after a change"`
}

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Default returns a Config holding only the struct-tag defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := loadDefaults(cfg); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}
	return cfg, nil
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment. A nil lookup uses os.LookupEnv.
func Load(path string, lookup LookupEnv) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "loading %s", path)
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := loadEnv(EnvPrefix, cfg, lookup); err != nil {
		return nil, errors.Wrap(err, "loading env vars")
	}
	return cfg, nil
}

// ApplyFlags copies every flag named by a `flag` tag that was set
// explicitly on fs. Unset flags leave the loaded value alone.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("flag")
		if name == "" || !fs.Changed(name) {
			continue
		}
		f := fs.Lookup(name)
		if err := setField(v.Field(i), f.Value.String()); err != nil {
			return errors.Wrapf(err, "flag --%s", name)
		}
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return level, nil
}

// Usage returns the description tag of the named field, for flag help.
func Usage(fieldName string) string {
	field, ok := reflect.TypeOf(Config{}).FieldByName(fieldName)
	if !ok {
		return ""
	}
	return field.Tag.Get("description")
}

func loadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Newf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadDefaults loads default values from struct tags.
func loadDefaults(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if defaultVal := field.Tag.Get("default"); defaultVal != "" {
			if err := setField(v.Field(i), defaultVal); err != nil {
				return errors.Wrapf(err, "setting default for %s", field.Name)
			}
		}
	}
	return nil
}

// loadEnv loads configuration from environment variables.
func loadEnv(prefix string, cfg *Config, lookup LookupEnv) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Tag.Get("env")
		if envKey == "" {
			continue
		}
		if val, ok := lookup(prefix + "_" + envKey); ok && val != "" {
			if err := setField(v.Field(i), val); err != nil {
				return errors.Wrapf(err, "setting %s_%s", prefix, envKey)
			}
		}
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// setField sets a value on a struct field.
func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(i))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return errors.Newf("unsupported type: %s", field.Kind())
	}
	return nil
}
