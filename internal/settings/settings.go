// Package settings resolves agentcheck's own options from a settings file,
// AGENTCHECK_* environment variables and command-line flags.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = ".agentcheck.yaml"

// EnvPrefix prefixes environment overrides, e.g. AGENTCHECK_FORMAT=json.
const EnvPrefix = "AGENTCHECK"

// Settings controls how agentcheck reports results.
type Settings struct {
	Format  string `mapstructure:"format" validate:"required,oneof=text json"`
	Engine  string `mapstructure:"engine" validate:"required,oneof=builtin jsonschema both"`
	Color   string `mapstructure:"color" validate:"required,oneof=auto always never"`
	Theme   string `mapstructure:"theme" validate:"omitempty,oneof=dark light"`
	Strict  bool   `mapstructure:"strict"`
	Verbose bool   `mapstructure:"verbose"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		Format: "text",
		Engine: "builtin",
		Color:  "auto",
	}
}

var keys = []string{"format", "engine", "color", "theme", "strict", "verbose"}

// Load merges defaults, the settings file at path, environment variables and
// any changed flags in flags, then validates the result. A missing file is
// only an error when explicit is set.
func Load(path string, explicit bool, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("format", d.Format)
	v.SetDefault("engine", d.Engine)
	v.SetDefault("color", d.Color)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("verbose", d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading settings %s: %w", path, err)
			}
		case explicit || !errors.Is(statErr, fs.ErrNotExist):
			return nil, fmt.Errorf("reading settings %s: %w", path, statErr)
		}
	}

	if flags != nil {
		for _, k := range keys {
			if f := flags.Lookup(k); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", k, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every field holds an accepted value.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			switch fe.Tag() {
			case "required":
				return fmt.Errorf("invalid settings: %s must be set", fe.Field())
			case "oneof":
				return fmt.Errorf("invalid settings: %s %q is not one of [%s]", fe.Field(), fe.Value(), fe.Param())
			}
			return fmt.Errorf("invalid settings: %s fails %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
