package binder

import "github.com/dmitrymomot/formkit/pkg/config"

// DefaultDateLayout is used for date fields that declare no format.
const DefaultDateLayout = "2006-01-02 15:04"

// DefaultMaxValues caps the number of raw values accepted for one array field.
const DefaultMaxValues = 1000

// Config controls how raw strings are coerced.
type Config struct {
	DateLayout       string `env:"FORMKIT_DATE_LAYOUT" envDefault:"2006-01-02 15:04"`
	NormalizeUnicode bool   `env:"FORMKIT_NORMALIZE_UNICODE" envDefault:"true"`
	TrimSpace        bool   `env:"FORMKIT_TRIM_SPACE" envDefault:"false"`
	// MaxValues of zero or less disables the cap.
	MaxValues int `env:"FORMKIT_MAX_VALUES" envDefault:"1000"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		DateLayout:       DefaultDateLayout,
		NormalizeUnicode: true,
		MaxValues:        DefaultMaxValues,
	}
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
