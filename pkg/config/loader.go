package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/formkit/pkg/memo"
)

var (
	// cache holds one parsed copy per configuration type
	cache memo.Cache[reflect.Type, any]

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v. Each configuration type is
// parsed once per process; later calls copy the cached value.
//
// The default .env file is read on the first call if it exists. A failed
// parse is not cached, so fixing the environment and calling Load again
// works.
//
// Example:
//
//	type BinderConfig struct {
//		DateLayout string `env:"FORMKIT_DATE_LAYOUT" envDefault:"2006-01-02 15:04"`
//		MaxValues  int    `env:"FORMKIT_MAX_VALUES" envDefault:"1000"`
//	}
//
//	var cfg BinderConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()
	cached, err := cache.Get(key, func() (any, error) {
		var fresh T
		if err := env.Parse(&fresh); err != nil {
			return nil, errors.Join(ErrParsingConfig, err)
		}
		return fresh, nil
	})
	if err != nil {
		cache.Delete(key)
		return err
	}

	*v = cached.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment without
// overriding variables that are already set. With no arguments it reads
// the default .env file.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cache.Reset()
}

// Reload drops the cached value of T and parses it again.
func Reload[T any](v *T) error {
	cache.Delete(reflect.TypeFor[T]())
	return Load(v)
}
