// Package config provides a type-safe, generic and cached way to load
// configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - Loads values from one or multiple `.env` files (fallback to the default
//     `.env` in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only parsed
//     once for the lifetime of the process.
//   - Exposes helpers that panic on failure (`MustLoadEnv`, `MustLoad`) for
//     scenarios where configuration is critical.
//
// # Architecture
//
// Internally the package keeps a `memo.Cache` that stores parsed struct
// copies keyed by their reflect.Type. Each key is computed at most once even
// when accessed from multiple goroutines concurrently; parsing is delegated
// to `env.Parse`. Failed parses are dropped from the cache.
//
// # Usage
//
//	type BinderConfig struct {
//	    DateLayout string `env:"FORMKIT_DATE_LAYOUT" envDefault:"2006-01-02 15:04"`
//	    TrimSpace  bool   `env:"FORMKIT_TRIM_SPACE" envDefault:"false"`
//	}
//
//	func main() {
//	    if err := config.LoadEnv("./config/.env"); err != nil {
//	        log.Fatalf("loading env: %v", err)
//	    }
//
//	    var cfg BinderConfig
//	    if err := config.Load(&cfg); err != nil {
//	        log.Fatalf("parsing env: %v", err)
//	    }
//	}
//
// Subsequent calls to `config.Load(&cfg)` are served from the cache.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`: failed to parse env vars into struct.
//   - `ErrLoadingEnvFile`: an explicitly requested .env file could not be read.
//   - `ErrNilPointer`: nil pointer passed to `Load`/`MustLoad`.
//
// # Testing Helpers
//
// Use `ResetCache()` to clear the cache between tests or `Reload(&cfg)` to
// parse a particular struct again after the process environment changes.
package config
