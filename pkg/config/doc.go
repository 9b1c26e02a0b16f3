// Package config reads typed configuration from environment variables.
//
// Config structs declare their variables with caarlos0/env tags. Load parses
// a struct once per type and serves later calls from a cache, so packages can
// load the same type independently without reparsing. A ./.env file is read
// on first use when present; LoadEnv loads specific files and lets them
// override the process environment.
//
//	type Config struct {
//	    LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
//	    RetryAttempts int           `env:"VECTORWRITER_RETRY_ATTEMPTS" envDefault:"3"`
//	    RetryInterval time.Duration `env:"VECTORWRITER_RETRY_INTERVAL" envDefault:"1s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Types with a Validate() error method are validated after parsing; failures
// match ErrInvalidConfig. Parse and validation failures are not cached.
//
// ResetCache and ForceReloadConfig exist for tests that change the
// environment between loads.
package config
