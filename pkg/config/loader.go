package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config types that check themselves after
// parsing. A failed validation is returned wrapped in ErrInvalidConfig and is
// not cached.
type Validator interface {
	Validate() error
}

var (
	// cache holds one parsed value per config type.
	cache   sync.Map // reflect.Type -> any
	parseMu sync.Mutex

	dotenvOnce sync.Once
)

// LoadEnv loads the given .env files, or ./.env with no paths, into the
// process environment. Values from the files override the environment and
// later files override earlier ones.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		if len(paths) == 0 {
			return fmt.Errorf("load .env: %w", err)
		}
		return fmt.Errorf("load env files %v: %w", paths, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// Load fills v from the environment. The first call also reads ./.env when
// present, without overriding variables that are already set. Each type is
// parsed once; later calls copy the cached value.
//
//	var cfg struct {
//		Attempts int `env:"VECTORWRITER_RETRY_ATTEMPTS" envDefault:"3"`
//	}
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := typeKey[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	parseMu.Lock()
	defer parseMu.Unlock()

	// Another goroutine may have parsed T while we waited.
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(&parsed).(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	cache.Store(key, parsed)
	*v = parsed
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}

// ForceReloadConfig drops the cached value for T and parses again.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	cache.Delete(typeKey[T]())
	return Load(v)
}

// ResetCache forgets every parsed config.
func ResetCache() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
