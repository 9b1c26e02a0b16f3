package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/config"
)

type retryConfig struct {
	MaxAttempts int           `env:"VECTORWRITER_LOADTEST_ATTEMPTS" envDefault:"3"`
	BaseDelay   time.Duration `env:"VECTORWRITER_LOADTEST_DELAY" envDefault:"1s"`
	Verbose     bool          `env:"VECTORWRITER_LOADTEST_VERBOSE" envDefault:"false"`
}

type defaultsConfig struct {
	Addr    string        `env:"VECTORWRITER_DEFAULTS_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"VECTORWRITER_DEFAULTS_TIMEOUT" envDefault:"60s"`
}

type singletonConfig struct {
	Service string `env:"VECTORWRITER_SINGLETON_SERVICE" envDefault:"vectorwriter"`
}

type bucketConfig struct {
	Bucket string `env:"VECTORWRITER_BUCKET_A" envDefault:"a"`
}

type redisConfig struct {
	URL string `env:"VECTORWRITER_BUCKET_B" envDefault:"b"`
}

type requiredKeyConfig struct {
	APIKey string `env:"VECTORWRITER_REQUIRED_KEY,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("VECTORWRITER_LOADTEST_ATTEMPTS", "5")
	t.Setenv("VECTORWRITER_LOADTEST_DELAY", "250ms")
	t.Setenv("VECTORWRITER_LOADTEST_VERBOSE", "true")

	var cfg retryConfig
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.BaseDelay)
	assert.True(t, cfg.Verbose)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("VECTORWRITER_DEFAULTS_ADDR")
	os.Unsetenv("VECTORWRITER_DEFAULTS_TIMEOUT")

	var cfg defaultsConfig
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("VECTORWRITER_REQUIRED_KEY")
	config.ResetCache()

	var cfg requiredKeyConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrParsingConfig))

	t.Run("failure is not cached", func(t *testing.T) {
		t.Setenv("VECTORWRITER_REQUIRED_KEY", "pc-key")

		var retry requiredKeyConfig
		require.NoError(t, config.Load(&retry))
		assert.Equal(t, "pc-key", retry.APIKey)
	})
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("VECTORWRITER_SINGLETON_SERVICE", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("VECTORWRITER_SINGLETON_SERVICE", "second")

	var second singletonConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "first", second.Service, "second load must be served from cache")

	var reloaded singletonConfig
	require.NoError(t, config.ForceReloadConfig(&reloaded))
	assert.Equal(t, "second", reloaded.Service)
}

func TestLoad_DifferentTypes(t *testing.T) {
	t.Setenv("VECTORWRITER_BUCKET_A", "vectors-in")
	t.Setenv("VECTORWRITER_BUCKET_B", "redis://localhost:6379/0")

	var a bucketConfig
	require.NoError(t, config.Load(&a))

	var b redisConfig
	require.NoError(t, config.Load(&b))

	assert.Equal(t, "vectors-in", a.Bucket)
	assert.Equal(t, "redis://localhost:6379/0", b.URL)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *retryConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.ForceReloadConfig(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("VECTORWRITER_REQUIRED_KEY")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredKeyConfig
		config.MustLoad(&cfg)
	})
}

type validatedConfig struct {
	Source string `env:"VECTORWRITER_VALIDATED_SOURCE" envDefault:"apify"`
}

func (c *validatedConfig) Validate() error {
	if c.Source != "apify" && c.Source != "dir" {
		return errors.New("unknown source " + c.Source)
	}
	return nil
}

func TestLoad_Validate(t *testing.T) {
	config.ResetCache()
	t.Setenv("VECTORWRITER_VALIDATED_SOURCE", "ftp")

	var cfg validatedConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "unknown source ftp")

	t.Setenv("VECTORWRITER_VALIDATED_SOURCE", "dir")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "dir", cfg.Source)
}
