package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type testConfigSuccess struct {
	TestString string `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_SUCCESS" envDefault:"true"`
}

type testConfigDefault struct {
	TestString string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
}

type testConfigCached struct {
	Value string `env:"TEST_VALUE_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

type fileConfig struct {
	Name  string   `env:"TEST_FILE_NAME"`
	Items []string `env:"TEST_FILE_ITEMS" envSeparator:","`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")

	var cfg testConfigSuccess
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "test_value", cfg.TestString)
	assert.Equal(t, 100, cfg.TestInt)
	assert.False(t, cfg.TestBool)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")

	var cfg testConfigDefault
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "default_value", cfg.TestString)
	assert.Equal(t, 42, cfg.TestInt)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_VALUE_CACHED", "first")

	var a testConfigCached
	require.NoError(t, config.Load(&a))

	t.Setenv("TEST_VALUE_CACHED", "second")

	var b testConfigCached
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value, "second load must come from the cache")

	require.NoError(t, config.Reload(&b))
	assert.Equal(t, "second", b.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrParsingConfig))

	t.Setenv("REQUIRED_VALUE", "now set")
	require.NoError(t, config.Load(&cfg), "failures are not cached")
	assert.Equal(t, "now set", cfg.Required)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfigDefault](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
	assert.Panics(t, func() { config.MustLoad[requiredConfig](nil) })
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("TEST_FILE_NAME")
	os.Unsetenv("TEST_FILE_ITEMS")
	t.Cleanup(func() {
		os.Unsetenv("TEST_FILE_NAME")
		os.Unsetenv("TEST_FILE_ITEMS")
		config.ResetCache()
	})

	path := filepath.Join(t.TempDir(), ".env.custom")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FILE_NAME=\"from file\"\nTEST_FILE_ITEMS=a,b,c\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from file", cfg.Name)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Items)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
