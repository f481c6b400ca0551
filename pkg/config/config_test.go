package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/pkg/config"
)

type envFileConfig struct {
	Name  string   `env:"QRB_TEST_NAME"`
	Count int      `env:"QRB_TEST_COUNT"`
	List  []string `env:"QRB_TEST_LIST" envSeparator:","`
}

type defaultsConfig struct {
	Addr    string `env:"QRB_TEST_ADDR" envDefault:":8080"`
	Workers int    `env:"QRB_TEST_WORKERS" envDefault:"4"`
}

type requiredConfig struct {
	Token string `env:"QRB_TEST_REQUIRED,required"`
}

type cachedConfig struct {
	Value string `env:"QRB_TEST_CACHED"`
}

type profile struct {
	Value string `yaml:"value"`
	Size  int    `yaml:"size"`
}

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnv(t *testing.T) {
	unset(t, "QRB_TEST_NAME", "QRB_TEST_COUNT", "QRB_TEST_LIST")
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.test", "testdata/.env.override"))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "override", cfg.Name)
	assert.Equal(t, 7, cfg.Count)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.List)

	err := config.LoadEnv("testdata/missing.env")
	require.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoadDefaults(t *testing.T) {
	unset(t, "QRB_TEST_ADDR", "QRB_TEST_WORKERS")
	config.ResetCache()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadRequired(t *testing.T) {
	unset(t, "QRB_TEST_REQUIRED")
	config.ResetCache()

	var cfg requiredConfig
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)

	t.Setenv("QRB_TEST_REQUIRED", "secret")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoadCaches(t *testing.T) {
	config.ResetCache()
	t.Setenv("QRB_TEST_CACHED", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))

	t.Setenv("QRB_TEST_CACHED", "second")
	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value)

	config.ResetCache()
	var c cachedConfig
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "second", c.Value)
}

func TestLoadNil(t *testing.T) {
	require.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
	require.ErrorIs(t, config.LoadYAML[profile]("x", nil), config.ErrNilPointer)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	var p profile
	require.NoError(t, config.LoadYAML("testdata/profile.yaml", &p))
	assert.Equal(t, "https://example.com", p.Value)
	assert.Equal(t, 512, p.Size)

	require.ErrorIs(t, config.LoadYAML("testdata/none.yaml", &p), config.ErrReadingFile)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown: 1\n"), 0o600))
	require.ErrorIs(t, config.LoadYAML(path, &p), config.ErrReadingFile)

	empty := profile{Value: "kept"}
	require.NoError(t, config.DecodeYAML(nil, &empty))
	assert.Equal(t, "kept", empty.Value)
}
