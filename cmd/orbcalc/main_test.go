package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run(`explicit missing path`, func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), `orbcalc.toml`))
		assert.Error(t, err)
	})

	t.Run(`implicit missing path falls back to defaults`, func(t *testing.T) {
		cfg, err := loadConfig(``)
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run(`file values`, func(t *testing.T) {
		cfg, err := loadConfig(writeTemp(t, `orbcalc.toml`, "prec = 128\ndigits = 30\n"))
		require.NoError(t, err)
		assert.Equal(t, uint(128), cfg.Prec)
		assert.Equal(t, 30, cfg.Digits)
	})

	t.Run(`partial file keeps defaults`, func(t *testing.T) {
		cfg, err := loadConfig(writeTemp(t, `partial.toml`, "digits = 12\n"))
		require.NoError(t, err)
		assert.Equal(t, defaultConfig().Prec, cfg.Prec)
		assert.Equal(t, 12, cfg.Digits)
	})

	t.Run(`invalid prec`, func(t *testing.T) {
		_, err := loadConfig(writeTemp(t, `bad.toml`, "prec = 0\n"))
		assert.ErrorContains(t, err, `invalid prec`)
	})

	t.Run(`malformed toml`, func(t *testing.T) {
		_, err := loadConfig(writeTemp(t, `broken.toml`, "prec = =\n"))
		assert.Error(t, err)
	})
}

func TestAppDigits(t *testing.T) {
	a := &app{}
	assert.Equal(t, -1, a.digits(), `zero digits maps to shortest round-trip`)
	a.cfg.Digits = 25
	assert.Equal(t, 25, a.digits())
}
