package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		catalog, err := LoadCatalog("")
		require.NoError(t, err)
		assert.Equal(t, map[int64]int64{499: 100, 1199: 300, 1599: 500}, catalog.Amounts)
		assert.Empty(t, catalog.Prices)
	})

	t.Run("price ids keep their case", func(t *testing.T) {
		path := writeCatalog(t, `
prices:
  price_1PqXyZAbC: 300
`)
		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, int64(300), catalog.Prices["price_1PqXyZAbC"])
		assert.Len(t, catalog.Amounts, 3, "amounts fall back to defaults")
	})

	t.Run("amounts replace defaults", func(t *testing.T) {
		path := writeCatalog(t, `
amounts:
  999: 200
`)
		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, map[int64]int64{999: 200}, catalog.Amounts)
	})

	tests := []struct {
		name    string
		content string
	}{
		{"zero credits", "amounts:\n  499: 0\n"},
		{"negative amount", "amounts:\n  -5: 10\n"},
		{"negative price credits", "prices:\n  price_x: -1\n"},
		{"malformed yaml", "amounts: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
