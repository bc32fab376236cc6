package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ResolutionOrder(t *testing.T) {
	resolver := NewResolver(DefaultAliasTable())

	t.Run("field slug beats everything", func(t *testing.T) {
		data := map[string]any{
			"serial_number": "literal",
			"sku":           "via-concept",
		}
		v, ok := resolver.Resolve("serial_number", "Serial Number", data)
		require.True(t, ok)
		assert.Equal(t, "literal", v)
	})

	t.Run("normalized name beats alias", func(t *testing.T) {
		data := map[string]any{
			"item_number": "via-name",
			"sku":         "via-concept",
		}
		v, ok := resolver.Resolve("itemnr", "Item Number", data)
		require.True(t, ok)
		assert.Equal(t, "via-name", v)
	})

	t.Run("alias membership reaches concept value", func(t *testing.T) {
		data := map[string]any{"sku": "via-concept"}
		v, ok := resolver.Resolve("barcode", "Barcode", data)
		require.True(t, ok)
		assert.Equal(t, "via-concept", v)
	})

	t.Run("no hit", func(t *testing.T) {
		_, ok := resolver.Resolve("favorite_snack", "Favorite Snack", map[string]any{"sku": "x"})
		assert.False(t, ok)
	})
}

func TestResolver_ConceptFor(t *testing.T) {
	resolver := NewResolver(DefaultAliasTable())

	concept, ok := resolver.ConceptFor("upc", "UPC")
	require.True(t, ok)
	assert.Equal(t, "sku", concept)

	concept, ok = resolver.ConceptFor("availability_state", "Availability")
	require.True(t, ok)
	assert.Equal(t, "status", concept)

	_, ok = resolver.ConceptFor("favorite_snack", "Favorite Snack")
	assert.False(t, ok)
}

func TestLoadAliasTable_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	content := "sku: [sku, article_number]\nflavor: [flavor, taste]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadAliasTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "article_number"}, table["sku"])
	assert.Equal(t, []string{"flavor", "taste"}, table["flavor"])
	// untouched defaults survive
	assert.Contains(t, table["status"], "availability")
}

func TestLoadAliasTable_MissingFile(t *testing.T) {
	_, err := LoadAliasTable("/nonexistent/aliases.yaml")
	assert.Error(t, err)
}
