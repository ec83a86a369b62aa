package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, key := range []string{"amazon", "rakuten", "yahoo", "mercari", "base", "qoo10", "tiktok"} {
		c, ok := Parse(key)
		require.True(t, ok, key)
		assert.Equal(t, key, c.Key)
		assert.NotEmpty(t, c.Table)
		assert.NotEmpty(t, c.TitleColumn)
	}
}

func TestParseCaseAndSpace(t *testing.T) {
	c, ok := Parse("  Amazon ")
	require.True(t, ok)
	assert.Equal(t, "amazon_product_mappings", c.Table)
	assert.Equal(t, "amazon_title", c.TitleColumn)
}

func TestParseUnknown(t *testing.T) {
	_, ok := Parse("ebay")
	assert.False(t, ok)
}

func TestTitleKey(t *testing.T) {
	c, _ := Parse("qoo10")
	assert.Equal(t, "qoo10Title", c.TitleKey())
}

func TestRegistryIsDistinct(t *testing.T) {
	tables := map[string]bool{}
	for _, c := range All() {
		assert.False(t, tables[c.Table], "duplicate table %s", c.Table)
		tables[c.Table] = true
	}
	assert.Len(t, Keys(), 7)
}
