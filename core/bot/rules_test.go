package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualsFold(t *testing.T) {
	match := equalsFold("order", "заказ")

	assert.True(t, match("order"))
	assert.True(t, match("ORDER"))
	assert.True(t, match("Заказ"))
	assert.True(t, match("ЗАКАЗ"))
	assert.False(t, match("orders"))
	assert.False(t, match(""))
}

func TestSelectedItem(t *testing.T) {
	items := []string{"Orange fresh", "Apple fresh"}

	item, ok := selectedItem("1", items)
	assert.True(t, ok)
	assert.Equal(t, "Orange fresh", item)

	item, ok = selectedItem("2", items)
	assert.True(t, ok)
	assert.Equal(t, "Apple fresh", item)

	for _, label := range []string{"0", "3", "-1", "", "two"} {
		_, ok := selectedItem(label, items)
		assert.False(t, ok, "label %q", label)
	}
}

func TestListingNumbersItems(t *testing.T) {
	got := listing([]string{"Classic white tee", "Longsleeve"})
	assert.Equal(t, "1. Classic white tee\n2. Longsleeve", got)
}
