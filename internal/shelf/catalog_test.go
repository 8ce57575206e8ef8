package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogLookupKnownSKU(t *testing.T) {
	c := DefaultCatalog()

	e := c.Lookup("BEV-001", "Premium Coffee Beans")
	assert.Equal(t, "Beverages", e.Category)
	assert.Equal(t, 15.0, e.UnitPrice)
	assert.True(t, e.HighVelocity)

	// Catalog entry wins over whatever the display name suggests.
	e = c.Lookup("SNK-002", "Potato Chips")
	assert.Equal(t, "Snacks", e.Category)
	assert.Equal(t, 4.0, e.UnitPrice)
	assert.False(t, e.HighVelocity)
}

func TestCatalogIngestOverride(t *testing.T) {
	c := NewCatalog()
	c.Ingest(CatalogEntry{SKU: "XYZ-001", Name: "Mystery Item", Category: "General", UnitPrice: 9})
	c.Ingest(CatalogEntry{SKU: "XYZ-001", Name: "Mystery Item", Category: "Snacks", UnitPrice: 2})

	e := c.Lookup("XYZ-001", "Mystery Item")
	assert.Equal(t, "Snacks", e.Category)
	assert.Equal(t, 2.0, e.UnitPrice)
}

func TestCatalogKeywordFallback(t *testing.T) {
	c := NewCatalog()

	cases := []struct {
		name     string
		category string
		price    float64
		highVel  bool
	}{
		{"Premium Coffee Beans", "Beverages", 15, true},
		{"Organic Milk", "Dairy", 6, true},
		{"Red Apples", "Produce", 3, false},
		{"Chocolate Bars", "Snacks", 4, false},
		{"Whole Wheat Bread", "General", 4, true},
		{"Canned Soup", "General", 3, false},
	}
	for _, tc := range cases {
		e := c.Lookup("UNKNOWN-1", tc.name)
		assert.Equal(t, tc.category, e.Category, tc.name)
		assert.Equal(t, tc.price, e.UnitPrice, tc.name)
		assert.Equal(t, tc.highVel, e.HighVelocity, tc.name)
	}
}

func TestSimulatedDetectionsIsACopy(t *testing.T) {
	a := SimulatedDetections()
	a[0].Count = 99
	b := SimulatedDetections()
	assert.Equal(t, 3, b[0].Count)
}
