package shelf

import (
	"strings"

	"shelfmind_backend/models"
)

// CatalogEntry is the classification record for one SKU, ingested at
// startup. Detections whose SKU is not in the catalog fall back to
// keyword matching on the display name.
type CatalogEntry struct {
	SKU          string
	Name         string
	Category     string
	UnitPrice    float64
	HighVelocity bool
}

type Catalog struct {
	entries map[string]CatalogEntry
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]CatalogEntry)}
}

// Ingest registers catalog entries, replacing any existing entry with
// the same SKU.
func (c *Catalog) Ingest(entries ...CatalogEntry) {
	for _, e := range entries {
		c.entries[e.SKU] = e
	}
}

// Lookup resolves classification for a detection. Catalog entries win;
// unknown SKUs are classified from the product name.
func (c *Catalog) Lookup(sku, name string) CatalogEntry {
	if e, ok := c.entries[sku]; ok {
		return e
	}
	return CatalogEntry{
		SKU:          sku,
		Name:         name,
		Category:     classifyName(name),
		UnitPrice:    unitPriceFor(name),
		HighVelocity: isHighVelocity(name),
	}
}

func classifyName(name string) string {
	switch {
	case strings.Contains(name, "Coffee"):
		return "Beverages"
	case strings.Contains(name, "Milk"):
		return "Dairy"
	case strings.Contains(name, "Apple"):
		return "Produce"
	case strings.Contains(name, "Chocolate"):
		return "Snacks"
	}
	return "General"
}

func unitPriceFor(name string) float64 {
	switch {
	case strings.Contains(name, "Coffee"):
		return 15
	case strings.Contains(name, "Milk"):
		return 6
	case strings.Contains(name, "Bread"):
		return 4
	case strings.Contains(name, "Chocolate"):
		return 4
	}
	return 3
}

// High-turnover staples restock fastest and get the wider capacity and
// velocity ranges during enrichment.
func isHighVelocity(name string) bool {
	return strings.Contains(name, "Coffee") ||
		strings.Contains(name, "Milk") ||
		strings.Contains(name, "Bread")
}

// DefaultCatalog returns the demo store's known SKUs.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Ingest(
		CatalogEntry{SKU: "BEV-001", Name: "Premium Coffee Beans", Category: "Beverages", UnitPrice: 15, HighVelocity: true},
		CatalogEntry{SKU: "BEV-003", Name: "Orange Juice", Category: "Beverages", UnitPrice: 6, HighVelocity: false},
		CatalogEntry{SKU: "BEV-004", Name: "Energy Drinks", Category: "Beverages", UnitPrice: 3, HighVelocity: false},
		CatalogEntry{SKU: "DAI-002", Name: "Organic Milk", Category: "Dairy", UnitPrice: 6, HighVelocity: true},
		CatalogEntry{SKU: "BAK-001", Name: "Whole Wheat Bread", Category: "Bakery", UnitPrice: 4, HighVelocity: true},
		CatalogEntry{SKU: "SNK-002", Name: "Potato Chips", Category: "Snacks", UnitPrice: 4, HighVelocity: false},
		CatalogEntry{SKU: "SNK-005", Name: "Chocolate Bars", Category: "Snacks", UnitPrice: 4, HighVelocity: false},
	)
	return c
}

// DefaultNearbyStores is the static reference list of supply
// alternatives used when a product has no backroom stock.
func DefaultNearbyStores() []models.NearbyStore {
	return []models.NearbyStore{
		{
			ID:                    "store-002",
			Name:                  "Metro Fresh Westfield",
			Distance:              2.3,
			StockLevel:            24,
			EstimatedTransferTime: 2,
			Type:                  models.SupplyTypeStore,
		},
		{
			ID:                    "store-003",
			Name:                  "Metro Fresh Mall Plaza",
			Distance:              4.1,
			StockLevel:            18,
			EstimatedTransferTime: 3,
			Type:                  models.SupplyTypeStore,
		},
		{
			ID:                    "dc-001",
			Name:                  "Metro Distribution Center",
			Distance:              12.5,
			StockLevel:            240,
			EstimatedTransferTime: 24,
			Type:                  models.SupplyTypeDC,
		},
		{
			ID:                    "store-004",
			Name:                  "Metro Fresh Express",
			Distance:              6.8,
			StockLevel:            15,
			EstimatedTransferTime: 4,
			Type:                  models.SupplyTypeStore,
		},
	}
}

// NearestStore picks the supply source with the smallest distance.
func NearestStore(stores []models.NearbyStore) (models.NearbyStore, bool) {
	if len(stores) == 0 {
		return models.NearbyStore{}, false
	}
	nearest := stores[0]
	for _, s := range stores[1:] {
		if s.Distance < nearest.Distance {
			nearest = s
		}
	}
	return nearest, true
}
