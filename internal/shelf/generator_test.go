package shelf

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmind_backend/models"
)

// constSource makes every random draw deterministic: Float64 yields
// v/2^63 and Intn stays within range. v=0 drives the backroom roll to
// the restock branch; v=3<<61 (Float64 = 0.75) drives the transfer
// branch.
type constSource struct{ v int64 }

func (s constSource) Int63() int64 { return s.v }
func (s constSource) Seed(int64)   {}

func restockGenerator() *Generator {
	return NewGenerator(rand.New(constSource{0}), DefaultCatalog(), DefaultNearbyStores())
}

func transferGenerator() *Generator {
	return NewGenerator(rand.New(constSource{3 << 61}), DefaultCatalog(), DefaultNearbyStores())
}

func seededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), DefaultCatalog(), DefaultNearbyStores())
}

func testScan(detections ...models.DetectedProduct) models.ShelfScan {
	return models.ShelfScan{
		ID:               "scan-test",
		ImageURL:         "/placeholder-shelf.jpg",
		Aisle:            "A3",
		Shelf:            "Middle",
		DetectedProducts: detections,
		Timestamp:        time.Now(),
		ScannedBy:        "associate-demo001",
		ProcessingTime:   SimulatedProcessingTime,
	}
}

func detection(sku, name string, count int, gap bool) models.DetectedProduct {
	return models.DetectedProduct{
		SKU:         sku,
		Name:        name,
		Count:       count,
		Confidence:  0.9,
		GapDetected: gap,
		Position:    models.BoundingBox{X: 10, Y: 20, Width: 100, Height: 80},
	}
}

func TestEnrichProductZeroCount(t *testing.T) {
	g := seededGenerator(1)
	scan := testScan()

	for _, gap := range []bool{true, false} {
		p := g.EnrichProduct(scan, detection("BAK-001", "Whole Wheat Bread", 0, gap), 0)
		assert.Equal(t, models.ProductStatusOut, p.Status, "count=0 must be out (gap=%v)", gap)
		assert.Zero(t, p.TimeToEmpty)
	}
}

func TestEnrichProductStatusThresholds(t *testing.T) {
	g := seededGenerator(2)
	scan := testScan()

	cases := []struct {
		count  int
		gap    bool
		status string
	}{
		{0, true, models.ProductStatusOut},
		{1, false, models.ProductStatusCritical},
		{2, true, models.ProductStatusCritical},
		{3, true, models.ProductStatusLow},
		{3, false, models.ProductStatusHealthy},
		{12, false, models.ProductStatusHealthy},
	}
	for _, tc := range cases {
		p := g.EnrichProduct(scan, detection("GEN-001", "Canned Soup", tc.count, tc.gap), 0)
		assert.Equal(t, tc.status, p.Status, "count=%d gap=%v", tc.count, tc.gap)
	}
}

func TestEnrichProductRanges(t *testing.T) {
	g := seededGenerator(3)
	scan := testScan()

	for i := 0; i < 200; i++ {
		high := g.EnrichProduct(scan, detection("BEV-001", "Premium Coffee Beans", 3, true), i)
		assert.GreaterOrEqual(t, high.MaxCapacity, 40)
		assert.Less(t, high.MaxCapacity, 60)
		assert.GreaterOrEqual(t, high.SalesVelocity, 8.0)
		assert.Less(t, high.SalesVelocity, 16.0)
		assert.InDelta(t, 15*high.SalesVelocity, high.RevenueImpact, 1e-9)

		low := g.EnrichProduct(scan, detection("SNK-009", "Trail Mix", 5, false), i)
		assert.GreaterOrEqual(t, low.MaxCapacity, 25)
		assert.Less(t, low.MaxCapacity, 40)
		assert.GreaterOrEqual(t, low.SalesVelocity, 3.0)
		assert.Less(t, low.SalesVelocity, 8.0)
		assert.InDelta(t, 3*low.SalesVelocity, low.RevenueImpact, 1e-9)
	}
}

func TestEnrichProductDeterministicUnderSeed(t *testing.T) {
	scan := testScan()
	d := detection("DAI-002", "Organic Milk", 2, true)

	a := seededGenerator(42).EnrichProduct(scan, d, 0)
	b := seededGenerator(42).EnrichProduct(scan, d, 0)
	assert.Equal(t, a, b)
}

func TestEnrichProductBackroomLocationFormat(t *testing.T) {
	g := restockGenerator()
	scan := testScan()

	p := g.EnrichProduct(scan, detection("BEV-001", "Premium Coffee Beans", 3, true), 1)
	assert.Equal(t, "BR-A3-M2", p.BackroomLocation)
}

func TestScoreUrgencyOvercapacityStaysFinite(t *testing.T) {
	// maxCapacity is rolled independently of the reported count, so
	// the stockout component can go negative. The score must still be
	// a defined, finite number.
	p := models.Product{
		CurrentStock:  80,
		MaxCapacity:   30,
		SalesVelocity: 5,
		RevenueImpact: 25,
	}
	score := ScoreUrgency(p)
	assert.Less(t, score, 0)
}

func TestScoreUrgencyComponents(t *testing.T) {
	// Empty shelf at full weights: 50 + 30 + 20.
	p := models.Product{
		CurrentStock:  0,
		MaxCapacity:   48,
		SalesVelocity: 15,
		RevenueImpact: 100,
	}
	assert.Equal(t, 100, ScoreUrgency(p))

	// Revenue component is capped at its weight.
	p.RevenueImpact = 10000
	assert.Equal(t, 100, ScoreUrgency(p))
}

func TestPriorityBoundaries(t *testing.T) {
	assert.Equal(t, models.PriorityLow, PriorityFor(models.ProductStatusLow, 49))
	assert.Equal(t, models.PriorityMedium, PriorityFor(models.ProductStatusLow, 50))
	assert.Equal(t, models.PriorityMedium, PriorityFor(models.ProductStatusCritical, 80))
	assert.Equal(t, models.PriorityHigh, PriorityFor(models.ProductStatusCritical, 81))

	// Out of stock always forces high regardless of score.
	assert.Equal(t, models.PriorityHigh, PriorityFor(models.ProductStatusOut, 0))
	assert.Equal(t, models.PriorityHigh, PriorityFor(models.ProductStatusOut, 50))
}

func TestGenerateTasksInclusionRule(t *testing.T) {
	g := seededGenerator(7)
	scan := testScan(
		detection("BEV-001", "Premium Coffee Beans", 10, true), // gap: included
		detection("SNK-005", "Chocolate Bars", 8, false),       // stocked, no gap: excluded
		detection("SNK-002", "Potato Chips", 9, false),         // stocked, no gap: excluded
	)

	tasks := g.GenerateTasks(scan)
	require.Len(t, tasks, 1)
	assert.Equal(t, "BEV-001", tasks[0].Product.SKU)
}

func TestGenerateTasksLowCountWithoutGap(t *testing.T) {
	g := seededGenerator(8)
	scan := testScan(detection("SNK-005", "Chocolate Bars", 7, false))

	tasks := g.GenerateTasks(scan)
	require.Len(t, tasks, 1)
}

func TestGenerateTasksRestockBranch(t *testing.T) {
	g := restockGenerator()
	scan := testScan(detection("BEV-001", "Premium Coffee Beans", 3, true))

	tasks := g.GenerateTasks(scan)
	require.Len(t, tasks, 1)
	task := tasks[0]

	assert.Equal(t, models.TaskTypeRestock, task.Type)
	assert.Equal(t, "BR-A3-M1", task.BackroomLocation)
	assert.Empty(t, task.TransferStore)
	assert.GreaterOrEqual(t, task.EstimatedTime, 5)
	assert.Less(t, task.EstimatedTime, 13)
	assert.Contains(t, task.Instructions, "Restock Premium Coffee Beans from backroom location BR-A3-M1")
	assert.Contains(t, task.Instructions, fmt.Sprintf("$%.2f/hour", task.Product.RevenueImpact))

	assert.Equal(t, "Beverages", task.Product.Category)
	assert.Equal(t, models.ProductStatusLow, task.Product.Status)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, "scan-test", task.ImageSessionID)
}

func TestGenerateTasksTransferBranch(t *testing.T) {
	g := transferGenerator()
	scan := testScan(detection("DAI-002", "Organic Milk", 1, true))

	tasks := g.GenerateTasks(scan)
	require.Len(t, tasks, 1)
	task := tasks[0]

	assert.Equal(t, models.TaskTypeTransfer, task.Type)
	assert.Empty(t, task.BackroomLocation)
	assert.Equal(t, "Metro Fresh Westfield", task.TransferStore, "transfer sources from the nearest store")
	assert.GreaterOrEqual(t, task.EstimatedTime, 18)
	assert.Less(t, task.EstimatedTime, 33)
	assert.True(t, strings.HasPrefix(task.Instructions, "Transfer Organic Milk from nearby store"))
}

func TestGenerateTasksUrgencySnapshot(t *testing.T) {
	g := seededGenerator(11)
	scan := testScan(detection("BAK-001", "Whole Wheat Bread", 0, true))

	tasks := g.GenerateTasks(scan)
	require.Len(t, tasks, 1)
	task := tasks[0]

	// The stored score is the creation-time snapshot of the pure
	// scoring function.
	assert.Equal(t, ScoreUrgency(task.Product), task.UrgencyScore)
	assert.Equal(t, models.PriorityHigh, task.Priority, "out of stock is always high priority")
}

func TestNearestStore(t *testing.T) {
	nearest, ok := NearestStore(DefaultNearbyStores())
	require.True(t, ok)
	assert.Equal(t, "store-002", nearest.ID)

	_, ok = NearestStore(nil)
	assert.False(t, ok)
}
