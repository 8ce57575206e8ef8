package shelf

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"shelfmind_backend/models"
)

// Enrichment tuning. Velocity ranges are units/hour; the urgency
// weights sum to 100 when every component saturates.
const (
	backroomAvailability = 0.7 // chance a gap can be filled from the backroom
	velocityCeiling      = 15.0

	stockoutWeight = 50.0
	velocityWeight = 30.0
	revenueWeight  = 20.0

	// A detection with this many units or more, and no flagged gap,
	// needs no attention.
	attentionThreshold = 8
)

// Generator derives products and tasks from raw shelf detections. The
// random source is injected so enrichment is reproducible under a
// fixed seed; production wires rand.New(rand.NewSource(time.Now().UnixNano())).
type Generator struct {
	rng     *rand.Rand
	catalog *Catalog
	nearby  []models.NearbyStore
}

func NewGenerator(rng *rand.Rand, catalog *Catalog, nearby []models.NearbyStore) *Generator {
	return &Generator{rng: rng, catalog: catalog, nearby: nearby}
}

// EnrichProduct derives a full product record from one detection plus
// the aisle/shelf context of its scan. index is the detection's
// position among the scan's attention-needing detections and feeds the
// backroom location label. Never fails; counts are taken as reported.
func (g *Generator) EnrichProduct(scan models.ShelfScan, detected models.DetectedProduct, index int) models.Product {
	entry := g.catalog.Lookup(detected.SKU, detected.Name)

	var maxCapacity int
	var salesVelocity float64
	if entry.HighVelocity {
		maxCapacity = 40 + g.rng.Intn(20)
		salesVelocity = 8 + g.rng.Float64()*8
	} else {
		maxCapacity = 25 + g.rng.Intn(15)
		salesVelocity = 3 + g.rng.Float64()*5
	}

	var backroomLocation string
	if g.rng.Float64() < backroomAvailability {
		shelfInitial := "?"
		if scan.Shelf != "" {
			shelfInitial = scan.Shelf[:1]
		}
		backroomLocation = fmt.Sprintf("BR-%s-%s%d", scan.Aisle, shelfInitial, index+1)
	}

	status := models.ProductStatusHealthy
	switch {
	case detected.Count == 0:
		status = models.ProductStatusOut
	case detected.Count < 3:
		status = models.ProductStatusCritical
	case detected.GapDetected:
		status = models.ProductStatusLow
	}

	trend := models.TrendStable
	if detected.GapDetected {
		trend = models.TrendDown
	}

	timeToEmpty := 0.0
	if detected.Count > 0 {
		timeToEmpty = float64(detected.Count) / salesVelocity
	}

	return models.Product{
		ID:               fmt.Sprintf("%s-prod-%d", scan.ID, index),
		SKU:              detected.SKU,
		Name:             detected.Name,
		Category:         entry.Category,
		Aisle:            scan.Aisle,
		Shelf:            scan.Shelf,
		CurrentStock:     detected.Count,
		MaxCapacity:      maxCapacity,
		LastRestocked:    "2 hours ago",
		Trend:            trend,
		Status:           status,
		SalesVelocity:    salesVelocity,
		TimeToEmpty:      timeToEmpty,
		RevenueImpact:    entry.UnitPrice * salesVelocity,
		BackroomLocation: backroomLocation,
		NearbyStores:     g.nearby,
	}
}

// ScoreUrgency combines stockout proximity, sales velocity and revenue
// impact into one score. Intended range is 0-100 but it is not
// clamped: a count above capacity drives the stockout component
// negative, and the velocity component can exceed its weight past the
// assumed 15 units/hour ceiling. Pure; safe to recompute at any time.
func ScoreUrgency(p models.Product) int {
	stockoutRisk := float64(p.MaxCapacity-p.CurrentStock) / float64(p.MaxCapacity) * stockoutWeight
	velocityImpact := p.SalesVelocity / velocityCeiling * velocityWeight
	revenue := math.Min(p.RevenueImpact/100*revenueWeight, revenueWeight)
	return int(math.Round(stockoutRisk + velocityImpact + revenue))
}

// PriorityFor classifies an urgency score. An out-of-stock product is
// always high priority regardless of score; a score of exactly 50 is
// medium, a score of exactly 80 is medium.
func PriorityFor(status string, score int) string {
	switch {
	case status == models.ProductStatusOut || score > 80:
		return models.PriorityHigh
	case score >= 50:
		return models.PriorityMedium
	}
	return models.PriorityLow
}

// GenerateTasks folds one scan into actionable tasks. A detection
// produces a task only when a gap was flagged or its count falls below
// the attention threshold.
func (g *Generator) GenerateTasks(scan models.ShelfScan) []models.Task {
	now := time.Now()
	tasks := make([]models.Task, 0, len(scan.DetectedProducts))
	index := 0

	for _, detected := range scan.DetectedProducts {
		if !detected.GapDetected && detected.Count >= attentionThreshold {
			continue
		}

		product := g.EnrichProduct(scan, detected, index)
		score := ScoreUrgency(product)

		task := models.Task{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			Product:        product,
			ImageSessionID: scan.ID,
			Priority:       PriorityFor(product.Status, score),
			Status:         models.TaskStatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
			UrgencyScore:   score,
		}

		if product.BackroomLocation != "" {
			task.Type = models.TaskTypeRestock
			task.EstimatedTime = 5 + g.rng.Intn(8)
			task.BackroomLocation = product.BackroomLocation
			task.Instructions = fmt.Sprintf(
				"Restock %s from backroom location %s. Revenue impact: $%.2f/hour.",
				product.Name, product.BackroomLocation, product.RevenueImpact)
		} else {
			task.Type = models.TaskTypeTransfer
			task.EstimatedTime = 18 + g.rng.Intn(15)
			if nearest, ok := NearestStore(g.nearby); ok {
				task.TransferStore = nearest.Name
			}
			task.Instructions = fmt.Sprintf(
				"Transfer %s from nearby store - no backroom stock available. Revenue impact: $%.2f/hour.",
				product.Name, product.RevenueImpact)
		}

		tasks = append(tasks, task)
		index++
	}

	return tasks
}
