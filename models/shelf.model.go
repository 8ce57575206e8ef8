package models

import "time"

// Product status derived from shelf stock levels
const (
	ProductStatusHealthy  = "healthy"
	ProductStatusLow      = "low"
	ProductStatusCritical = "critical"
	ProductStatusOut      = "out"
)

// Stock trend
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Task types
const (
	TaskTypeRestock  = "restock"
	TaskTypeTransfer = "transfer"
	TaskTypeAudit    = "audit"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusNotFound   = "not_found"
	TaskStatusOnHold     = "on_hold"
)

// Session statuses (derived, never stored authoritatively)
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// Supply source types
const (
	SupplyTypeStore = "store"
	SupplyTypeDC    = "distribution-center"
)

// BoundingBox locates a detection in image pixel space.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectedProduct is one shelf-detected product from a scan. Immutable
// once produced.
type DetectedProduct struct {
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	Count       int         `json:"count"`
	Confidence  float64     `json:"confidence"`
	GapDetected bool        `json:"gap_detected"`
	Position    BoundingBox `json:"position"`
}

// ShelfScan is a batch of detections plus the aisle/shelf context it was
// taken in.
type ShelfScan struct {
	ID               string            `json:"id"`
	ImageURL         string            `json:"image_url"`
	Aisle            string            `json:"aisle"`
	Shelf            string            `json:"shelf"`
	DetectedProducts []DetectedProduct `json:"detected_products"`
	Timestamp        time.Time         `json:"timestamp"`
	ScannedBy        string            `json:"scanned_by"`
	ProcessingTime   float64           `json:"processing_time"` // seconds
}

// NearbyStore is an alternative supply source. Static reference data.
type NearbyStore struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Distance              float64 `json:"distance"` // miles
	StockLevel            int     `json:"stock_level"`
	EstimatedTransferTime float64 `json:"estimated_transfer_time"` // hours
	Type                  string  `json:"type"`
}

// Product is the enriched view of a detection: stock position, derived
// velocity/revenue metrics and resupply options.
type Product struct {
	ID               string        `json:"id"`
	SKU              string        `json:"sku"`
	Name             string        `json:"name"`
	Category         string        `json:"category"`
	Aisle            string        `json:"aisle"`
	Shelf            string        `json:"shelf"`
	CurrentStock     int           `json:"current_stock"`
	MaxCapacity      int           `json:"max_capacity"`
	LastRestocked    string        `json:"last_restocked"`
	Trend            string        `json:"trend"`
	Status           string        `json:"status"`
	SalesVelocity    float64       `json:"sales_velocity"` // units per hour
	TimeToEmpty      float64       `json:"time_to_empty"`  // hours until OOS
	RevenueImpact    float64       `json:"revenue_impact"` // $ per hour if OOS
	BackroomLocation string        `json:"backroom_location,omitempty"`
	NearbyStores     []NearbyStore `json:"nearby_stores,omitempty"`
}

// Task is the unit of operator work synthesized from an enriched product.
type Task struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Product          Product   `json:"product"`
	ImageSessionID   string    `json:"image_session_id"`
	Type             string    `json:"type"`
	Priority         string    `json:"priority"`
	Status           string    `json:"status"`
	AssignedTo       string    `json:"assigned_to,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	EstimatedTime    int       `json:"estimated_time"` // minutes
	UrgencyScore     int       `json:"urgency_score"`
	Instructions     string    `json:"instructions,omitempty"`
	BackroomLocation string    `json:"backroom_location,omitempty"`
	TransferStore    string    `json:"transfer_store,omitempty"`
}

// ImageSession records one shelf scan and links the tasks it produced.
// Status is reported through the workspace, derived from the current
// tasks, and is never written here.
type ImageSession struct {
	ID               string    `json:"id"`
	ImageURL         string    `json:"image_url"`
	Timestamp        time.Time `json:"timestamp"`
	Aisle            string    `json:"aisle"`
	Shelf            string    `json:"shelf"`
	DetectedProducts int       `json:"detected_products"`
	GapsFound        int       `json:"gaps_found"`
	ProcessingTime   float64   `json:"processing_time"`
	ScanData         ShelfScan `json:"scan_data"`
}

// StoreMetrics is the manager dashboard analytics snapshot.
type StoreMetrics struct {
	TotalProducts         int     `json:"total_products"`
	HealthyProducts       int     `json:"healthy_products"`
	CriticalAlerts        int     `json:"critical_alerts"`
	AverageStock          int     `json:"average_stock"` // OSA percentage
	TasksCompleted        int     `json:"tasks_completed"`
	TasksPending          int     `json:"tasks_pending"`
	SalesUplift           float64 `json:"sales_uplift"`
	TimeToRestock         int     `json:"time_to_restock"`        // average minutes
	AssociateProductivity float64 `json:"associate_productivity"` // tasks per hour
	CustomerSatisfaction  int     `json:"customer_satisfaction"`  // percentage
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusNotFound, TaskStatusOnHold:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is a known priority.
func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CanTransition reports whether a task may move from one status to
// another. not_found and on_hold are reachable from any non-terminal
// state and can resume to in_progress or close out to completed.
// Completed only allows an operator reopen back to in_progress.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case TaskStatusPending:
		return to == TaskStatusInProgress || to == TaskStatusNotFound || to == TaskStatusOnHold
	case TaskStatusInProgress:
		return to == TaskStatusCompleted || to == TaskStatusNotFound || to == TaskStatusOnHold
	case TaskStatusNotFound, TaskStatusOnHold:
		return to == TaskStatusInProgress || to == TaskStatusCompleted ||
			to == TaskStatusNotFound || to == TaskStatusOnHold
	case TaskStatusCompleted:
		return to == TaskStatusInProgress
	}
	return false
}
