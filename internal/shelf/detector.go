package shelf

import "shelfmind_backend/models"

// ScanStage is one step of the simulated vision pipeline. The stages
// are cosmetic pacing; no state changes until the final stage has run.
type ScanStage struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// ScanStages mirrors the staged progress of the demo scanner.
var ScanStages = []ScanStage{
	{Progress: 25, Message: "Analyzing..."},
	{Progress: 50, Message: "Detecting..."},
	{Progress: 75, Message: "Counting..."},
	{Progress: 100, Message: "Complete!"},
}

// SimulatedProcessingTime is the reported duration of a simulated
// scan, in seconds.
const SimulatedProcessingTime = 2.8

// SimulatedDetections returns the demo detection set used when a scan
// request carries no detections of its own: there is no real computer
// vision behind this service.
func SimulatedDetections() []models.DetectedProduct {
	return []models.DetectedProduct{
		{
			SKU:         "BEV-001",
			Name:        "Premium Coffee Beans",
			Count:       3,
			Confidence:  0.92,
			GapDetected: true,
			Position:    models.BoundingBox{X: 10, Y: 20, Width: 100, Height: 80},
		},
		{
			SKU:         "DAI-002",
			Name:        "Organic Milk",
			Count:       1,
			Confidence:  0.88,
			GapDetected: true,
			Position:    models.BoundingBox{X: 120, Y: 20, Width: 90, Height: 85},
		},
		{
			SKU:         "SNK-005",
			Name:        "Chocolate Bars",
			Count:       8,
			Confidence:  0.95,
			GapDetected: false,
			Position:    models.BoundingBox{X: 220, Y: 25, Width: 110, Height: 75},
		},
	}
}
