package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shelfmind_backend/internal/shelf"
	"shelfmind_backend/internal/ws"
	"shelfmind_backend/models"
)

type ScanHandler struct {
	Registry *shelf.Registry
	Hub      *ws.Hub

	// Pause between simulated processing stages. Zero in tests.
	StageDelay time.Duration

	// Generator draws from a shared random source; scans are
	// serialized through genMu.
	Gen   *shelf.Generator
	genMu sync.Mutex
}

func NewScanHandler(registry *shelf.Registry, hub *ws.Hub, gen *shelf.Generator, stageDelay time.Duration) *ScanHandler {
	return &ScanHandler{
		Registry:   registry,
		Hub:        hub,
		StageDelay: stageDelay,
		Gen:        gen,
	}
}

// CreateScanRequest is one shelf photograph to analyze. When
// detections are omitted the simulated vision pipeline supplies them.
type CreateScanRequest struct {
	ImageURL   string                   `json:"image_url"`
	Aisle      string                   `json:"aisle"`
	Shelf      string                   `json:"shelf"`
	Detections []models.DetectedProduct `json:"detections"`
}

// CreateScan - POST /api/scans
// Runs the staged processing sequence, then ingests the scan: one new
// image session plus its generated tasks, committed atomically after
// the final stage.
func (h *ScanHandler) CreateScan(c *fiber.Ctx) error {
	var req CreateScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}
	if req.Aisle == "" || req.Shelf == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "aisle and shelf are required"})
	}

	storeID, _ := c.Locals("store_id").(string)
	userID, _ := c.Locals("user_id").(string)

	detections := req.Detections
	if len(detections) == 0 {
		detections = shelf.SimulatedDetections()
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = "/placeholder-shelf.jpg"
	}

	// Cosmetic pacing only; nothing is committed until the stages
	// have run.
	for _, stage := range shelf.ScanStages {
		if h.StageDelay > 0 {
			time.Sleep(h.StageDelay)
		}
		h.Hub.PublishEvent(storeID, ws.Event{Type: "scan_progress", Data: stage})
	}

	scan := models.ShelfScan{
		ID:               "scan-" + uuid.New().String(),
		ImageURL:         imageURL,
		Aisle:            req.Aisle,
		Shelf:            req.Shelf,
		DetectedProducts: detections,
		Timestamp:        time.Now(),
		ScannedBy:        userID,
		ProcessingTime:   shelf.SimulatedProcessingTime,
	}

	h.genMu.Lock()
	tasks := h.Gen.GenerateTasks(scan)
	h.genMu.Unlock()

	session, tasks := h.Registry.Workspace(storeID).IngestScan(scan, tasks)

	h.Hub.PublishEvent(storeID, ws.Event{Type: "scan_complete", Data: fiber.Map{
		"session": session,
		"tasks":   tasks,
	}})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session": session,
		"tasks":   tasks,
	})
}
