package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelfmind_backend/internal/shelf"
	"shelfmind_backend/models"
)

type MetricsHandler struct {
	Registry *shelf.Registry
}

func NewMetricsHandler(registry *shelf.Registry) *MetricsHandler {
	return &MetricsHandler{Registry: registry}
}

// GetMetrics - GET /api/metrics
// Store analytics for the manager dashboard: a static demo baseline
// with the task counters overridden from live workspace state.
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	storeID, _ := c.Locals("store_id").(string)
	workspace := h.Registry.Workspace(storeID)

	pending, completed := workspace.TaskCounts()

	metrics := models.StoreMetrics{
		TotalProducts:         1247,
		HealthyProducts:       1089,
		CriticalAlerts:        workspace.CriticalCount(),
		AverageStock:          87,
		TasksCompleted:        completed,
		TasksPending:          pending,
		SalesUplift:           4.2,
		TimeToRestock:         12,
		AssociateProductivity: 14.8,
		CustomerSatisfaction:  96,
	}

	return c.JSON(fiber.Map{"data": metrics})
}
