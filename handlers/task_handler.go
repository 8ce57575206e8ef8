package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shelfmind_backend/internal/shelf"
	"shelfmind_backend/internal/ws"
	"shelfmind_backend/models"
)

type TaskHandler struct {
	Registry *shelf.Registry
	Hub      *ws.Hub
}

func NewTaskHandler(registry *shelf.Registry, hub *ws.Hub) *TaskHandler {
	return &TaskHandler{Registry: registry, Hub: hub}
}

// UpdateTaskStatusRequest defines the payload for a status transition
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTaskPriorityRequest defines the payload for a priority change
type UpdateTaskPriorityRequest struct {
	Priority string `json:"priority"`
}

// GetTasks - GET /api/tasks
// Optional filters: status, priority, session_id.
func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	storeID, _ := c.Locals("store_id").(string)

	filter := shelf.TaskFilter{
		SessionID: c.Query("session_id"),
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
	}
	if filter.Status != "" && !models.ValidTaskStatus(filter.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Unknown task status: " + filter.Status})
	}
	if filter.Priority != "" && !models.ValidTaskPriority(filter.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Unknown task priority: " + filter.Priority})
	}

	tasks := h.Registry.Workspace(storeID).Tasks(filter)
	return c.JSON(fiber.Map{"data": tasks})
}

// GetTask - GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	storeID, _ := c.Locals("store_id").(string)

	task, err := h.Registry.Workspace(storeID).Task(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Task not found"})
	}
	return c.JSON(fiber.Map{"data": task})
}

// UpdateTaskStatus - PATCH /api/tasks/:id/status
// Applies one operator-initiated state machine transition and reports
// the owning session's re-derived status.
func (h *TaskHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	var req UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}
	if !models.ValidTaskStatus(req.Status) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Unknown task status: " + req.Status})
	}

	storeID, _ := c.Locals("store_id").(string)
	workspace := h.Registry.Workspace(storeID)

	task, sessionStatus, err := workspace.UpdateTaskStatus(c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, shelf.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Task not found"})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}

	h.Hub.PublishEvent(storeID, ws.Event{Type: "task_updated", Data: task})
	h.Hub.PublishEvent(storeID, ws.Event{Type: "session_updated", Data: fiber.Map{
		"id":     task.ImageSessionID,
		"status": sessionStatus,
	}})

	return c.JSON(fiber.Map{
		"data":           task,
		"session_status": sessionStatus,
	})
}

// UpdateTaskPriority - PATCH /api/tasks/:id/priority
// Priority is operator-adjustable in any task status.
func (h *TaskHandler) UpdateTaskPriority(c *fiber.Ctx) error {
	var req UpdateTaskPriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}
	if !models.ValidTaskPriority(req.Priority) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Unknown task priority: " + req.Priority})
	}

	storeID, _ := c.Locals("store_id").(string)

	task, err := h.Registry.Workspace(storeID).UpdateTaskPriority(c.Params("id"), req.Priority)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Task not found"})
	}

	h.Hub.PublishEvent(storeID, ws.Event{Type: "task_updated", Data: task})

	return c.JSON(fiber.Map{"data": task})
}
