package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelfmind_backend/internal/shelf"
	"shelfmind_backend/internal/ws"
	"shelfmind_backend/models"
)

type SessionHandler struct {
	Registry *shelf.Registry
	Hub      *ws.Hub
}

func NewSessionHandler(registry *shelf.Registry, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{Registry: registry, Hub: hub}
}

// GetSessions - GET /api/sessions
// Lists image sessions newest first. Optional ?status=active|completed
// filters on the derived status.
func (h *SessionHandler) GetSessions(c *fiber.Ctx) error {
	storeID, _ := c.Locals("store_id").(string)

	status := c.Query("status")
	if status != "" && status != models.SessionStatusActive && status != models.SessionStatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Unknown session status: " + status})
	}

	sessions := h.Registry.Workspace(storeID).Sessions(status)
	return c.JSON(fiber.Map{"data": sessions})
}

// GetSession - GET /api/sessions/:id
// One session with the tasks it generated.
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	storeID, _ := c.Locals("store_id").(string)
	workspace := h.Registry.Workspace(storeID)

	session, err := workspace.Session(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Image session not found"})
	}

	tasks := workspace.Tasks(shelf.TaskFilter{SessionID: session.ID})
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session": session,
			"tasks":   tasks,
		},
	})
}

// DeleteSession - DELETE /api/sessions/:id
// Irreversible; deletion cascades to every task the session generated.
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	storeID, _ := c.Locals("store_id").(string)
	sessionID := c.Params("id")

	removed, err := h.Registry.Workspace(storeID).DeleteSession(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Image session not found"})
	}

	h.Hub.PublishEvent(storeID, ws.Event{Type: "session_deleted", Data: fiber.Map{
		"id":            sessionID,
		"deleted_tasks": removed,
	}})

	return c.JSON(fiber.Map{
		"message":       "Image session deleted",
		"deleted_tasks": removed,
	})
}
