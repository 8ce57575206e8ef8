package shelf

import (
	"errors"
	"sort"
	"sync"
	"time"

	"shelfmind_backend/models"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrSessionNotFound   = errors.New("image session not found")
	ErrInvalidTransition = errors.New("invalid task status transition")
)

// SessionView is an image session with its derived status attached.
// Status is recomputed from the session's current tasks on every read;
// it is never stored.
type SessionView struct {
	models.ImageSession
	Status string `json:"status"`
}

// TaskFilter narrows task queries. Zero values match everything.
type TaskFilter struct {
	SessionID string
	Status    string
	Priority  string
}

// Workspace holds one store's scan sessions and tasks. All state is
// in-memory and lost on restart. Handlers run concurrently, so every
// entry point takes the lock.
type Workspace struct {
	mu       sync.RWMutex
	sessions map[string]*models.ImageSession
	tasks    map[string]*models.Task
}

func NewWorkspace() *Workspace {
	return &Workspace{
		sessions: make(map[string]*models.ImageSession),
		tasks:    make(map[string]*models.Task),
	}
}

// IngestScan records a scan as an image session together with the
// tasks generated from it, atomically.
func (w *Workspace) IngestScan(scan models.ShelfScan, tasks []models.Task) (SessionView, []models.Task) {
	gaps := 0
	for _, d := range scan.DetectedProducts {
		if d.GapDetected {
			gaps++
		}
	}

	session := &models.ImageSession{
		ID:               scan.ID,
		ImageURL:         scan.ImageURL,
		Timestamp:        scan.Timestamp,
		Aisle:            scan.Aisle,
		Shelf:            scan.Shelf,
		DetectedProducts: len(scan.DetectedProducts),
		GapsFound:        gaps,
		ProcessingTime:   scan.ProcessingTime,
		ScanData:         scan,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.sessions[session.ID] = session
	for i := range tasks {
		t := tasks[i]
		w.tasks[t.ID] = &t
	}

	return SessionView{ImageSession: *session, Status: w.sessionStatusLocked(session.ID)}, tasks
}

// sessionStatusLocked derives a session's status from its current
// tasks: completed iff it owns at least one task and all of them are
// completed. A session with zero tasks is active, never vacuously
// completed. Caller must hold the lock.
func (w *Workspace) sessionStatusLocked(sessionID string) string {
	owned := 0
	for _, t := range w.tasks {
		if t.ImageSessionID != sessionID {
			continue
		}
		owned++
		if t.Status != models.TaskStatusCompleted {
			return models.SessionStatusActive
		}
	}
	if owned == 0 {
		return models.SessionStatusActive
	}
	return models.SessionStatusCompleted
}

// SessionStatus derives the status of one session.
func (w *Workspace) SessionStatus(sessionID string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if _, ok := w.sessions[sessionID]; !ok {
		return "", ErrSessionNotFound
	}
	return w.sessionStatusLocked(sessionID), nil
}

// Session returns one session with its derived status.
func (w *Workspace) Session(sessionID string) (SessionView, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.sessions[sessionID]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	return SessionView{ImageSession: *s, Status: w.sessionStatusLocked(sessionID)}, nil
}

// Sessions lists sessions newest first, optionally filtered by derived
// status ("active" or "completed").
func (w *Workspace) Sessions(status string) []SessionView {
	w.mu.RLock()
	defer w.mu.RUnlock()

	views := make([]SessionView, 0, len(w.sessions))
	for id, s := range w.sessions {
		v := SessionView{ImageSession: *s, Status: w.sessionStatusLocked(id)}
		if status != "" && v.Status != status {
			continue
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})
	return views
}

// Task returns one task by ID.
func (w *Workspace) Task(taskID string) (models.Task, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.tasks[taskID]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// Tasks lists tasks matching the filter, highest urgency first.
func (w *Workspace) Tasks(filter TaskFilter) []models.Task {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]models.Task, 0, len(w.tasks))
	for _, t := range w.tasks {
		if filter.SessionID != "" && t.ImageSessionID != filter.SessionID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UrgencyScore != out[j].UrgencyScore {
			return out[i].UrgencyScore > out[j].UrgencyScore
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// UpdateTaskStatus applies a validated status transition and stamps
// UpdatedAt. It returns the updated task and the owning session's
// freshly derived status.
func (w *Workspace) UpdateTaskStatus(taskID, status string) (models.Task, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tasks[taskID]
	if !ok {
		return models.Task{}, "", ErrTaskNotFound
	}
	if !models.CanTransition(t.Status, status) {
		return models.Task{}, "", ErrInvalidTransition
	}

	t.Status = status
	t.UpdatedAt = time.Now()

	return *t, w.sessionStatusLocked(t.ImageSessionID), nil
}

// UpdateTaskPriority changes a task's priority. Allowed in any status.
func (w *Workspace) UpdateTaskPriority(taskID, priority string) (models.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tasks[taskID]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}

	t.Priority = priority
	t.UpdatedAt = time.Now()

	return *t, nil
}

// DeleteSession removes a session and cascades to every task that
// references it, returning the number of tasks removed. No orphaned
// tasks remain.
func (w *Workspace) DeleteSession(sessionID string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.sessions[sessionID]; !ok {
		return 0, ErrSessionNotFound
	}
	delete(w.sessions, sessionID)

	removed := 0
	for id, t := range w.tasks {
		if t.ImageSessionID == sessionID {
			delete(w.tasks, id)
			removed++
		}
	}
	return removed, nil
}

// TaskCounts reports pending (any non-completed) and completed task
// totals for the metrics endpoint.
func (w *Workspace) TaskCounts() (pending, completed int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, t := range w.tasks {
		if t.Status == models.TaskStatusCompleted {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

// CriticalCount reports tasks whose product is critical or out.
func (w *Workspace) CriticalCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, t := range w.tasks {
		if t.Status == models.TaskStatusCompleted {
			continue
		}
		if t.Product.Status == models.ProductStatusCritical || t.Product.Status == models.ProductStatusOut {
			n++
		}
	}
	return n
}

// Registry hands out one workspace per store, created on demand.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewRegistry() *Registry {
	return &Registry{workspaces: make(map[string]*Workspace)}
}

func (r *Registry) Workspace(storeID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[storeID]
	if !ok {
		ws = NewWorkspace()
		r.workspaces[storeID] = ws
	}
	return ws
}
