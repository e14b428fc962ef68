package http

import (
	"net/http"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type taskRequest struct {
	EntityID  int64  `json:"entity_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

type taskResponse struct {
	ID        int64  `json:"id"`
	EntityID  int64  `json:"entity_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Priority  string `json:"priority,omitempty"`
	Completed bool   `json:"completed"`
}

func toTaskResponse(task core.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		EntityID:  task.EntityID,
		Title:     task.Title,
		StartDate: task.StartDate.String(),
		EndDate:   task.EndDate.String(),
		Priority:  task.Priority,
		Completed: task.Completed,
	}
}

func (req taskRequest) toCore() (core.Task, error) {
	startDate, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return core.Task{}, err
	}

	task := core.Task{
		EntityID:  req.EntityID,
		Title:     req.Title,
		StartDate: startDate,
		Priority:  req.Priority,
	}
	if req.EndDate != "" {
		endDate, err := parseDateField("end_date", req.EndDate)
		if err != nil {
			return core.Task{}, err
		}
		task.EndDate = endDate
	}
	return task, nil
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	task, err := req.toCore()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := s.deps.Tasks.Create(r.Context(), task)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	task.ID = id
	if task.EndDate.IsZero() {
		task.EndDate = task.StartDate
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// handleListTasks lists tasks overlapping a date window. Without start and
// end parameters the window is the current month.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	entityID, err := parseEntityID(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	today := core.DateOf(time.Now())
	start, end := today.MonthStart(), today.MonthEnd()
	if raw := query.Get("start"); raw != "" {
		if start, err = parseDateField("start", raw); err != nil {
			writeError(r.Context(), w, err)
			return
		}
	}
	if raw := query.Get("end"); raw != "" {
		if end, err = parseDateField("end", raw); err != nil {
			writeError(r.Context(), w, err)
			return
		}
	}

	tasks, err := s.deps.Tasks.ListWindow(r.Context(), entityID, start, end)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, toTaskResponse(task))
	}
	writeJSON(w, http.StatusOK, resp)
}

type completeTaskRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	req := completeTaskRequest{Completed: true}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
	}

	if err := s.deps.Tasks.SetCompleted(r.Context(), id, req.Completed); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := s.deps.Tasks.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
