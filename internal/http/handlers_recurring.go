package http

import (
	"net/http"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type recurringTaskRequest struct {
	EntityID  int64  `json:"entity_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Every     string `json:"every"`
	Priority  string `json:"priority,omitempty"`
}

type recurringTransactionRequest struct {
	EntityID    int64  `json:"entity_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Every       string `json:"every"`
	CategoryID  int64  `json:"category_id,omitempty"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (req recurringTaskRequest) toCore() (core.RecurringTask, error) {
	startDate, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return core.RecurringTask{}, err
	}

	rt := core.RecurringTask{
		EntityID:  req.EntityID,
		Title:     req.Title,
		StartDate: startDate,
		Every:     core.RepetitionType(req.Every),
		Priority:  req.Priority,
	}
	if req.EndDate != "" {
		endDate, err := parseDateField("end_date", req.EndDate)
		if err != nil {
			return core.RecurringTask{}, err
		}
		rt.EndDate = endDate
	}
	return rt, nil
}

func (req recurringTransactionRequest) toCore() (core.RecurringTransaction, error) {
	amount, err := parseAmountField("amount", req.Amount)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	startDate, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return core.RecurringTransaction{}, err
	}

	rt := core.RecurringTransaction{
		EntityID:    req.EntityID,
		Type:        core.TransactionType(req.Type),
		Description: req.Description,
		Amount:      amount,
		StartDate:   startDate,
		Every:       core.RepetitionType(req.Every),
		CategoryID:  req.CategoryID,
	}
	if req.EndDate != "" {
		endDate, err := parseDateField("end_date", req.EndDate)
		if err != nil {
			return core.RecurringTransaction{}, err
		}
		rt.EndDate = endDate
	}
	return rt, nil
}

func (s *Server) handleCreateRecurringTask(w http.ResponseWriter, r *http.Request) {
	var req recurringTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rt, err := req.toCore()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := s.deps.Recurring.CreateTask(r.Context(), rt)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleCreateRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	var req recurringTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rt, err := req.toCore()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := s.deps.Recurring.CreateTransaction(r.Context(), rt)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}
