package http

import (
	"net/http"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type transactionRequest struct {
	EntityID    int64  `json:"entity_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	PaymentDate string `json:"payment_date,omitempty"`
	Status      string `json:"status,omitempty"`
	CategoryID  int64  `json:"category_id,omitempty"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	EntityID    int64  `json:"entity_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	DueDate     string `json:"due_date"`
	PaymentDate string `json:"payment_date,omitempty"`
	Status      string `json:"status"`
	CategoryID  int64  `json:"category_id,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		EntityID:    tx.EntityID,
		Type:        string(tx.Type),
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		DueDate:     tx.DueDate.String(),
		Status:      string(tx.Status),
		CategoryID:  tx.CategoryID,
	}
	if !tx.PaymentDate.IsZero() {
		resp.PaymentDate = tx.PaymentDate.String()
	}
	return resp
}

func (req transactionRequest) toCore() (core.Transaction, error) {
	amount, err := parseAmountField("amount", req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	dueDate, err := parseDateField("due_date", req.DueDate)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		EntityID:    req.EntityID,
		Type:        core.TransactionType(req.Type),
		Description: req.Description,
		Amount:      amount,
		DueDate:     dueDate,
		Status:      core.TransactionStatus(req.Status),
		CategoryID:  req.CategoryID,
	}
	if req.PaymentDate != "" {
		paymentDate, err := parseDateField("payment_date", req.PaymentDate)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.PaymentDate = paymentDate
	}
	return tx, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	tx, err := req.toCore()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := s.deps.Transactions.Create(r.Context(), tx)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	tx.ID = id
	if tx.Status == "" {
		tx.Status = core.StatusPending
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	entityID, err := parseEntityID(r.URL.Query())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	txs, err := s.deps.Transactions.List(r.Context(), entityID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	tx, err := s.deps.Transactions.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*tx))
}

type payRequest struct {
	PaymentDate string `json:"payment_date"`
}

func (s *Server) handlePayTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req payRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	paymentDate, err := parseDateField("payment_date", req.PaymentDate)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := s.deps.Transactions.MarkPaid(r.Context(), id, paymentDate); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := s.deps.Transactions.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
