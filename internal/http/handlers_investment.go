package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type investmentRequest struct {
	EntityID  int64  `json:"entity_id"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name,omitempty"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type investmentResponse struct {
	ID          int64  `json:"id"`
	EntityID    int64  `json:"entity_id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name,omitempty"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalValue  string `json:"total_value"`
	RefreshedAt string `json:"refreshed_at,omitempty"`
}

func toInvestmentResponse(inv core.Investment) investmentResponse {
	resp := investmentResponse{
		ID:         inv.ID,
		EntityID:   inv.EntityID,
		Symbol:     inv.Symbol,
		Name:       inv.Name,
		Quantity:   inv.Quantity.String(),
		UnitPrice:  inv.UnitPrice.String(),
		TotalValue: inv.Quantity.Mul(inv.UnitPrice).String(),
	}
	if !inv.RefreshedAt.IsZero() {
		resp.RefreshedAt = inv.RefreshedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

func parseDecimalField(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return d, nil
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	quantity, err := parseDecimalField("quantity", req.Quantity)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	unitPrice, err := parseDecimalField("unit_price", req.UnitPrice)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	inv := core.Investment{
		EntityID:  req.EntityID,
		Symbol:    req.Symbol,
		Name:      req.Name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	id, err := s.deps.Investments.Create(r.Context(), inv)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	inv.ID = id
	inv.Symbol = strings.ToUpper(strings.TrimSpace(inv.Symbol))
	writeJSON(w, http.StatusCreated, toInvestmentResponse(inv))
}

func (s *Server) handleRefreshInvestments(w http.ResponseWriter, r *http.Request) {
	updated, err := s.deps.Investments.RefreshPrices(r.Context(), time.Now())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	entityID, err := parseEntityID(r.URL.Query())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	investments, err := s.deps.Investments.List(r.Context(), entityID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := make([]investmentResponse, 0, len(investments))
	for _, inv := range investments {
		resp = append(resp, toInvestmentResponse(inv))
	}
	writeJSON(w, http.StatusOK, resp)
}
