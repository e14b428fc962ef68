package http

import (
	"net/http"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type rentalRequest struct {
	EntityID       int64  `json:"entity_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Source         string `json:"source"`
	TotalAmount    string `json:"total_amount"`
	ExtraFeeAmount string `json:"extra_fee_amount,omitempty"`
	GuestName      string `json:"guest_name,omitempty"`
	NumberOfGuests int    `json:"number_of_guests,omitempty"`
}

type rentalResponse struct {
	ID                  int64  `json:"id"`
	EntityID            int64  `json:"entity_id"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Source              string `json:"source"`
	TotalAmountCents    int64  `json:"total_amount_cents"`
	ExtraFeeAmountCents int64  `json:"extra_fee_amount_cents"`
	GuestName           string `json:"guest_name,omitempty"`
	NumberOfGuests      int    `json:"number_of_guests"`
}

func toRentalResponse(rental core.Rental) rentalResponse {
	return rentalResponse{
		ID:                  rental.ID,
		EntityID:            rental.EntityID,
		StartDate:           rental.StartDate.String(),
		EndDate:             rental.EndDate.String(),
		Source:              string(rental.Source),
		TotalAmountCents:    rental.TotalAmount.Cents,
		ExtraFeeAmountCents: rental.ExtraFeeAmount.Cents,
		GuestName:           rental.GuestName,
		NumberOfGuests:      rental.NumberOfGuests,
	}
}

func (req rentalRequest) toCore() (core.Rental, error) {
	startDate, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return core.Rental{}, err
	}
	endDate, err := parseDateField("end_date", req.EndDate)
	if err != nil {
		return core.Rental{}, err
	}
	total, err := parseAmountField("total_amount", req.TotalAmount)
	if err != nil {
		return core.Rental{}, err
	}

	rental := core.Rental{
		EntityID:       req.EntityID,
		StartDate:      startDate,
		EndDate:        endDate,
		Source:         core.RentalSource(req.Source),
		TotalAmount:    total,
		GuestName:      req.GuestName,
		NumberOfGuests: req.NumberOfGuests,
	}
	if req.ExtraFeeAmount != "" {
		fee, err := parseAmountField("extra_fee_amount", req.ExtraFeeAmount)
		if err != nil {
			return core.Rental{}, err
		}
		rental.ExtraFeeAmount = fee
	}
	return rental, nil
}

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rental, err := req.toCore()
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := s.deps.Rentals.Create(r.Context(), rental)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rental.ID = id
	writeJSON(w, http.StatusCreated, toRentalResponse(rental))
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	entityID, err := parseEntityID(r.URL.Query())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rentals, err := s.deps.Rentals.List(r.Context(), entityID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := make([]rentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		resp = append(resp, toRentalResponse(rental))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rental, err := s.deps.Rentals.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalResponse(*rental))
}

func (s *Server) handleDeleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := s.deps.Rentals.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
