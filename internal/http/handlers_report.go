package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

type cashFlowPointDTO struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"`
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
}

type categorySliceDTO struct {
	Name       string `json:"name"`
	ValueCents int64  `json:"value_cents"`
	Color      string `json:"color,omitempty"`
}

type categoryStatusDTO struct {
	Name         string `json:"name"`
	PaidCents    int64  `json:"paid_cents"`
	PendingCents int64  `json:"pending_cents"`
	OverdueCents int64  `json:"overdue_cents"`
	TotalCents   int64  `json:"total_cents"`
}

type occupancyPointDTO struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	TotalDays    int `json:"total_days"`
	OccupiedDays int `json:"occupied_days"`
	Percent      int `json:"percent"`
}

type financialSummaryDTO struct {
	Count           int              `json:"count"`
	TotalCents      int64            `json:"total_cents"`
	AverageCents    int64            `json:"average_cents"`
	BySourceCents   map[string]int64 `json:"by_source_cents"`
	TaxesTotalCents int64            `json:"taxes_total_cents"`
}

type guestStatsDTO struct {
	RecurringGuestCount int     `json:"recurring_guest_count"`
	AvgGuests           float64 `json:"avg_guests"`
	AvgStayDays         float64 `json:"avg_stay_days"`
}

type sourceStatsDTO struct {
	Count          int   `json:"count"`
	RevenueCents   int64 `json:"revenue_cents"`
	AvgTicketCents int64 `json:"avg_ticket_cents"`
}

type forecastDTO struct {
	ConfirmedCount        int                 `json:"confirmed_count"`
	ConfirmedRevenueCents int64               `json:"confirmed_revenue_cents"`
	LowOccupancyMonths    []occupancyPointDTO `json:"low_occupancy_months"`
}

type reportResponse struct {
	Start                string              `json:"start,omitempty"`
	End                  string              `json:"end,omitempty"`
	CashFlow             []cashFlowPointDTO  `json:"cash_flow"`
	CategoryDistribution []categorySliceDTO  `json:"category_distribution"`
	CategoryByStatus     []categoryStatusDTO `json:"category_by_status"`
	Occupancy            []occupancyPointDTO `json:"occupancy"`
	FinancialSummary     financialSummaryDTO `json:"financial_summary"`
	GuestStats           guestStatsDTO       `json:"guest_stats"`
	SourcePerformance    map[string]sourceStatsDTO `json:"source_performance"`
	Forecast             forecastDTO         `json:"forecast"`
}

func toOccupancyDTOs(points []report.OccupancyPoint) []occupancyPointDTO {
	out := make([]occupancyPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, occupancyPointDTO{
			Year:         p.Year,
			Month:        p.Month,
			TotalDays:    p.TotalDays,
			OccupiedDays: p.OccupiedDays,
			Percent:      p.Percent,
		})
	}
	return out
}

func toReportResponse(rep *report.Report) reportResponse {
	resp := reportResponse{
		CashFlow:             make([]cashFlowPointDTO, 0, len(rep.CashFlow)),
		CategoryDistribution: make([]categorySliceDTO, 0, len(rep.CategoryDistribution)),
		CategoryByStatus:     make([]categoryStatusDTO, 0, len(rep.CategoryByStatus)),
		Occupancy:            toOccupancyDTOs(rep.Occupancy),
		SourcePerformance:    make(map[string]sourceStatsDTO, len(rep.SourcePerformance)),
	}
	if !rep.Range.Start.IsZero() {
		resp.Start = rep.Range.Start.String()
	}
	if !rep.Range.End.IsZero() {
		resp.End = rep.Range.End.String()
	}

	for _, p := range rep.CashFlow {
		resp.CashFlow = append(resp.CashFlow, cashFlowPointDTO{
			Year:         p.Year,
			Month:        p.Month,
			IncomeCents:  p.Income.Cents,
			ExpenseCents: p.Expense.Cents,
		})
	}
	for _, slice := range rep.CategoryDistribution {
		resp.CategoryDistribution = append(resp.CategoryDistribution, categorySliceDTO{
			Name:       slice.Name,
			ValueCents: slice.Value.Cents,
			Color:      slice.Color,
		})
	}
	for _, cs := range rep.CategoryByStatus {
		resp.CategoryByStatus = append(resp.CategoryByStatus, categoryStatusDTO{
			Name:         cs.Name,
			PaidCents:    cs.Paid.Cents,
			PendingCents: cs.Pending.Cents,
			OverdueCents: cs.Overdue.Cents,
			TotalCents:   cs.Total.Cents,
		})
	}

	resp.FinancialSummary = financialSummaryDTO{
		Count:           rep.FinancialSummary.Count,
		TotalCents:      rep.FinancialSummary.Total.Cents,
		AverageCents:    rep.FinancialSummary.Average.Cents,
		BySourceCents:   make(map[string]int64, len(rep.FinancialSummary.BySource)),
		TaxesTotalCents: rep.FinancialSummary.TaxesTotal.Cents,
	}
	for source, amount := range rep.FinancialSummary.BySource {
		resp.FinancialSummary.BySourceCents[string(source)] = amount.Cents
	}

	resp.GuestStats = guestStatsDTO{
		RecurringGuestCount: rep.GuestStats.RecurringGuestCount,
		AvgGuests:           rep.GuestStats.AvgGuests,
		AvgStayDays:         rep.GuestStats.AvgStayDays,
	}
	for source, stats := range rep.SourcePerformance {
		resp.SourcePerformance[string(source)] = sourceStatsDTO{
			Count:          stats.Count,
			RevenueCents:   stats.Revenue.Cents,
			AvgTicketCents: stats.AvgTicket.Cents,
		}
	}
	resp.Forecast = forecastDTO{
		ConfirmedCount:        rep.Forecast.ConfirmedCount,
		ConfirmedRevenueCents: rep.Forecast.ConfirmedRevenue.Cents,
		LowOccupancyMonths:    toOccupancyDTOs(rep.Forecast.LowOccupancyMonths),
	}
	return resp
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	entityID, err := parseEntityID(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	q, err := parseReportQuery(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rep, err := s.deps.Reports.Build(r.Context(), entityID, q, time.Now())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

type exportJobResponse struct {
	JobID      string `json:"job_id"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	entityID, err := parseEntityID(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	q, err := parseReportQuery(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	jobID, err := s.deps.Exports.StartExport(entityID, q)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, exportJobResponse{JobID: jobID})
}

func (s *Server) handleExportStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	job, ok := s.deps.Exports.Job(jobID)
	if !ok {
		writeError(r.Context(), w, storage.ErrNotFound)
		return
	}

	resp := exportJobResponse{
		JobID:  job.ID,
		Status: string(job.Status),
		Error:  job.Error,
	}
	if !job.FinishedAt.IsZero() {
		resp.FinishedAt = job.FinishedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}
