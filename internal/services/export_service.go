package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets"
)

// ErrNoExportTarget is returned when no report writer is configured.
var ErrNoExportTarget = errors.New("no export target configured")

// ReportBuilder builds reports. Satisfied by *ReportService.
type ReportBuilder interface {
	Build(ctx context.Context, entityID int64, q report.Query, now time.Time) (*report.Report, error)
}

type ExportJobStatus string

const (
	ExportPending   ExportJobStatus = "pending"
	ExportRunning   ExportJobStatus = "running"
	ExportCompleted ExportJobStatus = "completed"
	ExportFailed    ExportJobStatus = "failed"
)

// ExportJob tracks one report export from request to completion.
type ExportJob struct {
	ID         string
	EntityID   int64
	Status     ExportJobStatus
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// ExportService pushes report cash flow into the spreadsheet as background
// jobs. Jobs live in memory only; a restart forgets them.
type ExportService struct {
	builder ReportBuilder
	writer  sheets.ReportWriter
	timeout time.Duration

	mu   sync.Mutex
	jobs map[string]*ExportJob
}

func NewExportService(builder ReportBuilder, writer sheets.ReportWriter) *ExportService {
	return &ExportService{
		builder: builder,
		writer:  writer,
		timeout: 2 * time.Minute,
		jobs:    make(map[string]*ExportJob),
	}
}

// StartExport queues a report export and returns its job ID. The export runs
// detached from the request context.
func (s *ExportService) StartExport(entityID int64, q report.Query) (string, error) {
	if s.writer == nil {
		return "", ErrNoExportTarget
	}

	job := &ExportJob{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		Status:    ExportPending,
		StartedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.run(job.ID, entityID, q)
	return job.ID, nil
}

// Job returns a snapshot of the job, or false if the ID is unknown.
func (s *ExportService) Job(id string) (ExportJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return ExportJob{}, false
	}
	return *job, true
}

func (s *ExportService) run(jobID string, entityID int64, q report.Query) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.setStatus(jobID, ExportRunning, nil)

	rep, err := s.builder.Build(ctx, entityID, q, time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "Report export build failed", "job_id", jobID, "error", err)
		s.setStatus(jobID, ExportFailed, err)
		return
	}
	if err := s.writer.WriteCashFlow(ctx, rep.CashFlow); err != nil {
		slog.ErrorContext(ctx, "Report export write failed", "job_id", jobID, "error", err)
		s.setStatus(jobID, ExportFailed, err)
		return
	}

	slog.InfoContext(ctx, "Report export completed",
		"job_id", jobID, "entity_id", entityID, "points", len(rep.CashFlow))
	s.setStatus(jobID, ExportCompleted, nil)
}

func (s *ExportService) setStatus(jobID string, status ExportJobStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = status
	if err != nil {
		job.Error = err.Error()
	}
	if status == ExportCompleted || status == ExportFailed {
		job.FinishedAt = time.Now()
	}
}
