package sheets

import (
	"context"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

// Ports for outbound spreadsheet adapters.
type (
	// RecordWriter appends domain records to an external spreadsheet.
	RecordWriter interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
		AppendRental(ctx context.Context, r core.Rental) (rowRef string, err error)
	}

	// ReportWriter exports a monthly cash flow series to a report sheet,
	// replacing its previous contents.
	ReportWriter interface {
		WriteCashFlow(ctx context.Context, points []report.CashFlowPoint) error
	}
)
