// Package google implements the spreadsheet ports on top of the Google
// Sheets API, with year-prefixed sheet names so each year gets its own tab.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
	ports "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base names without year; the current year is prefixed per call.
	transactionBase string
	rentalBase      string
	reportBase      string
}

var (
	_ ports.RecordWriter = (*Client)(nil)
	_ ports.ReportWriter = (*Client)(nil)
)

// NewClient creates a Sheets client. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewClient(ctx context.Context, spreadsheetID, transactionSheet, reportSheet string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if transactionSheet = strings.TrimSpace(transactionSheet); transactionSheet == "" {
		transactionSheet = "Transactions"
	}
	if reportSheet = strings.TrimSpace(reportSheet); reportSheet == "" {
		reportSheet = "Reports"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		transactionBase: transactionSheet,
		rentalBase:      "Rentals",
		reportBase:      reportSheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inlineJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inlineJSON == "" && credFile == "" {
		credFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inlineJSON != "":
		credentialsJSON = []byte(inlineJSON)
	case credFile != "":
		data, err := os.ReadFile(credFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func (c *Client) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	sheet := yearPrefixedName(c.transactionBase, tx.EffectiveDate().Year())
	row := []any{
		tx.EffectiveDate().Month(),
		tx.EffectiveDate().Day(),
		tx.Description,
		string(tx.Type),
		string(tx.Status),
		tx.Amount.Reais(),
	}
	return c.appendRow(ctx, sheet, row, "F")
}

func (c *Client) AppendRental(ctx context.Context, r core.Rental) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	sheet := yearPrefixedName(c.rentalBase, r.StartDate.Year())
	row := []any{
		r.StartDate.String(),
		r.EndDate.String(),
		string(r.Source),
		r.GuestName,
		r.NumberOfGuests,
		r.TotalAmount.Reais(),
		r.ExtraFeeAmount.Reais(),
	}
	return c.appendRow(ctx, sheet, row, "G")
}

// appendRow finds the next empty row in the sheet and writes values into
// columns A through lastCol.
func (c *Client) appendRow(ctx context.Context, sheet string, values []any, lastCol string) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", sheet, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:%s%d", sheet, nextRow, lastCol, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", dataRange, err)
	}

	slog.InfoContext(ctx, "Appended row to sheet", "sheet", sheet, "row", nextRow)
	return dataRange, nil
}

// WriteCashFlow replaces the report sheet contents with a header row and one
// row per month.
func (c *Client) WriteCashFlow(ctx context.Context, points []report.CashFlowPoint) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	sheet := yearPrefixedName(c.reportBase, time.Now().Year())
	values := [][]any{{"Year", "Month", "Income", "Expense"}}
	for _, p := range points {
		values = append(values, []any{
			p.Year,
			p.Month,
			p.Income.Reais(),
			p.Expense.Reais(),
		})
	}

	clearRange := fmt.Sprintf("%s!A:D", sheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	dataRange := fmt.Sprintf("%s!A1:D%d", sheet, len(values))
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", dataRange, err)
	}

	slog.InfoContext(ctx, "Exported cash flow report", "sheet", sheet, "months", len(points))
	return nil
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a
// 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
