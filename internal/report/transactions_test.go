package report

import (
	"testing"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

func paidTx(id int64, typ core.TransactionType, cents int64, paid core.Date) core.Transaction {
	return core.Transaction{
		ID:          id,
		EntityID:    1,
		Type:        typ,
		Description: "tx",
		Amount:      core.Money{Cents: cents},
		DueDate:     paid,
		PaymentDate: paid,
		Status:      core.StatusPaid,
	}
}

func marchRange() Range {
	return Range{Start: core.NewDate(2026, 3, 1), End: core.NewDate(2026, 3, 31)}
}

func TestCashFlow_MonthBuckets(t *testing.T) {
	txs := []core.Transaction{
		paidTx(1, core.Income, 10000, core.NewDate(2026, 3, 15)),
		paidTx(2, core.Expense, 4000, core.NewDate(2026, 3, 20)),
	}

	series := CashFlow(txs, marchRange())
	if len(series) != 1 {
		t.Fatalf("got %d buckets, want 1", len(series))
	}
	pt := series[0]
	if pt.Year != 2026 || pt.Month != 3 {
		t.Errorf("bucket = %d-%d, want 2026-3", pt.Year, pt.Month)
	}
	if pt.Income.Cents != 10000 || pt.Expense.Cents != 4000 {
		t.Errorf("bucket = {income:%d expense:%d}, want {10000 4000}", pt.Income.Cents, pt.Expense.Cents)
	}
}

func TestCashFlow_ZeroFilledMonths(t *testing.T) {
	rng := Range{Start: core.NewDate(2026, 1, 1), End: core.NewDate(2026, 3, 31)}
	txs := []core.Transaction{
		paidTx(1, core.Income, 5000, core.NewDate(2026, 1, 10)),
		paidTx(2, core.Income, 7000, core.NewDate(2026, 3, 10)),
	}

	series := CashFlow(txs, rng)
	if len(series) != 3 {
		t.Fatalf("got %d buckets, want 3 (empty months still appear)", len(series))
	}
	feb := series[1]
	if feb.Month != 2 || feb.Income.Cents != 0 || feb.Expense.Cents != 0 {
		t.Errorf("february bucket = %+v, want zero values", feb)
	}
}

func TestCashFlow_IgnoresUnpaidAndOutOfRange(t *testing.T) {
	pending := paidTx(1, core.Income, 9999, core.NewDate(2026, 3, 5))
	pending.Status = core.StatusPending
	pending.PaymentDate = core.Date{}

	txs := []core.Transaction{
		pending,
		paidTx(2, core.Income, 1000, core.NewDate(2026, 4, 1)),
		paidTx(3, core.Income, 2500, core.NewDate(2026, 3, 9)),
	}

	series := CashFlow(txs, marchRange())
	var total int64
	for _, pt := range series {
		total += pt.Income.Cents
	}
	if total != 2500 {
		t.Errorf("total income = %d, want 2500 (pending and out-of-range skipped)", total)
	}
}

// Additivity: the series sums back to the raw in-range paid totals.
func TestCashFlow_Additivity(t *testing.T) {
	rng := Range{Start: core.NewDate(2026, 1, 1), End: core.NewDate(2026, 6, 30)}
	txs := []core.Transaction{
		paidTx(1, core.Income, 100, core.NewDate(2026, 1, 2)),
		paidTx(2, core.Income, 250, core.NewDate(2026, 2, 3)),
		paidTx(3, core.Expense, 80, core.NewDate(2026, 2, 3)),
		paidTx(4, core.Expense, 9120, core.NewDate(2026, 6, 30)),
		paidTx(5, core.Income, 4, core.NewDate(2026, 6, 1)),
	}

	var wantIncome, wantExpense int64
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			wantIncome += tx.Amount.Cents
		case core.Expense:
			wantExpense += tx.Amount.Cents
		}
	}

	var gotIncome, gotExpense int64
	for _, pt := range CashFlow(txs, rng) {
		gotIncome += pt.Income.Cents
		gotExpense += pt.Expense.Cents
	}
	if gotIncome != wantIncome || gotExpense != wantExpense {
		t.Errorf("series sums = {%d %d}, want {%d %d}", gotIncome, gotExpense, wantIncome, wantExpense)
	}
}

func TestCashFlow_UnboundedRangeUsesDataBounds(t *testing.T) {
	txs := []core.Transaction{
		paidTx(1, core.Income, 100, core.NewDate(2025, 11, 5)),
		paidTx(2, core.Income, 100, core.NewDate(2026, 2, 5)),
	}

	series := CashFlow(txs, Range{})
	if len(series) != 4 {
		t.Fatalf("got %d buckets, want 4 (2025-11 through 2026-02)", len(series))
	}
	if series[0].Year != 2025 || series[0].Month != 11 {
		t.Errorf("first bucket = %d-%d, want 2025-11", series[0].Year, series[0].Month)
	}
	if series[3].Year != 2026 || series[3].Month != 2 {
		t.Errorf("last bucket = %d-%d, want 2026-2", series[3].Year, series[3].Month)
	}
}

func TestCashFlow_EmptyInput(t *testing.T) {
	if got := CashFlow(nil, Range{}); got != nil {
		t.Errorf("CashFlow(nil, all) = %v, want empty", got)
	}
}

func TestCategoryDistribution(t *testing.T) {
	categories := []core.Category{
		{ID: 1, EntityID: 1, Name: "Insumos", Color: "#16a34a"},
		{ID: 2, EntityID: 1, Name: "Manutencao", Color: "#dc2626"},
	}
	txs := []core.Transaction{
		withCategory(paidTx(1, core.Expense, 3000, core.NewDate(2026, 3, 2)), 2),
		withCategory(paidTx(2, core.Expense, 1000, core.NewDate(2026, 3, 4)), 1),
		withCategory(paidTx(3, core.Expense, 2500, core.NewDate(2026, 3, 8)), 1),
		paidTx(4, core.Expense, 500, core.NewDate(2026, 3, 9)), // uncategorized
		paidTx(5, core.Income, 90000, core.NewDate(2026, 3, 9)),
	}

	slices := CategoryDistribution(txs, categories, marchRange())
	if len(slices) != 3 {
		t.Fatalf("got %d slices, want 3", len(slices))
	}
	if slices[0].Name != "Insumos" || slices[0].Value.Cents != 3500 {
		t.Errorf("top slice = %+v, want Insumos 3500", slices[0])
	}
	if slices[1].Name != "Manutencao" || slices[1].Value.Cents != 3000 {
		t.Errorf("second slice = %+v, want Manutencao 3000", slices[1])
	}
	if slices[2].Name != UncategorizedLabel || slices[2].Value.Cents != 500 {
		t.Errorf("sentinel slice = %+v, want %s 500", slices[2], UncategorizedLabel)
	}
	if slices[0].Color != "#16a34a" {
		t.Errorf("slice color = %s, want category color", slices[0].Color)
	}
}

func TestCategoryStatusBreakdown(t *testing.T) {
	categories := []core.Category{{ID: 1, EntityID: 1, Name: "Insumos", Color: "#16a34a"}}

	pending := withCategory(paidTx(2, core.Expense, 700, core.NewDate(2026, 3, 5)), 1)
	pending.Status = core.StatusPending
	pending.PaymentDate = core.Date{}
	overdue := withCategory(paidTx(3, core.Expense, 300, core.NewDate(2026, 3, 6)), 1)
	overdue.Status = core.StatusOverdue
	overdue.PaymentDate = core.Date{}

	txs := []core.Transaction{
		withCategory(paidTx(1, core.Expense, 1000, core.NewDate(2026, 3, 3)), 1),
		pending,
		overdue,
	}

	rows := CategoryStatusBreakdown(txs, categories, marchRange())
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Paid.Cents != 1000 || row.Pending.Cents != 700 || row.Overdue.Cents != 300 {
		t.Errorf("row = %+v, want paid 1000 / pending 700 / overdue 300", row)
	}
	if row.Total.Cents != row.Paid.Cents+row.Pending.Cents+row.Overdue.Cents {
		t.Errorf("total %d != paid+pending+overdue", row.Total.Cents)
	}
}

func withCategory(tx core.Transaction, categoryID int64) core.Transaction {
	tx.CategoryID = categoryID
	return tx
}
