package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Monthly RepetitionType = "monthly"
	Yearly  RepetitionType = "yearly"
	Weekly  RepetitionType = "weekly"
	Daily   RepetitionType = "daily"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

const (
	StatusPending TransactionStatus = "PENDING"
	StatusPaid    TransactionStatus = "PAID"
	StatusOverdue TransactionStatus = "OVERDUE"
)

const (
	SourceAirbnb  RentalSource = "AIRBNB"
	SourceDirect  RentalSource = "DIRECT"
	SourceBlocked RentalSource = "BLOCKED"
)

type (
	RepetitionType    string
	TransactionType   string
	TransactionStatus string
	RentalSource      string

	// Date is a day-granular calendar date, always UTC midnight.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Entity is a user-defined business unit (a farm, a company) that owns
	// transactions, rentals, tasks and investments.
	Entity struct {
		ID   int64
		Name string
	}

	Category struct {
		ID       int64
		EntityID int64
		Name     string
		Color    string
	}

	Transaction struct {
		ID          int64
		EntityID    int64
		Type        TransactionType
		Description string
		Amount      Money
		DueDate     Date
		PaymentDate Date // zero when unpaid
		Status      TransactionStatus
		CategoryID  int64 // 0 means uncategorized
	}

	// Rental is a short-term booking. EndDate is the checkout date; the night
	// before checkout is the last occupied night.
	Rental struct {
		ID             int64
		EntityID       int64
		StartDate      Date
		EndDate        Date
		Source         RentalSource
		TotalAmount    Money
		ExtraFeeAmount Money
		GuestName      string
		NumberOfGuests int
	}

	Task struct {
		ID        int64
		EntityID  int64
		Title     string
		StartDate Date
		EndDate   Date // equals StartDate for single-day tasks
		Priority  string
		Completed bool
	}

	RecurringTask struct {
		ID        int64
		EntityID  int64
		Title     string
		StartDate Date
		EndDate   Date // zero means open-ended
		Every     RepetitionType
		Priority  string
	}

	RecurringTransaction struct {
		ID          int64
		EntityID    int64
		Type        TransactionType
		Description string
		Amount      Money
		StartDate   Date
		EndDate     Date // zero means open-ended
		Every       RepetitionType
		CategoryID  int64
	}

	// Investment is a position with fractional quantity and unit price.
	Investment struct {
		ID          int64
		EntityID    int64
		Symbol      string
		Name        string
		Quantity    decimal.Decimal
		UnitPrice   decimal.Decimal
		RefreshedAt time.Time
	}
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidRange      = errors.New("end date before start date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInvalidStatus     = errors.New("invalid transaction status")
	ErrInvalidSource     = errors.New("invalid rental source")
	ErrInvalidRepetition = errors.New("invalid repetition type")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyTitle        = errors.New("empty title")
	ErrEmptyName         = errors.New("empty name")
	ErrEmptySymbol       = errors.New("empty symbol")
	ErrMissingEntity     = errors.New("missing entity")
	ErrInvalidGuestCount = errors.New("invalid guest count")
)

// NewDate builds a Date from year, month and day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
// Negative when other is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// MonthEnd returns the last day of d's month.
func (d Date) MonthEnd() Date {
	return NewDate(d.Year(), d.Month()+1, 0)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (e Entity) Validate() error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (c Category) Validate() error {
	if c.EntityID == 0 {
		return ErrMissingEntity
	}
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.EntityID == 0 {
		return ErrMissingEntity
	}
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	switch t.Status {
	case StatusPending, StatusPaid, StatusOverdue:
	default:
		return ErrInvalidStatus
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.DueDate.Validate(); err != nil {
		return err
	}
	if t.Status == StatusPaid && t.PaymentDate.IsZero() {
		return errors.New("paid transaction requires a payment date")
	}
	return nil
}

// EffectiveDate is the competency date used for bucketing: the payment date
// when paid, the due date otherwise.
func (t Transaction) EffectiveDate() Date {
	if t.Status == StatusPaid && !t.PaymentDate.IsZero() {
		return t.PaymentDate
	}
	return t.DueDate
}

func (r Rental) Validate() error {
	if r.EntityID == 0 {
		return ErrMissingEntity
	}
	if err := r.StartDate.Validate(); err != nil {
		return err
	}
	if err := r.EndDate.Validate(); err != nil {
		return err
	}
	if r.EndDate.Before(r.StartDate) {
		return ErrInvalidRange
	}
	switch r.Source {
	case SourceAirbnb, SourceDirect, SourceBlocked:
	default:
		return ErrInvalidSource
	}
	if r.Source != SourceBlocked {
		if err := r.TotalAmount.Validate(); err != nil {
			return err
		}
		if r.NumberOfGuests < 0 {
			return ErrInvalidGuestCount
		}
	}
	return nil
}

// Nights returns the number of occupied nights, checkout day exclusive.
func (r Rental) Nights() int {
	return r.StartDate.DaysUntil(r.EndDate)
}

func (t Task) Validate() error {
	if t.EntityID == 0 {
		return ErrMissingEntity
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if err := t.StartDate.Validate(); err != nil {
		return err
	}
	if err := t.EndDate.Validate(); err != nil {
		return err
	}
	if t.EndDate.Before(t.StartDate) {
		return ErrInvalidRange
	}
	return nil
}

func (rt RecurringTask) Validate() error {
	if rt.EntityID == 0 {
		return ErrMissingEntity
	}
	if len(strings.TrimSpace(rt.Title)) == 0 {
		return ErrEmptyTitle
	}
	if err := rt.StartDate.Validate(); err != nil {
		return err
	}
	if !rt.EndDate.IsZero() && rt.EndDate.Before(rt.StartDate) {
		return ErrInvalidRange
	}
	switch rt.Every {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return ErrInvalidRepetition
	}
	return nil
}

func (rt RecurringTransaction) Validate() error {
	if rt.EntityID == 0 {
		return ErrMissingEntity
	}
	if rt.Type != Income && rt.Type != Expense {
		return ErrInvalidType
	}
	if len(strings.TrimSpace(rt.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := rt.Amount.Validate(); err != nil {
		return err
	}
	if err := rt.StartDate.Validate(); err != nil {
		return err
	}
	if !rt.EndDate.IsZero() && rt.EndDate.Before(rt.StartDate) {
		return ErrInvalidRange
	}
	switch rt.Every {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return ErrInvalidRepetition
	}
	return nil
}

func (i Investment) Validate() error {
	if i.EntityID == 0 {
		return ErrMissingEntity
	}
	if len(strings.TrimSpace(i.Symbol)) == 0 {
		return ErrEmptySymbol
	}
	if i.Quantity.IsNegative() {
		return errors.New("negative quantity")
	}
	if i.UnitPrice.IsNegative() {
		return errors.New("negative unit price")
	}
	return nil
}

// MarketValue returns quantity times unit price.
func (i Investment) MarketValue() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
