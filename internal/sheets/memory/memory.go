// Package memory is an in-memory spreadsheet adapter for tests and local
// development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	rentals      []core.Rental
	cashFlow     []report.CashFlowPoint
}

func New() *Store {
	return &Store{}
}

// AppendTransaction stores the transaction and returns a synthetic row
// reference.
func (s *Store) AppendTransaction(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return fmt.Sprintf("mem:tx:%d", len(s.transactions)), nil
}

// AppendRental stores the rental and returns a synthetic row reference.
func (s *Store) AppendRental(_ context.Context, r core.Rental) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals = append(s.rentals, r)
	return fmt.Sprintf("mem:rental:%d", len(s.rentals)), nil
}

// WriteCashFlow replaces the stored series.
func (s *Store) WriteCashFlow(_ context.Context, points []report.CashFlowPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashFlow = append([]report.CashFlowPoint(nil), points...)
	return nil
}

// Transactions returns a copy of the stored transactions.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Rentals returns a copy of the stored rentals.
func (s *Store) Rentals() []core.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Rental(nil), s.rentals...)
}

// CashFlow returns a copy of the stored series.
func (s *Store) CashFlow() []report.CashFlowPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]report.CashFlowPoint(nil), s.cashFlow...)
}
