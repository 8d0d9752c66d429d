// Package lifecycle implements the document lifecycle service: the only
// component that creates or mutates business documents, applies payments
// and posts stock movements. Operations are all-or-nothing; a failed call
// leaves every entity as it was.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// Config tunes operation behavior.
type Config struct {
	// StrictStock rejects conversions that would oversell instead of
	// clamping stock at zero.
	StrictStock bool
	// QuotationValidityDays sets ValidUntil on new quotations.
	QuotationValidityDays int
	// PaymentTermsDays sets DueDate on new invoices.
	PaymentTermsDays int
}

// Service orchestrates the document lifecycle over a transactional store.
type Service struct {
	tx  TxRunner
	log zerolog.Logger
	cfg Config

	// now is swappable in tests.
	now func() time.Time
}

// NewService builds the service. Zero-value config fields fall back to
// 30-day quotation validity and 30-day payment terms.
func NewService(tx TxRunner, log zerolog.Logger, cfg Config) *Service {
	if cfg.QuotationValidityDays <= 0 {
		cfg.QuotationValidityDays = 30
	}
	if cfg.PaymentTermsDays <= 0 {
		cfg.PaymentTermsDays = 30
	}
	return &Service{tx: tx, log: log, cfg: cfg, now: time.Now}
}

// nextNumber issues the next human-readable document number for the kind,
// scoped per year: PREFIX-YYYY-NNN. NNN is a minimum width: the counter
// keeps going past 999 (INV-2026-1000), numbers stay unique and sortable.
func nextNumber(repos Repos, kind entity.DocumentKind, now time.Time) (string, error) {
	year := now.Year()
	seq, err := repos.Sequences.Next(kind, year)
	if err != nil {
		return "", fmt.Errorf("next %s sequence: %w", kind, err)
	}
	return fmt.Sprintf("%s-%d-%03d", kind.NumberPrefix(), year, seq), nil
}
