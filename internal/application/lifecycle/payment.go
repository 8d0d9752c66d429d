package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/ledger"
)

// RecordPayment applies amount against the invoice, persists the payment
// record and reduces the customer's aggregate balance, all in one
// transaction. Over- and non-positive payments are rejected with the
// invoice untouched.
func (s *Service) RecordPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, method, reference string) (*entity.Payment, error) {
	if method == "" {
		return nil, fmt.Errorf("payment method required: %w", domain.ErrValidation)
	}
	var payment *entity.Payment
	err := s.tx.Run(ctx, func(repos Repos) error {
		invoice, err := repos.Documents.GetForUpdate(entity.KindInvoice, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return fmt.Errorf("invoice %s: %w", invoiceID, domain.ErrNotFound)
		}
		now := s.now()
		if err := ledger.ApplyPayment(invoice, amount, now); err != nil {
			return err
		}
		if err := repos.Documents.Update(invoice); err != nil {
			return err
		}

		customer, err := repos.Customers.GetForUpdate(invoice.CustomerID)
		if err != nil {
			return err
		}
		if customer != nil {
			ledger.ReduceCustomerBalance(customer, amount, now)
			if err := repos.Customers.Update(customer); err != nil {
				return err
			}
		}

		payment = &entity.Payment{
			ID:         uuid.New().String(),
			InvoiceID:  invoice.ID,
			CustomerID: invoice.CustomerID,
			Amount:     amount.Round(2),
			Method:     method,
			Reference:  reference,
			CreatedAt:  now,
		}
		return repos.Payments.Create(payment)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("invoice", invoiceID).
		Str("amount", payment.Amount.StringFixed(2)).
		Str("method", payment.Method).
		Msg("payment recorded")
	return payment, nil
}

// ListPayments returns the payments recorded against an invoice.
func (s *Service) ListPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		payments, err = repos.Payments.ListByInvoice(invoiceID)
		return err
	})
	return payments, err
}
