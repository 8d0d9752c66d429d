// Package simulation drives the lifecycle service with randomized calls to
// produce demo activity. It has no special privilege: every call goes
// through the same public operations a real user would invoke, and every
// error is logged and ignored.
package simulation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// Driver periodically invokes random lifecycle operations.
type Driver struct {
	svc      *lifecycle.Service
	log      zerolog.Logger
	interval time.Duration
	rng      *rand.Rand

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver builds a stopped driver.
func NewDriver(svc *lifecycle.Service, log zerolog.Logger, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Driver{
		svc:      svc,
		log:      log,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the background loop. Calling Start on a running driver is
// a no-op.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.loop(ctx, d.done)
	d.log.Info().Dur("interval", d.interval).Msg("simulation started")
}

// Stop halts the loop and waits for any in-flight tick to finish. Calling
// Stop on a stopped driver is a no-op.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel = nil
	d.done = nil
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	d.log.Info().Msg("simulation stopped")
}

// Running reports whether the loop is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

func (d *Driver) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		close(done)
		// Clear state so Running() turns false when the parent context
		// is cancelled, not only after an explicit Stop. Stop may have
		// already swapped in nil (or a new run's channel); only reset
		// our own.
		d.mu.Lock()
		if d.done == done {
			d.cancel = nil
			d.done = nil
		}
		d.mu.Unlock()
	}()
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// tick performs one random action. Errors are expected (e.g. picking an
// already converted quotation) and only logged at debug level.
func (d *Driver) tick(ctx context.Context) {
	actions := []func(context.Context) error{
		d.createQuotation,
		d.advanceQuotation,
		d.convertSomething,
		d.payInvoice,
		d.issueCreditNote,
		d.sweepOverdue,
	}
	action := actions[d.rng.Intn(len(actions))]
	if err := action(ctx); err != nil {
		d.log.Debug().Err(err).Msg("simulation action skipped")
	}
}

func (d *Driver) createQuotation(ctx context.Context) error {
	customers, err := d.svc.ListCustomers(ctx)
	if err != nil || len(customers) == 0 {
		return err
	}
	products, err := d.svc.ListProducts(ctx)
	if err != nil || len(products) == 0 {
		return err
	}
	customer := customers[d.rng.Intn(len(customers))]
	count := 1 + d.rng.Intn(3)
	items := make([]dto.LineItemRequest, 0, count)
	for i := 0; i < count; i++ {
		product := products[d.rng.Intn(len(products))]
		items = append(items, dto.LineItemRequest{
			ProductID:       product.ID,
			Quantity:        decimal.NewFromInt(int64(1 + d.rng.Intn(10))),
			DiscountPercent: decimal.NewFromInt(int64(d.rng.Intn(4) * 5)), // 0..15%
		})
	}
	_, err = d.svc.CreateQuotation(ctx, dto.CreateQuotationRequest{
		CustomerID: customer.ID,
		Items:      items,
	})
	return err
}

// advanceQuotation walks a random quotation one step forward: draft to
// sent, sent to accepted (mostly) or rejected.
func (d *Driver) advanceQuotation(ctx context.Context) error {
	if q := d.randomDocument(ctx, entity.KindQuotation, entity.StatusDraft); q != nil {
		_, err := d.svc.TransitionStatus(ctx, q.ID, entity.KindQuotation, entity.StatusSent)
		return err
	}
	if q := d.randomDocument(ctx, entity.KindQuotation, entity.StatusSent); q != nil {
		next := entity.StatusAccepted
		if d.rng.Intn(5) == 0 {
			next = entity.StatusRejected
		}
		_, err := d.svc.TransitionStatus(ctx, q.ID, entity.KindQuotation, next)
		return err
	}
	return nil
}

// convertSomething picks a conversion path at random.
func (d *Driver) convertSomething(ctx context.Context) error {
	switch d.rng.Intn(3) {
	case 0:
		if q := d.randomDocument(ctx, entity.KindQuotation, entity.StatusAccepted); q != nil && !q.Converted() {
			_, err := d.svc.ConvertQuotationToProforma(ctx, q.ID)
			return err
		}
	case 1:
		if p := d.randomDocument(ctx, entity.KindProforma, entity.StatusDraft); p != nil {
			_, err := d.svc.TransitionStatus(ctx, p.ID, entity.KindProforma, entity.StatusSent)
			return err
		}
		if p := d.randomDocument(ctx, entity.KindProforma, entity.StatusSent); p != nil {
			_, err := d.svc.ConvertProformaToInvoice(ctx, p.ID)
			return err
		}
	default:
		if q := d.randomDocument(ctx, entity.KindQuotation, entity.StatusAccepted); q != nil && !q.Converted() {
			_, err := d.svc.ConvertQuotationToInvoice(ctx, q.ID)
			return err
		}
	}
	return nil
}

// payInvoice records a partial or full payment against a random open
// invoice.
func (d *Driver) payInvoice(ctx context.Context) error {
	inv := d.randomDocument(ctx, entity.KindInvoice, entity.StatusSent)
	if inv == nil {
		inv = d.randomDocument(ctx, entity.KindInvoice, entity.StatusOverdue)
	}
	if inv == nil || !inv.Balance.IsPositive() {
		return nil
	}
	amount := inv.Balance
	if d.rng.Intn(2) == 0 {
		// partial payment, at least one cent
		half := inv.Balance.Div(decimal.NewFromInt(2)).Round(2)
		if half.IsPositive() {
			amount = half
		}
	}
	methods := []string{entity.PaymentMethodCash, entity.PaymentMethodMpesa, entity.PaymentMethodBank}
	_, err := d.svc.RecordPayment(ctx, inv.ID, amount, methods[d.rng.Intn(len(methods))], "")
	return err
}

func (d *Driver) issueCreditNote(ctx context.Context) error {
	inv := d.randomDocument(ctx, entity.KindInvoice, entity.StatusPaid)
	if inv == nil || len(inv.Items) == 0 {
		return nil
	}
	item := inv.Items[d.rng.Intn(len(inv.Items))]
	_, err := d.svc.IssueCreditNote(ctx, dto.IssueCreditNoteRequest{
		CustomerID: inv.CustomerID,
		InvoiceID:  inv.ID,
		Reason:     "customer return",
		Items: []dto.LineItemRequest{{
			ProductID: item.ProductID,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: item.UnitPrice,
		}},
	})
	return err
}

func (d *Driver) sweepOverdue(ctx context.Context) error {
	_, err := d.svc.MarkOverdueInvoices(ctx, time.Now())
	return err
}

func (d *Driver) randomDocument(ctx context.Context, kind entity.DocumentKind, status string) *entity.Document {
	docs, err := d.svc.ListDocuments(ctx, kind, status)
	if err != nil || len(docs) == 0 {
		return nil
	}
	return docs[d.rng.Intn(len(docs))]
}
