// Package memory implements the document store as mutex-guarded in-memory
// maps. Writes inside a transaction are buffered and applied only on
// commit, so a failed lifecycle operation leaves the store untouched. One
// process-wide mutex gives the single-writer semantics the lifecycle
// service relies on.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// Store holds every collection. Construct with NewStore and inject into the
// lifecycle service; nothing else should touch it.
type Store struct {
	mu sync.Mutex

	documents map[entity.DocumentKind]map[string]*entity.Document
	docOrder  map[entity.DocumentKind][]string
	customers map[string]*entity.Customer
	custOrder []string
	products  map[string]*entity.Product
	prodOrder []string
	payments  []*entity.Payment
	movements []*entity.StockMovement
	sequences map[string]int
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		documents: make(map[entity.DocumentKind]map[string]*entity.Document),
		docOrder:  make(map[entity.DocumentKind][]string),
		customers: make(map[string]*entity.Customer),
		products:  make(map[string]*entity.Product),
		sequences: make(map[string]int),
	}
}

var _ lifecycle.TxRunner = (*Store)(nil)

// Run implements lifecycle.TxRunner: fn's writes are staged and applied
// atomically when fn succeeds, discarded when it fails.
func (s *Store) Run(ctx context.Context, fn func(lifecycle.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := newTx(s)
	repos := lifecycle.Repos{
		Documents: &txDocuments{t},
		Customers: &txCustomers{t},
		Products:  &txProducts{t},
		Payments:  &txPayments{t},
		Movements: &txMovements{t},
		Sequences: &txSequences{t},
	}
	if err := fn(repos); err != nil {
		return err
	}
	t.commit()
	return nil
}

// tx buffers writes against the store until commit.
type tx struct {
	s *Store

	docs        map[entity.DocumentKind]map[string]*entity.Document
	docCreated  map[entity.DocumentKind][]string
	customers   map[string]*entity.Customer
	custCreated []string
	products    map[string]*entity.Product
	prodCreated []string
	payments    []*entity.Payment
	movements   []*entity.StockMovement
	sequences   map[string]int
}

func newTx(s *Store) *tx {
	return &tx{
		s:          s,
		docs:       make(map[entity.DocumentKind]map[string]*entity.Document),
		docCreated: make(map[entity.DocumentKind][]string),
		customers:  make(map[string]*entity.Customer),
		products:   make(map[string]*entity.Product),
		sequences:  make(map[string]int),
	}
}

// commit applies every staged write. Runs with the store mutex held.
func (t *tx) commit() {
	s := t.s
	for kind, staged := range t.docs {
		if s.documents[kind] == nil {
			s.documents[kind] = make(map[string]*entity.Document)
		}
		for id, doc := range staged {
			s.documents[kind][id] = doc
		}
	}
	for kind, ids := range t.docCreated {
		s.docOrder[kind] = append(s.docOrder[kind], ids...)
	}
	for id, c := range t.customers {
		s.customers[id] = c
	}
	s.custOrder = append(s.custOrder, t.custCreated...)
	for id, p := range t.products {
		s.products[id] = p
	}
	s.prodOrder = append(s.prodOrder, t.prodCreated...)
	s.payments = append(s.payments, t.payments...)
	s.movements = append(s.movements, t.movements...)
	for key, v := range t.sequences {
		s.sequences[key] = v
	}
}

// txDocuments implements repository.DocumentRepository over the tx buffer.
type txDocuments struct{ t *tx }

func (r *txDocuments) Create(doc *entity.Document) error {
	t := r.t
	if t.docs[doc.Kind] == nil {
		t.docs[doc.Kind] = make(map[string]*entity.Document)
	}
	if _, ok := t.docs[doc.Kind][doc.ID]; ok {
		return fmt.Errorf("duplicate document id %s", doc.ID)
	}
	if _, ok := t.s.documents[doc.Kind][doc.ID]; ok {
		return fmt.Errorf("duplicate document id %s", doc.ID)
	}
	t.docs[doc.Kind][doc.ID] = doc.Clone()
	t.docCreated[doc.Kind] = append(t.docCreated[doc.Kind], doc.ID)
	return nil
}

func (r *txDocuments) GetByID(kind entity.DocumentKind, id string) (*entity.Document, error) {
	t := r.t
	if staged, ok := t.docs[kind][id]; ok {
		return staged.Clone(), nil
	}
	if committed, ok := t.s.documents[kind][id]; ok {
		return committed.Clone(), nil
	}
	return nil, nil
}

// GetForUpdate is plain GetByID here: the store mutex already serializes
// whole transactions, so there is no finer-grained row to lock.
func (r *txDocuments) GetForUpdate(kind entity.DocumentKind, id string) (*entity.Document, error) {
	return r.GetByID(kind, id)
}

func (r *txDocuments) ListByKind(kind entity.DocumentKind, status string) ([]*entity.Document, error) {
	t := r.t
	ids := append(append([]string(nil), t.s.docOrder[kind]...), t.docCreated[kind]...)
	var out []*entity.Document
	for _, id := range ids {
		doc, ok := t.docs[kind][id]
		if !ok {
			doc = t.s.documents[kind][id]
		}
		if doc == nil {
			continue
		}
		if status != "" && doc.Status != status {
			continue
		}
		out = append(out, doc.Clone())
	}
	return out, nil
}

func (r *txDocuments) Update(doc *entity.Document) error {
	t := r.t
	_, staged := t.docs[doc.Kind][doc.ID]
	_, committed := t.s.documents[doc.Kind][doc.ID]
	if !staged && !committed {
		return fmt.Errorf("update of unknown document %s", doc.ID)
	}
	if t.docs[doc.Kind] == nil {
		t.docs[doc.Kind] = make(map[string]*entity.Document)
	}
	t.docs[doc.Kind][doc.ID] = doc.Clone()
	return nil
}

// txCustomers implements repository.CustomerRepository over the tx buffer.
type txCustomers struct{ t *tx }

func (r *txCustomers) Create(c *entity.Customer) error {
	t := r.t
	if _, ok := t.customers[c.ID]; ok {
		return fmt.Errorf("duplicate customer id %s", c.ID)
	}
	if _, ok := t.s.customers[c.ID]; ok {
		return fmt.Errorf("duplicate customer id %s", c.ID)
	}
	cp := *c
	t.customers[c.ID] = &cp
	t.custCreated = append(t.custCreated, c.ID)
	return nil
}

func (r *txCustomers) GetByID(id string) (*entity.Customer, error) {
	t := r.t
	if staged, ok := t.customers[id]; ok {
		cp := *staged
		return &cp, nil
	}
	if committed, ok := t.s.customers[id]; ok {
		cp := *committed
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate is plain GetByID here; the store mutex serializes
// transactions.
func (r *txCustomers) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *txCustomers) List() ([]*entity.Customer, error) {
	t := r.t
	ids := append(append([]string(nil), t.s.custOrder...), t.custCreated...)
	out := make([]*entity.Customer, 0, len(ids))
	for _, id := range ids {
		c, ok := t.customers[id]
		if !ok {
			c = t.s.customers[id]
		}
		if c == nil {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *txCustomers) Update(c *entity.Customer) error {
	t := r.t
	_, staged := t.customers[c.ID]
	_, committed := t.s.customers[c.ID]
	if !staged && !committed {
		return fmt.Errorf("update of unknown customer %s", c.ID)
	}
	cp := *c
	t.customers[c.ID] = &cp
	return nil
}

// txProducts implements repository.ProductRepository over the tx buffer.
type txProducts struct{ t *tx }

func (r *txProducts) Create(p *entity.Product) error {
	t := r.t
	if _, ok := t.products[p.ID]; ok {
		return fmt.Errorf("duplicate product id %s", p.ID)
	}
	if _, ok := t.s.products[p.ID]; ok {
		return fmt.Errorf("duplicate product id %s", p.ID)
	}
	cp := *p
	t.products[p.ID] = &cp
	t.prodCreated = append(t.prodCreated, p.ID)
	return nil
}

func (r *txProducts) GetByID(id string) (*entity.Product, error) {
	t := r.t
	if staged, ok := t.products[id]; ok {
		cp := *staged
		return &cp, nil
	}
	if committed, ok := t.s.products[id]; ok {
		cp := *committed
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate is plain GetByID here; the store mutex serializes
// transactions.
func (r *txProducts) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *txProducts) List() ([]*entity.Product, error) {
	t := r.t
	ids := append(append([]string(nil), t.s.prodOrder...), t.prodCreated...)
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := t.products[id]
		if !ok {
			p = t.s.products[id]
		}
		if p == nil {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *txProducts) Update(p *entity.Product) error {
	t := r.t
	_, staged := t.products[p.ID]
	_, committed := t.s.products[p.ID]
	if !staged && !committed {
		return fmt.Errorf("update of unknown product %s", p.ID)
	}
	cp := *p
	t.products[p.ID] = &cp
	return nil
}

// txPayments implements repository.PaymentRepository over the tx buffer.
type txPayments struct{ t *tx }

func (r *txPayments) Create(p *entity.Payment) error {
	cp := *p
	r.t.payments = append(r.t.payments, &cp)
	return nil
}

func (r *txPayments) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	t := r.t
	all := append(append([]*entity.Payment(nil), t.s.payments...), t.payments...)
	var out []*entity.Payment
	for _, p := range all {
		if invoiceID != "" && p.InvoiceID != invoiceID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// txMovements implements repository.StockMovementRepository over the tx
// buffer.
type txMovements struct{ t *tx }

func (r *txMovements) Create(m *entity.StockMovement) error {
	cp := *m
	r.t.movements = append(r.t.movements, &cp)
	return nil
}

func (r *txMovements) List(productID string) ([]*entity.StockMovement, error) {
	t := r.t
	all := append(append([]*entity.StockMovement(nil), t.s.movements...), t.movements...)
	var out []*entity.StockMovement
	for _, m := range all {
		if productID != "" && m.ProductID != productID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// txSequences implements repository.SequenceRepository over the tx buffer.
type txSequences struct{ t *tx }

func (r *txSequences) Next(kind entity.DocumentKind, year int) (int, error) {
	t := r.t
	key := fmt.Sprintf("%s:%d", kind, year)
	cur, ok := t.sequences[key]
	if !ok {
		cur = t.s.sequences[key]
	}
	next := cur + 1
	t.sequences[key] = next
	return next, nil
}
