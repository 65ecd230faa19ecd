package orders_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria para los tests del motor de pedidos.
// txMu serializa transacciones (equivalente al bloqueo de fila de Postgres);
// en error la transacción restaura el snapshot, como un ROLLBACK.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	seqs      map[string]int64
	customers map[string]*entity.Customer
	companies map[string]*entity.Company
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		orders:    make(map[string]*entity.Order),
		seqs:      make(map[string]int64),
		customers: make(map[string]*entity.Customer),
		companies: make(map[string]*entity.Company),
	}
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	cp.PaidHistory = append([]entity.PaidEntry(nil), o.PaidHistory...)
	return &cp
}

func (s *memStore) snapshot() (map[string]*entity.Product, map[string]*entity.Order, map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		products[id] = p.Clone()
	}
	ords := make(map[string]*entity.Order, len(s.orders))
	for id, o := range s.orders {
		ords[id] = cloneOrder(o)
	}
	seqs := make(map[string]int64, len(s.seqs))
	for k, v := range s.seqs {
		seqs[k] = v
	}
	return products, ords, seqs
}

func (s *memStore) restore(products map[string]*entity.Product, ords map[string]*entity.Order, seqs map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.orders = ords
	s.seqs = seqs
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p.Clone()
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *fakeProductRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = p.Clone()
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Quantity = p.Quantity
	existing.Sizes = append([]entity.Size(nil), p.Sizes...)
	existing.OutOfStock = p.OutOfStock
	existing.OpenedPackages = p.OpenedPackages
	return nil
}

func (r *fakeProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

type fakeOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *fakeOrderRepo) ListByCompany(_ context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if o.CompanyID != companyID {
			continue
		}
		if o.Deleted && !includeDeleted {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *fakeOrderRepo) NumberExists(_ context.Context, companyID, family, number, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	types := entity.FamilyDocumentTypes(family)
	for _, o := range r.s.orders {
		if o.CompanyID != companyID || o.Deleted || o.Number != number || o.ID == excludeID {
			continue
		}
		for _, dt := range types {
			if o.DocumentType == dt {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) MaxNumber(_ context.Context, companyID, family string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	types := entity.FamilyDocumentTypes(family)
	var max int64
	for _, o := range r.s.orders {
		if o.CompanyID != companyID || o.Deleted {
			continue
		}
		match := false
		for _, dt := range types {
			if o.DocumentType == dt {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		n, err := strconv.ParseInt(o.Number, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

type fakeSeqRepo struct{ s *memStore }

var _ repository.SequenceRepository = (*fakeSeqRepo)(nil)

func (r *fakeSeqRepo) Increment(_ context.Context, name, companyID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := name + "|" + companyID
	r.s.seqs[key]++
	return r.s.seqs[key], nil
}

func (r *fakeSeqRepo) Set(_ context.Context, name, companyID string, value int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seqs[name+"|"+companyID] = value
	return nil
}

func (r *fakeSeqRepo) Raise(_ context.Context, name, companyID string, min int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := name + "|" + companyID
	if r.s.seqs[key] < min {
		r.s.seqs[key] = min
	}
	return nil
}

type fakeCustomerRepo struct{ s *memStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Receivers = append([]string(nil), c.Receivers...)
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}

type fakeCompanyRepo struct{ s *memStore }

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Senders = append([]string(nil), c.Senders...)
	return &cp, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}

// fakeTxRunner serializa transacciones y restaura el store en error,
// emulando el BEGIN/COMMIT/ROLLBACK del TxRunner de Postgres.
type fakeTxRunner struct{ s *memStore }

var _ orders.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.OrderRepository, repository.SequenceRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	products, ords, seqs := t.s.snapshot()
	err := fn(&fakeProductRepo{s: t.s}, &fakeOrderRepo{s: t.s}, &fakeSeqRepo{s: t.s})
	if err != nil {
		t.s.restore(products, ords, seqs)
	}
	return err
}

// fakeNotifier acumula los cambios publicados.
type fakeNotifier struct {
	mu        sync.Mutex
	published [][]orders.StockChange
}

var _ orders.StockNotifier = (*fakeNotifier)(nil)

func (n *fakeNotifier) Publish(changes []orders.StockChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, changes)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.published)
}
