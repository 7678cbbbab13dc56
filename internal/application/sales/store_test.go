package sales_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// memStore base de datos en memoria para las pruebas: implementa los
// repositorios y el TxRunner con semántica de transacción real (snapshot al
// abrir, restauración completa si fn falla). Las transacciones se serializan
// con txMu, igual que lo hace el bloqueo de fila en PostgreSQL.
type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	lines     map[string][]*entity.OrderLine
	movements []*entity.StockMovement
	customers map[string]*entity.Customer

	lineCreateErr error // error inyectado en CreateLine (fallo a mitad de tx)
	conflictNext  int   // fuerza ErrCodeConflict en los próximos N Create de orden
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		orders:    make(map[string]*entity.Order),
		lines:     make(map[string][]*entity.OrderLine),
		customers: make(map[string]*entity.Customer),
	}
}

func (s *memStore) addProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
}

func (s *memStore) addCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = &c
}

func (s *memStore) stockOf(productID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].StockQuantity
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// storeState copia profunda del estado mutable, para rollback.
type storeState struct {
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	lines     map[string][]*entity.OrderLine
	movements []*entity.StockMovement
	customers map[string]*entity.Customer
}

func (s *memStore) snapshot() storeState {
	st := storeState{
		products:  make(map[string]*entity.Product, len(s.products)),
		orders:    make(map[string]*entity.Order, len(s.orders)),
		lines:     make(map[string][]*entity.OrderLine, len(s.lines)),
		movements: append([]*entity.StockMovement(nil), s.movements...),
		customers: make(map[string]*entity.Customer, len(s.customers)),
	}
	for id, p := range s.products {
		cp := *p
		st.products[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		st.orders[id] = &cp
	}
	for id, ls := range s.lines {
		st.lines[id] = append([]*entity.OrderLine(nil), ls...)
	}
	for id, c := range s.customers {
		cp := *c
		st.customers[id] = &cp
	}
	return st
}

func (s *memStore) restore(st storeState) {
	s.products = st.products
	s.orders = st.orders
	s.lines = st.lines
	s.movements = st.movements
	s.customers = st.customers
}

// Run implementa sales.TxRunner: todo-o-nada sobre el estado en memoria.
func (s *memStore) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()
	err := fn(&memOrderRepo{s: s}, &memProductRepo{s: s}, &memMovementRepo{s: s})
	if err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
	}
	return err
}

// ── Repositorio de órdenes ────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.conflictNext > 0 {
		r.s.conflictNext--
		return domain.ErrCodeConflict
	}
	// Constraint único sobre orders.code.
	for _, existing := range r.s.orders {
		if existing.Code == order.Code {
			return domain.ErrCodeConflict
		}
	}
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) CreateLine(line *entity.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.lineCreateErr != nil {
		return r.s.lineCreateErr
	}
	cp := *line
	r.s.lines[line.OrderID] = append(r.s.lines[line.OrderID], &cp)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetLinesByOrderID(orderID string) ([]*entity.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.OrderLine, 0, len(r.s.lines[orderID]))
	for _, l := range r.s.lines[orderID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) MaxCode(prefix string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	best, bestN := "", int64(-1)
	for _, o := range r.s.orders {
		n, ok := numericSuffix(o.Code, prefix)
		if ok && n > bestN {
			best, bestN = o.Code, n
		}
	}
	return best, nil
}

func (r *memOrderRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *memOrderRepo) ListByDateRange(from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if from != nil && o.OrderedAt.Before(*from) {
			continue
		}
		if to != nil && o.OrderedAt.After(*to) {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func numericSuffix(code, prefix string) (int64, bool) {
	if !strings.HasPrefix(code, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(code[len(prefix):], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ── Repositorio de productos ──────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) UpdateStockQuantity(id string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

// ── Repositorio de movimientos ────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovementRepo) ListByReference(refType, refID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if m.RefType == refType && m.RefID == refID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) SumByProduct(productID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.SignedQuantity()
		}
	}
	return sum, nil
}

// ── Repositorio de clientes ───────────────────────────────────────────────────

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.Code == customer.Code {
			return domain.ErrCodeConflict
		}
	}
	cp := *customer
	r.s.customers[customer.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) MaxCode(prefix string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	best, bestN := "", int64(-1)
	for _, c := range r.s.customers {
		n, ok := numericSuffix(c.Code, prefix)
		if ok && n > bestN {
			best, bestN = c.Code, n
		}
	}
	return best, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		cp := *c
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ── Publicador de eventos ─────────────────────────────────────────────────────

type memPublisher struct {
	mu     sync.Mutex
	events []dto.OrderCreatedEvent
}

func (p *memPublisher) PublishOrderCreated(ctx context.Context, event dto.OrderCreatedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}
