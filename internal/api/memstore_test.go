package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/storefront/shop-api/internal/core/domain"
)

// In-memory repositories so the router can be exercised end to end with the
// real services.

type memUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	m.seq++
	cp := *u
	cp.ID = fmt.Sprintf("user-%d", m.seq)
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) List(_ context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

type memProducts struct {
	products map[string]*domain.Product
}

func (m *memProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	cp := *p
	cp.ID = fmt.Sprintf("product-%d", len(m.products)+1)
	m.products[cp.ID] = &cp
	return &cp, nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type memOrders struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*domain.Order
}

func newMemOrders() *memOrders { return &memOrders{orders: map[string]*domain.Order{}} }

func (m *memOrders) put(o *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.orders[o.ID] = &cp
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cp := *o
	cp.ID = fmt.Sprintf("order-%d", m.seq)
	m.orders[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memOrders) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) FindByIdempotencyKey(_ context.Context, userID, key string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.UserID == userID && o.IdempotencyKey == key {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (m *memOrders) List(ctx context.Context) ([]*domain.Order, error) {
	return m.filter(func(*domain.Order) bool { return true }), nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	return m.filter(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrders) filter(keep func(*domain.Order) bool) []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Order{}
	for _, o := range m.orders {
		if keep(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateOrdered.After(out[j].DateOrdered) })
	return out
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (m *memOrders) Delete(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	delete(m.orders, id)
	return o, nil
}

func (m *memOrders) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orders)), nil
}

func (m *memOrders) TotalSales(_ context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, o := range m.orders {
		total += o.TotalPrice
	}
	return total, nil
}

type memAudit struct {
	mu     sync.Mutex
	events []*domain.OrderEvent
}

func (m *memAudit) Insert(_ context.Context, e *domain.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *memAudit) ListByOrder(_ context.Context, orderID string) ([]*domain.OrderEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OrderEvent
	for _, e := range m.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// syncPublisher writes events straight to the audit store.
type syncPublisher struct{ audit *memAudit }

func (p syncPublisher) Publish(e domain.OrderEvent) {
	_ = p.audit.Insert(context.Background(), &e)
}
