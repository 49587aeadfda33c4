package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{byID: make(map[string]*domain.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	clone := *p
	clone.ID = fmt.Sprintf("product-%d", len(r.byID)+1)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	seq       int
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) put(o *domain.Order) {
	r.byID[o.ID] = cloneOrder(o)
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	c := cloneOrder(o)
	c.ID = fmt.Sprintf("order-%d", r.seq)
	r.byID[c.ID] = c
	return cloneOrder(c), nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, userID, key string) (*domain.Order, error) {
	for _, o := range r.byID {
		if o.UserID == userID && o.IdempotencyKey == key {
			return cloneOrder(o), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) sorted(keep func(*domain.Order) bool) []*domain.Order {
	var out []*domain.Order
	for _, o := range r.byID {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateOrdered.After(out[j].DateOrdered) })
	return out
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	return r.sorted(func(*domain.Order) bool { return true }), nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	return r.sorted(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	return o, nil
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubOrderRepo) TotalSales(_ context.Context) (float64, error) {
	var total float64
	for _, o := range r.byID {
		total += o.TotalPrice
	}
	return total, nil
}

// ---------------------------------------------------------------------------
// Audit, tokens, limiter
// ---------------------------------------------------------------------------

type stubAuditRepo struct {
	events []*domain.OrderEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.OrderEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *stubAuditRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.OrderEvent, error) {
	var out []*domain.OrderEvent
	for _, e := range r.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	events []domain.OrderEvent
}

func (p *recordingPublisher) Publish(e domain.OrderEvent) {
	p.events = append(p.events, e)
}

type stubTokens struct {
	issued []domain.Identity
}

func (s *stubTokens) Issue(id domain.Identity) (string, error) {
	s.issued = append(s.issued, id)
	return "token-for-" + id.UserID, nil
}

type stubLimiter struct {
	failures map[string]int
	max      int
	resets   int
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), max: max}
}

func (l *stubLimiter) Locked(_ context.Context, email string) (bool, error) {
	return l.failures[email] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.resets++
	delete(l.failures, email)
	return nil
}
