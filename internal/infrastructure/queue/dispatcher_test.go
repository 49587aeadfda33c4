package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
)

type memoryAudit struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	fail   bool
}

func (m *memoryAudit) Insert(_ context.Context, e *domain.OrderEvent) error {
	if m.fail {
		return errors.New("write failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memoryAudit) ListByOrder(_ context.Context, orderID string) ([]*domain.OrderEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OrderEvent
	for i := range m.events {
		if m.events[i].OrderID == orderID {
			e := m.events[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

func TestDispatcherPreservesPerOrderOrdering(t *testing.T) {
	repo := &memoryAudit{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	types := []domain.OrderEventType{
		domain.OrderEventCreated,
		domain.OrderEventStatusUpdated,
		domain.OrderEventStatusUpdated,
		domain.OrderEventDeleted,
	}
	for _, orderID := range []string{"o1", "o2", "o3"} {
		for _, typ := range types {
			d.Publish(domain.OrderEvent{OrderID: orderID, Type: typ, OccurredAt: time.Now()})
		}
	}
	d.Close()

	for _, orderID := range []string{"o1", "o2", "o3"} {
		got, _ := repo.ListByOrder(context.Background(), orderID)
		if len(got) != len(types) {
			t.Fatalf("%s: expected %d events, got %d", orderID, len(types), len(got))
		}
		for i, e := range got {
			if e.Type != types[i] {
				t.Fatalf("%s: event %d = %s, want %s", orderID, i, e.Type, types[i])
			}
		}
	}
}

func TestDispatcherShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(0, &memoryAudit{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("abc") != d.shardIndex("abc") {
		t.Fatal("same order id must map to the same worker")
	}
}

func TestDispatcherPublishAfterCloseIsDropped(t *testing.T) {
	repo := &memoryAudit{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventCreated})
	if len(repo.events) != 0 {
		t.Fatalf("expected no events after close, got %d", len(repo.events))
	}
}

func TestDispatcherSurvivesWriteFailure(t *testing.T) {
	repo := &memoryAudit{fail: true}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventCreated})
	d.Close()

	if len(repo.events) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(repo.events))
	}
}

// gatedAudit records each Insert on entry and then holds it until release is
// closed, keeping the single worker busy.
type gatedAudit struct {
	memoryAudit
	entered chan struct{}
	release chan struct{}
}

func newGatedAudit() *gatedAudit {
	return &gatedAudit{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (g *gatedAudit) Insert(ctx context.Context, e *domain.OrderEvent) error {
	_ = g.memoryAudit.Insert(ctx, e)
	g.entered <- struct{}{}
	<-g.release
	return nil
}

func (g *gatedAudit) types() []domain.OrderEventType {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.OrderEventType, 0, len(g.events))
	for _, e := range g.events {
		out = append(out, e.Type)
	}
	return out
}

func TestDispatcherFullBufferWaitsInsteadOfReordering(t *testing.T) {
	repo := newGatedAudit()
	d := newDispatcher(1, 1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventCreated})
	<-repo.entered
	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventStatusUpdated})

	done := make(chan struct{})
	go func() {
		d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventDeleted})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Publish returned while the buffer was full")
	case <-time.After(50 * time.Millisecond):
	}
	if got := repo.types(); len(got) != 1 {
		t.Fatalf("expected only the in-flight event written, got %v", got)
	}

	close(repo.release)
	<-done
	d.Close()

	want := []domain.OrderEventType{
		domain.OrderEventCreated,
		domain.OrderEventStatusUpdated,
		domain.OrderEventDeleted,
	}
	got := repo.types()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDispatcherDropsWhenBufferStaysFull(t *testing.T) {
	repo := newGatedAudit()
	d := newDispatcher(1, 1, repo, zerolog.Nop())
	d.enqueueTimeout = 10 * time.Millisecond
	d.Start(context.Background())

	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventCreated})
	<-repo.entered
	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventStatusUpdated})
	d.Publish(domain.OrderEvent{OrderID: "o1", Type: domain.OrderEventDeleted})

	close(repo.release)
	d.Close()

	got := repo.types()
	if len(got) != 2 || got[0] != domain.OrderEventCreated || got[1] != domain.OrderEventStatusUpdated {
		t.Fatalf("expected created then status_updated, got %v", got)
	}
}
