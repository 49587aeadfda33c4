package domain

import "testing"

func TestIdentityRole(t *testing.T) {
	if got := (Identity{UserID: "u1"}).Role(); got != RoleUser {
		t.Fatalf("expected user, got %s", got)
	}
	if got := (Identity{UserID: "u1", IsAdmin: true}).Role(); got != RoleAdmin {
		t.Fatalf("expected admin, got %s", got)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if OrderStatus("pending").Valid() {
		t.Fatal("status match must be case sensitive")
	}
}
