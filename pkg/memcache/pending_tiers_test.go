package mem

import (
	"testing"
	"time"
)

func TestPendingTiers_PeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	store := NewPendingTiers()
	store.Set(42, "premium", time.Hour)

	for i := 0; i < 3; i++ {
		tier, ok := store.Peek(42)
		if !ok || tier != "premium" {
			t.Fatalf("peek %d = %q/%v, want premium/true", i+1, tier, ok)
		}
	}

	store.Drop(42)
	if _, ok := store.Peek(42); ok {
		t.Error("dropped entry should not peek")
	}
}

func TestPendingTiers_Expiry(t *testing.T) {
	t.Parallel()

	store := NewPendingTiers()
	store.Set(7, "ultimate", 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Peek(7); ok {
		t.Error("expired entry should not peek")
	}
}

func TestPendingTiers_UnknownOrder(t *testing.T) {
	t.Parallel()

	store := NewPendingTiers()
	if _, ok := store.Peek(999); ok {
		t.Error("unknown order should not peek")
	}
}
