package mem

import (
	"sync"
	"testing"
	"time"
)

func TestUsageCredits_SpendToCeiling(t *testing.T) {
	t.Parallel()

	store := NewUsageCredits(5, time.Hour)
	key := "guest:session-1"

	for i := 0; i < 5; i++ {
		remaining, atLimit := store.Spend(key)
		if atLimit {
			t.Fatalf("spend %d hit the limit early", i+1)
		}
		if want := 4 - i; remaining != want {
			t.Errorf("spend %d remaining = %d, want %d", i+1, remaining, want)
		}
	}

	if got := store.Remaining(key); got != 0 {
		t.Errorf("Remaining after ceiling = %d, want 0", got)
	}

	// Spends past the ceiling are no-ops: the count never exceeds it.
	for i := 0; i < 3; i++ {
		remaining, atLimit := store.Spend(key)
		if !atLimit {
			t.Fatal("spend past ceiling should report atLimit")
		}
		if remaining != 0 {
			t.Errorf("remaining past ceiling = %d, want 0", remaining)
		}
	}
	if got := store.Remaining(key); got != 0 {
		t.Errorf("Remaining after over-spend = %d, want 0", got)
	}
}

func TestUsageCredits_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	store := NewUsageCredits(1, time.Hour)

	if _, atLimit := store.Spend("guest:a"); atLimit {
		t.Fatal("first spend for a should pass")
	}
	if _, atLimit := store.Spend("guest:a"); !atLimit {
		t.Fatal("second spend for a should hit the limit")
	}
	if _, atLimit := store.Spend("guest:b"); atLimit {
		t.Fatal("b should have its own allowance")
	}
}

func TestUsageCredits_Reset(t *testing.T) {
	t.Parallel()

	store := NewUsageCredits(1, time.Hour)
	store.Spend("acct:x")
	if got := store.Remaining("acct:x"); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}

	store.Reset("acct:x")
	if got := store.Remaining("acct:x"); got != 1 {
		t.Errorf("Remaining after reset = %d, want 1", got)
	}
}

func TestUsageCredits_EntryExpiry(t *testing.T) {
	t.Parallel()

	store := NewUsageCredits(1, 10*time.Millisecond)
	store.Spend("guest:stale")

	time.Sleep(25 * time.Millisecond)

	if _, atLimit := store.Spend("guest:stale"); atLimit {
		t.Error("expired entry should grant a fresh allowance")
	}
}

func TestUsageCredits_ZeroCeiling(t *testing.T) {
	t.Parallel()

	store := NewUsageCredits(0, time.Hour)
	if _, atLimit := store.Spend("guest:any"); !atLimit {
		t.Error("zero ceiling should deny the first spend")
	}
}

func TestUsageCredits_ConcurrentSpend(t *testing.T) {
	t.Parallel()

	const ceiling = 50
	store := NewUsageCredits(ceiling, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, atLimit := store.Spend("guest:burst"); !atLimit {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != ceiling {
		t.Errorf("granted = %d, want exactly %d", granted, ceiling)
	}
}
