package cache

import (
	"testing"
	"time"
)

func TestDoCachesResult(t *testing.T) {
	m := New(time.Minute, 10)

	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	if got := Do(m, "answer", compute); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := Do(m, "answer", compute); got != 42 {
		t.Errorf("expected 42 on cached read, got %d", got)
	}
	if calls != 1 {
		t.Errorf("expected a single compute call, got %d", calls)
	}
}

func TestDoExpires(t *testing.T) {
	m := New(10*time.Millisecond, 10)

	calls := 0
	compute := func() string {
		calls++
		return "v"
	}

	Do(m, "k", compute)
	time.Sleep(30 * time.Millisecond)
	Do(m, "k", compute)

	if calls != 2 {
		t.Errorf("expected recompute after TTL, got %d calls", calls)
	}
}

func TestDelete(t *testing.T) {
	m := New(time.Minute, 10)

	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	Do(m, "k", compute)
	m.Delete("k")
	if got := Do(m, "k", compute); got != 2 {
		t.Errorf("expected recompute after delete, got %d", got)
	}
}
