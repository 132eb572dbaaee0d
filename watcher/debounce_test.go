package watcher

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := newDebouncer()

	var calls int32
	for i := 0; i < 3; i++ {
		d.schedule("a.go", 20*time.Millisecond, func() {
			atomic.AddInt32(&calls, 1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly 1 call, got %d", got)
	}
}

func TestDebouncerDistinctKeysFireIndependently(t *testing.T) {
	d := newDebouncer()

	var calls int32
	d.schedule("a.go", 10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	d.schedule("b.go", 10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	time.Sleep(40 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestDebouncerStopAllCancelsPending(t *testing.T) {
	d := newDebouncer()

	var calls int32
	d.schedule("a.go", 20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	d.stopAll()

	time.Sleep(40 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected 0 calls after stopAll, got %d", got)
	}
}
