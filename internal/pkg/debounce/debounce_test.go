package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls int32
	d := New(30*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 invocation after burst, got %d", got)
	}
}

func TestDebouncer_TrailingEdge(t *testing.T) {
	fired := make(chan struct{}, 1)
	d := New(20*time.Millisecond, func() {
		fired <- struct{}{}
	})

	d.Trigger()
	select {
	case <-fired:
		t.Fatal("fired before delay elapsed")
	case <-time.After(5 * time.Millisecond):
	}

	select {
	case <-fired:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("never fired")
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var calls int32
	d := New(20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("expected no invocation after Stop, got %d", got)
	}
}

func TestDebouncer_RetriggersAfterFire(t *testing.T) {
	var calls int32
	d := New(10*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	time.Sleep(50 * time.Millisecond)
	d.Trigger()
	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 invocations, got %d", got)
	}
}
