package watch

import (
	"testing"
	"time"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestSubscribeReceivesCurrentValue(t *testing.T) {
	f := NewFeed[int]()
	f.Publish(7)

	ch, cancel := f.Subscribe()
	defer cancel()
	if got := receive(t, ch); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestUnprimedFeedSendsNothingUntilPublish(t *testing.T) {
	f := NewFeed[string]()
	ch, cancel := f.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		t.Fatalf("unexpected value %q", v)
	default:
	}

	f.Publish("a")
	if got := receive(t, ch); got != "a" {
		t.Fatalf("got %q", got)
	}
}

func TestSlowSubscriberSeesLatestOnly(t *testing.T) {
	f := NewFeed[int]()
	ch, cancel := f.Subscribe()
	defer cancel()

	for i := 1; i <= 5; i++ {
		f.Publish(i)
	}
	if got := receive(t, ch); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestCancelClosesAndUnregisters(t *testing.T) {
	f := NewFeed[int]()
	ch, cancel := f.Subscribe()
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed")
	}
	f.Publish(1)

	if v, ok := f.Current(); !ok || v != 1 {
		t.Fatalf("Current = %d, %v", v, ok)
	}
}
