package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"event-planner/internal/models"
)

type fakeGateway struct {
	mu   sync.Mutex
	sent []string
	fail map[string]error
}

func (g *fakeGateway) Send(_ context.Context, phone, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail[phone]; err != nil {
		return err
	}
	g.sent = append(g.sent, phone)
	return nil
}

func TestBroadcastContinuesPastFailures(t *testing.T) {
	boom := errors.New("radio off")
	gw := &fakeGateway{fail: map[string]error{"+2": boom}}
	b := NewBroadcaster(gw, 0, 1, zerolog.Nop())

	report, err := b.Broadcast(context.Background(), "You're invited!", []string{"+1", "+2", "+3"})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(report.Outcomes) != 3 {
		t.Fatalf("outcomes = %+v", report.Outcomes)
	}
	if got := report.Sent(); len(got) != 2 || got[0] != "+1" || got[1] != "+3" {
		t.Fatalf("sent = %v", got)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].PhoneNumber != "+2" {
		t.Fatalf("failed = %+v", failed)
	}
	var sendErr *models.SendError
	if !errors.As(failed[0].Err, &sendErr) || !errors.Is(failed[0].Err, boom) {
		t.Fatalf("failure should be SendError wrapping cause, got %v", failed[0].Err)
	}
	if report.OK() {
		t.Fatal("report with failures should not be OK")
	}
}

func TestBroadcastDedupesRecipients(t *testing.T) {
	gw := &fakeGateway{}
	b := NewBroadcaster(gw, 0, 1, zerolog.Nop())

	report, err := b.Broadcast(context.Background(), "hi", []string{"+1", " +1 ", "", "+2", "+1"})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(gw.sent) != 2 || !report.OK() {
		t.Fatalf("sent = %v, report = %+v", gw.sent, report)
	}
}

func TestBroadcastRejectsEmptyMessage(t *testing.T) {
	b := NewBroadcaster(&fakeGateway{}, 0, 1, zerolog.Nop())
	_, err := b.Broadcast(context.Background(), "  ", []string{"+1"})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBroadcastCancelledContextFailsEachRecipient(t *testing.T) {
	gw := &fakeGateway{}
	b := NewBroadcaster(gw, 0.001, 1, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := b.Broadcast(ctx, "hi", []string{"+1", "+2"})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(report.Failed()) != 2 || len(gw.sent) != 0 {
		t.Fatalf("report = %+v, sent = %v", report, gw.sent)
	}
}

func TestNoRecipientsIsEmptyReport(t *testing.T) {
	b := NewBroadcaster(NewLogGateway(zerolog.Nop()), 1, 1, zerolog.Nop())
	report, err := b.Broadcast(context.Background(), "hi", nil)
	if err != nil || len(report.Outcomes) != 0 || !report.OK() {
		t.Fatalf("report = %+v, err = %v", report, err)
	}
}

func TestLogGatewayDeliversNothing(t *testing.T) {
	b := NewBroadcaster(NewLogGateway(zerolog.Nop()), 0, 1, zerolog.Nop())
	report, err := b.Broadcast(context.Background(), "hi", []string{"+15550001"})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(report.Sent()) != 0 || report.OK() {
		t.Fatalf("report = %+v", report)
	}
	failed := report.Failed()[0].Err
	if !errors.Is(failed, models.ErrSend) || !errors.Is(failed, ErrNoGateway) {
		t.Fatalf("err = %v", failed)
	}
}
