package handler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"event-planner/internal/models"
	"event-planner/internal/notify"
	"event-planner/internal/service"
	"event-planner/internal/storage"
)

type recordingGateway struct {
	mu       sync.Mutex
	messages map[string][]string
	fail     map[string]bool
}

func (g *recordingGateway) Send(_ context.Context, number, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail[number] {
		return errors.New("not on WhatsApp")
	}
	if g.messages == nil {
		g.messages = make(map[string][]string)
	}
	g.messages[number] = append(g.messages[number], message)
	return nil
}

func setup(t *testing.T) (*RSVPHandler, *service.GuestService, *recordingGateway) {
	t.Helper()
	st, err := storage.NewStorage(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	guests := service.NewGuestService(st, nil, zerolog.Nop())
	gw := &recordingGateway{fail: map[string]bool{}}
	b := notify.NewBroadcaster(gw, 0, 1, zerolog.Nop())
	h := NewRSVPHandler(guests, b, gw, &Config{InviteMessage: "You're invited to our event! RSVP now."}, zerolog.Nop())
	return h, guests, gw
}

func TestSendInvitationsMarksDeliveredGuests(t *testing.T) {
	h, guests, gw := setup(t)
	ctx := context.Background()

	jane, _ := guests.ImportGuest(ctx, "Jane Doe", "+15550001")
	john, _ := guests.ImportGuest(ctx, "John Roe", "+15550002")
	gw.fail["+15550002"] = true

	report, err := h.SendInvitations(ctx, []int64{jane.ID, john.ID}, "")
	if err != nil {
		t.Fatalf("send invitations: %v", err)
	}
	if len(report.Sent()) != 1 || len(report.Failed()) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if msgs := gw.messages["+15550001"]; len(msgs) != 1 || msgs[0] != "You're invited to our event! RSVP now." {
		t.Fatalf("messages = %v", gw.messages)
	}

	if g, _ := guests.GetGuest(ctx, jane.ID); !g.IsInvited {
		t.Error("delivered guest should be marked invited")
	}
	if g, _ := guests.GetGuest(ctx, john.ID); g.IsInvited {
		t.Error("failed guest should not be marked invited")
	}
}

func TestSendInvitationsWithoutGatewayInvitesNobody(t *testing.T) {
	h, guests, _ := setup(t)
	ctx := context.Background()

	gw := notify.NewLogGateway(zerolog.Nop())
	h = NewRSVPHandler(guests, notify.NewBroadcaster(gw, 0, 1, zerolog.Nop()), gw, &Config{InviteMessage: "hi"}, zerolog.Nop())

	jane, _ := guests.ImportGuest(ctx, "Jane Doe", "+15550001")
	report, err := h.SendInvitations(ctx, []int64{jane.ID}, "")
	if err != nil {
		t.Fatalf("send invitations: %v", err)
	}
	if len(report.Sent()) != 0 || len(report.Failed()) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if g, _ := guests.GetGuest(ctx, jane.ID); g.IsInvited {
		t.Fatal("guest marked invited although nothing was sent")
	}
}

func TestSendInvitationsUnknownGuest(t *testing.T) {
	h, _, gw := setup(t)
	_, err := h.SendInvitations(context.Background(), []int64{77}, "hi")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(gw.messages) != 0 {
		t.Fatal("nothing should be sent when a guest is missing")
	}
}

func TestHandleReply(t *testing.T) {
	h, guests, gw := setup(t)
	ctx := context.Background()

	jane, _ := guests.ImportGuest(ctx, "Jane Doe", "+1 555 0001")

	handled, err := h.HandleReply(ctx, "15550001", "Yes, we will be there!")
	if err != nil || !handled {
		t.Fatalf("HandleReply = %v, %v", handled, err)
	}
	if g, _ := guests.GetGuest(ctx, jane.ID); g.RSVPStatus != models.RSVPAttending {
		t.Fatalf("status = %q", g.RSVPStatus)
	}
	if len(gw.messages["+1 555 0001"]) != 1 {
		t.Fatalf("confirmation not sent: %v", gw.messages)
	}

	if handled, _ := h.HandleReply(ctx, "15550001", "what time is dinner?"); handled {
		t.Fatal("unclear reply should be ignored")
	}
	if handled, _ := h.HandleReply(ctx, "19990000", "yes"); handled {
		t.Fatal("reply from a stranger should be ignored")
	}
}

func TestHandleMessage(t *testing.T) {
	h, guests, _ := setup(t)
	ctx := context.Background()
	jane, _ := guests.ImportGuest(ctx, "Jane Doe", "+15550001")

	text := "sorry, can't make it"
	msg := &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{Sender: types.NewJID("15550001", types.DefaultUserServer)},
		},
		Message: &waE2E.Message{Conversation: &text},
	}
	if err := h.HandleMessage(msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if g, _ := guests.GetGuest(ctx, jane.ID); g.RSVPStatus != models.RSVPNotAttending {
		t.Fatalf("status = %q", g.RSVPStatus)
	}
}

func TestHandleReplyNegatedAccept(t *testing.T) {
	h, guests, _ := setup(t)
	ctx := context.Background()
	jane, _ := guests.ImportGuest(ctx, "Jane Doe", "+15550001")

	handled, err := h.HandleReply(ctx, "15550001", "Not attending")
	if err != nil || !handled {
		t.Fatalf("HandleReply = %v, %v", handled, err)
	}
	if g, _ := guests.GetGuest(ctx, jane.ID); g.RSVPStatus != models.RSVPNotAttending {
		t.Fatalf("status = %q", g.RSVPStatus)
	}
}

func TestHandleMessageFromLIDChat(t *testing.T) {
	h, guests, _ := setup(t)
	ctx := context.Background()
	jane, _ := guests.ImportGuest(ctx, "Jane Doe", "+15550001")

	text := "yes"
	msg := &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Sender:    types.NewJID("123456789012345", types.HiddenUserServer),
				SenderAlt: types.NewJID("15550001", types.DefaultUserServer),
			},
		},
		Message: &waE2E.Message{Conversation: &text},
	}
	if err := h.HandleMessage(msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if g, _ := guests.GetGuest(ctx, jane.ID); g.RSVPStatus != models.RSVPAttending {
		t.Fatalf("status = %q", g.RSVPStatus)
	}
}

func TestSenderPhone(t *testing.T) {
	pn := types.NewJID("15550001", types.DefaultUserServer)
	lid := types.NewJID("123456789012345", types.HiddenUserServer)
	tests := []struct {
		name string
		src  types.MessageSource
		want string
	}{
		{"phone chat", types.MessageSource{Sender: pn}, "15550001"},
		{"lid chat", types.MessageSource{Sender: lid, SenderAlt: pn}, "15550001"},
		{"lid without alt", types.MessageSource{Sender: lid}, "123456789012345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := senderPhone(tt.src); got != tt.want {
				t.Errorf("senderPhone = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		text   string
		want   models.RSVPStatus
		wantOK bool
	}{
		{"YES", models.RSVPAttending, true},
		{"we're coming ✅", models.RSVPAttending, true},
		{"no", models.RSVPNotAttending, true},
		{"Sorry, not coming", models.RSVPNotAttending, true},
		{"I know the venue", "", false},
		{"❌", models.RSVPNotAttending, true},
		{"hello", "", false},
		{"Not attending", models.RSVPNotAttending, true},
		{"I will not be attending, sorry", models.RSVPNotAttending, true},
		{"not accepting", models.RSVPNotAttending, true},
		{"We won’t be coming", models.RSVPNotAttending, true},
		{"I can't wait, we're coming!", models.RSVPAttending, true},
		{"Yes, we will be there!", models.RSVPAttending, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseReply(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseReply(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
