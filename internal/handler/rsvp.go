package handler

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"event-planner/internal/models"
	"event-planner/internal/notify"
	"event-planner/internal/phone"
)

// Guests is the part of the guest service the RSVP handler needs.
type Guests interface {
	GetGuest(ctx context.Context, id int64) (models.Guest, error)
	ListGuests(ctx context.Context) ([]models.Guest, error)
	SetInvited(ctx context.Context, id int64, invited bool) (models.Guest, error)
	SetRsvpStatus(ctx context.Context, id int64, status models.RSVPStatus) (models.Guest, error)
}

type Config struct {
	DefaultCountryCode string
	InviteMessage      string
}

type RSVPHandler struct {
	guests      Guests
	broadcaster *notify.Broadcaster
	gateway     notify.Gateway
	config      *Config
	log         zerolog.Logger
}

// NewRSVPHandler creates a new RSVP handler. Invitations go out through the
// broadcaster, reply confirmations directly through the gateway.
func NewRSVPHandler(guests Guests, broadcaster *notify.Broadcaster, gateway notify.Gateway, cfg *Config, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		guests:      guests,
		broadcaster: broadcaster,
		gateway:     gateway,
		config:      cfg,
		log:         log.With().Str("component", "rsvp").Logger(),
	}
}

// SendInvitations messages the selected guests and marks every guest whose
// message went out as invited. An empty message falls back to the configured
// invitation text.
func (h *RSVPHandler) SendInvitations(ctx context.Context, guestIDs []int64, message string) (notify.Report, error) {
	if strings.TrimSpace(message) == "" {
		message = h.config.InviteMessage
	}

	byPhone := make(map[string][]int64)
	var recipients []string
	for _, id := range guestIDs {
		g, err := h.guests.GetGuest(ctx, id)
		if err != nil {
			return notify.Report{}, err
		}
		number := strings.TrimSpace(g.PhoneNumber)
		if _, seen := byPhone[number]; !seen {
			recipients = append(recipients, number)
		}
		byPhone[number] = append(byPhone[number], g.ID)
	}

	report, err := h.broadcaster.Broadcast(ctx, message, recipients)
	if err != nil {
		return notify.Report{}, err
	}

	for _, number := range report.Sent() {
		for _, id := range byPhone[number] {
			if _, err := h.guests.SetInvited(ctx, id, true); err != nil {
				h.log.Error().Err(err).Int64("guest_id", id).Msg("Failed to mark guest invited")
			}
		}
	}
	return report, nil
}

// HandleMessage processes incoming WhatsApp messages for RSVP responses
func (h *RSVPHandler) HandleMessage(msg *events.Message) error {
	if msg.Message == nil {
		return nil
	}
	text := msg.Message.GetConversation()
	if text == "" {
		text = msg.Message.GetExtendedTextMessage().GetText()
	}
	if text == "" {
		return nil
	}

	_, err := h.HandleReply(context.Background(), senderPhone(msg.Info.MessageSource), text)
	return err
}

// senderPhone returns the sender's phone number. Chats addressed by LID carry
// the phone number JID in SenderAlt.
func senderPhone(src types.MessageSource) string {
	if src.Sender.Server == types.HiddenUserServer && !src.SenderAlt.IsEmpty() {
		return src.SenderAlt.User
	}
	return src.Sender.User
}

// HandleReply records an RSVP from a free-text reply sent by sender.
// It reports false when the sender is not a guest or the text is not a
// clear yes or no.
func (h *RSVPHandler) HandleReply(ctx context.Context, sender, text string) (bool, error) {
	guest, ok, err := h.findGuest(ctx, sender)
	if err != nil {
		return false, err
	}
	if !ok {
		// Not on the guest list, might be an unrelated conversation
		return false, nil
	}

	status, ok := parseReply(text)
	if !ok {
		return false, nil
	}

	if _, err := h.guests.SetRsvpStatus(ctx, guest.ID, status); err != nil {
		return false, fmt.Errorf("failed to update RSVP: %w", err)
	}
	h.log.Info().Int64("guest_id", guest.ID).Str("rsvp_status", string(status)).Msg("RSVP received")

	if err := h.gateway.Send(ctx, guest.PhoneNumber, confirmation(guest.Name, status)); err != nil {
		return true, fmt.Errorf("failed to send confirmation: %w", err)
	}
	return true, nil
}

func (h *RSVPHandler) findGuest(ctx context.Context, number string) (models.Guest, bool, error) {
	guests, err := h.guests.ListGuests(ctx)
	if err != nil {
		return models.Guest{}, false, err
	}
	for _, g := range guests {
		if phone.Same(g.PhoneNumber, number, h.config.DefaultCountryCode) {
			return g, true, nil
		}
	}
	return models.Guest{}, false, nil
}

var (
	declineWords = []string{"no", "nope", "decline", "declining", "not coming", "can't come", "won't come", "can't make it", "❌"}
	acceptWords  = []string{"yes", "yep", "yeah", "accept", "accepting", "attending", "coming", "will come", "will be there", "✅"}
	negations    = map[string]bool{
		"not": true, "won't": true, "wont": true, "can't": true, "cant": true,
		"cannot": true, "don't": true, "dont": true, "unable": true, "never": true,
	}
)

// parseReply maps a reply to a status. Declines are checked first. An accept
// word after a negation in the same clause ("not attending", "I will not be
// attending, sorry") is a decline.
func parseReply(text string) (models.RSVPStatus, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "’", "'")

	if containsAny(text, tokenize(text), declineWords...) {
		return models.RSVPNotAttending, true
	}

	clauses := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(",.;:!?\n", r)
	})
	for _, clause := range clauses {
		negated := false
		for _, w := range tokenize(clause) {
			switch {
			case negations[w]:
				negated = true
			case slices.Contains(acceptWords, w) && negated:
				return models.RSVPNotAttending, true
			case slices.Contains(acceptWords, w):
				return models.RSVPAttending, true
			}
		}
	}

	if containsAny(text, nil, acceptWords...) {
		return models.RSVPAttending, true
	}
	return "", false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && r != '\''
	})
}

// containsAny matches single-word keywords against whole words and phrases
// or symbols against the raw text.
func containsAny(text string, words []string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.ContainsAny(keyword, " ❌✅") {
			if strings.Contains(text, keyword) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == keyword {
				return true
			}
		}
	}
	return false
}

func confirmation(name string, status models.RSVPStatus) string {
	if status == models.RSVPAttending {
		return fmt.Sprintf("Wonderful, %s! We've confirmed your attendance. See you there!", name)
	}
	return fmt.Sprintf("Thank you for letting us know, %s. We'll miss you!", name)
}
