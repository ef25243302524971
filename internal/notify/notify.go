package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"event-planner/internal/models"
)

// Gateway delivers one text message to one phone number.
type Gateway interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// Outcome is the result of sending to a single recipient. Err is a
// *models.SendError on failure.
type Outcome struct {
	PhoneNumber string `json:"phone_number"`
	Err         error  `json:"-"`
}

// Report holds one Outcome per distinct recipient, in the order given.
type Report struct {
	Outcomes []Outcome
}

// Sent lists the recipients that were delivered to.
func (r Report) Sent() []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.Err == nil {
			out = append(out, o.PhoneNumber)
		}
	}
	return out
}

// Failed lists the outcomes that carry an error.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// OK reports whether every recipient was delivered to.
func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

// Broadcaster sends one message to many recipients, each independently.
type Broadcaster struct {
	gateway Gateway
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewBroadcaster paces sends to perSecond messages with the given burst.
// A non-positive perSecond disables pacing.
func NewBroadcaster(gateway Gateway, perSecond float64, burst int, log zerolog.Logger) *Broadcaster {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Broadcaster{
		gateway: gateway,
		limiter: rate.NewLimiter(limit, burst),
		log:     log.With().Str("component", "notify").Logger(),
	}
}

// Broadcast sends message to every distinct, non-blank recipient. A failure
// for one recipient is recorded and the loop moves on; nothing is retried.
func (b *Broadcaster) Broadcast(ctx context.Context, message string, recipients []string) (Report, error) {
	if strings.TrimSpace(message) == "" {
		return Report{}, &models.ValidationError{Field: "message", Msg: "must not be empty"}
	}

	var report Report
	for _, phone := range dedupe(recipients) {
		report.Outcomes = append(report.Outcomes, b.sendOne(ctx, phone, message))
	}

	b.log.Info().
		Int("recipients", len(report.Outcomes)).
		Int("failed", len(report.Failed())).
		Msg("Broadcast finished")
	return report, nil
}

func (b *Broadcaster) sendOne(ctx context.Context, phone, message string) Outcome {
	err := b.limiter.Wait(ctx)
	if err == nil {
		err = b.gateway.Send(ctx, phone, message)
	}
	if err != nil {
		b.log.Warn().Err(err).Str("phone", phone).Msg("Failed to send message")
		return Outcome{PhoneNumber: phone, Err: &models.SendError{PhoneNumber: phone, Err: err}}
	}
	return Outcome{PhoneNumber: phone}
}

func dedupe(recipients []string) []string {
	seen := make(map[string]bool, len(recipients))
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
