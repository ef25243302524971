package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"event-planner/internal/contacts"
	"event-planner/internal/models"
	"event-planner/internal/watch"
)

// GuestStore persists guests.
type GuestStore interface {
	InsertGuest(ctx context.Context, g *models.Guest) error
	UpdateGuest(ctx context.Context, g models.Guest) error
	DeleteGuest(ctx context.Context, id int64) error
	GetGuest(ctx context.Context, id int64) (models.Guest, error)
	ListGuests(ctx context.Context) ([]models.Guest, error)
}

// ContactResolver resolves an address book reference.
type ContactResolver interface {
	Resolve(ctx context.Context, ref string) (contacts.Contact, error)
}

var errNoAddressBook = errors.New("no address book configured")

type GuestService struct {
	store    GuestStore
	resolver ContactResolver
	log      zerolog.Logger
	mu       sync.Mutex
	live     *liveList[models.Guest]
	summary  *watch.Feed[models.RSVPSummary]
}

// NewGuestService wires a guest service. resolver may be nil, in which case
// ImportContact always fails with a lookup error.
func NewGuestService(store GuestStore, resolver ContactResolver, log zerolog.Logger) *GuestService {
	log = log.With().Str("component", "guests").Logger()
	return &GuestService{
		store:    store,
		resolver: resolver,
		log:      log,
		live:     newLiveList(store.ListGuests, log),
		summary:  watch.NewFeed[models.RSVPSummary](),
	}
}

// ImportGuest adds a guest who is not yet invited and has not responded.
func (s *GuestService) ImportGuest(ctx context.Context, name, phoneNumber string) (models.Guest, error) {
	name, err := required("name", name)
	if err != nil {
		return models.Guest{}, err
	}
	phoneNumber, err = required("phone_number", phoneNumber)
	if err != nil {
		return models.Guest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := models.Guest{Name: name, PhoneNumber: phoneNumber, RSVPStatus: models.RSVPNoResponse}
	if err := s.store.InsertGuest(ctx, &g); err != nil {
		return models.Guest{}, err
	}
	s.log.Debug().Int64("guest_id", g.ID).Str("name", g.Name).Msg("Added guest")
	s.refresh(ctx)
	return g, nil
}

// ImportContact resolves ref through the address book and adds the contact
// as a guest. Lookup failures are returned as *models.LookupError.
func (s *GuestService) ImportContact(ctx context.Context, ref string) (models.Guest, error) {
	if s.resolver == nil {
		s.log.Warn().Str("ref", ref).Msg("Contact import without address book")
		return models.Guest{}, &models.LookupError{Ref: ref, Err: errNoAddressBook}
	}
	c, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return models.Guest{}, err
	}
	return s.ImportGuest(ctx, c.DisplayName, c.PhoneNumber)
}

// SetRsvpStatus records the guest's response.
func (s *GuestService) SetRsvpStatus(ctx context.Context, id int64, status models.RSVPStatus) (models.Guest, error) {
	if !status.Valid() {
		return models.Guest{}, &models.ValidationError{Field: "rsvp_status", Msg: "unknown status " + string(status)}
	}
	return s.modify(ctx, id, func(g *models.Guest) { g.RSVPStatus = status })
}

// SetInvited flips the invited flag.
func (s *GuestService) SetInvited(ctx context.Context, id int64, invited bool) (models.Guest, error) {
	return s.modify(ctx, id, func(g *models.Guest) { g.IsInvited = invited })
}

func (s *GuestService) modify(ctx context.Context, id int64, change func(*models.Guest)) (models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.GetGuest(ctx, id)
	if err != nil {
		return models.Guest{}, err
	}
	change(&g)
	if err := s.store.UpdateGuest(ctx, g); err != nil {
		return models.Guest{}, err
	}
	s.log.Debug().
		Int64("guest_id", g.ID).
		Str("rsvp_status", string(g.RSVPStatus)).
		Bool("invited", g.IsInvited).
		Msg("Guest updated")
	s.refresh(ctx)
	return g, nil
}

// RemoveGuest deletes the guest; a missing id is ignored.
func (s *GuestService) RemoveGuest(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteGuest(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("guest_id", id).Msg("Removed guest")
	s.refresh(ctx)
	return nil
}

func (s *GuestService) GetGuest(ctx context.Context, id int64) (models.Guest, error) {
	return s.store.GetGuest(ctx, id)
}

func (s *GuestService) ListGuests(ctx context.Context) ([]models.Guest, error) {
	return s.store.ListGuests(ctx)
}

// RsvpSummary counts the current guests per RSVP bucket. It is recomputed
// on every call.
func (s *GuestService) RsvpSummary(ctx context.Context) (models.RSVPSummary, error) {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return models.RSVPSummary{}, err
	}
	return models.Summarize(guests), nil
}

// Watch streams the guest list after every committed change.
func (s *GuestService) Watch(ctx context.Context) (<-chan []models.Guest, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prime(ctx); err != nil {
		return nil, nil, err
	}
	return s.live.watch(ctx)
}

// WatchSummary streams the RSVP summary after every committed change.
func (s *GuestService) WatchSummary(ctx context.Context) (<-chan models.RSVPSummary, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prime(ctx); err != nil {
		return nil, nil, err
	}
	ch, cancel := s.summary.Subscribe()
	return ch, cancel, nil
}

func (s *GuestService) prime(ctx context.Context) error {
	if _, ok := s.summary.Current(); ok {
		return nil
	}
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return err
	}
	s.live.feed.Publish(guests)
	s.summary.Publish(models.Summarize(guests))
	return nil
}

func (s *GuestService) refresh(ctx context.Context) {
	if guests, ok := s.live.refresh(ctx); ok {
		s.summary.Publish(models.Summarize(guests))
	}
}
