package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"event-planner/internal/models"
)

// EventStore persists events.
type EventStore interface {
	InsertEvent(ctx context.Context, e *models.Event) error
	UpdateEvent(ctx context.Context, e models.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	GetEvent(ctx context.Context, id int64) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// EventFields are the user-editable fields of an event. Name and Date are
// required.
type EventFields struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Theme    string `json:"theme"`
	Timeline string `json:"timeline"`
}

func (f EventFields) validate() (EventFields, error) {
	var err error
	if f.Name, err = required("name", f.Name); err != nil {
		return f, err
	}
	if f.Date, err = required("date", f.Date); err != nil {
		return f, err
	}
	f.Location = strings.TrimSpace(f.Location)
	f.Theme = strings.TrimSpace(f.Theme)
	f.Timeline = strings.TrimSpace(f.Timeline)
	return f, nil
}

func (f EventFields) event(id int64) models.Event {
	return models.Event{ID: id, Name: f.Name, Date: f.Date, Location: f.Location, Theme: f.Theme, Timeline: f.Timeline}
}

type EventService struct {
	store EventStore
	log   zerolog.Logger
	mu    sync.Mutex
	live  *liveList[models.Event]
}

func NewEventService(store EventStore, log zerolog.Logger) *EventService {
	log = log.With().Str("component", "events").Logger()
	return &EventService{
		store: store,
		log:   log,
		live:  newLiveList(store.ListEvents, log),
	}
}

// AddEvent validates f and stores a new event.
func (s *EventService) AddEvent(ctx context.Context, f EventFields) (models.Event, error) {
	f, err := f.validate()
	if err != nil {
		return models.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := f.event(0)
	if err := s.store.InsertEvent(ctx, &e); err != nil {
		return models.Event{}, err
	}
	s.log.Debug().Int64("event_id", e.ID).Str("name", e.Name).Msg("Event added")
	s.live.refresh(ctx)
	return e, nil
}

// UpdateEvent replaces all five fields of the event with id.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, f EventFields) (models.Event, error) {
	f, err := f.validate()
	if err != nil {
		return models.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := f.event(id)
	if err := s.store.UpdateEvent(ctx, e); err != nil {
		return models.Event{}, err
	}
	s.log.Debug().Int64("event_id", id).Msg("Event updated")
	s.live.refresh(ctx)
	return e, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("event_id", id).Msg("Event deleted")
	s.live.refresh(ctx)
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.store.ListEvents(ctx)
}

// Watch streams the event list after every committed change.
func (s *EventService) Watch(ctx context.Context) (<-chan []models.Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.watch(ctx)
}
