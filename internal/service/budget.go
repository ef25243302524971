package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"event-planner/internal/models"
	"event-planner/internal/watch"
)

// BudgetStore persists budget lines.
type BudgetStore interface {
	InsertBudgetLine(ctx context.Context, b *models.BudgetLine) error
	UpdateBudgetLine(ctx context.Context, b models.BudgetLine) error
	DeleteBudgetLine(ctx context.Context, id int64) error
	ListBudgetLines(ctx context.Context) ([]models.BudgetLine, error)
}

// ParseAmount parses user-entered money text. Negative, non-numeric and
// non-finite values are rejected.
func ParseAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &models.ValidationError{Field: "amount", Msg: "must not be empty"}
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &models.ValidationError{Field: "amount", Msg: "must be a number"}
	}
	if amount < 0 {
		return 0, &models.ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	return amount, nil
}

type BudgetService struct {
	store BudgetStore
	log   zerolog.Logger
	mu    sync.Mutex
	live  *liveList[models.BudgetLine]
	total *watch.Feed[float64]
}

func NewBudgetService(store BudgetStore, log zerolog.Logger) *BudgetService {
	log = log.With().Str("component", "budget").Logger()
	return &BudgetService{
		store: store,
		log:   log,
		live:  newLiveList(store.ListBudgetLines, log),
		total: watch.NewFeed[float64](),
	}
}

func budgetLine(id int64, name, amount, category string) (models.BudgetLine, error) {
	name, err := required("name", name)
	if err != nil {
		return models.BudgetLine{}, err
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return models.BudgetLine{}, err
	}
	category, err = required("category", category)
	if err != nil {
		return models.BudgetLine{}, err
	}
	return models.BudgetLine{ID: id, Name: name, Amount: value, Category: category}, nil
}

// AddBudgetLine validates the input and stores a new line.
func (s *BudgetService) AddBudgetLine(ctx context.Context, name, amount, category string) (models.BudgetLine, error) {
	b, err := budgetLine(0, name, amount, category)
	if err != nil {
		return models.BudgetLine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.InsertBudgetLine(ctx, &b); err != nil {
		return models.BudgetLine{}, err
	}
	s.log.Debug().Int64("line_id", b.ID).Float64("amount", b.Amount).Msg("Budget line added")
	s.refresh(ctx)
	return b, nil
}

// UpdateBudgetLine replaces all fields of the line with id.
func (s *BudgetService) UpdateBudgetLine(ctx context.Context, id int64, name, amount, category string) (models.BudgetLine, error) {
	b, err := budgetLine(id, name, amount, category)
	if err != nil {
		return models.BudgetLine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateBudgetLine(ctx, b); err != nil {
		return models.BudgetLine{}, err
	}
	s.log.Debug().Int64("line_id", id).Float64("amount", b.Amount).Msg("Budget line updated")
	s.refresh(ctx)
	return b, nil
}

func (s *BudgetService) DeleteBudgetLine(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteBudgetLine(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("line_id", id).Msg("Budget line deleted")
	s.refresh(ctx)
	return nil
}

func (s *BudgetService) ListBudgetLines(ctx context.Context) ([]models.BudgetLine, error) {
	return s.store.ListBudgetLines(ctx)
}

// TotalBudget sums the amounts of all current lines.
func (s *BudgetService) TotalBudget(ctx context.Context) (float64, error) {
	lines, err := s.store.ListBudgetLines(ctx)
	if err != nil {
		return 0, err
	}
	return models.TotalBudget(lines), nil
}

// Watch streams the budget lines after every committed change.
func (s *BudgetService) Watch(ctx context.Context) (<-chan []models.BudgetLine, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prime(ctx); err != nil {
		return nil, nil, err
	}
	return s.live.watch(ctx)
}

// WatchTotal streams the budget total, recomputed on every list change.
func (s *BudgetService) WatchTotal(ctx context.Context) (<-chan float64, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prime(ctx); err != nil {
		return nil, nil, err
	}
	ch, cancel := s.total.Subscribe()
	return ch, cancel, nil
}

func (s *BudgetService) prime(ctx context.Context) error {
	if _, ok := s.total.Current(); ok {
		return nil
	}
	lines, err := s.store.ListBudgetLines(ctx)
	if err != nil {
		return err
	}
	s.live.feed.Publish(lines)
	s.total.Publish(models.TotalBudget(lines))
	return nil
}

func (s *BudgetService) refresh(ctx context.Context) {
	if lines, ok := s.live.refresh(ctx); ok {
		s.total.Publish(models.TotalBudget(lines))
	}
}
