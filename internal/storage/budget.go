package storage

import (
	"context"
	"fmt"

	"event-planner/internal/models"
)

const budgetColumns = `id, name, amount, category`

// InsertBudgetLine stores b and assigns its ID.
func (s *Storage) InsertBudgetLine(ctx context.Context, b *models.BudgetLine) error {
	id, err := s.insert(ctx,
		`INSERT INTO budget_lines (name, amount, category) VALUES (?, ?, ?)`,
		b.Name, b.Amount, b.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget line: %w", err)
	}
	b.ID = id
	return nil
}

// UpdateBudgetLine replaces every field of the line with b.ID.
func (s *Storage) UpdateBudgetLine(ctx context.Context, b models.BudgetLine) error {
	return s.update(ctx, "budget line", b.ID,
		`UPDATE budget_lines SET name = ?, amount = ?, category = ? WHERE id = ?`,
		b.Name, b.Amount, b.Category, b.ID,
	)
}

// DeleteBudgetLine removes the line with id, if any.
func (s *Storage) DeleteBudgetLine(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "budget_lines", id)
}

// ListBudgetLines returns all budget lines ordered by id.
func (s *Storage) ListBudgetLines(ctx context.Context) ([]models.BudgetLine, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budget_lines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget lines: %w", err)
	}
	defer rows.Close()

	lines := make([]models.BudgetLine, 0)
	for rows.Next() {
		var b models.BudgetLine
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount, &b.Category); err != nil {
			return nil, fmt.Errorf("failed to scan budget line: %w", err)
		}
		lines = append(lines, b)
	}
	return lines, rows.Err()
}
