package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/model"
)

const expenseColumns = `id, trip_id, title, amount, currency, category, status, paid_amount, due_date, created_at`

// CreateExpense inserts an expense.
func (s *Store) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	e.ID = newID(e.ID)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TripID, e.Title, e.Amount, e.Currency, string(e.Category), string(e.Status),
		e.PaidAmount, nullTime(e.DueDate, fmtDate), fmtTime(e.CreatedAt))
	if err != nil {
		return model.Expense{}, fmt.Errorf("inserting expense: %w", err)
	}
	return s.GetExpense(ctx, e.ID)
}

// UpdateExpense overwrites an existing expense. TripID and CreatedAt are not changed.
func (s *Store) UpdateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	err := s.execOne(ctx, "updating expense", `UPDATE expenses SET
		title = ?, amount = ?, currency = ?, category = ?, status = ?,
		paid_amount = ?, due_date = ?
		WHERE id = ?`,
		e.Title, e.Amount, e.Currency, string(e.Category), string(e.Status),
		e.PaidAmount, nullTime(e.DueDate, fmtDate), e.ID)
	if err != nil {
		return model.Expense{}, err
	}
	return s.GetExpense(ctx, e.ID)
}

// GetExpense loads a single expense.
func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (model.Expense, error) {
	var r expenseRow
	if err := s.db.GetContext(ctx, &r, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id); err != nil {
		return model.Expense{}, notFound(err, "expense "+id.String())
	}
	return r.model()
}

// ListExpenses returns a trip's expenses in the order they were recorded.
func (s *Store) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error) {
	var rows []expenseRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+expenseColumns+` FROM expenses
		WHERE trip_id = ? ORDER BY created_at, title`, tripID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	out := make([]model.Expense, 0, len(rows))
	for _, r := range rows {
		e, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "deleting expense "+id.String(), `DELETE FROM expenses WHERE id = ?`, id)
}
