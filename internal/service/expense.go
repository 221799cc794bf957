package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/store"
)

// ExpenseService implements expense rules.
type ExpenseService struct {
	repo  ExpenseRepo
	trips TripRepo
	ids   Resolver
	log   *zap.Logger
	now   func() time.Time
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(r ExpenseRepo, trips TripRepo, ids Resolver, log *zap.Logger) *ExpenseService {
	return &ExpenseService{repo: r, trips: trips, ids: ids, log: orNop(log), now: time.Now}
}

// Create validates and persists an expense. An empty currency takes the
// trip's currency.
func (s *ExpenseService) Create(ctx context.Context, e model.Expense) (model.Expense, error) {
	if e.TripID == uuid.Nil {
		return model.Expense{}, fmt.Errorf("%w: trip id is required", ErrValidation)
	}
	trip, err := s.trips.GetTrip(ctx, e.TripID)
	if err != nil {
		return model.Expense{}, err
	}
	if e.Currency == "" {
		e.Currency = trip.Currency
	}
	if e, err = NormalizeExpense(e); err != nil {
		return model.Expense{}, err
	}
	created, err := s.repo.CreateExpense(ctx, e)
	if err != nil {
		return model.Expense{}, fmt.Errorf("creating expense: %w", err)
	}
	s.log.Info("expense created",
		zap.Stringer("id", created.ID),
		zap.String("amount", created.Amount.String()),
		zap.String("currency", created.Currency),
		zap.String("status", string(created.Status)))
	return created, nil
}

// Update validates and saves changes to an expense. The expense stays on
// its original trip.
func (s *ExpenseService) Update(ctx context.Context, e model.Expense) (model.Expense, error) {
	if e.ID == uuid.Nil {
		return model.Expense{}, fmt.Errorf("%w: expense id is required", ErrValidation)
	}
	stored, err := s.repo.GetExpense(ctx, e.ID)
	if err != nil {
		return model.Expense{}, err
	}
	e.TripID = stored.TripID
	if e, err = NormalizeExpense(e); err != nil {
		return model.Expense{}, err
	}
	updated, err := s.repo.UpdateExpense(ctx, e)
	if err != nil {
		return model.Expense{}, fmt.Errorf("updating expense: %w", err)
	}
	return updated, nil
}

// Pay records a payment against an expense. Paying the outstanding amount
// in full marks it paid; anything less leaves it partial.
func (s *ExpenseService) Pay(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (model.Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return model.Expense{}, err
	}
	if e, err = ApplyPayment(e, amount); err != nil {
		return model.Expense{}, err
	}
	updated, err := s.repo.UpdateExpense(ctx, e)
	if err != nil {
		return model.Expense{}, fmt.Errorf("recording payment: %w", err)
	}
	s.log.Info("payment recorded",
		zap.Stringer("id", id),
		zap.String("amount", amount.String()),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// Get returns a single expense.
func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (model.Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// PayInFull pays whatever is still due on an expense.
func (s *ExpenseService) PayInFull(ctx context.Context, id uuid.UUID) (model.Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return model.Expense{}, err
	}
	return s.Pay(ctx, id, e.DueAmount())
}

// List returns a trip's expenses in recording order.
func (s *ExpenseService) List(ctx context.Context, tripID uuid.UUID) ([]model.Expense, error) {
	return s.repo.ListExpenses(ctx, tripID)
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.log.Info("expense deleted", zap.Stringer("id", id))
	return nil
}

// Resolve expands an abbreviated expense id.
func (s *ExpenseService) Resolve(ctx context.Context, prefix string) (uuid.UUID, error) {
	return s.ids.Resolve(ctx, store.TableExpenses, prefix)
}

// Summary loads a trip and its expenses and totals them.
func (s *ExpenseService) Summary(ctx context.Context, tripID uuid.UUID) (Summary, error) {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.repo.ListExpenses(ctx, tripID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(trip, expenses, s.now()), nil
}

// NormalizeExpense validates e and brings PaidAmount in line with Status:
// paid means the full amount, due means nothing, partial must lie strictly
// between zero and the amount.
func NormalizeExpense(e model.Expense) (model.Expense, error) {
	var err error
	if e.Title, err = required("title", e.Title); err != nil {
		return e, err
	}
	if e.Currency, err = money.NormalizeCurrency(e.Currency); err != nil {
		return e, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	e.Amount = money.Round(e.Amount, e.Currency)
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if e.Category == "" {
		e.Category = model.ExpenseOther
	}
	if !e.Category.Valid() {
		return e, fmt.Errorf("%w: unknown category %q", ErrValidation, e.Category)
	}

	switch e.Status {
	case model.StatusPaid:
		e.PaidAmount = e.Amount
	case model.StatusDue, "":
		e.Status = model.StatusDue
		e.PaidAmount = decimal.Zero
	case model.StatusPartial:
		e.PaidAmount = money.Round(e.PaidAmount, e.Currency)
		if !e.PaidAmount.IsPositive() || !e.PaidAmount.LessThan(e.Amount) {
			return e, fmt.Errorf("%w: partial payment must be between 0 and %s",
				ErrValidation, money.Format(e.Amount, e.Currency))
		}
	default:
		return e, fmt.Errorf("%w: unknown payment status %q", ErrValidation, e.Status)
	}
	if e.DueDate != nil {
		d := model.Day(*e.DueDate)
		e.DueDate = &d
	}
	return e, nil
}

// ApplyPayment adds amount to what has been paid on e.
func ApplyPayment(e model.Expense, amount decimal.Decimal) (model.Expense, error) {
	amount = money.Round(amount, e.Currency)
	if !amount.IsPositive() {
		return e, fmt.Errorf("%w: payment must be greater than zero", ErrValidation)
	}
	due := e.DueAmount()
	if !due.IsPositive() {
		return e, fmt.Errorf("%w: %q is already paid", ErrValidation, e.Title)
	}
	if amount.GreaterThan(due) {
		return e, fmt.Errorf("%w: payment %s exceeds amount due %s", ErrValidation,
			money.Format(amount, e.Currency), money.Format(due, e.Currency))
	}
	e.PaidAmount = e.PaidAmount.Add(amount)
	if e.PaidAmount.Equal(e.Amount) {
		e.Status = model.StatusPaid
	} else {
		e.Status = model.StatusPartial
	}
	return e, nil
}
