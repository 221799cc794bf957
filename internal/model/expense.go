package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory tags an expense.
type ExpenseCategory string

// Expense categories.
const (
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseFood          ExpenseCategory = "food"
	ExpenseActivities    ExpenseCategory = "activities"
	ExpenseShopping      ExpenseCategory = "shopping"
	ExpenseOther         ExpenseCategory = "other"
)

// ExpenseCategories lists every ExpenseCategory in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseTransport, ExpenseAccommodation, ExpenseFood, ExpenseActivities, ExpenseShopping, ExpenseOther,
}

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	for _, k := range ExpenseCategories {
		if c == k {
			return true
		}
	}
	return false
}

// PaymentStatus is how much of an expense has been settled.
type PaymentStatus string

// Payment statuses.
const (
	StatusPaid    PaymentStatus = "paid"
	StatusDue     PaymentStatus = "due"
	StatusPartial PaymentStatus = "partial"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	return s == StatusPaid || s == StatusDue || s == StatusPartial
}

// Expense is a cost record. PaidAmount is authoritative only for partial
// payments; it is normalized to Amount for paid and to zero for due.
type Expense struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	Title      string
	Amount     decimal.Decimal
	Currency   string
	Category   ExpenseCategory
	Status     PaymentStatus
	PaidAmount decimal.Decimal
	DueDate    *time.Time
	CreatedAt  time.Time
}

// DueAmount returns what remains to be paid.
func (e Expense) DueAmount() decimal.Decimal {
	return e.Amount.Sub(e.PaidAmount)
}

// Overdue reports whether the expense still has money due after its due date.
func (e Expense) Overdue(now time.Time) bool {
	if e.DueDate == nil || e.Status == StatusPaid {
		return false
	}
	return Day(now).After(Day(*e.DueDate))
}
