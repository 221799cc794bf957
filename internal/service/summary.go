package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
)

// CurrencyTotals aggregates the expenses recorded in one currency.
type CurrencyTotals struct {
	Currency   string
	Count      int
	Overdue    int
	Total      decimal.Decimal
	Paid       decimal.Decimal
	Due        decimal.Decimal
	ByCategory map[model.ExpenseCategory]decimal.Decimal
}

// Summary is the expense picture for one trip. Amounts in different
// currencies are never mixed.
type Summary struct {
	TripCurrency string
	Budget       decimal.Decimal
	Currencies   []CurrencyTotals // trip currency first, then alphabetical
}

// Summarize totals expenses per currency. now decides which due dates
// have passed.
func Summarize(trip model.Trip, expenses []model.Expense, now time.Time) Summary {
	byCode := make(map[string]*CurrencyTotals)
	for _, e := range expenses {
		ct, ok := byCode[e.Currency]
		if !ok {
			ct = &CurrencyTotals{
				Currency:   e.Currency,
				ByCategory: make(map[model.ExpenseCategory]decimal.Decimal),
			}
			byCode[e.Currency] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(e.Amount)
		ct.Paid = ct.Paid.Add(e.PaidAmount)
		ct.Due = ct.Due.Add(e.DueAmount())
		ct.ByCategory[e.Category] = ct.ByCategory[e.Category].Add(e.Amount)
		if e.Overdue(now) {
			ct.Overdue++
		}
	}

	sum := Summary{TripCurrency: trip.Currency, Budget: trip.Budget}
	for _, ct := range byCode {
		sum.Currencies = append(sum.Currencies, *ct)
	}
	sort.Slice(sum.Currencies, func(i, j int) bool {
		a, b := sum.Currencies[i].Currency, sum.Currencies[j].Currency
		if a == trip.Currency || b == trip.Currency {
			return a == trip.Currency && b != trip.Currency
		}
		return a < b
	})
	return sum
}

// For returns the totals for a currency.
func (s Summary) For(code string) (CurrencyTotals, bool) {
	for _, ct := range s.Currencies {
		if ct.Currency == code {
			return ct, true
		}
	}
	return CurrencyTotals{}, false
}

// Spent is the total recorded in the trip currency.
func (s Summary) Spent() decimal.Decimal {
	ct, _ := s.For(s.TripCurrency)
	return ct.Total
}

// BudgetRemaining is the budget minus what has been recorded in the trip
// currency. Negative when over budget.
func (s Summary) BudgetRemaining() decimal.Decimal {
	return s.Budget.Sub(s.Spent())
}

// BudgetUsed is the fraction of the budget recorded so far, 0 without a budget.
func (s Summary) BudgetUsed() float64 {
	return money.Ratio(s.Spent(), s.Budget)
}

// HasBudget reports whether a budget was set.
func (s Summary) HasBudget() bool {
	return s.Budget.IsPositive()
}
