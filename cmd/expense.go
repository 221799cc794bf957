package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/service"
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"exp"},
	Short:   "Track what a trip costs",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <trip> <title> <amount>",
	Short: "Record an expense",
	Args:  cobra.ExactArgs(3),
	RunE:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:     "list <trip>",
	Aliases: []string{"ls"},
	Short:   "List expenses with totals",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseList,
}

var expensePayCmd = &cobra.Command{
	Use:   "pay <expense> [amount]",
	Short: "Record a payment; without an amount the rest is paid",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExpensePay,
}

var expenseEditCmd = &cobra.Command{
	Use:   "edit <expense>",
	Short: "Change an expense",
	Long:  "Change an expense. An empty --due clears the due date.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseEdit,
}

var expenseDeleteCmd = &cobra.Command{
	Use:     "delete <expense>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseDelete,
}

var (
	expenseCurrency string
	expenseCategory string
	expenseStatus   string
	expensePaid     string
	expenseDue      string
	expenseTitle    string
	expenseAmount   string
)

func init() {
	for _, c := range []*cobra.Command{expenseAddCmd, expenseEditCmd} {
		c.Flags().StringVar(&expenseCurrency, "currency", "", "Currency, defaults to the trip's")
		c.Flags().StringVarP(&expenseCategory, "category", "c", string(model.ExpenseOther), "One of "+joinExpenseCategories())
		c.Flags().StringVar(&expenseStatus, "status", string(model.StatusDue), "paid, due or partial")
		c.Flags().StringVar(&expensePaid, "paid", "", "Amount already paid (partial)")
		c.Flags().StringVar(&expenseDue, "due", "", "Due date (YYYY-MM-DD)")
	}
	expenseEditCmd.Flags().StringVar(&expenseTitle, "title", "", "New title")
	expenseEditCmd.Flags().StringVar(&expenseAmount, "amount", "", "New amount")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseEditCmd, expensePayCmd, expenseDeleteCmd)
	rootCmd.AddCommand(expenseCmd)
}

func joinExpenseCategories() string {
	names := make([]string, len(model.ExpenseCategories))
	for i, c := range model.ExpenseCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := money.Parse(s)
	if err != nil {
		return d, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return d, nil
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}

		exp := model.Expense{
			TripID:   trip.ID,
			Title:    args[1],
			Amount:   amount,
			Currency: expenseCurrency,
			Category: model.ExpenseCategory(strings.ToLower(expenseCategory)),
			Status:   model.PaymentStatus(strings.ToLower(expenseStatus)),
		}
		if expensePaid != "" {
			if exp.PaidAmount, err = parseAmount(expensePaid); err != nil {
				return err
			}
			if !cmd.Flags().Changed("status") {
				exp.Status = model.StatusPartial
			}
		}
		if expenseDue != "" {
			due, err := parseDate(expenseDue)
			if err != nil {
				return err
			}
			exp.DueDate = &due
		}

		created, err := e.svc.Expenses.Create(ctx, exp)
		if err != nil {
			return err
		}
		fmt.Printf("  Recorded %s  %s  (%s)\n", created.Title,
			cli.FormatMoney(created.Amount, created.Currency), cli.FormatStatus(created))
		return nil
	})
}

func runExpenseEdit(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Expenses.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		exp, err := e.svc.Expenses.Get(ctx, id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			exp.Title = expenseTitle
		}
		if flags.Changed("amount") {
			if exp.Amount, err = parseAmount(expenseAmount); err != nil {
				return err
			}
		}
		if flags.Changed("currency") {
			exp.Currency = expenseCurrency
		}
		if flags.Changed("category") {
			exp.Category = model.ExpenseCategory(strings.ToLower(expenseCategory))
		}
		if flags.Changed("status") {
			exp.Status = model.PaymentStatus(strings.ToLower(expenseStatus))
		}
		if flags.Changed("paid") {
			if exp.PaidAmount, err = parseAmount(expensePaid); err != nil {
				return err
			}
			if !flags.Changed("status") {
				exp.Status = model.StatusPartial
			}
		}
		if flags.Changed("due") {
			exp.DueDate = nil
			if expenseDue != "" {
				due, err := parseDate(expenseDue)
				if err != nil {
					return err
				}
				exp.DueDate = &due
			}
		}

		updated, err := e.svc.Expenses.Update(ctx, exp)
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s  %s  (%s)\n", updated.Title,
			cli.FormatMoney(updated.Amount, updated.Currency), cli.FormatStatus(updated))
		return nil
	})
}

func runExpenseList(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		exps, err := e.svc.Expenses.List(ctx, trip.ID)
		if err != nil {
			return err
		}
		if len(exps) == 0 {
			fmt.Printf("\n  No expenses recorded for %s.\n", trip.Title)
			return nil
		}

		now := time.Now()
		rows := make([][]string, 0, len(exps))
		for _, x := range exps {
			status := cli.FormatStatus(x)
			if x.Overdue(now) {
				status += " (overdue)"
			}
			due := ""
			if x.DueDate != nil {
				due = x.DueDate.Format("2 Jan")
			}
			rows = append(rows, []string{
				cli.ShortID(x.ID),
				x.Title,
				string(x.Category),
				cli.FormatMoney(x.Amount, x.Currency),
				status,
				due,
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Expenses · " + trip.Title,
			Headers: []string{"ID", "Expense", "Category", "Amount", "Status", "Due"},
			Rows:    rows,
		}))

		sum := service.Summarize(trip, exps, now)
		fmt.Println()
		for _, ct := range sum.Currencies {
			fmt.Print(cli.RenderKV([][2]string{
				{ct.Currency + " total", cli.FormatMoney(ct.Total, ct.Currency)},
				{"Paid", cli.FormatMoney(ct.Paid, ct.Currency)},
				{"Due", cli.FormatMoney(ct.Due, ct.Currency)},
			}))
		}
		if sum.HasBudget() {
			fmt.Println()
			fmt.Printf("  Budget %s  %s\n", cli.FormatMoney(sum.Budget, sum.TripCurrency), cli.RenderBudgetBar(sum.BudgetUsed(), 30))
			fmt.Printf("  Remaining %s\n", cli.FormatMoney(sum.BudgetRemaining(), sum.TripCurrency))
		}
		return nil
	})
}

func runExpensePay(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Expenses.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		var paid model.Expense
		if len(args) == 2 {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			paid, err = e.svc.Expenses.Pay(ctx, id, amount)
			if err != nil {
				return err
			}
		} else {
			if paid, err = e.svc.Expenses.PayInFull(ctx, id); err != nil {
				return err
			}
		}
		fmt.Printf("  %s  %s\n", paid.Title, cli.FormatStatus(paid))
		return nil
	})
}

func runExpenseDelete(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Expenses.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		if err := e.svc.Expenses.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted expense %s\n", cli.ShortID(id))
		return nil
	})
}
