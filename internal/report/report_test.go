package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleData() Data {
	trip := model.Trip{
		ID: uuid.New(), Title: "Iberia", Destination: "Portugal",
		StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 10),
		Budget: decimal.NewFromInt(1000), Currency: "USD", Color: "#3AA99F",
	}
	expenses := []model.Expense{
		{Title: "Hostel", Amount: decimal.NewFromInt(300), PaidAmount: decimal.NewFromInt(300), Currency: "USD", Category: model.ExpenseAccommodation, Status: model.StatusPaid},
		{Title: "Train", Amount: decimal.NewFromInt(45), Currency: "USD", Category: model.ExpenseTransport, Status: model.StatusDue},
	}
	return Data{
		Trip: trip,
		Destinations: []model.Destination{
			{Name: "Lisbon | Alfama", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 5)},
		},
		Items: []model.ItineraryItem{
			{Title: "Pastéis", StartTime: time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC), Category: model.ItemFood},
			{Title: "Tram 28", StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), Category: model.ItemTransport},
			{Title: "Sintra", StartTime: time.Date(2025, 6, 4, 8, 30, 0, 0, time.UTC), Location: "Pena", Category: model.ItemSightseeing},
		},
		Expenses: expenses,
		Documents: []model.Document{
			{Title: "Passport", Type: model.DocPassport, Filename: "passport.pdf", Size: 2048},
		},
		Summary:  service.Summarize(trip, expenses, day(2025, 6, 3)),
		Now:      day(2025, 6, 3),
		Location: time.UTC,
	}
}

// outline walks the parsed markdown and returns heading texts by level and
// the text of every list item.
func outline(t *testing.T, md string) (map[int][]string, []string) {
	t.Helper()
	src := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	headings := map[int][]string{}
	var items []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			headings[n.Level] = append(headings[n.Level], inlineText(n, src))
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			items = append(items, inlineText(n, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	return headings, items
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func TestMarkdown_Structure(t *testing.T) {
	md, err := Markdown(sampleData())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	headings, items := outline(t, md)
	if got := headings[1]; len(got) != 1 || got[0] != "Iberia" {
		t.Fatalf("h1 = %v", got)
	}
	wantH2 := []string{"Destinations", "Itinerary", "Expenses", "Documents"}
	if strings.Join(headings[2], ",") != strings.Join(wantH2, ",") {
		t.Fatalf("h2 = %v, want %v", headings[2], wantH2)
	}
	wantDays := []string{"Mon 2 Jun 2025", "Wed 4 Jun 2025"}
	if strings.Join(headings[3], ",") != strings.Join(wantDays, ",") {
		t.Fatalf("h3 = %v, want %v", headings[3], wantDays)
	}

	if len(items) != 3 {
		t.Fatalf("list items = %d, want 3: %v", len(items), items)
	}
	if !strings.HasPrefix(items[0], "09:00 Tram 28") {
		t.Fatalf("first item = %q, items sorted by time", items[0])
	}
	if !strings.Contains(items[2], "Pena") {
		t.Fatalf("location missing from %q", items[2])
	}
}

func TestMarkdown_Content(t *testing.T) {
	md, err := Markdown(sampleData())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, want := range []string{
		"Under way, 30.0% done.",
		`Lisbon \| Alfama`,
		"| **Total** | **$345.00** |",
		"| Due | $45.00 |",
		"$655.00 remaining (34.5% used)",
		"| Passport | passport | passport.pdf | 2.0 KiB |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_EmptyTrip(t *testing.T) {
	d := Data{
		Trip: model.Trip{Title: "Someday", StartDate: day(2030, 1, 1), EndDate: day(2030, 1, 3), Currency: "USD"},
		Now:  day(2029, 12, 30),
	}
	md, err := Markdown(d)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	headings, _ := outline(t, md)
	if len(headings[2]) != 0 {
		t.Fatalf("empty trip should have no sections, got %v", headings[2])
	}
	if !strings.Contains(md, "Starts in 2 days.") {
		t.Fatalf("countdown missing:\n%s", md)
	}
}

func TestRender(t *testing.T) {
	md, err := Markdown(sampleData())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	out, err := Render(md, 80, true)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Iberia") {
		t.Fatalf("rendered output lost the title:\n%s", out)
	}
}
