// Package report renders a trip as a markdown document for the terminal.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
)

// Data is everything a trip report shows.
type Data struct {
	Trip         model.Trip
	Destinations []model.Destination
	Items        []model.ItineraryItem
	Expenses     []model.Expense
	Documents    []model.Document
	Summary      service.Summary
	Now          time.Time
	Location     *time.Location // item times are shown in this zone
}

// Load gathers the report data for a trip.
func Load(ctx context.Context, svc *service.Services, tripID uuid.UUID, now time.Time) (Data, error) {
	trip, err := svc.Trips.Get(ctx, tripID)
	if err != nil {
		return Data{}, err
	}
	d := Data{Trip: trip, Now: now, Location: time.Local}
	if d.Destinations, err = svc.Destinations.List(ctx, tripID); err != nil {
		return Data{}, err
	}
	if d.Items, err = svc.Items.List(ctx, tripID); err != nil {
		return Data{}, err
	}
	if d.Expenses, err = svc.Expenses.List(ctx, tripID); err != nil {
		return Data{}, err
	}
	if d.Documents, err = svc.Documents.List(ctx, tripID); err != nil {
		return Data{}, err
	}
	d.Summary = service.Summarize(trip, d.Expenses, now)
	return d, nil
}

// dayGroup is the itinerary of one calendar day.
type dayGroup struct {
	Date  time.Time
	Items []model.ItineraryItem
}

type view struct {
	Data
	Phase    service.Phase
	Progress float64
	DaysLeft int
	Days     []dayGroup
}

const tripTemplate = `# {{ .Trip.Title }}

{{ if .Trip.Destination }}**{{ .Trip.Destination }}** · {{ end }}{{ daterange .Trip.StartDate .Trip.EndDate }} · {{ .Trip.Days }} days

{{ if eq .Phase "upcoming" }}Starts {{ countdown .DaysLeft }}.{{ else if eq .Phase "ongoing" }}Under way, {{ percent .Progress }} done.{{ else }}Completed.{{ end }}
{{- if .Trip.Notes }}

> {{ .Trip.Notes }}
{{- end }}
{{- if .Destinations }}

## Destinations

| Destination | Dates | Nights |
|:---|:---|---:|
{{- range .Destinations }}
| {{ cell .Name }} | {{ daterange .StartDate .EndDate }} | {{ nights .StartDate .EndDate }} |
{{- end }}
{{- end }}
{{- if .Days }}

## Itinerary
{{- range .Days }}

### {{ date .Date }}
{{ range .Items }}
- **{{ clock .StartTime }}** {{ .Title }}{{ if .Location }} · {{ .Location }}{{ end }} _{{ .Category }}_
{{- end }}
{{- end }}
{{- end }}
{{- if .Summary.Currencies }}

## Expenses
{{- range $ct := .Summary.Currencies }}

| {{ $ct.Currency }} | Amount |
|:---|---:|
{{- range $cat, $amt := $ct.ByCategory }}
| {{ $cat }} | {{ money $amt $ct.Currency }} |
{{- end }}
| **Total** | **{{ money $ct.Total $ct.Currency }}** |
| Paid | {{ money $ct.Paid $ct.Currency }} |
| Due | {{ money $ct.Due $ct.Currency }} |
{{- end }}
{{- if .Summary.HasBudget }}

Budget {{ money .Summary.Budget .Trip.Currency }}, {{ money .Summary.BudgetRemaining .Trip.Currency }} remaining ({{ percent .Summary.BudgetUsed }} used).
{{- end }}
{{- end }}
{{- if .Documents }}

## Documents

| Document | Type | File | Size |
|:---|:---|:---|---:|
{{- range .Documents }}
| {{ cell .Title }} | {{ .Type }} | {{ cell .Filename }} | {{ bytes .Size }} |
{{- end }}
{{- end }}
`

// Markdown renders the report as markdown.
func Markdown(d Data) (string, error) {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	v := view{
		Data:     d,
		Phase:    service.PhaseOf(d.Trip, d.Now),
		Progress: service.Progress(d.Trip, d.Now),
		DaysLeft: service.DaysUntil(d.Trip, d.Now),
		Days:     groupByDay(d.Items, loc),
	}

	funcs := template.FuncMap{
		"daterange": cli.FormatDateRange,
		"date":      cli.FormatDate,
		"countdown": cli.FormatCountdown,
		"percent":   cli.FormatPercent,
		"cell":      escapeCell,
		"money":     cli.FormatMoney,
		"bytes":     cli.FormatBytes,
		"nights": func(start, end time.Time) int {
			return model.DaysBetween(start, end)
		},
		"clock": func(t time.Time) string {
			return cli.FormatTime(t.In(loc))
		},
	}
	tmpl, err := template.New("trip").Funcs(funcs).Parse(tripTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

// Render formats markdown for a terminal of the given width.
func Render(markdown string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render(markdown)
}

func groupByDay(items []model.ItineraryItem, loc *time.Location) []dayGroup {
	sorted := append([]model.ItineraryItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var days []dayGroup
	for _, it := range sorted {
		day := model.Day(it.StartTime.In(loc))
		if n := len(days); n > 0 && days[n-1].Date.Equal(day) {
			days[n-1].Items = append(days[n-1].Items, it)
			continue
		}
		days = append(days, dayGroup{Date: day, Items: []model.ItineraryItem{it}})
	}
	return days
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
