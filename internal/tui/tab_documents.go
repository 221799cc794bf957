package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

func (a App) updateDocumentsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.docCursor < len(a.detail.documents)-1 {
			a.docCursor++
		}
		return a, nil, true
	case "k", "up":
		if a.docCursor > 0 {
			a.docCursor--
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) renderDocumentsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	trip, ok := a.selectedTrip()
	if !ok {
		return components.ContentCard("Documents", muted.Render("Select a trip on the Trips tab."), cw)
	}
	if !a.hasDetail {
		return components.ContentCard(trip.Title, muted.Render("Loading..."), cw)
	}

	docs := a.detail.documents
	title := fmt.Sprintf("Documents · %s (%d)", trip.Title, len(docs))
	if len(docs) == 0 {
		return components.ContentCard(title,
			muted.Render("No documents. Attach one with `wayfare doc add "+cli.ShortID(trip.ID)+" <file>`."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	const typeW, sizeW, addedW = 12, 10, 16
	titleW := innerW - typeW - sizeW - addedW - 8
	fileW := titleW / 2
	titleW -= fileW

	var total int64
	var b strings.Builder
	b.WriteString(muted.Render(fmt.Sprintf("  %-*s %-*s %-*s %*s  %-*s",
		titleW, "Title", fileW, "File", typeW, "Type", sizeW, "Size", addedW, "Added")))
	now := a.now()
	for i, d := range docs {
		style := row
		marker := "  "
		if i == a.docCursor {
			style = sel
			marker = "▸ "
		}
		total += d.Size
		b.WriteString("\n")
		b.WriteString(style.Width(innerW).Render(fmt.Sprintf("%s%-*s %-*s %-*s %*s  %-*s",
			marker,
			titleW, truncStr(d.Title, titleW),
			fileW, truncStr(d.Filename, fileW),
			typeW, string(d.Type),
			sizeW, cli.FormatBytes(d.Size),
			addedW, truncStr(cli.FormatRelative(d.AddedAt, now), addedW))))
	}

	if d := docs[a.docCursor]; d.ContentType != "" {
		b.WriteString("\n\n")
		b.WriteString(muted.Render(fmt.Sprintf("%s · %s · id %s", d.Filename, d.ContentType, cli.ShortID(d.ID))))
	}
	b.WriteString("\n")
	b.WriteString(muted.Render("  Total " + cli.FormatBytes(total)))

	return components.ContentCard(title, b.String(), cw)
}
