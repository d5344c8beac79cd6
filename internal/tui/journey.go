package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/rules"
)

func (m Model) viewJourney() string {
	var b strings.Builder
	l := m.ledger.Ledger()

	b.WriteString(titleStyle.Render("Levels") + "\n")
	for _, tier := range catalog.Levels {
		line := fmt.Sprintf("  %-11s %7d", tier.Name, tier.MinPoints)
		if tier.Name == l.Level {
			line = cursorStyle.Render("▸ " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line + "\n")
	}
	if next := rules.NextLevel(l.Points); next.Next != "" {
		fmt.Fprintf(&b, "  %s %.0f%% towards %s, %d to go\n", bar(next.Percent, 20), next.Percent, next.Next, next.Remaining)
	}

	b.WriteString("\n" + titleStyle.Render("Badges") + "\n")
	for _, badge := range rules.Badges(l) {
		title := badge.Title
		if !badge.IsUnlocked {
			title = mutedStyle.Render(title)
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", check(badge.IsUnlocked), title, mutedStyle.Render(badge.Description))
	}

	b.WriteString("\n" + titleStyle.Render("Companions") + "\n")
	for _, row := range rules.Leaderboard(l.Points) {
		line := fmt.Sprintf("  %d. %-16s %d", row.Rank, row.Name, row.Points)
		if row.IsMe {
			line = doneStyle.Render(line + " ◂")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
