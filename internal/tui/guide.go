package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/models"
)

// guideRow is either a whole category (item empty) or one selected item in it.
type guideRow struct {
	category catalog.CategoryInfo
	item     models.RecitationItem
}

func (r guideRow) isCategory() bool { return r.item.ID == "" }

func (m Model) guideRows() []guideRow {
	var rows []guideRow
	for _, c := range catalog.Categories {
		rows = append(rows, guideRow{category: c})
		for _, it := range m.settings.SelectedItems(c.ID) {
			rows = append(rows, guideRow{category: c, item: it})
		}
	}
	return rows
}

func (m Model) updateGuide(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.guideRows()
	if len(rows) == 0 {
		return m, nil
	}
	row := rows[m.cursorAt(len(rows))]

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(rows))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(rows))
	case key.Matches(msg, m.keys.Toggle):
		if row.isCategory() {
			m.report(m.ledger.SetRemembranceCategory(row.category.ID), "")
		} else {
			m.report(m.ledger.SetIndividualRemembranceItem(row.item.ID), "")
		}
	}
	return m, nil
}

func (m Model) viewGuide() string {
	var b strings.Builder
	l := m.ledger.Ledger()
	rows := m.guideRows()
	cur := m.cursorAt(len(rows))

	for i, row := range rows {
		if row.isCategory() {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s%s %s %s\n", pointer(i == cur), check(l.Categories[row.category.ID]),
				titleStyle.Render(row.category.Title), mutedStyle.Render(row.category.TimeHint))
			continue
		}
		reps := ""
		if row.item.Repetitions > 1 {
			reps = mutedStyle.Render(fmt.Sprintf(" ×%d", row.item.Repetitions))
		}
		fmt.Fprintf(&b, "%s  %s %s%s\n", pointer(i == cur), check(l.CompletedItems[row.item.ID]), row.item.Text, reps)
	}
	return b.String()
}
