package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/settings"
)

type prefKind int

const (
	prefReminder prefKind = iota
	prefSound
	prefItem
)

type prefRow struct {
	kind     prefKind
	reminder models.Reminder
	item     models.RecitationItem
}

func (m Model) prefRows() []prefRow {
	st := m.settings.Settings()
	rows := make([]prefRow, 0, len(st.Reminders)+1+len(st.Order))
	for _, r := range st.Reminders {
		rows = append(rows, prefRow{kind: prefReminder, reminder: r})
	}
	rows = append(rows, prefRow{kind: prefSound})
	for _, c := range catalog.Categories {
		for _, it := range m.settings.OrderedItems(c.ID) {
			rows = append(rows, prefRow{kind: prefItem, item: it})
		}
	}
	return rows
}

func nextSound(current string) string {
	for i, s := range catalog.Sounds {
		if s.ID == current {
			return catalog.Sounds[(i+1)%len(catalog.Sounds)].ID
		}
	}
	return constants.DefaultNotificationSound
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.prefRows()
	row := rows[m.cursorAt(len(rows))]

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(rows))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(rows))
	case key.Matches(msg, m.keys.Add):
		return m.openItemForm()
	case key.Matches(msg, m.keys.Toggle):
		switch row.kind {
		case prefReminder:
			enabled := !row.reminder.Enabled
			m.report(m.settings.SetReminder(row.reminder.ID, models.ReminderUpdate{Enabled: &enabled}), "")
		case prefSound:
			m.report(m.settings.SetNotificationSound(nextSound(m.settings.Settings().NotificationSound)), "")
		case prefItem:
			m.report(m.settings.ToggleSelected(row.item.ID), "")
		}
	case row.kind == prefReminder && key.Matches(msg, m.keys.Edit):
		return m.openReminderForm(row.reminder)
	case row.kind == prefReminder && key.Matches(msg, m.keys.Preview):
		if m.notifier == nil {
			m.report(errors.New("no notifier configured"), "")
			return m, nil
		}
		return m, preview(m.notifier, row.reminder, m.settings.Settings().NotificationSound)
	case row.kind == prefItem && key.Matches(msg, m.keys.MoveUp):
		m.report(m.settings.MoveItem(row.item.ID, settings.Up), "")
		m.followItem(row.item.ID)
	case row.kind == prefItem && key.Matches(msg, m.keys.MoveDown):
		m.report(m.settings.MoveItem(row.item.ID, settings.Down), "")
		m.followItem(row.item.ID)
	case row.kind == prefItem && key.Matches(msg, m.keys.Delete):
		if !m.settings.IsCustom(row.item.ID) {
			m.report(errors.New("built-in items can't be deleted"), "")
			return m, nil
		}
		m.pendingDelete = row.item.ID
		m.state = constants.StateConfirmDelete
	}
	return m, nil
}

// followItem keeps the cursor on an item after it moved.
func (m Model) followItem(id string) {
	for i, r := range m.prefRows() {
		if r.kind == prefItem && r.item.ID == id {
			m.cursor[constants.StateSettings] = i
			return
		}
	}
}

func (m Model) viewSettings() string {
	var b strings.Builder
	st := m.settings.Settings()
	rows := m.prefRows()
	cur := m.cursorAt(len(rows))

	b.WriteString(titleStyle.Render("Reminders") + "\n")
	var category models.Category
	for i, row := range rows {
		p := pointer(i == cur)
		switch row.kind {
		case prefReminder:
			fmt.Fprintf(&b, "%s%s %-24s %s\n", p, check(row.reminder.Enabled), row.reminder.Label, row.reminder.Time)
		case prefSound:
			label := st.NotificationSound
			for _, s := range catalog.Sounds {
				if s.ID == st.NotificationSound {
					label = s.Label + mutedStyle.Render(" "+s.Description)
				}
			}
			fmt.Fprintf(&b, "\n%sSound: %s\n", p, label)
		case prefItem:
			if row.item.Category != category {
				category = row.item.Category
				b.WriteString("\n" + titleStyle.Render(categoryTitle(category)) + "\n")
			}
			text := row.item.Text
			if m.settings.IsCustom(row.item.ID) {
				text += mutedStyle.Render(" (custom)")
			}
			fmt.Fprintf(&b, "%s%s %s\n", p, check(m.settings.IsSelected(row.item.ID)), text)
		}
	}
	return b.String()
}

func categoryTitle(id models.Category) string {
	for _, c := range catalog.Categories {
		if c.ID == id {
			return c.Title
		}
	}
	return string(id)
}
