package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/rihla/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHome:
		content = m.viewHome()
	case constants.StateGuide:
		content = m.viewGuide()
	case constants.StateJourney:
		content = m.viewJourney()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateAddItem, constants.StateEditReminder:
		return docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		item, _ := m.settings.Item(m.pendingDelete)
		content = dangerStyle.Render("Delete \""+item.Text+"\"?") + " (y/n)"
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = dangerStyle.Render(m.status)
		} else {
			status = warningStyle.Render(m.status)
		}
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		"",
		content,
		status,
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	var rendered []string
	for _, t := range tabs {
		if t == m.state {
			rendered = append(rendered, activeTabStyle.Render(tabTitles[t]))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tabTitles[t]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func check(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return mutedStyle.Render("·")
}

func pointer(active bool) string {
	if active {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return doneStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
