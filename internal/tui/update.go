package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/settings"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionMsg:
		m.loading = false
		m.inspiration = msg.inspiration
		if _, ok := m.ledger.Challenge(); !ok {
			m.ledger.SetChallenge(msg.challenge)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dayCheckMsg:
		changed, err := m.ledger.Rollover()
		if err != nil {
			logger.Error("Day rollover failed", "err", err)
		}
		if changed {
			m.report(err, "A new day has begun")
		}
		return m, dayCheck()

	case previewMsg:
		m.report(msg.err, "Reminder sent to the tray")
		return m, nil
	}

	switch m.state {
	case constants.StateAddItem, constants.StateEditReminder:
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == constants.StateConfirmDelete {
		return m.updateConfirmDelete(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = m.cycleTab(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = m.cycleTab(-1)
		return m, nil
	}

	switch m.state {
	case constants.StateHome:
		return m.updateHome(keyMsg)
	case constants.StateGuide:
		return m.updateGuide(keyMsg)
	case constants.StateSettings:
		return m.updateSettings(keyMsg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm()
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) applyForm() {
	switch m.state {
	case constants.StateAddItem:
		f := m.itemForm
		_, err := m.settings.AddCustomItem(f.Category, f.Text)
		m.report(err, "Item added")
	case constants.StateEditReminder:
		f := m.reminderForm
		t := strings.TrimSpace(f.Time)
		err := m.settings.SetReminder(f.ID, models.ReminderUpdate{Time: &t})
		m.report(err, "Reminder updated")
	}
}

func (m *Model) closeForm() {
	m.form = nil
	m.itemForm = nil
	m.reminderForm = nil
	m.state = constants.StateSettings
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		err := m.settings.DeleteCustomItem(m.pendingDelete)
		m.report(err, "Item deleted")
	default:
		m.report(nil, "Delete cancelled")
	}
	m.pendingDelete = ""
	m.state = constants.StateSettings
	return m, nil
}

func (m Model) openItemForm() (tea.Model, tea.Cmd) {
	m.itemForm = &ItemFormModel{Category: models.CategoryMorning}

	options := make([]huh.Option[models.Category], 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		options = append(options, huh.NewOption(c.Title, c.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(options...).
				Value(&m.itemForm.Category),
			huh.NewText().
				Title("Text").
				Value(&m.itemForm.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("text is required")
					}
					return nil
				}),
		),
	)
	m.state = constants.StateAddItem
	return m, m.form.Init()
}

func (m Model) openReminderForm(r models.Reminder) (tea.Model, tea.Cmd) {
	m.reminderForm = &ReminderFormModel{ID: r.ID, Time: r.Time}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(r.Label + " time").
				Placeholder("HH:MM").
				Value(&m.reminderForm.Time).
				Validate(func(s string) error {
					if !settings.ValidTime(strings.TrimSpace(s)) {
						return errors.New("use 24-hour HH:MM")
					}
					return nil
				}),
		),
	)
	m.state = constants.StateEditReminder
	return m, m.form.Init()
}
