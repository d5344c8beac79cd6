package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rihla/internal/challenge"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/ledger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/settings"
)

// Previewer plays a reminder through the tray companion.
type Previewer interface {
	Preview(ctx context.Context, r models.Reminder, sound string) error
}

type Options struct {
	Ledger   *ledger.Service
	Settings *settings.Store
	Provider challenge.Provider
	Notifier Previewer
}

var tabs = []constants.SessionState{
	constants.StateHome,
	constants.StateGuide,
	constants.StateJourney,
	constants.StateSettings,
}

var tabTitles = map[constants.SessionState]string{
	constants.StateHome:     "Today",
	constants.StateGuide:    "Adhkar",
	constants.StateJourney:  "Journey",
	constants.StateSettings: "Settings",
}

type ItemFormModel struct {
	Category models.Category
	Text     string
}

type ReminderFormModel struct {
	ID   string
	Time string
}

type Model struct {
	ledger   *ledger.Service
	settings *settings.Store
	session  *challenge.Session
	notifier Previewer

	state  constants.SessionState
	keys   KeyMap
	help   help.Model
	cursor map[constants.SessionState]int

	spinner     spinner.Model
	loading     bool
	inspiration string

	form          *huh.Form
	itemForm      *ItemFormModel
	reminderForm  *ReminderFormModel
	pendingDelete string

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return Model{
		ledger:   opts.Ledger,
		settings: opts.Settings,
		session:  challenge.NewSession(opts.Provider),
		notifier: opts.Notifier,
		state:    constants.StateHome,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		cursor:   make(map[constants.SessionState]int),
		spinner:  s,
		loading:  true,
	}
}

type sessionMsg struct {
	inspiration string
	challenge   models.DailyChallenge
}

type dayCheckMsg time.Time

type previewMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		startSession(m.session, m.ledger.Ledger().Points),
		dayCheck(),
	)
}

func startSession(s *challenge.Session, points int) tea.Cmd {
	return func() tea.Msg {
		text, c := s.Start(context.Background(), points)
		return sessionMsg{inspiration: text, challenge: c}
	}
}

func dayCheck() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return dayCheckMsg(t)
	})
}

func preview(n Previewer, r models.Reminder, sound string) tea.Cmd {
	return func() tea.Msg {
		return previewMsg{err: n.Preview(context.Background(), r, sound)}
	}
}

// ShortHelp returns the bindings relevant to the active tab.
func (m Model) ShortHelp() []key.Binding {
	k := m.keys
	switch m.state {
	case constants.StateHome:
		return []key.Binding{k.Toggle, k.Congregation, k.Remembrance, k.Increase, k.Decrease, k.Complete, k.Help}
	case constants.StateGuide:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Tab, k.Help}
	case constants.StateSettings:
		return []key.Binding{k.Toggle, k.MoveUp, k.MoveDown, k.Add, k.Delete, k.Edit, k.Help}
	}
	return []key.Binding{k.Tab, k.ShiftTab, k.Quit, k.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	k := m.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Individual, k.Congregation, k.Remembrance, k.Witr},
		{k.Increase, k.Decrease, k.Complete},
		{k.MoveUp, k.MoveDown, k.Add, k.Edit, k.Delete, k.Preview},
		{k.Tab, k.ShiftTab, k.Help, k.Quit},
	}
}

func (m Model) cursorAt(n int) int {
	c := m.cursor[m.state]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (m Model) moveCursor(delta, n int) {
	c := m.cursorAt(n) + delta
	if c < 0 || c >= n {
		return
	}
	m.cursor[m.state] = c
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = ok
	m.statusErr = false
}

func (m Model) cycleTab(delta int) constants.SessionState {
	for i, t := range tabs {
		if t == m.state {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return constants.StateHome
}
