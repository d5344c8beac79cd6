package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/rules"
)

type homeKind int

const (
	homePrayer homeKind = iota
	homeNight
	homeVoluntary
	homeDeed
	homePages
	homeParts
	homeChallenge
)

type homeRow struct {
	kind   homeKind
	prayer catalog.Prayer
	deed   catalog.DeedInfo
}

func homeRows() []homeRow {
	rows := make([]homeRow, 0, len(catalog.Prayers)+len(catalog.GoodDeeds)+5)
	for _, p := range catalog.Prayers {
		rows = append(rows, homeRow{kind: homePrayer, prayer: p})
	}
	rows = append(rows, homeRow{kind: homeNight}, homeRow{kind: homeVoluntary})
	for _, d := range catalog.GoodDeeds {
		rows = append(rows, homeRow{kind: homeDeed, deed: d})
	}
	return append(rows, homeRow{kind: homePages}, homeRow{kind: homeParts}, homeRow{kind: homeChallenge})
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := homeRows()
	row := rows[m.cursorAt(len(rows))]
	l := m.ledger.Ledger()

	var err error
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(rows))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(rows))
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		err = m.ledger.CompleteChallenge()
	case key.Matches(msg, m.keys.Increase):
		err = m.adjust(row, l, 1)
	case key.Matches(msg, m.keys.Decrease):
		err = m.adjust(row, l, -1)
	case row.kind == homePrayer && key.Matches(msg, m.keys.Individual):
		err = m.ledger.ToggleIndividual(row.prayer.Key)
	case row.kind == homePrayer && key.Matches(msg, m.keys.Congregation):
		err = m.ledger.ToggleCongregational(row.prayer.Key)
	case row.kind == homePrayer && key.Matches(msg, m.keys.Remembrance):
		err = m.ledger.SetPostPrayerRemembrance(row.prayer.Key)
	case row.kind == homeNight && key.Matches(msg, m.keys.Witr):
		err = m.ledger.SetNightPrayer(l.Night.Units, !l.Night.Witr)
	case key.Matches(msg, m.keys.Toggle):
		switch row.kind {
		case homePrayer:
			err = m.ledger.ToggleIndividual(row.prayer.Key)
		case homeNight:
			err = m.ledger.SetNightPrayer(l.Night.Units, !l.Night.Witr)
		case homeDeed:
			err = m.ledger.SetGoodDeed(row.deed.Key)
		case homeChallenge:
			err = m.ledger.CompleteChallenge()
		default:
			return m, nil
		}
	default:
		return m, nil
	}
	m.report(err, "")
	return m, nil
}

// adjust steps a counter row; prayer units move in pairs.
func (m Model) adjust(row homeRow, l models.Ledger, dir int) error {
	switch row.kind {
	case homeNight:
		return m.ledger.SetNightPrayer(max(l.Night.Units+2*dir, 0), l.Night.Witr)
	case homeVoluntary:
		return m.ledger.SetVoluntaryPrayer(max(l.Voluntary.Units+2*dir, 0))
	case homePages:
		return m.ledger.SetScripturePages(max(l.Scripture.Pages+dir, 0))
	case homeParts:
		return m.ledger.SetScriptureParts(max(l.Scripture.Parts+dir, 0))
	}
	return nil
}

func (m Model) viewHome() string {
	var b strings.Builder
	l := m.ledger.Ledger()

	if m.loading {
		b.WriteString(m.spinner.View() + " Fetching today's inspiration...\n\n")
	} else {
		b.WriteString(inspirationStyle.Render(m.inspiration) + "\n\n")
	}

	fmt.Fprintf(&b, "%s  %d points · %s · %d day streak · today +%d\n",
		titleStyle.Render("Assalamu alaikum"), l.Points, l.Level, l.StreakDays, m.ledger.DailyDeedPoints())
	fmt.Fprintf(&b, "Prayers %s %.0f%%\n\n", bar(rules.PrayerProgress(l), 20), rules.PrayerProgress(l))

	rows := homeRows()
	cur := m.cursorAt(len(rows))
	for i, row := range rows {
		if row.kind == homeNight || row.kind == homePages || row.kind == homeChallenge {
			b.WriteString("\n")
		}
		b.WriteString(pointer(i == cur) + m.homeLine(row, l) + "\n")
	}
	return b.String()
}

func (m Model) homeLine(row homeRow, l models.Ledger) string {
	switch row.kind {
	case homePrayer:
		rec := l.Prayers[row.prayer.Key]
		how := ""
		if rec.Completed && rec.Congregational {
			how = doneStyle.Render(" congregation")
		}
		return fmt.Sprintf("%s %-8s %s%s  %s",
			check(rec.Completed), row.prayer.Label, mutedStyle.Render(row.prayer.Time), how,
			mutedStyle.Render("remembrance ")+check(l.PostPrayer[row.prayer.Key]))
	case homeNight:
		return fmt.Sprintf("Night prayer  %d units  witr %s", l.Night.Units, check(l.Night.Witr))
	case homeVoluntary:
		return fmt.Sprintf("Voluntary     %d units", l.Voluntary.Units)
	case homeDeed:
		return fmt.Sprintf("%s %s", check(l.GoodDeeds[row.deed.Key]), row.deed.Label)
	case homePages:
		return fmt.Sprintf("Quran pages   %d", l.Scripture.Pages)
	case homeParts:
		return fmt.Sprintf("Quran parts   %d", l.Scripture.Parts)
	case homeChallenge:
		c, ok := m.ledger.Challenge()
		if !ok {
			return mutedStyle.Render("Daily challenge loading...")
		}
		line := fmt.Sprintf("%s Challenge: %s (+%d)", check(c.Completed), c.Title, rules.ChallengePoints(c))
		return line + "\n      " + mutedStyle.Render(c.Description)
	}
	return ""
}
