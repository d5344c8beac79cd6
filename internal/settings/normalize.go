package settings

import (
	"strings"
	"time"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/models"
)

// ValidTime reports whether v is a 24h HH:MM time.
func ValidTime(v string) bool {
	if len(v) != len(constants.TimeFormat) {
		return false
	}
	_, err := time.Parse(constants.TimeFormat, v)
	return err == nil
}

// Normalize repairs a decoded settings snapshot so the ordering rules
// hold: every id in Order or SelectedItemIDs resolves to a catalog or custom
// item, Order lists every known item exactly once, and reminders and sound
// are valid. Fields that are missing entirely fall back to their defaults.
func Normalize(in models.Settings) models.Settings {
	s := in.Clone()
	defaults := catalog.DefaultSettings()

	s.Reminders = normalizeReminders(s.Reminders)
	if !catalog.IsSound(s.NotificationSound) {
		s.NotificationSound = defaults.NotificationSound
	}

	customs := make([]models.RecitationItem, 0, len(s.CustomItems))
	seen := make(map[string]bool)
	for _, item := range s.CustomItems {
		item.Text = strings.TrimSpace(item.Text)
		if item.ID == "" || item.Text == "" || seen[item.ID] ||
			catalog.IsCatalogItem(item.ID) || !catalog.IsCategory(item.Category) {
			continue
		}
		if item.Repetitions < 1 {
			item.Repetitions = constants.DefaultCustomRepetitions
		}
		seen[item.ID] = true
		customs = append(customs, item)
	}
	s.CustomItems = customs

	known := func(id string) bool { return catalog.IsCatalogItem(id) || seen[id] }

	if in.SelectedItemIDs == nil {
		s.SelectedItemIDs = defaults.SelectedItemIDs
	}
	s.SelectedItemIDs = dedupKnown(s.SelectedItemIDs, known)

	order := dedupKnown(s.Order, known)
	inOrder := make(map[string]bool, len(order))
	for _, id := range order {
		inOrder[id] = true
	}
	for _, id := range catalog.RecitationIDs() {
		if !inOrder[id] {
			order = append(order, id)
		}
	}
	for _, item := range s.CustomItems {
		if !inOrder[item.ID] {
			order = append(order, item.ID)
		}
	}
	s.Order = order

	return s
}

func dedupKnown(ids []string, known func(string) bool) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] || !known(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// normalizeReminders keeps the fixed reminder set in default order, taking
// time and enabled from stored entries when they are valid.
func normalizeReminders(stored []models.Reminder) []models.Reminder {
	byID := make(map[string]models.Reminder, len(stored))
	for _, r := range stored {
		byID[r.ID] = r
	}
	out := catalog.DefaultReminders()
	if len(stored) == 0 {
		return out
	}
	for i, def := range out {
		r, ok := byID[def.ID]
		if !ok {
			continue
		}
		if ValidTime(r.Time) {
			out[i].Time = r.Time
		}
		out[i].Enabled = r.Enabled
	}
	return out
}
