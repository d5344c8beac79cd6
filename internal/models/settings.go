package models

import "slices"

// Reminder is one entry of the fixed reminder schedule.
type Reminder struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Time    string `json:"time"` // HH:MM format
	Enabled bool   `json:"enabled"`
}

// ReminderUpdate carries the fields of a partial reminder update; nil means unchanged.
type ReminderUpdate struct {
	Time    *string
	Enabled *bool
}

// RecitationItem is a remembrance text, either from the catalog or user-authored.
type RecitationItem struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Text        string   `json:"text"`
	Repetitions int      `json:"repetitions"`
}

// Settings represents the user's customization of the app
type Settings struct {
	Reminders         []Reminder       `json:"reminders"`
	SelectedItemIDs   []string         `json:"selected_item_ids"` // membership-tested, kept as a list
	Order             []string         `json:"order"`             // permutation over every known item id
	CustomItems       []RecitationItem `json:"custom_items"`
	NotificationSound string           `json:"notification_sound"`
}

// Clone returns a deep copy of the settings. Nil and empty slices stay
// distinct: a nil selection means "never set".
func (s Settings) Clone() Settings {
	c := s
	c.Reminders = slices.Clone(s.Reminders)
	c.SelectedItemIDs = slices.Clone(s.SelectedItemIDs)
	c.Order = slices.Clone(s.Order)
	c.CustomItems = slices.Clone(s.CustomItems)
	return c
}
