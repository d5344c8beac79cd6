// Package settings owns the user's customization: reminders, notification
// sound, the remembrance checklist selection and its custom order, and
// user-authored recitation items. Every mutation persists the whole snapshot.
package settings

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage"
)

// Direction moves an item within its category.
type Direction int

const (
	Up Direction = iota
	Down
)

// ParseDirection accepts "up" and "down".
func ParseDirection(v string) (Direction, bool) {
	switch strings.ToLower(v) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return 0, false
}

type Store struct {
	store    storage.Provider
	settings models.Settings
	newID    func() string
}

type Option func(*Store)

// WithIDGenerator replaces the custom item id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewCustomID returns "custom-" followed by a time-ordered UUIDv7.
func NewCustomID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return constants.CustomItemPrefix + id.String()
}

// New loads the settings snapshot, falling back to the defaults when it is
// missing, and normalizes it.
func New(p storage.Provider, opts ...Option) (*Store, error) {
	s := &Store{store: p, newID: NewCustomID}
	for _, opt := range opts {
		opt(s)
	}

	st, err := p.GetSettings()
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		st = catalog.DefaultSettings()
	case err != nil:
		logger.Error("Failed to load settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	s.settings = Normalize(st)
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() models.Settings {
	return s.settings.Clone()
}

// Save writes the current settings, e.g. to seed a freshly initialized store.
func (s *Store) Save() error {
	if err := s.store.SaveSettings(s.settings); err != nil {
		logger.Error("Failed to save settings", "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// mutate applies fn to a copy and persists it. fn returns false for a no-op,
// in which case nothing is written.
func (s *Store) mutate(op string, fn func(st *models.Settings) bool) error {
	next := s.settings.Clone()
	if !fn(&next) {
		return nil
	}
	prev := s.settings
	s.settings = next
	if err := s.Save(); err != nil {
		s.settings = prev
		return err
	}
	logger.Debug("Settings updated", "op", op)
	return nil
}

// SetReminder merges a partial update into a reminder. Unknown ids and
// times that are not HH:MM leave everything unchanged.
func (s *Store) SetReminder(id string, upd models.ReminderUpdate) error {
	if upd.Time != nil && !ValidTime(*upd.Time) {
		return nil
	}
	return s.mutate("reminder", func(st *models.Settings) bool {
		for i := range st.Reminders {
			if st.Reminders[i].ID != id {
				continue
			}
			if upd.Time != nil {
				st.Reminders[i].Time = *upd.Time
			}
			if upd.Enabled != nil {
				st.Reminders[i].Enabled = *upd.Enabled
			}
			return true
		}
		return false
	})
}

func (s *Store) SetNotificationSound(id string) error {
	if !catalog.IsSound(id) {
		return nil
	}
	return s.mutate("sound", func(st *models.Settings) bool {
		st.NotificationSound = id
		return true
	})
}

// ToggleSelected shows or hides an item in the daily guide.
func (s *Store) ToggleSelected(id string) error {
	if _, ok := s.Item(id); !ok {
		return nil
	}
	return s.mutate("select", func(st *models.Settings) bool {
		if i := slices.Index(st.SelectedItemIDs, id); i >= 0 {
			st.SelectedItemIDs = slices.Delete(st.SelectedItemIDs, i, i+1)
		} else {
			st.SelectedItemIDs = append(st.SelectedItemIDs, id)
		}
		return true
	})
}

// MoveItem swaps an item with its neighbour among the items of the same
// category, leaving other categories' positions untouched. Moving past
// either end of the category is a no-op.
func (s *Store) MoveItem(id string, dir Direction) error {
	item, ok := s.Item(id)
	if !ok {
		return nil
	}
	return s.mutate("move", func(st *models.Settings) bool {
		var positions []int
		at := -1
		for i, oid := range st.Order {
			it, ok := s.Item(oid)
			if !ok || it.Category != item.Category {
				continue
			}
			if oid == id {
				at = len(positions)
			}
			positions = append(positions, i)
		}
		if at < 0 {
			return false
		}
		to := at - 1
		if dir == Down {
			to = at + 1
		}
		if to < 0 || to >= len(positions) {
			return false
		}
		a, b := positions[at], positions[to]
		st.Order[a], st.Order[b] = st.Order[b], st.Order[a]
		return true
	})
}

// AddCustomItem creates a user-authored item, selected and appended to the
// order. Blank text or an unknown category returns "" and changes nothing.
func (s *Store) AddCustomItem(category models.Category, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || !catalog.IsCategory(category) {
		return "", nil
	}
	id := s.newID()
	err := s.mutate("add_custom", func(st *models.Settings) bool {
		st.CustomItems = append(st.CustomItems, models.RecitationItem{
			ID:          id,
			Category:    category,
			Text:        text,
			Repetitions: constants.DefaultCustomRepetitions,
		})
		st.SelectedItemIDs = append(st.SelectedItemIDs, id)
		st.Order = append(st.Order, id)
		return true
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteCustomItem removes a custom item from the custom list, the
// selection and the order in one transition. Catalog ids are ignored.
func (s *Store) DeleteCustomItem(id string) error {
	if !s.isCustom(id) {
		return nil
	}
	return s.mutate("delete_custom", func(st *models.Settings) bool {
		st.CustomItems = slices.DeleteFunc(st.CustomItems, func(it models.RecitationItem) bool { return it.ID == id })
		st.SelectedItemIDs = slices.DeleteFunc(st.SelectedItemIDs, func(v string) bool { return v == id })
		st.Order = slices.DeleteFunc(st.Order, func(v string) bool { return v == id })
		return true
	})
}

func (s *Store) isCustom(id string) bool {
	for _, it := range s.settings.CustomItems {
		if it.ID == id {
			return true
		}
	}
	return false
}

// IsCustom reports whether id names a user-authored item.
func (s *Store) IsCustom(id string) bool {
	return s.isCustom(id)
}

// Items returns the catalog items followed by the custom items.
func (s *Store) Items() []models.RecitationItem {
	items := catalog.Recitations()
	return append(items, s.settings.CustomItems...)
}

// Item resolves an id against the catalog and the custom items.
func (s *Store) Item(id string) (models.RecitationItem, bool) {
	if it, ok := catalog.Recitation(id); ok {
		return it, true
	}
	for _, it := range s.settings.CustomItems {
		if it.ID == id {
			return it, true
		}
	}
	return models.RecitationItem{}, false
}

// OrderedItems lists every item of a category in the user's order.
func (s *Store) OrderedItems(category models.Category) []models.RecitationItem {
	var out []models.RecitationItem
	for _, id := range s.settings.Order {
		if it, ok := s.Item(id); ok && it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// SelectedItems is the daily guide list: the selected items of a category
// in the user's order.
func (s *Store) SelectedItems(category models.Category) []models.RecitationItem {
	var out []models.RecitationItem
	for _, it := range s.OrderedItems(category) {
		if s.IsSelected(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) IsSelected(id string) bool {
	return slices.Contains(s.settings.SelectedItemIDs, id)
}

// Reminder looks up a reminder by id.
func (s *Store) Reminder(id string) (models.Reminder, bool) {
	for _, r := range s.settings.Reminders {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reminder{}, false
}
