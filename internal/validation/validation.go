package validation

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/rules"
)

// Conflict represents an inconsistency found in a stored snapshot
type Conflict struct {
	Type        constants.ConflictType
	Snapshot    string // "ledger" or "settings"
	Description string
	Items       []string // ids involved (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction describes a repair made by Fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Of returns the conflicts of a given type.
func (vr *ValidationResult) Of(t constants.ConflictType) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- [%s] %s\n", conflict.Snapshot, conflict.Description)
	}
	return report
}

func (vr *ValidationResult) add(t constants.ConflictType, snapshot, desc string, items ...string) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Snapshot: snapshot, Description: desc, Items: items})
}

// Validator checks raw snapshots, before any defaults or normalization are
// applied, for values rihla would never write itself.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate checks both snapshots.
func (v *Validator) Validate(l models.Ledger, s models.Settings) ValidationResult {
	result := v.ValidateLedger(l)
	result.Conflicts = append(result.Conflicts, v.ValidateSettings(s).Conflicts...)
	return result
}

// ValidateLedger checks the ledger's score, level and counters.
func (v *Validator) ValidateLedger(l models.Ledger) ValidationResult {
	const snap = constants.LedgerSnapshot
	result := ValidationResult{Conflicts: []Conflict{}}

	if l.Points < 0 {
		result.add(constants.ConflictNegativePoints, snap, fmt.Sprintf("Points are negative: %d", l.Points))
	}
	if want := rules.LevelFor(l.Points); l.Level != want {
		result.add(constants.ConflictLevelDrift, snap,
			fmt.Sprintf("Stored level %q does not match %q derived from %d points", l.Level, want, l.Points))
	}

	units := []struct {
		name  string
		value int
		even  bool
	}{
		{"night prayer units", l.Night.Units, true},
		{"voluntary prayer units", l.Voluntary.Units, true},
		{"scripture pages", l.Scripture.Pages, false},
		{"scripture parts", l.Scripture.Parts, false},
		{"challenge points", l.ChallengePoints, false},
	}
	for _, u := range units {
		if u.value < 0 || (u.even && u.value%2 != 0) {
			result.add(constants.ConflictInvalidUnits, snap, fmt.Sprintf("Invalid %s: %d", u.name, u.value))
		}
	}

	if l.Day != "" {
		if _, err := time.Parse(constants.DateFormat, l.Day); err != nil {
			result.add(constants.ConflictInvalidTime, snap, fmt.Sprintf("Ledger day is not YYYY-MM-DD: %s", l.Day))
		}
	}

	return result
}

// ValidateSettings checks the ordering rules, the reminders and the
// notification sound.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	const snap = constants.SettingsSnapshot
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool)
	for _, id := range catalog.RecitationIDs() {
		known[id] = true
	}
	for _, it := range s.CustomItems {
		known[it.ID] = true
	}

	counts := make(map[string]int)
	for _, id := range s.Order {
		counts[id]++
	}
	var dups []string
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	for _, id := range dups {
		result.add(constants.ConflictDuplicateOrderID, snap, fmt.Sprintf("Order lists %q %d times", id, counts[id]), id)
	}

	for _, id := range s.Order {
		if !known[id] && counts[id] > 0 {
			result.add(constants.ConflictStaleOrderID, snap, fmt.Sprintf("Order references unknown item %q", id), id)
			counts[id] = 0
		}
	}

	var missing []string
	for _, id := range catalog.RecitationIDs() {
		if counts[id] == 0 {
			missing = append(missing, id)
		}
	}
	for _, it := range s.CustomItems {
		if counts[it.ID] == 0 {
			missing = append(missing, it.ID)
		}
	}
	if len(missing) > 0 {
		result.add(constants.ConflictMissingOrderID, snap, fmt.Sprintf("Order is missing %d item(s): %v", len(missing), missing), missing...)
	}

	for _, id := range s.SelectedItemIDs {
		if !known[id] {
			result.add(constants.ConflictStaleSelectedID, snap, fmt.Sprintf("Selection references unknown item %q", id), id)
		}
	}

	if s.NotificationSound != "" && !catalog.IsSound(s.NotificationSound) {
		result.add(constants.ConflictUnknownSound, snap, fmt.Sprintf("Unknown notification sound %q", s.NotificationSound))
	}

	var reminderIDs []string
	for _, r := range catalog.DefaultReminders() {
		reminderIDs = append(reminderIDs, r.ID)
	}
	for _, r := range s.Reminders {
		if !slices.Contains(reminderIDs, r.ID) {
			result.add(constants.ConflictUnknownReminder, snap, fmt.Sprintf("Unknown reminder %q", r.ID), r.ID)
			continue
		}
		if !isValidTimeFormat(r.Time) {
			result.add(constants.ConflictInvalidTime, snap, fmt.Sprintf("Reminder %q has invalid time: %s", r.ID, r.Time), r.ID)
		}
	}

	return result
}

func isValidTimeFormat(timeStr string) bool {
	if len(timeStr) != len(constants.TimeFormat) {
		return false
	}
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// Fix repairs the ledger conflicts that have a single correct answer: the
// level is re-derived, points are clamped and counters are rounded down to
// a valid value. It returns the repaired ledger and what was done.
func Fix(l models.Ledger, conflicts []Conflict) (models.Ledger, []FixAction) {
	out := l.Clone()
	var actions []FixAction
	unitsFixed := false
	for _, c := range conflicts {
		if c.Snapshot != constants.LedgerSnapshot {
			continue
		}
		switch c.Type {
		case constants.ConflictNegativePoints:
			out.Points = rules.Clamp(out.Points)
			actions = append(actions, FixAction{Action: "Reset negative points to 0", SourceConflict: c})
		case constants.ConflictInvalidUnits:
			if unitsFixed {
				continue
			}
			unitsFixed = true
			out.Night.Units = validUnits(out.Night.Units, true)
			out.Voluntary.Units = validUnits(out.Voluntary.Units, true)
			out.Scripture.Pages = validUnits(out.Scripture.Pages, false)
			out.Scripture.Parts = validUnits(out.Scripture.Parts, false)
			out.ChallengePoints = validUnits(out.ChallengePoints, false)
			actions = append(actions, FixAction{Action: "Rounded invalid counters down", SourceConflict: c})
		}
	}
	if want := rules.LevelFor(out.Points); out.Level != want {
		out.Level = want
		for _, c := range conflicts {
			if c.Type == constants.ConflictLevelDrift {
				actions = append(actions, FixAction{Action: fmt.Sprintf("Set level to %s", want), SourceConflict: c})
				break
			}
		}
	}
	return out, actions
}

func validUnits(n int, even bool) int {
	if n < 0 {
		return 0
	}
	if even {
		return models.EvenUnits(n)
	}
	return n
}
