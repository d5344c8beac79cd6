// Package ledger owns the progress ledger: every devotional toggle and
// counter, the cumulative points and the derived level. Each operation is a
// single state transition followed by one full snapshot save.
//
// A Service is not safe for concurrent use; the TUI and each CLI command own
// exactly one.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/rules"
	"github.com/julianstephens/rihla/internal/storage"
)

type Service struct {
	store     storage.Provider
	now       func() time.Time
	ledger    models.Ledger
	challenge *models.DailyChallenge
}

type Option func(*Service)

// WithClock replaces time.Now, for tests and the TUI's day check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New loads the ledger snapshot from store, starting clean-zero when none
// exists, and rolls it over if it belongs to an earlier day.
func New(store storage.Provider, opts ...Option) (*Service, error) {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	l, err := store.GetLedger()
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		l = models.NewLedger()
		l.Day = s.today()
	case err != nil:
		logger.Error("Failed to load ledger", "error", err)
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	models.ApplyLedgerDefaults(&l)
	// level is always re-derivable from points
	l.Level = rules.LevelFor(l.Points)
	s.ledger = l

	if _, err := s.Rollover(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) today() string {
	return s.now().Format(constants.DateFormat)
}

// Rollover resets the daily fields when the clock has moved to a new day and
// persists the result. It reports whether anything changed.
func (s *Service) Rollover() (bool, error) {
	if !s.rollover() {
		return false, nil
	}
	return true, s.persist()
}

func (s *Service) rollover() bool {
	today := s.today()
	l := &s.ledger
	if l.Day == today {
		return false
	}
	if l.Day == "" {
		l.Day = today
		return true
	}

	prevDay := l.Day
	if isYesterday(prevDay, s.now()) && l.HasActivity() {
		l.StreakDays++
	} else {
		l.StreakDays = 0
	}
	l.ResetDaily()
	l.Day = today

	logger.Info("Ledger rolled over", "from", prevDay, "to", today, "streak", l.StreakDays)
	return true
}

func isYesterday(day string, now time.Time) bool {
	prev, err := time.ParseInLocation(constants.DateFormat, day, now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	yesterday := time.Date(y, m, d-1, 0, 0, 0, 0, now.Location())
	return prev.Equal(yesterday)
}

func (s *Service) persist() error {
	if err := s.store.SaveLedger(s.ledger); err != nil {
		logger.Error("Failed to save ledger", "error", err)
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// mutate runs one ledger operation: fn applies the change and returns the
// old and new contribution of the touched field. The in-memory ledger is
// restored when the snapshot cannot be saved.
func (s *Service) mutate(op string, fn func(l *models.Ledger) (oldContribution, newContribution int)) error {
	before := s.ledger.Clone()

	s.rollover()
	oldC, newC := fn(&s.ledger)
	s.ledger.Points = rules.Apply(s.ledger.Points, oldC, newC)
	s.ledger.Level = rules.LevelFor(s.ledger.Points)

	if err := s.persist(); err != nil {
		s.ledger = before
		return err
	}
	logger.Debug("Ledger updated", "op", op, "delta", newC-oldC, "points", s.ledger.Points, "level", s.ledger.Level)
	return nil
}

// SetPrayer records a prayer. Congregational is stored as given even when
// completed is false.
func (s *Service) SetPrayer(id models.PrayerKey, completed, congregational bool) error {
	return s.setPrayer(id, func(models.PrayerRecord) models.PrayerRecord {
		return models.PrayerRecord{Completed: completed, Congregational: congregational}
	})
}

// ToggleIndividual is the "prayed alone" button: it completes the prayer
// individually, or clears it when it already is individually complete.
func (s *Service) ToggleIndividual(id models.PrayerKey) error {
	return s.setPrayer(id, func(p models.PrayerRecord) models.PrayerRecord {
		return models.PrayerRecord{Completed: !p.Completed || p.Congregational}
	})
}

// ToggleCongregational is the "prayed in congregation" button.
func (s *Service) ToggleCongregational(id models.PrayerKey) error {
	return s.setPrayer(id, func(p models.PrayerRecord) models.PrayerRecord {
		return models.PrayerRecord{Completed: !p.Completed || !p.Congregational, Congregational: true}
	})
}

// setPrayer derives the new record from the one stored after any day
// rollover, inside the same transition.
func (s *Service) setPrayer(id models.PrayerKey, next func(models.PrayerRecord) models.PrayerRecord) error {
	if !catalog.IsPrayer(id) {
		return nil
	}
	return s.mutate("prayer", func(l *models.Ledger) (int, int) {
		old := l.Prayers[id]
		rec := next(old)
		l.Prayers[id] = rec
		return rules.PrayerPoints(old), rules.PrayerPoints(rec)
	})
}

func (s *Service) SetPostPrayerRemembrance(id models.PrayerKey) error {
	if !catalog.IsPrayer(id) {
		return nil
	}
	return s.mutate("post_prayer", func(l *models.Ledger) (int, int) {
		old := l.PostPrayer[id]
		l.PostPrayer[id] = !old
		return rules.PostPrayerPoints(old), rules.PostPrayerPoints(!old)
	})
}

// SetNightPrayer sets both night prayer fields in one transition.
func (s *Service) SetNightPrayer(units int, witr bool) error {
	return s.mutate("night", func(l *models.Ledger) (int, int) {
		old := rules.NightPoints(l.Night)
		l.Night = models.NightPrayer{Units: models.EvenUnits(units), Witr: witr}
		return old, rules.NightPoints(l.Night)
	})
}

func (s *Service) SetVoluntaryPrayer(units int) error {
	return s.mutate("voluntary", func(l *models.Ledger) (int, int) {
		old := rules.VoluntaryPoints(l.Voluntary)
		l.Voluntary = models.VoluntaryPrayer{Units: models.EvenUnits(units)}
		return old, rules.VoluntaryPoints(l.Voluntary)
	})
}

func (s *Service) SetGoodDeed(key models.GoodDeed) error {
	if !catalog.IsGoodDeed(key) {
		return nil
	}
	return s.mutate("good_deed", func(l *models.Ledger) (int, int) {
		old := l.GoodDeeds[key]
		l.GoodDeeds[key] = !old
		return rules.GoodDeedPoints(key, old), rules.GoodDeedPoints(key, !old)
	})
}

// SetRemembranceCategory toggles the whole-category flag. It does not touch
// the individual item completions of that category.
func (s *Service) SetRemembranceCategory(id models.Category) error {
	if !catalog.IsCategory(id) {
		return nil
	}
	return s.mutate("category", func(l *models.Ledger) (int, int) {
		old := l.Categories[id]
		l.Categories[id] = !old
		return rules.CategoryPoints(old), rules.CategoryPoints(!old)
	})
}

// SetIndividualRemembranceItem toggles one item. Cleared items are removed
// from the map.
func (s *Service) SetIndividualRemembranceItem(id string) error {
	if id == "" {
		return nil
	}
	return s.mutate("item", func(l *models.Ledger) (int, int) {
		old := l.CompletedItems[id]
		if old {
			delete(l.CompletedItems, id)
		} else {
			l.CompletedItems[id] = true
		}
		return rules.ItemPoints(old), rules.ItemPoints(!old)
	})
}

func (s *Service) SetScripturePages(n int) error {
	n = rules.Clamp(n)
	return s.mutate("scripture_pages", func(l *models.Ledger) (int, int) {
		delta := rules.ScripturePagesDelta(l.Scripture.Pages, n)
		l.Scripture.Pages = n
		return 0, delta
	})
}

func (s *Service) SetScriptureParts(n int) error {
	n = rules.Clamp(n)
	return s.mutate("scripture_parts", func(l *models.Ledger) (int, int) {
		delta := rules.ScripturePartsDelta(l.Scripture.Parts, n)
		l.Scripture.Parts = n
		return 0, delta
	})
}

// SetChallenge installs the session's challenge. It is never persisted.
func (s *Service) SetChallenge(c models.DailyChallenge) {
	s.challenge = &c
}

// CompleteChallenge awards the challenge's points once per day, across
// sessions. Without a challenge, or when today's is already complete,
// nothing happens.
func (s *Service) CompleteChallenge() error {
	if s.challenge == nil || s.challengeDone() {
		return nil
	}
	return s.mutate("challenge", func(l *models.Ledger) (int, int) {
		old := l.ChallengePoints
		l.ChallengePoints = rules.ChallengePoints(*s.challenge)
		return old, l.ChallengePoints
	})
}

func (s *Service) challengeDone() bool {
	return s.ledger.Day == s.today() && s.ledger.ChallengePoints > 0
}

// Challenge returns the session challenge, if one was installed. Completed
// reflects today's ledger.
func (s *Service) Challenge() (models.DailyChallenge, bool) {
	if s.challenge == nil {
		return models.DailyChallenge{}, false
	}
	c := *s.challenge
	c.Completed = s.challengeDone()
	return c, true
}

// Ledger returns a copy of the current ledger.
func (s *Service) Ledger() models.Ledger {
	return s.ledger.Clone()
}

// DailyDeedPoints is the on-demand sum of everything active today.
func (s *Service) DailyDeedPoints() int {
	return rules.DailyDeedPoints(s.ledger)
}

// Save writes the current ledger, e.g. to seed a freshly initialized store.
func (s *Service) Save() error {
	return s.persist()
}
