package models

// EvenUnits clamps a prayer unit count to a non-negative even number.
func EvenUnits(units int) int {
	if units < 0 {
		return 0
	}
	return units - units%2
}

// ApplyLedgerDefaults patches a decoded ledger in place: nil maps become
// empty, counters that can't be negative are clamped and prayer units are
// rounded down to pairs. Level is left for the rules engine to re-derive.
func ApplyLedgerDefaults(l *Ledger) {
	if l.Prayers == nil {
		l.Prayers = make(map[PrayerKey]PrayerRecord)
	}
	if l.PostPrayer == nil {
		l.PostPrayer = make(map[PrayerKey]bool)
	}
	if l.GoodDeeds == nil {
		l.GoodDeeds = make(map[GoodDeed]bool)
	}
	if l.Categories == nil {
		l.Categories = make(map[Category]bool)
	}
	if l.CompletedItems == nil {
		l.CompletedItems = make(map[string]bool)
	}
	l.Night.Units = EvenUnits(l.Night.Units)
	l.Voluntary.Units = EvenUnits(l.Voluntary.Units)
	if l.Scripture.Pages < 0 {
		l.Scripture.Pages = 0
	}
	if l.Scripture.Parts < 0 {
		l.Scripture.Parts = 0
	}
	if l.ChallengePoints < 0 {
		l.ChallengePoints = 0
	}
	if l.StreakDays < 0 {
		l.StreakDays = 0
	}
	if l.Points < 0 {
		l.Points = 0
	}
	if l.Level == "" {
		l.Level = LevelBeginner
	}
}
