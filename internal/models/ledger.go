package models

type PrayerKey string

const (
	PrayerFajr    PrayerKey = "fajr"
	PrayerDhuhr   PrayerKey = "dhuhr"
	PrayerAsr     PrayerKey = "asr"
	PrayerMaghrib PrayerKey = "maghrib"
	PrayerIsha    PrayerKey = "isha"
)

type Category string

const (
	CategoryMorning     Category = "morning"
	CategoryEvening     Category = "evening"
	CategoryAfterPrayer Category = "afterPrayer"
	CategoryBeforeSleep Category = "beforeSleep"
)

type GoodDeed string

const (
	DeedIftar   GoodDeed = "iftar"
	DeedSadaqah GoodDeed = "sadaqah"
	DeedGeneral GoodDeed = "general"
)

type Level string

const (
	LevelBeginner  Level = "Beginner"
	LevelRegular   Level = "Regular"
	LevelDiligent  Level = "Diligent"
	LevelFirm      Level = "Firm"
	LevelRoleModel Level = "Role Model"
)

// PrayerRecord tracks one of the five daily prayers. Congregational is kept
// as given even when Completed is false.
type PrayerRecord struct {
	Completed      bool `json:"completed"`
	Congregational bool `json:"congregational"`
}

// NightPrayer counts qiyam units in steps of two plus the closing witr.
type NightPrayer struct {
	Units int  `json:"units"`
	Witr  bool `json:"witr"`
}

// VoluntaryPrayer counts nawafil units in steps of two.
type VoluntaryPrayer struct {
	Units int `json:"units"`
}

// Scripture holds two independent reading counters.
type Scripture struct {
	Pages int `json:"pages"`
	Parts int `json:"parts"`
}

// Ledger is the aggregate of the day's devotional activity plus the
// cumulative score. Maps are sparse: a missing key means false/zero.
type Ledger struct {
	Day            string                     `json:"day,omitempty"` // YYYY-MM-DD the daily fields belong to
	Prayers        map[PrayerKey]PrayerRecord `json:"prayers"`
	PostPrayer     map[PrayerKey]bool         `json:"post_prayer"`
	Night          NightPrayer                `json:"night"`
	Voluntary      VoluntaryPrayer            `json:"voluntary"`
	GoodDeeds      map[GoodDeed]bool          `json:"good_deeds"`
	Categories     map[Category]bool          `json:"categories"`
	CompletedItems map[string]bool            `json:"completed_items"`
	Scripture      Scripture                  `json:"scripture"`
	// ChallengePoints is what today's challenge awarded; non-zero marks it done.
	ChallengePoints int   `json:"challenge_points,omitempty"`
	StreakDays      int   `json:"streak_days"`
	Points          int   `json:"points"`
	Level           Level `json:"level"`
}

// NewLedger returns a clean-zero ledger.
func NewLedger() Ledger {
	l := Ledger{Level: LevelBeginner}
	ApplyLedgerDefaults(&l)
	return l
}

// Clone returns a deep copy so callers can't mutate the owner's maps.
func (l Ledger) Clone() Ledger {
	c := l
	c.Prayers = make(map[PrayerKey]PrayerRecord, len(l.Prayers))
	for k, v := range l.Prayers {
		c.Prayers[k] = v
	}
	c.PostPrayer = cloneMap(l.PostPrayer)
	c.GoodDeeds = cloneMap(l.GoodDeeds)
	c.Categories = cloneMap(l.Categories)
	c.CompletedItems = cloneMap(l.CompletedItems)
	return c
}

// HasActivity reports whether anything was recorded for the current day.
func (l Ledger) HasActivity() bool {
	for _, p := range l.Prayers {
		if p.Completed {
			return true
		}
	}
	if anyTrue(l.PostPrayer) || anyTrue(l.GoodDeeds) || anyTrue(l.Categories) || anyTrue(l.CompletedItems) {
		return true
	}
	return l.Night.Units > 0 || l.Night.Witr || l.Voluntary.Units > 0 ||
		l.Scripture.Pages > 0 || l.Scripture.Parts > 0 || l.ChallengePoints > 0
}

// ResetDaily clears every per-day field and keeps points, level and streak.
func (l *Ledger) ResetDaily() {
	l.Prayers = make(map[PrayerKey]PrayerRecord)
	l.PostPrayer = make(map[PrayerKey]bool)
	l.Night = NightPrayer{}
	l.Voluntary = VoluntaryPrayer{}
	l.GoodDeeds = make(map[GoodDeed]bool)
	l.Categories = make(map[Category]bool)
	l.CompletedItems = make(map[string]bool)
	l.Scripture = Scripture{}
	l.ChallengePoints = 0
}

func cloneMap[K comparable](m map[K]bool) map[K]bool {
	out := make(map[K]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func anyTrue[K comparable](m map[K]bool) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}
