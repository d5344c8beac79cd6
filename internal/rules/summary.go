package rules

import (
	"sort"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/models"
)

// DailyDeedPoints sums every active contribution of the ledger's daily fields.
// It's recomputed on each call.
func DailyDeedPoints(l models.Ledger) int {
	pts := 0
	for _, p := range l.Prayers {
		pts += PrayerPoints(p)
	}
	for _, done := range l.PostPrayer {
		pts += PostPrayerPoints(done)
	}
	pts += NightPoints(l.Night)
	pts += VoluntaryPoints(l.Voluntary)
	for key, done := range l.GoodDeeds {
		pts += GoodDeedPoints(key, done)
	}
	for _, done := range l.Categories {
		pts += CategoryPoints(done)
	}
	for _, done := range l.CompletedItems {
		pts += ItemPoints(done)
	}
	pts += ScripturePagesDelta(0, l.Scripture.Pages)
	pts += ScripturePartsDelta(0, l.Scripture.Parts)
	pts += Clamp(l.ChallengePoints)
	return pts
}

// PrayerProgress is the percentage of the five prayers completed.
func PrayerProgress(l models.Ledger) float64 {
	done := 0
	for _, p := range catalog.Prayers {
		if l.Prayers[p.Key].Completed {
			done++
		}
	}
	return float64(done) / float64(len(catalog.Prayers)) * 100
}

// BadgeState is a badge evaluated against a ledger.
type BadgeState struct {
	catalog.Badge
	IsUnlocked bool
}

// Badges evaluates every badge predicate on demand.
func Badges(l models.Ledger) []BadgeState {
	states := make([]BadgeState, 0, len(catalog.Badges))
	for _, b := range catalog.Badges {
		states = append(states, BadgeState{Badge: b, IsUnlocked: b.Unlocked(l)})
	}
	return states
}

// Standing is a leaderboard row.
type Standing struct {
	Rank   int
	Name   string
	Points int
	IsMe   bool
}

// Leaderboard ranks the user among the static companion group.
func Leaderboard(points int) []Standing {
	rows := make([]Standing, 0, len(catalog.Companions)+1)
	for _, c := range catalog.Companions {
		rows = append(rows, Standing{Name: c.Name, Points: c.Points})
	}
	rows = append(rows, Standing{Name: "You", Points: points, IsMe: true})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
