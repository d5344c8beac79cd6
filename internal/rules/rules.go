// Package rules converts ledger values into points and derives the level.
// Every function is pure.
package rules

import (
	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/models"
)

// PrayerPoints is the contribution of a single prayer record. Congregation
// replaces the individual value.
func PrayerPoints(p models.PrayerRecord) int {
	if !p.Completed {
		return 0
	}
	if p.Congregational {
		return constants.PointsPrayerCongregation
	}
	return constants.PointsPrayerIndividual
}

func PostPrayerPoints(done bool) int {
	return flag(done, constants.PointsPostPrayerDhikr)
}

func NightPoints(n models.NightPrayer) int {
	return (n.Units/2)*constants.PointsNightPerTwoUnits + flag(n.Witr, constants.PointsWitr)
}

func VoluntaryPoints(v models.VoluntaryPrayer) int {
	return (v.Units / 2) * constants.PointsVoluntaryPerTwoUnit
}

// GoodDeedPoints returns the value of a deed when done; unknown deeds are worth nothing.
func GoodDeedPoints(key models.GoodDeed, done bool) int {
	if !done {
		return 0
	}
	switch key {
	case models.DeedIftar:
		return constants.PointsIftar
	case models.DeedSadaqah:
		return constants.PointsSadaqah
	case models.DeedGeneral:
		return constants.PointsGeneralDeed
	}
	return 0
}

func CategoryPoints(done bool) int {
	return flag(done, constants.PointsCategoryComplete)
}

func ItemPoints(done bool) int {
	return flag(done, constants.PointsItemComplete)
}

// ScripturePagesDelta uses the per-unit delta model: the count is the value.
func ScripturePagesDelta(oldCount, newCount int) int {
	return (newCount - oldCount) * constants.PointsScripturePage
}

func ScripturePartsDelta(oldCount, newCount int) int {
	return (newCount - oldCount) * constants.PointsScripturePart
}

// ChallengePoints is the challenge's own value, or the default when unset.
func ChallengePoints(c models.DailyChallenge) int {
	if c.PointsValue <= 0 || c.PointsValue > constants.PointsChallengeMax {
		return constants.PointsChallengeDefault
	}
	return c.PointsValue
}

// Apply replaces an old contribution with a new one and floors the total at zero.
func Apply(points, oldContribution, newContribution int) int {
	return Clamp(points + newContribution - oldContribution)
}

// Clamp floors points at zero.
func Clamp(points int) int {
	if points < 0 {
		return 0
	}
	return points
}

// LevelFor returns the highest tier whose threshold does not exceed points.
func LevelFor(points int) models.Level {
	level := catalog.Levels[0].Name
	best := -1
	for _, tier := range catalog.Levels {
		if tier.MinPoints <= points && tier.MinPoints >= best {
			level = tier.Name
			best = tier.MinPoints
		}
	}
	return level
}

// Progress describes the distance to the next tier.
type Progress struct {
	Current   models.Level
	Next      models.Level // empty at the top tier
	Remaining int
	Percent   float64
}

// NextLevel reports progress from the current tier towards the next one.
func NextLevel(points int) Progress {
	points = Clamp(points)
	current := LevelFor(points)
	p := Progress{Current: current, Percent: 100}

	var floor int
	for i, tier := range catalog.Levels {
		if tier.Name != current {
			continue
		}
		floor = tier.MinPoints
		if i+1 < len(catalog.Levels) {
			next := catalog.Levels[i+1]
			p.Next = next.Name
			p.Remaining = next.MinPoints - points
			p.Percent = float64(points-floor) / float64(next.MinPoints-floor) * 100
		}
		break
	}
	return p
}

func flag(done bool, value int) int {
	if done {
		return value
	}
	return 0
}
