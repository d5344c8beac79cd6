package constants

// Point values awarded by the progression rules. Congregational prayer
// replaces the individual value rather than adding to it.
const (
	PointsPrayerIndividual    = 5
	PointsPrayerCongregation  = 135
	PointsPostPrayerDhikr     = 15
	PointsNightPerTwoUnits    = 8
	PointsWitr                = 10
	PointsVoluntaryPerTwoUnit = 10
	PointsIftar               = 200
	PointsSadaqah             = 100
	PointsGeneralDeed         = 50
	PointsCategoryComplete    = 50
	PointsItemComplete        = 5
	PointsScripturePage       = 10
	PointsScripturePart       = 200
	PointsChallengeDefault    = 100
	// PointsChallengeMax bounds what a generated challenge may award.
	PointsChallengeMax = 1000
)
