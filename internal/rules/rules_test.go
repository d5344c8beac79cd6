package rules

import (
	"testing"

	"github.com/julianstephens/rihla/internal/models"
)

func TestPrayerPoints(t *testing.T) {
	tests := []struct {
		name   string
		record models.PrayerRecord
		want   int
	}{
		{"not completed", models.PrayerRecord{}, 0},
		{"not completed but congregational flag set", models.PrayerRecord{Congregational: true}, 0},
		{"individual", models.PrayerRecord{Completed: true}, 5},
		{"congregation replaces individual", models.PrayerRecord{Completed: true, Congregational: true}, 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrayerPoints(tt.record); got != tt.want {
				t.Errorf("PrayerPoints(%+v) = %d, want %d", tt.record, got, tt.want)
			}
		})
	}
}

func TestNightAndVoluntaryPoints(t *testing.T) {
	if got := NightPoints(models.NightPrayer{Units: 4, Witr: true}); got != 26 {
		t.Errorf("NightPoints(4, witr) = %d, want 26", got)
	}
	if got := NightPoints(models.NightPrayer{}); got != 0 {
		t.Errorf("NightPoints(0) = %d, want 0", got)
	}
	if got := VoluntaryPoints(models.VoluntaryPrayer{Units: 6}); got != 30 {
		t.Errorf("VoluntaryPoints(6) = %d, want 30", got)
	}
}

func TestGoodDeedPoints(t *testing.T) {
	tests := []struct {
		key  models.GoodDeed
		want int
	}{
		{models.DeedIftar, 200},
		{models.DeedSadaqah, 100},
		{models.DeedGeneral, 50},
		{models.GoodDeed("unknown"), 0},
	}
	for _, tt := range tests {
		if got := GoodDeedPoints(tt.key, true); got != tt.want {
			t.Errorf("GoodDeedPoints(%s) = %d, want %d", tt.key, got, tt.want)
		}
		if got := GoodDeedPoints(tt.key, false); got != 0 {
			t.Errorf("GoodDeedPoints(%s, false) = %d, want 0", tt.key, got)
		}
	}
}

func TestChallengePointsDefault(t *testing.T) {
	if got := ChallengePoints(models.DailyChallenge{}); got != 100 {
		t.Errorf("ChallengePoints(empty) = %d, want 100", got)
	}
	if got := ChallengePoints(models.DailyChallenge{PointsValue: 250}); got != 250 {
		t.Errorf("ChallengePoints(250) = %d, want 250", got)
	}
	if got := ChallengePoints(models.DailyChallenge{PointsValue: 50000}); got != 100 {
		t.Errorf("ChallengePoints(50000) = %d, want 100", got)
	}
}

func TestApplyClampsAtZero(t *testing.T) {
	if got := Apply(10, 0, 5); got != 15 {
		t.Errorf("Apply(10, 0, 5) = %d, want 15", got)
	}
	if got := Apply(10, 135, 0); got != 0 {
		t.Errorf("Apply(10, 135, 0) = %d, want 0", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   models.Level
	}{
		{0, models.LevelBeginner},
		{1999, models.LevelBeginner},
		{2000, models.LevelRegular},
		{9999, models.LevelRegular},
		{10000, models.LevelDiligent},
		{29999, models.LevelDiligent},
		{30000, models.LevelFirm},
		{100000, models.LevelRoleModel},
		{5000000, models.LevelRoleModel},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.points); got != tt.want {
			t.Errorf("LevelFor(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestNextLevel(t *testing.T) {
	p := NextLevel(1000)
	if p.Current != models.LevelBeginner || p.Next != models.LevelRegular {
		t.Fatalf("NextLevel(1000) tiers = %q -> %q", p.Current, p.Next)
	}
	if p.Remaining != 1000 {
		t.Errorf("Remaining = %d, want 1000", p.Remaining)
	}
	if p.Percent != 50 {
		t.Errorf("Percent = %v, want 50", p.Percent)
	}

	top := NextLevel(150000)
	if top.Next != "" || top.Percent != 100 || top.Remaining != 0 {
		t.Errorf("NextLevel at top tier = %+v", top)
	}
}
