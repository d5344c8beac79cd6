package rules

import (
	"testing"

	"github.com/julianstephens/rihla/internal/models"
)

func TestDailyDeedPoints(t *testing.T) {
	l := models.NewLedger()
	l.Prayers[models.PrayerFajr] = models.PrayerRecord{Completed: true, Congregational: true}
	l.Prayers[models.PrayerDhuhr] = models.PrayerRecord{Completed: true}
	l.Prayers[models.PrayerAsr] = models.PrayerRecord{Congregational: true}
	l.PostPrayer[models.PrayerFajr] = true
	l.Night = models.NightPrayer{Units: 4, Witr: true}
	l.Voluntary = models.VoluntaryPrayer{Units: 2}
	l.GoodDeeds[models.DeedSadaqah] = true
	l.Categories[models.CategoryMorning] = true
	l.CompletedItems["m1"] = true
	l.CompletedItems["m2"] = false
	l.Scripture = models.Scripture{Pages: 3, Parts: 1}

	want := 135 + 5 + 15 + 26 + 10 + 100 + 50 + 5 + 30 + 200
	if got := DailyDeedPoints(l); got != want {
		t.Errorf("DailyDeedPoints() = %d, want %d", got, want)
	}

	l.ChallengePoints = 120
	if got := DailyDeedPoints(l); got != want+120 {
		t.Errorf("DailyDeedPoints() with challenge = %d, want %d", got, want+120)
	}
}

func TestPrayerProgress(t *testing.T) {
	l := models.NewLedger()
	if got := PrayerProgress(l); got != 0 {
		t.Errorf("PrayerProgress(empty) = %v, want 0", got)
	}
	l.Prayers[models.PrayerFajr] = models.PrayerRecord{Completed: true}
	l.Prayers[models.PrayerIsha] = models.PrayerRecord{Completed: true, Congregational: true}
	if got := PrayerProgress(l); got != 40 {
		t.Errorf("PrayerProgress() = %v, want 40", got)
	}
}

func TestBadges(t *testing.T) {
	l := models.NewLedger()
	l.Points = 600
	l.GoodDeeds[models.DeedSadaqah] = true

	unlocked := map[string]bool{}
	for _, b := range Badges(l) {
		unlocked[b.ID] = b.IsUnlocked
	}

	want := map[string]bool{"b1": true, "b2": false, "b3": false, "b4": false, "b5": true, "b6": false}
	for id, w := range want {
		if unlocked[id] != w {
			t.Errorf("badge %s unlocked = %v, want %v", id, unlocked[id], w)
		}
	}
}

func TestLeaderboard(t *testing.T) {
	rows := Leaderboard(4200)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Rank != i+1 {
			t.Errorf("row %d has rank %d", i, r.Rank)
		}
		if r.IsMe && r.Rank != 2 {
			t.Errorf("user rank = %d, want 2", r.Rank)
		}
	}
}
