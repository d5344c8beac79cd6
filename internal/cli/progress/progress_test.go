package progress

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/rihla/internal/challenge"
	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/ledger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)
}

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "rihla.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return &cli.Context{
		Store:    store,
		Provider: challenge.Static{},
		Now:      fixedClock,
	}
}

// reload reads the ledger back through a fresh service, as the next
// command invocation would.
func reload(t *testing.T, ctx *cli.Context) models.Ledger {
	t.Helper()
	svc, err := ledger.New(ctx.Store, ledger.WithClock(fixedClock))
	if err != nil {
		t.Fatalf("failed to reload ledger: %v", err)
	}
	return svc.Ledger()
}

func TestPrayerCmd(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&PrayerCmd{ID: "Fajr"}).Run(ctx); err != nil {
		t.Fatalf("prayer failed: %v", err)
	}
	if err := (&PrayerCmd{ID: "isha", Congregation: true}).Run(ctx); err != nil {
		t.Fatalf("prayer failed: %v", err)
	}

	l := reload(t, ctx)
	if !l.Prayers[models.PrayerFajr].Completed || l.Prayers[models.PrayerFajr].Congregational {
		t.Errorf("fajr = %+v", l.Prayers[models.PrayerFajr])
	}
	if l.Points != 5+135 {
		t.Errorf("points = %d, want 140", l.Points)
	}

	if err := (&PrayerCmd{ID: "isha", Undo: true}).Run(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if got := reload(t, ctx).Points; got != 5 {
		t.Errorf("points after undo = %d, want 5", got)
	}
}

func TestPrayerCmd_Idempotent(t *testing.T) {
	ctx := setupTestContext(t)
	for i := 0; i < 3; i++ {
		if err := (&PrayerCmd{ID: "asr", Congregation: true}).Run(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if got := reload(t, ctx).Points; got != 135 {
		t.Errorf("points = %d, want 135", got)
	}
}

func TestPrayerCmd_UnknownPrayer(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&PrayerCmd{ID: "duha"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown prayer")
	}
	if err := (&RemembranceCmd{Prayer: "duha"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown prayer")
	}
}

func TestCountersAndToggles(t *testing.T) {
	ctx := setupTestContext(t)

	steps := []interface{ Run(*cli.Context) error }{
		&RemembranceCmd{Prayer: "dhuhr"},  // 15
		&NightCmd{Units: 5, Witr: true},   // 4 units -> 16 + 10
		&VoluntaryCmd{Units: 4},           // 20
		&DeedCmd{Key: "sadaqah"},          // 100
		&QuranPagesCmd{N: 3},              // 30
		&QuranPartsCmd{N: 1},              // 200
		&AdhkarCategoryCmd{ID: "MORNING"}, // 50
		&AdhkarItemCmd{ID: "m2"},          // 5
	}
	for _, s := range steps {
		if err := s.Run(ctx); err != nil {
			t.Fatalf("%T failed: %v", s, err)
		}
	}

	l := reload(t, ctx)
	if l.Night.Units != 4 || !l.Night.Witr {
		t.Errorf("night = %+v", l.Night)
	}
	if want := 15 + 26 + 20 + 100 + 30 + 200 + 50 + 5; l.Points != want {
		t.Errorf("points = %d, want %d", l.Points, want)
	}

	// scripture counters are set, not added
	if err := (&QuranPagesCmd{N: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := reload(t, ctx); got.Scripture.Pages != 1 || got.Points != l.Points-20 {
		t.Errorf("pages = %d, points = %d", got.Scripture.Pages, got.Points)
	}
}

func TestDeedAndAdhkarRejectUnknownIDs(t *testing.T) {
	ctx := setupTestContext(t)
	for _, s := range []interface{ Run(*cli.Context) error }{
		&DeedCmd{Key: "zakat"},
		&AdhkarCategoryCmd{ID: "noon"},
		&AdhkarItemCmd{ID: "x9"},
		&AdhkarListCmd{Category: "noon"},
	} {
		if err := s.Run(ctx); err == nil {
			t.Errorf("%T: expected error", s)
		}
	}
	if got := reload(t, ctx).Points; got != 0 {
		t.Errorf("points = %d, want 0", got)
	}
}

func TestChallengeCmd(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&ChallengeCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := reload(t, ctx).Points; got != 0 {
		t.Errorf("showing the challenge awarded %d points", got)
	}

	if err := (&ChallengeCmd{Done: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ChallengeCmd{Done: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := reload(t, ctx).Points; got != 100 {
		t.Errorf("points = %d, want 100 (completion is idempotent within a session)", got)
	}
}

func TestChallengeCmdOncePerDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rihla.json")
	invoke := func(now func() time.Time) {
		t.Helper()
		store := storage.NewJSONStore(path)
		if err := store.Init(); err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()
		ctx := &cli.Context{Store: store, Provider: challenge.Static{}, Now: now}
		if err := (&ChallengeCmd{Done: true}).Run(ctx); err != nil {
			t.Fatalf("challenge failed: %v", err)
		}
	}

	invoke(fixedClock)
	invoke(fixedClock)

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	l, err := store.GetLedger()
	if err != nil {
		t.Fatal(err)
	}
	if l.Points != 100 || l.ChallengePoints != 100 {
		t.Errorf("points = %d, challenge = %d, want 100/100", l.Points, l.ChallengePoints)
	}

	tomorrow := func() time.Time { return fixedClock().AddDate(0, 0, 1) }
	invoke(tomorrow)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if l, _ = store.GetLedger(); l.Points != 200 {
		t.Errorf("points after next day's challenge = %d, want 200", l.Points)
	}
}

func TestReadOnlyCommands(t *testing.T) {
	ctx := setupTestContext(t)
	for _, s := range []interface{ Run(*cli.Context) error }{
		&StatusCmd{Offline: true},
		&StatusCmd{},
		&JourneyCmd{},
		&AdhkarListCmd{},
		&AdhkarListCmd{Category: "evening"},
	} {
		if err := s.Run(ctx); err != nil {
			t.Errorf("%T failed: %v", s, err)
		}
	}
}
