package settings

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/notifier"
	store "github.com/julianstephens/rihla/internal/settings"
	"github.com/julianstephens/rihla/internal/storage/sqlite"
)

type fakePreviewer struct {
	err      error
	reminder models.Reminder
	sound    string
}

func (f *fakePreviewer) Preview(_ context.Context, r models.Reminder, sound string) error {
	f.reminder = r
	f.sound = sound
	return f.err
}

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s := sqlite.NewStore(dbPath)
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{Store: s}
	cleanup := func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

// persisted reads the settings back as a new invocation would.
func persisted(t *testing.T, ctx *cli.Context) *store.Store {
	t.Helper()
	st, err := store.New(ctx.Store)
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	return st
}

func TestSettingsListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsListCmd{}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestReminderSetCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tm := "04:50"
	off := false
	if err := (&ReminderSetCmd{ID: "fajr", Time: &tm, Enabled: &off}).Run(ctx); err != nil {
		t.Fatalf("reminder set failed: %v", err)
	}

	r, _ := persisted(t, ctx).Reminder("fajr")
	if r.Time != "04:50" || r.Enabled {
		t.Errorf("fajr = %+v", r)
	}
}

func TestReminderSetCmd_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	bad := "4:50"
	if err := (&ReminderSetCmd{ID: "fajr", Time: &bad}).Run(ctx); err == nil {
		t.Error("expected error for invalid time")
	}
	if err := (&ReminderSetCmd{ID: "lunch"}).Run(ctx); err == nil {
		t.Error("expected error for unknown reminder")
	}
	if err := (&ReminderSetCmd{ID: "fajr"}).Run(ctx); err != nil {
		t.Errorf("no-op update should succeed: %v", err)
	}
}

func TestReminderPreviewCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	fake := &fakePreviewer{}
	ctx.Notifier = fake
	if err := (&SoundCmd{ID: "Nature"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ReminderPreviewCmd{ID: "evening_adhkar"}).Run(ctx); err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if fake.reminder.ID != "evening_adhkar" || fake.sound != "nature" {
		t.Errorf("previewed %+v with %q", fake.reminder, fake.sound)
	}

	fake.err = notifier.ErrTrayNotRunning
	err := (&ReminderPreviewCmd{ID: "fajr"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "hint:") {
		t.Errorf("expected hint for missing tray app, got %v", err)
	}

	fake.err = errors.New("connection refused")
	if err := (&ReminderPreviewCmd{ID: "fajr"}).Run(ctx); err == nil {
		t.Error("expected error")
	}
}

func TestSoundCmd_Unknown(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SoundCmd{ID: "airhorn"}).Run(ctx); err == nil {
		t.Error("expected error for unknown sound")
	}
	if got := persisted(t, ctx).Settings().NotificationSound; got != "gentle" {
		t.Errorf("sound = %q", got)
	}
}

func TestSelectCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SelectCmd{ID: "s3"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if persisted(t, ctx).IsSelected("s3") {
		t.Error("s3 should be hidden")
	}
	if err := (&SelectCmd{ID: "zz"}).Run(ctx); err == nil {
		t.Error("expected error for unknown item")
	}
}

func TestMoveCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&MoveCmd{ID: "e2", Direction: "up"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	items := persisted(t, ctx).OrderedItems(models.CategoryEvening)
	if items[0].ID != "e2" || items[1].ID != "e1" {
		t.Errorf("evening order = %v", []string{items[0].ID, items[1].ID})
	}

	// moving the top item up is reported, not an error
	if err := (&MoveCmd{ID: "e2", Direction: "up"}).Run(ctx); err != nil {
		t.Errorf("boundary move failed: %v", err)
	}
	if err := (&MoveCmd{ID: "e2", Direction: "left"}).Run(ctx); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestAddAndDeleteCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	before := persisted(t, ctx).Settings()

	if err := (&AddCmd{Category: "beforeSleep", Text: "Count your blessings"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	st := persisted(t, ctx)
	custom := st.Settings().CustomItems
	if len(custom) != 1 || custom[0].Text != "Count your blessings" {
		t.Fatalf("custom items = %+v", custom)
	}
	id := custom[0].ID
	if !strings.HasPrefix(id, "custom-") || !st.IsSelected(id) {
		t.Errorf("new item %q should be selected", id)
	}

	if err := (&DeleteCmd{ID: "s1"}).Run(ctx); err == nil {
		t.Error("catalog items must not be deletable")
	}
	if err := (&DeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	after := persisted(t, ctx).Settings()
	if len(after.CustomItems) != 0 || len(after.Order) != len(before.Order) || len(after.SelectedItemIDs) != len(before.SelectedItemIDs) {
		t.Errorf("delete left traces: %+v", after)
	}
}

func TestAddCmd_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&AddCmd{Category: "noon", Text: "x"}).Run(ctx); err == nil {
		t.Error("expected error for unknown category")
	}
	if err := (&AddCmd{Category: "morning", Text: "   "}).Run(ctx); err == nil {
		t.Error("expected error for blank text")
	}
}
