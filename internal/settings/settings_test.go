package settings

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage"
)

type failingStore struct {
	*storage.MemoryStore
	fail bool
}

func (f *failingStore) SaveSettings(st models.Settings) error {
	if f.fail {
		return errors.New("read-only filesystem")
	}
	return f.MemoryStore.SaveSettings(st)
}

func newStore(t *testing.T) (*Store, *failingStore) {
	t.Helper()
	p := &failingStore{MemoryStore: storage.NewMemoryStore()}
	if err := p.Init(); err != nil {
		t.Fatal(err)
	}
	n := 0
	s, err := New(p, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("custom-%d", n)
	}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, p
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func ids(items []models.RecitationItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sorted(v []string) []string {
	out := slices.Clone(v)
	slices.Sort(out)
	return out
}

func TestDefaults(t *testing.T) {
	s, _ := newStore(t)
	st := s.Settings()

	if diff := cmp.Diff(catalog.RecitationIDs(), st.Order); diff != "" {
		t.Errorf("default order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(catalog.RecitationIDs(), st.SelectedItemIDs); diff != "" {
		t.Errorf("default selection (-want +got):\n%s", diff)
	}
	if st.NotificationSound != "gentle" || len(st.Reminders) != 4 {
		t.Errorf("defaults = %+v", st)
	}
	if got := ids(s.SelectedItems(models.CategoryMorning)); !cmp.Equal(got, []string{"m1", "m2", "m3", "m4", "m5", "m6"}) {
		t.Errorf("morning guide = %v", got)
	}
}

func TestCustomItemLifecycleRestoresCollections(t *testing.T) {
	s, _ := newStore(t)
	mustOK(t, s.MoveItem("e3", Up))
	before := s.Settings()

	id, err := s.AddCustomItem(models.CategoryMorning, "  My own words  ")
	mustOK(t, err)
	if id != "custom-1" {
		t.Fatalf("id = %q", id)
	}
	mid := s.Settings()
	if len(mid.CustomItems) != 1 || mid.CustomItems[0].Text != "My own words" || mid.CustomItems[0].Repetitions != 1 {
		t.Errorf("custom items = %+v", mid.CustomItems)
	}
	if !s.IsSelected(id) || mid.Order[len(mid.Order)-1] != id {
		t.Error("new item should be selected and appended to the order")
	}
	if got := ids(s.SelectedItems(models.CategoryMorning)); got[len(got)-1] != id {
		t.Errorf("guide should list the new item last: %v", got)
	}

	mustOK(t, s.DeleteCustomItem(id))
	after := s.Settings()

	opt := cmpopts.EquateEmpty()
	if diff := cmp.Diff(sorted(before.Order), sorted(after.Order)); diff != "" {
		t.Errorf("order set changed:\n%s", diff)
	}
	if diff := cmp.Diff(before.Order, after.Order); diff != "" {
		t.Errorf("order sequence changed:\n%s", diff)
	}
	if diff := cmp.Diff(sorted(before.SelectedItemIDs), sorted(after.SelectedItemIDs)); diff != "" {
		t.Errorf("selection changed:\n%s", diff)
	}
	if diff := cmp.Diff(before.CustomItems, after.CustomItems, opt); diff != "" {
		t.Errorf("custom items changed:\n%s", diff)
	}
}

func TestAddCustomItemRejectsInvalid(t *testing.T) {
	s, _ := newStore(t)
	before := s.Settings()

	for _, tc := range []struct {
		category models.Category
		text     string
	}{
		{models.CategoryEvening, ""},
		{models.CategoryEvening, "   "},
		{"noon", "text"},
	} {
		id, err := s.AddCustomItem(tc.category, tc.text)
		mustOK(t, err)
		if id != "" {
			t.Errorf("AddCustomItem(%q, %q) = %q, want empty", tc.category, tc.text, id)
		}
	}
	if diff := cmp.Diff(before, s.Settings()); diff != "" {
		t.Errorf("settings changed:\n%s", diff)
	}
}

func TestDeleteCustomItemIgnoresCatalogAndUnknown(t *testing.T) {
	s, _ := newStore(t)
	before := s.Settings()
	mustOK(t, s.DeleteCustomItem("m1"))
	mustOK(t, s.DeleteCustomItem("custom-404"))
	if diff := cmp.Diff(before, s.Settings()); diff != "" {
		t.Errorf("settings changed:\n%s", diff)
	}
}

func TestMoveItemWithinCategory(t *testing.T) {
	s, _ := newStore(t)

	mustOK(t, s.MoveItem("m3", Up))
	if got := ids(s.OrderedItems(models.CategoryMorning)); !cmp.Equal(got, []string{"m1", "m3", "m2", "m4", "m5", "m6"}) {
		t.Errorf("after move up: %v", got)
	}
	mustOK(t, s.MoveItem("m3", Down))
	mustOK(t, s.MoveItem("m3", Down))
	if got := ids(s.OrderedItems(models.CategoryMorning)); !cmp.Equal(got, []string{"m1", "m2", "m4", "m3", "m5", "m6"}) {
		t.Errorf("after move down: %v", got)
	}

	// other categories keep their positions in the full order
	order := s.Settings().Order
	for _, id := range []string{"e1", "ap1", "s5"} {
		if slices.Index(order, id) != slices.Index(catalog.RecitationIDs(), id) {
			t.Errorf("%s moved", id)
		}
	}
}

func TestMoveItemAcrossInterleavedOrder(t *testing.T) {
	s, _ := newStore(t)
	id, err := s.AddCustomItem(models.CategoryMorning, "Late morning")
	mustOK(t, err)

	// custom morning item sits after every other category; moving it up
	// swaps it with m6 in the full order
	mustOK(t, s.MoveItem(id, Up))
	order := s.Settings().Order
	if order[5] != id || order[len(order)-1] != "m6" {
		t.Errorf("order = %v", order)
	}
	if got := ids(s.OrderedItems(models.CategoryMorning)); got[4] != id || got[5] != "m6" {
		t.Errorf("morning = %v", got)
	}
}

func TestMoveBoundariesAreNoOps(t *testing.T) {
	s, _ := newStore(t)
	before := s.Settings().Order

	tests := []struct {
		id  string
		dir Direction
	}{
		{"m1", Up}, {"m6", Down}, {"e1", Up}, {"e5", Down},
		{"ap1", Up}, {"ap4", Down}, {"s1", Up}, {"s5", Down},
		{"unknown", Up},
	}
	for _, tt := range tests {
		mustOK(t, s.MoveItem(tt.id, tt.dir))
		if diff := cmp.Diff(before, s.Settings().Order); diff != "" {
			t.Errorf("MoveItem(%s, %v) changed order:\n%s", tt.id, tt.dir, diff)
		}
	}
}

func TestToggleSelected(t *testing.T) {
	s, _ := newStore(t)
	mustOK(t, s.ToggleSelected("e2"))
	if s.IsSelected("e2") {
		t.Error("e2 should be hidden")
	}
	if got := ids(s.SelectedItems(models.CategoryEvening)); slices.Contains(got, "e2") {
		t.Errorf("guide still lists e2: %v", got)
	}
	if got := ids(s.OrderedItems(models.CategoryEvening)); !slices.Contains(got, "e2") {
		t.Error("hidden item keeps its position")
	}
	mustOK(t, s.ToggleSelected("e2"))
	if !s.IsSelected("e2") {
		t.Error("e2 should be visible again")
	}

	before := s.Settings()
	mustOK(t, s.ToggleSelected("ghost"))
	if diff := cmp.Diff(before, s.Settings()); diff != "" {
		t.Errorf("unknown id changed settings:\n%s", diff)
	}
}

func TestDeselectAllSurvivesReload(t *testing.T) {
	s, p := newStore(t)
	for _, id := range catalog.RecitationIDs() {
		mustOK(t, s.ToggleSelected(id))
	}
	reloaded, err := New(p)
	mustOK(t, err)
	if got := reloaded.Settings().SelectedItemIDs; len(got) != 0 {
		t.Errorf("empty selection should persist, got %v", got)
	}
}

func TestSetReminder(t *testing.T) {
	s, _ := newStore(t)
	tm := "04:45"
	off := false

	mustOK(t, s.SetReminder("fajr", models.ReminderUpdate{Time: &tm}))
	r, _ := s.Reminder("fajr")
	if r.Time != "04:45" || !r.Enabled {
		t.Errorf("fajr = %+v", r)
	}

	mustOK(t, s.SetReminder("fajr", models.ReminderUpdate{Enabled: &off}))
	r, _ = s.Reminder("fajr")
	if r.Time != "04:45" || r.Enabled {
		t.Errorf("fajr = %+v", r)
	}

	before := s.Settings()
	bad := "25:99"
	mustOK(t, s.SetReminder("fajr", models.ReminderUpdate{Time: &bad}))
	short := "4:45"
	mustOK(t, s.SetReminder("fajr", models.ReminderUpdate{Time: &short}))
	mustOK(t, s.SetReminder("lunch", models.ReminderUpdate{Enabled: &off}))
	if diff := cmp.Diff(before, s.Settings()); diff != "" {
		t.Errorf("invalid updates changed settings:\n%s", diff)
	}
}

func TestSetNotificationSound(t *testing.T) {
	s, _ := newStore(t)
	mustOK(t, s.SetNotificationSound("digital"))
	mustOK(t, s.SetNotificationSound("airhorn"))
	if got := s.Settings().NotificationSound; got != "digital" {
		t.Errorf("sound = %q", got)
	}
}

func TestMutationsPersist(t *testing.T) {
	s, p := newStore(t)
	id, err := s.AddCustomItem(models.CategoryBeforeSleep, "Gratitude")
	mustOK(t, err)
	mustOK(t, s.MoveItem(id, Up))
	mustOK(t, s.SetNotificationSound("nature"))

	reloaded, err := New(p)
	mustOK(t, err)
	if diff := cmp.Diff(s.Settings(), reloaded.Settings()); diff != "" {
		t.Errorf("reloaded settings (-want +got):\n%s", diff)
	}
}

func TestSaveFailureLeavesStateUntouched(t *testing.T) {
	s, p := newStore(t)
	before := s.Settings()

	p.fail = true
	id, err := s.AddCustomItem(models.CategoryMorning, "x")
	if err == nil || id != "" {
		t.Fatalf("expected save error, got id=%q err=%v", id, err)
	}
	if err := s.MoveItem("m2", Up); err == nil {
		t.Fatal("expected save error")
	}
	if diff := cmp.Diff(before, s.Settings()); diff != "" {
		t.Errorf("state changed after failed save:\n%s", diff)
	}
}

func TestNewCustomID(t *testing.T) {
	a, b := NewCustomID(), NewCustomID()
	if a == b {
		t.Error("ids should be unique")
	}
	if len(a) != len("custom-")+36 || a[:7] != "custom-" {
		t.Errorf("id = %q", a)
	}
}

func TestParseDirection(t *testing.T) {
	if d, ok := ParseDirection("UP"); !ok || d != Up {
		t.Error("UP")
	}
	if d, ok := ParseDirection("down"); !ok || d != Down {
		t.Error("down")
	}
	if _, ok := ParseDirection("left"); ok {
		t.Error("left should be rejected")
	}
}
