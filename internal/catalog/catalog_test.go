package catalog

import (
	"testing"

	"github.com/julianstephens/rihla/internal/models"
)

func TestRecitationsAreUniqueAndCategorized(t *testing.T) {
	ids := RecitationIDs()
	if len(ids) != 20 {
		t.Fatalf("got %d catalog items, want 20", len(ids))
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
		item, ok := Recitation(id)
		if !ok || !IsCategory(item.Category) || item.Repetitions < 1 {
			t.Errorf("bad catalog item %+v", item)
		}
	}
}

func TestRecitationsReturnsCopy(t *testing.T) {
	items := Recitations()
	items[0].Text = "changed"
	if r, _ := Recitation(items[0].ID); r.Text == "changed" {
		t.Error("Recitations leaked the catalog backing array")
	}
}

func TestLookups(t *testing.T) {
	if !IsPrayer(models.PrayerMaghrib) || IsPrayer("duha") {
		t.Error("IsPrayer")
	}
	if !IsGoodDeed(models.DeedSadaqah) || IsGoodDeed("hajj") {
		t.Error("IsGoodDeed")
	}
	if !IsSound("nature") || IsSound("siren") {
		t.Error("IsSound")
	}
	if IsCatalogItem("custom-1") || !IsCatalogItem("ap4") {
		t.Error("IsCatalogItem")
	}
}

func TestBadgeThresholds(t *testing.T) {
	l := models.NewLedger()
	l.Points = 500
	l.Night.Units = 8
	l.GoodDeeds[models.DeedSadaqah] = true

	want := map[string]bool{"b1": true, "b2": false, "b3": true, "b4": false, "b5": true, "b6": false}
	for _, b := range Badges {
		if got := b.Unlocked(l); got != want[b.ID] {
			t.Errorf("badge %s unlocked = %v, want %v", b.ID, got, want[b.ID])
		}
	}
}

func TestDefaultSettingsSelectsWholeCatalog(t *testing.T) {
	st := DefaultSettings()
	if len(st.Order) != 20 || len(st.SelectedItemIDs) != 20 {
		t.Errorf("order/selection = %d/%d", len(st.Order), len(st.SelectedItemIDs))
	}
	if len(st.Reminders) != 4 || st.NotificationSound != "gentle" {
		t.Errorf("unexpected defaults %+v", st)
	}
}
