package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage/snapshot"
)

func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("RIHLA_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("RIHLA_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	s := New(connStr)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() {
		s.db.Exec("DROP TABLE IF EXISTS snapshots")
		s.db.Exec("DROP TABLE IF EXISTS schema_version")
		s.Close()
	})
	s.db.Exec("DELETE FROM snapshots")

	if _, err := s.GetLedger(); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on fresh schema, got %v", err)
	}

	l := models.NewLedger()
	l.Points = 420
	l.Prayers[models.PrayerFajr] = models.PrayerRecord{Completed: true, Congregational: true}
	if err := s.SaveLedger(l); err != nil {
		t.Fatalf("SaveLedger failed: %v", err)
	}
	l.Points = 440
	if err := s.SaveLedger(l); err != nil {
		t.Fatalf("SaveLedger (update) failed: %v", err)
	}

	got, err := s.GetLedger()
	if err != nil {
		t.Fatalf("GetLedger failed: %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("ledger mismatch (-want +got):\n%s", diff)
	}

	current, latest, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest {
		t.Errorf("schema at %d, latest %d", current, latest)
	}
}
