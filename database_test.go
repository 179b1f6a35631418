package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPilotRoundTrip(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreatePilot("vega", "hash123")
	if err != nil {
		t.Fatalf("create pilot: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero pilot ID")
	}

	p, err := db.GetPilotByUsername("vega")
	if err != nil {
		t.Fatalf("get pilot: %v", err)
	}
	if p == nil || p.ID != id || p.PassHash != "hash123" {
		t.Errorf("pilot = %+v, want id=%d hash=hash123", p, id)
	}

	if p, _ := db.GetPilotByUsername("nobody"); p != nil {
		t.Error("unknown username should return nil")
	}

	exists, _ := db.UsernameExists("vega")
	if !exists {
		t.Error("UsernameExists should find vega")
	}

	// Username is unique
	if _, err := db.CreatePilot("vega", "other"); err == nil {
		t.Error("duplicate username should fail")
	}
}

func TestGuestGetsStatsRow(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateGuest("Rookie_abc123")
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	s, err := db.GetStats(id)
	if err != nil || s == nil {
		t.Fatalf("guest stats missing: %v", err)
	}
	if s.Kills != 0 || s.Sorties != 0 {
		t.Errorf("fresh stats = %+v, want zeroes", s)
	}
}

func TestStatsAccumulateAcrossSorties(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePilot("ace", "h")

	if err := db.UpdateStatsAfterSortie(id, 3, 1, 120.5); err != nil {
		t.Fatalf("first sortie: %v", err)
	}
	if err := db.UpdateStatsAfterSortie(id, 2, 0, 60); err != nil {
		t.Fatalf("second sortie: %v", err)
	}

	s, err := db.GetStats(id)
	if err != nil || s == nil {
		t.Fatalf("get stats: %v", err)
	}
	if s.Kills != 5 || s.Deaths != 1 || s.Sorties != 2 {
		t.Errorf("stats = %+v, want kills=5 deaths=1 sorties=2", s)
	}
	if s.Playtime < 180 || s.Playtime > 181 {
		t.Errorf("playtime = %g, want 180.5", s.Playtime)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if got := db.GetSetting("missing"); got != "" {
		t.Errorf("missing setting = %q, want empty", got)
	}
	if err := db.SetSetting("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSetting("k", "v2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := db.GetSetting("k"); got != "v2" {
		t.Errorf("setting = %q, want v2", got)
	}
}

func TestRecordEncounter(t *testing.T) {
	db := openTestDB(t)
	id, err := db.RecordEncounter("sess-1", 42.5, 6)
	if err != nil || id == 0 {
		t.Fatalf("record encounter: id=%d err=%v", id, err)
	}
}
