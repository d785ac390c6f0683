package storage

import (
	"os"
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorageIn(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorageIn: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReportCacheRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	type payload struct {
		Square  string `json:"square"`
		Hanging bool   `json:"hanging"`
	}

	const fen = "rnbqkbnr/ppp2ppp/3p4/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3"
	in := payload{Square: "e5", Hanging: false}

	var miss payload
	found, err := s.LoadReport("analyze", fen, &miss)
	if err != nil {
		t.Fatalf("LoadReport before save: %v", err)
	}
	if found {
		t.Fatal("cache hit before anything was saved")
	}

	if err := s.SaveReport("analyze", fen, in); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	var out payload
	found, err = s.LoadReport("analyze", fen, &out)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if !found {
		t.Fatal("cache miss after save")
	}
	if out != in {
		t.Errorf("loaded %+v, want %+v", out, in)
	}

	// The same FEN under a different query kind is a distinct entry.
	var other payload
	found, err = s.LoadReport("tactics", fen, &other)
	if err != nil {
		t.Fatalf("LoadReport other kind: %v", err)
	}
	if found {
		t.Error("kinds share a cache slot")
	}
}

func TestPurgeReportsKeepsSettings(t *testing.T) {
	s := openTestStorage(t)

	prefs := DefaultPreferences()
	prefs.DefaultFEN = "8/8/8/8/8/8/8/K1k5 w - - 0 1"
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	if err := s.SaveReport("analyze", prefs.DefaultFEN, map[string]int{"n": 1}); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	if err := s.PurgeReports(); err != nil {
		t.Fatalf("PurgeReports: %v", err)
	}

	var gone map[string]int
	found, err := s.LoadReport("analyze", prefs.DefaultFEN, &gone)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if found {
		t.Error("report survived the purge")
	}

	loaded, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded.DefaultFEN != prefs.DefaultFEN {
		t.Errorf("preferences lost: %+v", loaded)
	}
}

func TestPreferencesDefaults(t *testing.T) {
	s := openTestStorage(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Format != FormatText {
		t.Error("default format is not text")
	}
	if prefs.DiagramSize != 512 {
		t.Errorf("default diagram size = %d, want 512", prefs.DiagramSize)
	}
	if !prefs.UnicodeBoard {
		t.Error("unicode board not enabled by default")
	}
}

func TestQueryStats(t *testing.T) {
	s := openTestStorage(t)

	if err := s.RecordQuery("analyze", false, 3*time.Millisecond); err != nil {
		t.Fatalf("RecordQuery: %v", err)
	}
	if err := s.RecordQuery("analyze", true, 1*time.Millisecond); err != nil {
		t.Fatalf("RecordQuery: %v", err)
	}
	if err := s.RecordQuery("tactics", true, 2*time.Millisecond); err != nil {
		t.Fatalf("RecordQuery: %v", err)
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.QueriesRun != 3 {
		t.Errorf("queries run = %d, want 3", stats.QueriesRun)
	}
	if stats.ByCommand["analyze"] != 2 || stats.ByCommand["tactics"] != 1 {
		t.Errorf("per-command counts = %v", stats.ByCommand)
	}
	if stats.TotalTime != 6*time.Millisecond {
		t.Errorf("total time = %v, want 6ms", stats.TotalTime)
	}

	want := float64(2) / float64(3) * 100
	if got := stats.HitRate(); got != want {
		t.Errorf("hit rate = %.2f, want %.2f", got, want)
	}
}

func TestZeroStatsHitRate(t *testing.T) {
	stats := NewQueryStats()
	if stats.HitRate() != 0 {
		t.Error("zero stats should report a 0 hit rate")
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}
}
