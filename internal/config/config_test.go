package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestViewingDistanceClamp(t *testing.T) {
	s := Default()

	s.SetViewingDistance(1)
	if got := s.ViewingDistance(); got != minViewingDistance {
		t.Fatalf("low clamp: got %d, want %d", got, minViewingDistance)
	}
	s.SetViewingDistance(1000)
	if got := s.ViewingDistance(); got != maxViewingDistance {
		t.Fatalf("high clamp: got %d, want %d", got, maxViewingDistance)
	}
	s.SetViewingDistance(9)
	if got := s.ViewingDistance(); got != 8 {
		t.Fatalf("odd distance: got %d, want 8", got)
	}
}

func TestCacheSizeNeverBelowWindow(t *testing.T) {
	s := Default()
	s.SetViewingDistance(40)
	s.SetCacheSize(10)
	if got := s.CacheSize(); got != 1600 {
		t.Fatalf("cache size: got %d, want 1600", got)
	}
}

func TestParseOverridesOnlyPresentKeys(t *testing.T) {
	s := Default()
	doc := []byte(`
viewing_distance: 8
max_chunk_vbos: 10
wireframe: true
world_gen:
  seed: 42
`)
	if err := Parse(doc, s); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.ViewingDistance() != 8 || s.MaxChunkVBOs() != 10 || !s.Wireframe() {
		t.Errorf("overrides not applied: vd=%d vbos=%d wf=%v", s.ViewingDistance(), s.MaxChunkVBOs(), s.Wireframe())
	}
	if s.WorldGen.Seed() != 42 {
		t.Errorf("seed: got %d, want 42", s.WorldGen.Seed())
	}
	if s.WorldGen.SeaLevel() != Default().WorldGen.SeaLevel() {
		t.Errorf("sea level changed without key: %d", s.WorldGen.SeaLevel())
	}
	if s.DayLengthSeconds() != Default().DayLengthSeconds() {
		t.Errorf("day length changed without key: %v", s.DayLengthSeconds())
	}
}

func TestParseRejectsBadDayLength(t *testing.T) {
	if err := Parse([]byte("day_length_seconds: 0\n"), Default()); err == nil {
		t.Fatal("expected error for zero day length")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.ViewingDistance() != Default().ViewingDistance() {
		t.Fatalf("expected default viewing distance, got %d", s.ViewingDistance())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrastream.yaml")
	if err := os.WriteFile(path, []byte("fps_limit: 60\nwindow:\n  width: 1280\n  height: 720\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.FPSLimit() != 60 {
		t.Errorf("fps limit: got %d", s.FPSLimit())
	}
	if w, h := s.WindowSize(); w != 1280 || h != 720 {
		t.Errorf("window: got %dx%d", w, h)
	}
}
