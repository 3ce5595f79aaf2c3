package records

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"lostnaut/internal/game"
	"lostnaut/internal/level"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "runs.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndRank(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	runs := []Run{
		{StartedAt: start, Duration: 300, Tasks: 2, Deaths: 1},
		{StartedAt: start, Duration: 500, Tasks: 4, Escaped: true, Deaths: 3, ReplayPath: "b.jsonl.zst"},
		{StartedAt: start, Duration: 400, Tasks: 4, Escaped: true, Stomps: 2},
		{StartedAt: start, Duration: 100, Tasks: 4},
	}
	for _, r := range runs {
		id, err := s.Save(ctx, r)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if id == 0 {
			t.Error("Expected a row id")
		}
	}

	best, err := s.Best(ctx, 3)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(best))
	}
	if best[0].Duration != 400 || !best[0].Escaped || best[0].Stomps != 2 {
		t.Errorf("Expected the fastest escape first, got %+v", best[0])
	}
	if best[1].Duration != 500 || best[1].ReplayPath != "b.jsonl.zst" {
		t.Errorf("Expected the slower escape second, got %+v", best[1])
	}
	if best[2].Escaped || best[2].Tasks != 4 {
		t.Errorf("Expected the unfinished 4-task run third, got %+v", best[2])
	}
	if !best[0].StartedAt.Equal(start) {
		t.Errorf("Expected start %v, got %v", start, best[0].StartedAt)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Save(context.Background(), Run{StartedAt: time.Now(), Duration: 12}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer s.Close()
	best, err := s.Best(context.Background(), 0)
	if err != nil || len(best) != 1 {
		t.Errorf("Expected 1 run after reopening, got %d (%v)", len(best), err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Expected an error for an empty path")
	}
}

func TestFromSession(t *testing.T) {
	sess := game.NewSession(level.Default(), game.Options{Logger: log.New(io.Discard, "", 0)})
	sess.Stats.Deaths = 2
	sess.Stats.Time = 42
	sess.Tasks.PlantDelivered = true

	r := FromSession(sess, time.Unix(0, 0), "x.zst")
	if r.Deaths != 2 || r.Duration != 42 || r.Tasks != 1 || r.Escaped || r.ReplayPath != "x.zst" {
		t.Errorf("Unexpected run %+v", r)
	}
}
