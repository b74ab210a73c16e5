package profiling

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTrackAccumulatesPerFrame(t *testing.T) {
	m := NewMonitor()
	m.now = fakeClock(time.Millisecond)

	m.Track("render.Sky")()
	m.Track("render.Sky")()
	m.Track("update.Tick")()

	snap := m.Snapshot()
	if snap["render.Sky"] != 2*time.Millisecond {
		t.Fatalf("render.Sky: got %v, want 2ms", snap["render.Sky"])
	}
	if got := m.SumWithPrefix("render."); got != 2*time.Millisecond {
		t.Fatalf("SumWithPrefix: got %v", got)
	}

	m.ResetFrame()
	if len(m.Snapshot()) != 0 {
		t.Fatal("ResetFrame did not clear totals")
	}
}

func TestTopN(t *testing.T) {
	m := NewMonitor()
	m.frameTotals["a"] = 1500 * time.Microsecond
	m.frameTotals["b"] = 4 * time.Millisecond
	m.frameTotals["c"] = 100 * time.Microsecond

	if got, want := m.TopN(2), "b:4ms, a:1.5ms"; got != want {
		t.Fatalf("TopN: got %q, want %q", got, want)
	}
	if got := m.TopN(10); strings.Count(got, ",") != 2 {
		t.Fatalf("TopN over length: got %q", got)
	}
}

func TestRecorderWritesCompressedLines(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, "frames")
	at := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := r.Write(FrameRecord{Time: at, Tick: uint64(i), Visible: 10 + i}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "frames-2026-10-17-09.jsonl.zst"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	n := 0
	for sc.Scan() {
		var rec FrameRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %d: %v", n, err)
		}
		if rec.Tick != uint64(n) || rec.Visible != 10+n {
			t.Errorf("line %d: got %+v", n, rec)
		}
		n++
	}
	if n != 3 {
		t.Fatalf("got %d lines, want 3", n)
	}
}
