package profiling

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// FrameRecord is one line of the frame statistics log.
type FrameRecord struct {
	Time    time.Time `json:"time"`
	Tick    uint64    `json:"tick"`
	Dirty   int       `json:"dirty"`
	Visible int       `json:"visible"`
	Ignored int       `json:"ignored"`
	Tracked int       `json:"tracked"`
	Cached  int       `json:"cached"`
	Pending int       `json:"pending"`
	Queued  int       `json:"queued"`
	Dropped int       `json:"dropped"`
	Failed  int       `json:"failed"`
	Applied int       `json:"applied"`
	Top     string    `json:"top,omitempty"`
}

// Recorder appends FrameRecords as zstd-compressed JSON lines, one file per hour.
type Recorder struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewRecorder creates a recorder writing under baseDir.
func NewRecorder(baseDir, prefix string) *Recorder {
	return &Recorder{
		baseDir: baseDir,
		prefix:  prefix,
	}
}

// Write appends a record, rotating the file when the hour changes.
func (r *Recorder) Write(rec FrameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	hour := rec.Time.UTC().Format("2006-01-02-15")
	if hour != r.curHour {
		if err := r.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	return r.w.Flush()
}

// Close flushes and closes the current file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *Recorder) rotateLocked(hour string) error {
	if err := r.closeLocked(); err != nil {
		return err
	}
	path := r.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("profiling: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("profiling: open %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	r.f = f
	r.enc = enc
	r.w = bufio.NewWriter(enc)
	r.curHour = hour
	return nil
}

func (r *Recorder) closeLocked() error {
	if r.f == nil {
		return nil
	}
	var firstErr error
	if err := r.w.Flush(); err != nil {
		firstErr = err
	}
	if err := r.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	r.f, r.enc, r.w = nil, nil, nil
	r.curHour = ""
	return firstErr
}

func (r *Recorder) pathForHour(hour string) string {
	return filepath.Join(r.baseDir, r.prefix+"-"+hour+".jsonl.zst")
}
