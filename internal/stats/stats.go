// Package stats persists finished-game records to a CSV file and reads
// them back for leaderboards. Failures here must never interrupt a
// running game; callers log the returned errors and move on.
package stats

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/tomz197/staroids/internal/loop"
)

// Row is one finished game as stored on disk.
type Row struct {
	PlayedAt string `csv:"played_at"` // RFC 3339
	Name     string `csv:"name"`
	Score    int64  `csv:"score"`
	Level    int    `csv:"level"`
	Duration string `csv:"duration"`
	Seed     int64  `csv:"seed"`
}

// Recorder appends records to a single CSV file. Safe for concurrent
// use; the file is opened per append so external rotation works.
type Recorder struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewRecorder creates a recorder writing to path.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path, now: time.Now}
}

// Path returns the backing file path.
func (r *Recorder) Path() string { return r.path }

// Append writes one finished game. The header row is written only when
// the file is new or empty.
func (r *Recorder) Append(rec loop.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat stats file: %w", err)
	}

	rows := []Row{{
		PlayedAt: r.now().UTC().Format(time.RFC3339),
		Name:     rec.Name,
		Score:    rec.Score,
		Level:    rec.Level,
		Duration: rec.Duration.Round(time.Millisecond).String(),
		Seed:     rec.Seed,
	}}

	if info.Size() == 0 {
		err = gocsv.Marshal(rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err != nil {
		return fmt.Errorf("write stats row: %w", err)
	}
	return nil
}

// Top reads the file and returns up to n rows ordered by score, ties
// broken by earlier play time. A missing file yields an empty board.
func (r *Recorder) Top(n int) ([]Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read stats file: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].PlayedAt < rows[j].PlayedAt
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}
