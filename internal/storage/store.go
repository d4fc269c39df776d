package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/gravwords/internal/scenario"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Profile   string             `json:"profile"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       int                `json:"fps"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

var frameHeader = []string{"time", "mean_speed", "max_angle", "dragging", "drag_label"}

// Save writes <id>/metadata.json and <id>/frames.csv and returns the id.
func (s *Store) Save(res *scenario.Result) (string, error) {
	ts := s.now()
	name := res.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", sanitize(name), ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  res.Name,
		Profile:   res.Profile,
		Timestamp: ts,
		Seed:      res.Seed,
		FPS:       res.FPS,
		Duration:  res.Duration.Seconds(),
		Frames:    len(res.Frames),
		Metrics:   res.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range res.Frames {
		row := []string{
			strconv.FormatFloat(f.T, 'f', 6, 64),
			strconv.FormatFloat(f.MeanSpeed, 'f', 6, 64),
			strconv.FormatFloat(f.MaxAngle, 'f', 6, 64),
			strconv.FormatBool(f.Dragging),
			f.DragLabel,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, s)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the per-frame samples of a run. Malformed rows are
// skipped.
func (s *Store) LoadFrames(runID string) ([]scenario.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []scenario.Frame{}, nil
	}

	frames := make([]scenario.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var f scenario.Frame
		var perr error
		parse := func(s string) float64 {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				perr = err
			}
			return v
		}
		f.T = parse(record[0])
		f.MeanSpeed = parse(record[1])
		f.MaxAngle = parse(record[2])
		if f.Dragging, err = strconv.ParseBool(record[3]); err != nil {
			perr = err
		}
		if perr != nil {
			continue
		}
		if len(record) > 4 {
			f.DragLabel = record[4]
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[len(runs)-1], nil
}
