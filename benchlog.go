package mvngrad

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CompareResult captures one reference-vs-kernel comparison run: the batch
// shape, both timings, and the numerical agreement between the outputs.
type CompareResult struct {
	Name        string        `json:"name"`
	Points      int           `json:"points"`
	Dim         int           `json:"dim"`
	Workers     int           `json:"workers,omitempty"`
	RefDuration time.Duration `json:"ref_duration"`
	Duration    time.Duration `json:"duration"`
	Speedup     float64       `json:"speedup"`
	MaxAbsDiff  float64       `json:"max_abs_diff"`
	MaxRelDiff  float64       `json:"max_rel_diff"`
	Status      string        `json:"status"` // "pass" or "fail"
	Error       string        `json:"error,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

// CompareLogger accumulates comparison results and persists them as JSON.
// Results are flushed on every append so a crash loses nothing.
type CompareLogger struct {
	mu      sync.Mutex
	results []CompareResult
	file    string
}

// NewCompareLogger creates a logger writing to dir, one session file per
// invocation, named by timestamp.
func NewCompareLogger(dir, session string) (*CompareLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")
	cl := &CompareLogger{
		file: filepath.Join(dir, fmt.Sprintf("%s_%s.json", session, stamp)),
	}
	return cl, cl.flush()
}

// Log appends a result and flushes it to disk.
func (cl *CompareLogger) Log(result CompareResult) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	result.Timestamp = time.Now()
	cl.results = append(cl.results, result)
	return cl.flush()
}

// File returns the path of the session file.
func (cl *CompareLogger) File() string {
	return cl.file
}

func (cl *CompareLogger) flush() error {
	data, err := json.MarshalIndent(cl.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(cl.file, data, 0o644)
}

// LoadCompareResults reads a session file written by CompareLogger.
func LoadCompareResults(path string) ([]CompareResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []CompareResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return results, nil
}
