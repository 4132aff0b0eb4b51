// Package production provides integrations around the core: state snapshots,
// change publishing and Prometheus metrics.
package production

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/tickx"
)

// Snapshot is a diagnostic dump of store state at a tick. Snapshots are
// written for inspection only; nothing reads them back into a store.
type Snapshot struct {
	RunID     string         `json:"run_id" yaml:"run_id"`
	Uptime    uint64         `json:"uptime" yaml:"uptime"`
	State     map[string]any `json:"state" yaml:"state"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// NewSnapshot captures the current state of v.
func NewSnapshot(runID string, uptime uint64, v tickx.View) Snapshot {
	state := make(map[string]any)
	for _, key := range v.Keys() {
		val, err := v.Value(key)
		if err != nil {
			continue
		}
		state[string(key)] = val
	}
	return Snapshot{
		RunID:     runID,
		Uptime:    uptime,
		State:     state,
		Timestamp: time.Now(),
	}
}

// SnapshotWriter stores a snapshot and returns where it went.
type SnapshotWriter interface {
	Write(ctx context.Context, snap Snapshot) (string, error)
}

// NewSnapshotWriter returns a writer for format ("yaml" or "json") rooted at dir.
func NewSnapshotWriter(format, dir string) (SnapshotWriter, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return NewYAMLSnapshotWriter(dir)
	case "json":
		return NewJSONSnapshotWriter(dir)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

// JSONSnapshotWriter writes snapshots as indented JSON files.
type JSONSnapshotWriter struct {
	dir string
}

// NewJSONSnapshotWriter creates a JSONSnapshotWriter, ensuring the directory exists.
func NewJSONSnapshotWriter(dir string) (*JSONSnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONSnapshotWriter{dir: dir}, nil
}

func (w *JSONSnapshotWriter) Write(ctx context.Context, snap Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return writeSnapshotFile(w.dir, snap, "json", data)
}

// YAMLSnapshotWriter writes snapshots as YAML files.
type YAMLSnapshotWriter struct {
	dir string
}

// NewYAMLSnapshotWriter creates a YAMLSnapshotWriter, ensuring the directory exists.
func NewYAMLSnapshotWriter(dir string) (*YAMLSnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLSnapshotWriter{dir: dir}, nil
}

func (w *YAMLSnapshotWriter) Write(ctx context.Context, snap Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("yaml marshal: %w", err)
	}
	return writeSnapshotFile(w.dir, snap, "yaml", data)
}

func writeSnapshotFile(dir string, snap Snapshot, ext string, data []byte) (string, error) {
	name := fmt.Sprintf("%s-%d.%s", snap.RunID, snap.Uptime, ext)
	if snap.RunID == "" {
		name = fmt.Sprintf("snapshot-%d.%s", snap.Uptime, ext)
	}
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fn, err)
	}
	return fn, nil
}
