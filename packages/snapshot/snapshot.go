// Package snapshot stores the assertion message of a case next to its case
// file, so a change in message text shows up as a failure on the next run.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// SnapshotDir is the directory name for storing snapshots
	SnapshotDir = "__snapshots__"
	// SnapshotExt is the file extension for snapshot files
	SnapshotExt = ".snap.json"
)

// Manager handles snapshot storage and comparison. It is safe for
// concurrent use.
type Manager struct {
	mu            sync.Mutex
	updateMode    bool
	snapshotsRead map[string]map[string]string // file -> {case -> message}
}

// NewManager creates a new snapshot manager.
func NewManager(updateMode bool) *Manager {
	return &Manager{
		updateMode:    updateMode,
		snapshotsRead: make(map[string]map[string]string),
	}
}

// Result represents the result of a snapshot comparison.
type Result struct {
	Passed     bool
	Message    string
	Expected   string
	Actual     string
	IsNew      bool
	WasUpdated bool
}

// Compare compares the message a case produced against the stored one.
// In update mode a missing or different snapshot is written instead.
func (m *Manager) Compare(caseFile, caseName, actual string) *Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &Result{Actual: actual}
	snapshotFile := FilePath(caseFile)

	snapshots, err := m.loadSnapshots(snapshotFile)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load snapshots: %v", err)
		return result
	}

	expected, exists := snapshots[caseName]
	if !exists {
		if m.updateMode {
			snapshots[caseName] = actual
			if err := m.saveSnapshots(snapshotFile, snapshots); err != nil {
				result.Message = fmt.Sprintf("failed to save snapshot: %v", err)
				return result
			}
			result.Passed = true
			result.IsNew = true
			result.Expected = actual
			result.Message = "new snapshot created"
			return result
		}

		result.Message = "snapshot does not exist (run with --update-snapshots to create)"
		return result
	}

	result.Expected = expected
	if expected == actual {
		result.Passed = true
		return result
	}

	if m.updateMode {
		snapshots[caseName] = actual
		if err := m.saveSnapshots(snapshotFile, snapshots); err != nil {
			result.Message = fmt.Sprintf("failed to update snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.WasUpdated = true
		result.Message = "snapshot updated"
		return result
	}

	result.Message = "snapshot mismatch"
	return result
}

// FilePath returns the snapshot file that belongs to a case file.
func FilePath(caseFile string) string {
	dir := filepath.Dir(caseFile)
	base := filepath.Base(caseFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, SnapshotDir, name+SnapshotExt)
}

func (m *Manager) loadSnapshots(path string) (map[string]string, error) {
	if cached, ok := m.snapshotsRead[path]; ok {
		return cached, nil
	}

	snapshots := make(map[string]string)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			m.snapshotsRead[path] = snapshots
			return snapshots, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	m.snapshotsRead[path] = snapshots
	return snapshots, nil
}

func (m *Manager) saveSnapshots(path string, snapshots map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return err
	}

	m.snapshotsRead[path] = snapshots
	return os.WriteFile(path, data, 0644)
}
