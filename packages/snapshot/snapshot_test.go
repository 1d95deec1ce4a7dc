package snapshot

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const tailMessage = "\nExpecting:\n  <[6, 8, 10, 12]>\nto end with:\n  <[20, 22]>\n"

func TestManager_Compare_NewSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	caseFile := filepath.Join(tmpDir, "arrays.hitassert.yaml")

	manager := NewManager(true)

	result := manager.Compare(caseFile, "wrong tail", tailMessage)

	if !result.Passed {
		t.Errorf("expected passed to be true, got false: %s", result.Message)
	}
	if !result.IsNew {
		t.Error("expected IsNew to be true")
	}

	snapshotPath := filepath.Join(tmpDir, SnapshotDir, "arrays.hitassert.snap.json")
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		t.Error("expected snapshot file to be created")
	}
}

func TestManager_Compare_ExistingSnapshot_Match(t *testing.T) {
	caseFile := filepath.Join(t.TempDir(), "arrays.hitassert.yaml")

	result := NewManager(true).Compare(caseFile, "wrong tail", tailMessage)
	if !result.Passed || !result.IsNew {
		t.Fatal("failed to create initial snapshot")
	}

	result = NewManager(false).Compare(caseFile, "wrong tail", tailMessage)
	if !result.Passed {
		t.Errorf("expected match, got: %s", result.Message)
	}
}

func TestManager_Compare_ExistingSnapshot_Mismatch(t *testing.T) {
	caseFile := filepath.Join(t.TempDir(), "arrays.hitassert.yaml")

	result := NewManager(true).Compare(caseFile, "wrong tail", tailMessage)
	if !result.Passed || !result.IsNew {
		t.Fatal("failed to create initial snapshot")
	}

	result = NewManager(false).Compare(caseFile, "wrong tail", "\nExpecting actual not to be null")

	if result.Passed {
		t.Error("expected mismatch, got passed")
	}
	if result.Message != "snapshot mismatch" {
		t.Errorf("unexpected message: %s", result.Message)
	}
	if result.Expected != tailMessage {
		t.Errorf("expected stored message %q, got %q", tailMessage, result.Expected)
	}
}

func TestManager_Compare_UpdateExisting(t *testing.T) {
	caseFile := filepath.Join(t.TempDir(), "arrays.hitassert.yaml")
	manager := NewManager(true)

	result := manager.Compare(caseFile, "wrong tail", tailMessage)
	if !result.Passed || !result.IsNew {
		t.Fatal("failed to create initial snapshot")
	}

	result = manager.Compare(caseFile, "wrong tail", "changed")
	if !result.Passed {
		t.Errorf("expected passed, got: %s", result.Message)
	}
	if !result.WasUpdated {
		t.Error("expected WasUpdated to be true")
	}

	result = NewManager(false).Compare(caseFile, "wrong tail", "changed")
	if !result.Passed {
		t.Errorf("expected updated snapshot on disk, got: %s", result.Message)
	}
}

func TestManager_Compare_NoSnapshotNoUpdateMode(t *testing.T) {
	caseFile := filepath.Join(t.TempDir(), "arrays.hitassert.yaml")

	result := NewManager(false).Compare(caseFile, "wrong tail", tailMessage)

	if result.Passed {
		t.Error("expected failure when no snapshot exists and update mode disabled")
	}
}

func TestManager_Compare_EmptyMessage(t *testing.T) {
	caseFile := filepath.Join(t.TempDir(), "arrays.hitassert.yaml")

	if result := NewManager(true).Compare(caseFile, "tail", ""); !result.IsNew {
		t.Fatal("failed to create snapshot for passing case")
	}
	if result := NewManager(false).Compare(caseFile, "tail", ""); !result.Passed {
		t.Errorf("expected empty message to match, got: %s", result.Message)
	}
}

func TestManager_Compare_Concurrent(t *testing.T) {
	caseFile := filepath.Join(t.TempDir(), "arrays.hitassert.yaml")
	manager := NewManager(true)

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			manager.Compare(caseFile, name, "message "+name)
		}(name)
	}
	wg.Wait()

	reader := NewManager(false)
	for _, name := range []string{"a", "b", "c", "d"} {
		if result := reader.Compare(caseFile, name, "message "+name); !result.Passed {
			t.Errorf("snapshot %s: %s", name, result.Message)
		}
	}
}

func TestManager_Compare_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	caseFile := filepath.Join(tmpDir, "arrays.hitassert.yaml")
	if err := os.MkdirAll(filepath.Join(tmpDir, SnapshotDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(FilePath(caseFile), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	result := NewManager(true).Compare(caseFile, "wrong tail", tailMessage)
	if result.Passed {
		t.Error("expected failure for unreadable snapshot file")
	}
}

func TestFilePath(t *testing.T) {
	got := FilePath(filepath.Join("cases", "paths.hitassert.yml"))
	want := filepath.Join("cases", SnapshotDir, "paths.hitassert.snap.json")
	if got != want {
		t.Errorf("FilePath: got %q, expected %q", got, want)
	}
}
