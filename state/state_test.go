package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	a := Hash([]byte("message"))
	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a))
	}
	if a != Hash([]byte("message")) {
		t.Error("Hash() not deterministic")
	}
	if a == Hash([]byte("message2")) {
		t.Error("Hash() collides for different input")
	}
}

func TestMemoryTracker(t *testing.T) {
	m := NewMemoryTracker()
	if m.Seen("h1") {
		t.Error("Seen(h1) = true before Record")
	}
	_ = m.Record(Entry{Hash: "h1"})
	_ = m.Record(Entry{Hash: "h1"})
	_ = m.Record(Entry{})

	if !m.Seen("h1") {
		t.Error("Seen(h1) = false after Record")
	}
	if m.Seen("") {
		t.Error("Seen(\"\") = true")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestFileTracker_Persists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	first, err := OpenFileTracker(dir)
	if err != nil {
		t.Fatalf("OpenFileTracker() error = %v", err)
	}
	for _, e := range []Entry{
		{Hash: "h1", Subject: "Verify your account"},
		{Hash: "h2"},
		{Hash: "h1"},
	} {
		if err := first.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Errorf("ledger has %d lines, want 2", lines)
	}
	if !strings.Contains(string(data), `"subject":"Verify your account"`) {
		t.Errorf("ledger = %s, want subject recorded", data)
	}

	second, err := OpenFileTracker(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	if !second.Seen("h1") || !second.Seen("h2") {
		t.Error("reopened tracker forgot recorded hashes")
	}
	if second.Count() != 2 {
		t.Errorf("Count() = %d, want 2", second.Count())
	}
}

func TestFileTracker_Errors(t *testing.T) {
	if _, err := OpenFileTracker(" "); err == nil {
		t.Error("OpenFileTracker(blank) error = nil, want error")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{not json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileTracker(dir); err == nil {
		t.Error("OpenFileTracker() with corrupt ledger error = nil, want error")
	}
}

func TestFileTracker_RecordAfterClose(t *testing.T) {
	tracker, err := OpenFileTracker(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := tracker.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tracker.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := tracker.Record(Entry{Hash: "late"}); err == nil {
		t.Error("Record() after Close error = nil, want error")
	}
}
