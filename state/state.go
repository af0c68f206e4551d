package state

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileName is the ledger kept inside the state directory.
const FileName = "exported.jsonl"

// Entry describes one message that has been exported to a dataset.
type Entry struct {
	Hash       string    `json:"hash"`
	Subject    string    `json:"subject,omitempty"`
	Output     string    `json:"output,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
}

// Tracker remembers which messages were already exported.
type Tracker interface {
	Seen(hash string) bool
	Record(e Entry) error
	Count() int
	Close() error
}

// Hash fingerprints a raw message.
func Hash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// MemoryTracker keeps hashes for the lifetime of one run.
type MemoryTracker struct {
	mu     sync.RWMutex
	hashes map[string]struct{}
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{hashes: make(map[string]struct{})}
}

func (m *MemoryTracker) Seen(hash string) bool {
	if hash == "" {
		return false
	}
	m.mu.RLock()
	_, ok := m.hashes[hash]
	m.mu.RUnlock()
	return ok
}

func (m *MemoryTracker) Record(e Entry) error {
	m.add(e.Hash)
	return nil
}

// add stores hash and reports whether it was new.
func (m *MemoryTracker) add(hash string) bool {
	if hash == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hashes[hash]; ok {
		return false
	}
	m.hashes[hash] = struct{}{}
	return true
}

func (m *MemoryTracker) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hashes)
}

func (m *MemoryTracker) Close() error {
	return nil
}

// FileTracker appends exported entries to <dir>/exported.jsonl so later
// imports can skip them.
type FileTracker struct {
	*MemoryTracker
	path    string
	file    *os.File
	writer  *bufio.Writer
	writeMu sync.Mutex
}

// OpenFileTracker loads the ledger in dir, creating dir when needed.
func OpenFileTracker(dir string) (*FileTracker, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("state directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	tracker := &FileTracker{
		MemoryTracker: NewMemoryTracker(),
		path:          filepath.Join(dir, FileName),
	}
	if err := tracker.load(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(tracker.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open state file for append: %w", err)
	}
	tracker.file = file
	tracker.writer = bufio.NewWriterSize(file, 64*1024)
	return tracker, nil
}

// Path returns the location of the ledger file.
func (f *FileTracker) Path() string {
	return f.path
}

func (f *FileTracker) load() error {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}

		var e Entry
		if err := json.Unmarshal(text, &e); err != nil {
			return fmt.Errorf("parse state line %d: %w", line, err)
		}
		f.add(e.Hash)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read state file: %w", err)
	}
	return nil
}

// Record stores e and appends it to the ledger unless its hash is known.
func (f *FileTracker) Record(e Entry) error {
	if !f.add(e.Hash) {
		return nil
	}
	if e.ExportedAt.IsZero() {
		e.ExportedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode state record: %w", err)
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	if f.writer == nil {
		return fmt.Errorf("state file closed")
	}
	if _, err := f.writer.Write(data); err != nil {
		return fmt.Errorf("write state record: %w", err)
	}
	if err := f.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

// Close flushes and closes the ledger.
func (f *FileTracker) Close() error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	if f.file == nil {
		return nil
	}

	var firstErr error
	if err := f.writer.Flush(); err != nil {
		firstErr = fmt.Errorf("flush state file: %w", err)
	}
	if err := f.file.Sync(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("sync state file: %w", err)
	}
	if err := f.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close state file: %w", err)
	}
	f.file = nil
	f.writer = nil
	return firstErr
}
