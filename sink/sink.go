package sink

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrClosed = errors.New("sink already closed")

// CSVSink writes CSV rows to a temporary file next to its target path.
// The target only appears once Commit succeeds; Abort discards everything.
type CSVSink struct {
	path   string
	file   *os.File
	buffer *bufio.Writer
	writer *csv.Writer
	rows   int
	closed bool
}

// Create prepares a sink for path and writes the header row.
func Create(path string, header []string) (*CSVSink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}

	buffer := bufio.NewWriterSize(file, 64*1024)
	s := &CSVSink{
		path:   path,
		file:   file,
		buffer: buffer,
		writer: csv.NewWriter(buffer),
	}

	if err := s.writer.Write(header); err != nil {
		_ = s.Abort()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return s, nil
}

// Path returns the final destination of the sink.
func (s *CSVSink) Path() string {
	return s.path
}

// Rows reports how many data rows have been written, excluding the header.
func (s *CSVSink) Rows() int {
	return s.rows
}

func (s *CSVSink) Write(fields []string) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.writer.Write(fields); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.rows++
	return nil
}

// Commit flushes the rows and moves the temporary file onto the target path.
func (s *CSVSink) Commit() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	var firstErr error
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		firstErr = fmt.Errorf("flush csv: %w", err)
	}
	if err := s.buffer.Flush(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("flush output: %w", err)
	}
	if err := s.file.Sync(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("sync output: %w", err)
	}
	if err := s.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close output: %w", err)
	}

	if firstErr != nil {
		_ = os.Remove(s.file.Name())
		return firstErr
	}

	if err := os.Rename(s.file.Name(), s.path); err != nil {
		_ = os.Remove(s.file.Name())
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

// Abort drops the temporary file. It is a no-op after Commit.
func (s *CSVSink) Abort() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if err := s.file.Close(); err != nil {
		firstErr = fmt.Errorf("close output: %w", err)
	}
	if err := os.Remove(s.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) && firstErr == nil {
		firstErr = fmt.Errorf("remove temp output: %w", err)
	}
	return firstErr
}
