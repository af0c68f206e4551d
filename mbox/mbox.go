package mbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mboxlib "github.com/emersion/go-mbox"
)

// Raw is one undecoded message of an archive. Index starts at 1.
type Raw struct {
	Index int
	Data  []byte
}

// Scan reads the archive at path and calls fn for every message, in order.
// It stops at the first error returned by fn.
func Scan(ctx context.Context, path string, fn func(Raw) error) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("mbox path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	return ScanReader(ctx, file, fn)
}

// ScanReader is Scan over an already opened archive.
func ScanReader(ctx context.Context, r io.Reader, fn func(Raw) error) error {
	reader := mboxlib.NewReader(r)
	for idx := 1; ; idx++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		msgReader, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("message %d: %w", idx, err)
		}

		data, err := io.ReadAll(msgReader)
		if err != nil {
			return fmt.Errorf("message %d read: %w", idx, err)
		}

		if err := fn(Raw{Index: idx, Data: data}); err != nil {
			return err
		}
	}
}

// CountMessages counts the messages of the archive at path without decoding them.
func CountMessages(path string) (int, error) {
	count := 0
	err := Scan(context.Background(), path, func(Raw) error {
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
