package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dayv-exe/PhishingEmailDetector/model"
)

// Required input columns.
const (
	ColumnSubject = "Email_Subject"
	ColumnContent = "Email_Content"
	ColumnLabel   = "Label"
)

// Structural failures. They abort the whole run, unlike per-row gaps
// which only leave fields of a record blank.
var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrUndecodableSource = errors.New("undecodable source")
	ErrMalformedSource   = errors.New("malformed source")
)

type Options struct {
	Path     string
	Encoding string
}

// Reader yields input rows from a CSV dataset one at a time.
type Reader struct {
	path     string
	file     io.Closer
	csv      *csv.Reader
	strict   bool
	logger   *slog.Logger
	subject  int
	content  int
	label    int
	minWidth int
	rows     int
}

// Open opens the dataset and validates its header. No row is read yet.
func Open(opts Options, logger *slog.Logger) (*Reader, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, fmt.Errorf("source path is empty")
	}
	encodingName, err := NormalizeEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	reader, err := newReader(file, path, encodingName, logger)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.file = file
	return reader, nil
}

// NewReader reads a dataset from r. The caller keeps ownership of r.
func NewReader(r io.Reader, encodingName string, logger *slog.Logger) (*Reader, error) {
	encodingName, err := NormalizeEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return newReader(r, "", encodingName, logger)
}

func newReader(r io.Reader, path, encodingName string, logger *slog.Logger) (*Reader, error) {
	decoded, err := Decode(r, encodingName)
	if err != nil {
		return nil, err
	}

	csvReader := NewCSVReader(decoded)
	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnSubject)
		}
		return nil, classify(err)
	}

	reader := &Reader{
		path:   path,
		csv:    csvReader,
		strict: encodingName == EncodingUTF8,
		logger: logger,
	}

	if reader.strict {
		for i, name := range header {
			if !utf8.ValidString(name) {
				return nil, fmt.Errorf("%w: header column %d is not valid utf-8", ErrUndecodableSource, i+1)
			}
		}
	}

	index := ColumnIndex(header)
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{ColumnSubject, &reader.subject},
		{ColumnContent, &reader.content},
		{ColumnLabel, &reader.label},
	} {
		idx, ok := index[col.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col.name)
		}
		*col.dst = idx
		reader.minWidth = max(reader.minWidth, idx+1)
	}

	return reader, nil
}

// Next returns the next row, or io.EOF after the last one.
func (r *Reader) Next() (model.InputRow, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.InputRow{}, io.EOF
		}
		return model.InputRow{}, classify(err)
	}
	r.rows++

	line, _ := r.csv.FieldPos(0)
	if len(record) < r.minWidth {
		return model.InputRow{}, fmt.Errorf("%w: line %d has %d fields, want at least %d", ErrMalformedSource, line, len(record), r.minWidth)
	}

	row := model.InputRow{
		Line:    r.rows,
		Subject: record[r.subject],
		Content: record[r.content],
		Label:   record[r.label],
	}

	if r.strict {
		for _, field := range []struct {
			name  string
			value string
		}{
			{ColumnSubject, row.Subject},
			{ColumnContent, row.Content},
			{ColumnLabel, row.Label},
		} {
			if !utf8.ValidString(field.value) {
				return model.InputRow{}, fmt.Errorf("%w: line %d column %s is not valid utf-8", ErrUndecodableSource, line, field.name)
			}
		}
	}

	if r.logger != nil {
		r.logger.Debug("source row", "path", r.path, "row", r.rows, "line", line)
	}
	return row, nil
}

// Rows reports how many data rows have been read so far.
func (r *Reader) Rows() int {
	return r.rows
}

func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// CountRows counts the data rows of a dataset without validating them.
func CountRows(opts Options) (int, error) {
	file, err := os.Open(opts.Path)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	decoded, err := Decode(file, opts.Encoding)
	if err != nil {
		return 0, err
	}

	csvReader := NewCSVReader(decoded)
	count := -1
	for {
		if _, err := csvReader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return max(count, 0), nil
			}
			return 0, classify(err)
		}
		count++
	}
}

// NewCSVReader returns a lenient CSV reader: quotes may appear unescaped
// and rows may differ in width.
func NewCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false
	return reader
}

// ColumnIndex maps each header name to its position. A repeated name maps to its last position.
func ColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return index
}

func classify(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %v", ErrMalformedSource, parseErr)
	}
	return fmt.Errorf("read source: %w", err)
}
