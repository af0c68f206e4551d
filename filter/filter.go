package filter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrModeConflict = errors.New("include and exclude filters are mutually exclusive")

// Mode decides how matching messages are treated.
type Mode int

const (
	ModeOff Mode = iota
	ModeInclude
	ModeExclude
)

func (m Mode) String() string {
	switch m {
	case ModeInclude:
		return "include"
	case ModeExclude:
		return "exclude"
	default:
		return "off"
	}
}

// Options holds the raw patterns given on the command line.
type Options struct {
	IncludeHeader []string
	IncludeBody   []string
	ExcludeHeader []string
	ExcludeBody   []string
}

// patterns is one side of a filter: regexes over the header block and the body.
type patterns struct {
	header []*regexp.Regexp
	body   []*regexp.Regexp
}

func (p patterns) empty() bool {
	return len(p.header) == 0 && len(p.body) == 0
}

func (p patterns) match(header, body []byte) bool {
	for _, re := range p.header {
		if re.Match(header) {
			return true
		}
	}
	for _, re := range p.body {
		if re.Match(body) {
			return true
		}
	}
	return false
}

// Filter selects which raw messages of an archive get imported.
type Filter struct {
	mode     Mode
	patterns patterns
}

// New compiles opts. Include and exclude patterns cannot be mixed.
func New(opts Options) (*Filter, error) {
	include, err := compileSide("include", opts.IncludeHeader, opts.IncludeBody)
	if err != nil {
		return nil, err
	}
	exclude, err := compileSide("exclude", opts.ExcludeHeader, opts.ExcludeBody)
	if err != nil {
		return nil, err
	}

	switch {
	case !include.empty() && !exclude.empty():
		return nil, ErrModeConflict
	case !include.empty():
		return &Filter{mode: ModeInclude, patterns: include}, nil
	case !exclude.empty():
		return &Filter{mode: ModeExclude, patterns: exclude}, nil
	default:
		return &Filter{mode: ModeOff}, nil
	}
}

// Mode reports which filter mode is active.
func (f *Filter) Mode() Mode {
	return f.mode
}

// Allows reports whether a raw message should be imported.
func (f *Filter) Allows(raw []byte) bool {
	if f.mode == ModeOff {
		return true
	}

	header, body := Split(raw)
	matched := f.patterns.match(header, body)
	if f.mode == ModeInclude {
		return matched
	}
	return !matched
}

// Split separates the header block of a raw message from its body.
func Split(raw []byte) (header, body []byte) {
	if len(raw) == 0 {
		return nil, nil
	}

	crlf := bytes.Index(raw, []byte("\r\n\r\n"))
	lf := bytes.Index(raw, []byte("\n\n"))
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return raw[:crlf], raw[crlf+4:]
	case lf >= 0:
		return raw[:lf], raw[lf+2:]
	}

	return raw, nil
}

func compileSide(side string, header, body []string) (patterns, error) {
	var p patterns
	var err error
	if p.header, err = compileAll(header); err != nil {
		return patterns{}, fmt.Errorf("%s-header pattern: %w", side, err)
	}
	if p.body, err = compileAll(body); err != nil {
		return patterns{}, fmt.Errorf("%s-body pattern: %w", side, err)
	}
	return p, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	var compiled []*regexp.Regexp
	for _, expr := range exprs {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", expr, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
