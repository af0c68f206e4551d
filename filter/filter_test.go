package filter

import (
	"errors"
	"testing"
)

const (
	bankMail = "From: alerts@bank.example\nSubject: Verify your account\n\nClick http://bank.example.evil/login now"
	newsMail = "From: news@shop.example\nSubject: Weekly deals\n\nSee our new offers"
)

func TestFilter_Allows(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		mode Mode
		bank bool
		news bool
	}{
		{
			name: "no patterns",
			mode: ModeOff,
			bank: true,
			news: true,
		},
		{
			name: "include header",
			opts: Options{IncludeHeader: []string{`Subject: Verify`}},
			mode: ModeInclude,
			bank: true,
		},
		{
			name: "include body",
			opts: Options{IncludeBody: []string{`offers`}},
			mode: ModeInclude,
			news: true,
		},
		{
			name: "exclude header",
			opts: Options{ExcludeHeader: []string{`@shop\.example`}},
			mode: ModeExclude,
			bank: true,
		},
		{
			name: "exclude body",
			opts: Options{ExcludeBody: []string{`https?://`}},
			mode: ModeExclude,
			news: true,
		},
		{
			name: "blank patterns ignored",
			opts: Options{IncludeHeader: []string{"  "}},
			mode: ModeOff,
			bank: true,
			news: true,
		},
		{
			name: "header pattern does not see body",
			opts: Options{IncludeHeader: []string{`Click`}},
			mode: ModeInclude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if f.Mode() != tt.mode {
				t.Errorf("Mode() = %v, want %v", f.Mode(), tt.mode)
			}
			if got := f.Allows([]byte(bankMail)); got != tt.bank {
				t.Errorf("Allows(bank) = %v, want %v", got, tt.bank)
			}
			if got := f.Allows([]byte(newsMail)); got != tt.news {
				t.Errorf("Allows(news) = %v, want %v", got, tt.news)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{IncludeHeader: []string{"a"}, ExcludeBody: []string{"b"}})
	if !errors.Is(err, ErrModeConflict) {
		t.Errorf("New() error = %v, want ErrModeConflict", err)
	}

	if _, err := New(Options{ExcludeHeader: []string{"("}}); err == nil {
		t.Error("New() with invalid pattern error = nil, want error")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantHeader string
		wantBody   string
	}{
		{name: "lf", raw: "A: 1\n\nbody", wantHeader: "A: 1", wantBody: "body"},
		{name: "crlf", raw: "A: 1\r\n\r\nbody\n\nmore", wantHeader: "A: 1", wantBody: "body\n\nmore"},
		{name: "lf before crlf", raw: "A: 1\n\nbody\r\n\r\nmore", wantHeader: "A: 1", wantBody: "body\r\n\r\nmore"},
		{name: "headers only", raw: "A: 1\nB: 2", wantHeader: "A: 1\nB: 2"},
		{name: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := Split([]byte(tt.raw))
			if string(header) != tt.wantHeader || string(body) != tt.wantBody {
				t.Errorf("Split() = (%q, %q), want (%q, %q)", header, body, tt.wantHeader, tt.wantBody)
			}
		})
	}
}
