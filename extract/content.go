package extract

import "strings"

const (
	fromPrefix       = "from:"
	datePrefix       = "date:"
	toPrefix         = "to:"
	attachmentPrefix = "attachment:"
)

// Options tunes how raw email content is turned into a record.
type Options struct {
	// PreserveBodyCase keeps the body's original casing. By default the body
	// is lower-cased together with the header lines it is scanned with.
	PreserveBodyCase bool
}

// Content is the result of scanning a raw email dump.
type Content struct {
	Sender string
	Date   string
	Body   string
}

type scanState int

const (
	scanHeaders scanState = iota
	scanBody
)

// ParseContent splits raw email content into sender, date string and body.
//
// Leading header lines (from:, date:, to:, attachment:, matched case-insensitively)
// are consumed until the first other non-blank line. That line and everything
// after it is the body. Repeated from: or date: lines overwrite earlier ones.
func ParseContent(content string, opts Options) Content {
	var (
		parsed Content
		body   []string
		state  = scanHeaders
	)

	for _, raw := range strings.Split(strings.TrimSpace(content), "\n") {
		switch state {
		case scanHeaders:
			line := strings.ToLower(strings.TrimSpace(raw))
			switch {
			case strings.HasPrefix(line, fromPrefix):
				parsed.Sender = strings.TrimSpace(strings.ReplaceAll(line, fromPrefix, ""))
			case strings.HasPrefix(line, datePrefix):
				parsed.Date = strings.TrimSpace(strings.ReplaceAll(line, datePrefix, ""))
			case strings.HasPrefix(line, toPrefix), strings.HasPrefix(line, attachmentPrefix):
			case line == "":
			default:
				state = scanBody
				body = append(body, bodyLine(raw, opts))
			}
		case scanBody:
			body = append(body, bodyLine(raw, opts))
		}
	}

	parsed.Body = strings.TrimSpace(strings.Join(body, "\n"))
	return parsed
}

func bodyLine(raw string, opts Options) string {
	if opts.PreserveBodyCase {
		return raw
	}
	return strings.ToLower(raw)
}
