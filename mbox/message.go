package mbox

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dayv-exe/PhishingEmailDetector/model"
)

// contentDateLayout is the date form the extraction recognizes first.
const contentDateLayout = "01/02/2006"

var htmlPolicy = bluemonday.StrictPolicy()

// Message is the part of a decoded email that ends up in the dataset.
type Message struct {
	Subject     string
	From        string
	To          []string
	Date        time.Time
	Attachments []string
	Body        string
	HTMLBody    bool
}

// Decode parses a raw RFC 5322 message. The body is the first text/plain
// part, or else the first text/html part with its markup removed.
func Decode(raw []byte) (Message, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return Message{}, fmt.Errorf("read message: %w", err)
	}

	var msg Message
	msg.Subject, _ = mr.Header.Subject()
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		msg.From = from[0].Address
	} else {
		msg.From = strings.TrimSpace(mr.Header.Get("From"))
	}
	if to, err := mr.Header.AddressList("To"); err == nil {
		for _, addr := range to {
			msg.To = append(msg.To, addr.Address)
		}
	}
	if date, err := mr.Header.Date(); err == nil {
		msg.Date = date
	}

	var plain, htmlText string
	var havePlain, haveHTML bool
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Message{}, fmt.Errorf("read part: %w", err)
		}

		var header message.Header
		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			header = h.Header
		case *mail.AttachmentHeader:
			header = h.Header
		}

		disposition, params, _ := header.ContentDisposition()
		contentType, _, _ := header.ContentType()
		if contentType == "" {
			contentType = "text/plain"
		}

		switch {
		case disposition == "attachment" || (contentType != "text/plain" && contentType != "text/html"):
			if name := attachmentName(part, params); name != "" {
				msg.Attachments = append(msg.Attachments, name)
			}
		case contentType == "text/plain" && !havePlain:
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return Message{}, fmt.Errorf("read text part: %w", err)
			}
			plain, havePlain = string(body), true
		case contentType == "text/html" && !haveHTML:
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return Message{}, fmt.Errorf("read html part: %w", err)
			}
			htmlText, haveHTML = string(body), true
		}
	}

	switch {
	case havePlain:
		msg.Body = plain
	case haveHTML:
		msg.Body = html.UnescapeString(htmlPolicy.Sanitize(htmlText))
		msg.HTMLBody = true
	}
	msg.Body = strings.TrimSpace(strings.ReplaceAll(msg.Body, "\r\n", "\n"))
	return msg, nil
}

func attachmentName(part *mail.Part, params map[string]string) string {
	if h, ok := part.Header.(*mail.AttachmentHeader); ok {
		if name, err := h.Filename(); err == nil && name != "" {
			return name
		}
	}
	return params["filename"]
}

// Content renders the message as a raw email dump: From, To, Date and
// Attachment lines, a blank line, then the body.
func (m Message) Content() string {
	var b strings.Builder
	if m.From != "" {
		fmt.Fprintf(&b, "From: %s\n", m.From)
	}
	if len(m.To) > 0 {
		fmt.Fprintf(&b, "To: %s\n", strings.Join(m.To, ", "))
	}
	if !m.Date.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", m.Date.Format(contentDateLayout))
	}
	for _, name := range m.Attachments {
		fmt.Fprintf(&b, "Attachment: %s\n", name)
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(m.Body)
	return b.String()
}

// InputRow turns the message into a dataset row with the given label.
func (m Message) InputRow(line int, label string) model.InputRow {
	return model.InputRow{
		Line:    line,
		Subject: m.Subject,
		Content: m.Content(),
		Label:   label,
	}
}
