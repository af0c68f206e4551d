package model

import (
	"strconv"
	"strings"
)

// Columns is the header shared by the main and the incomplete output streams.
var Columns = []string{
	"day",
	"month",
	"year",
	"urls",
	"url_count",
	"sender_domain",
	"sender",
	"title",
	"body",
	"label",
}

// URLSeparator joins the extracted URLs into the single urls column.
// Embedded pipes are not escaped.
const URLSeparator = "|"

// Date is a calendar date parsed from an email's date line.
type Date struct {
	Day   int
	Month int
	Year  int
}

// EmailRecord is the structured form of one raw email.
// A nil Date means no date could be parsed; there is no partially filled state.
type EmailRecord struct {
	Date         *Date
	URLs         []string
	URLCount     int
	SenderDomain string
	Sender       string
	Title        string
	Body         string
	Label        string
}

// Fields renders the record in Columns order.
func (r EmailRecord) Fields() []string {
	day, month, year := "", "", ""
	if r.Date != nil {
		day = strconv.Itoa(r.Date.Day)
		month = strconv.Itoa(r.Date.Month)
		year = strconv.Itoa(r.Date.Year)
	}

	return []string{
		day,
		month,
		year,
		strings.Join(r.URLs, URLSeparator),
		strconv.Itoa(r.URLCount),
		r.SenderDomain,
		r.Sender,
		r.Title,
		r.Body,
		r.Label,
	}
}

// Incomplete reports whether any rendered field is blank.
func (r EmailRecord) Incomplete() bool {
	for _, field := range r.Fields() {
		if strings.TrimSpace(field) == "" {
			return true
		}
	}
	return false
}
