package extract

import (
	"strings"
	"time"

	"github.com/dayv-exe/PhishingEmailDetector/model"
)

// dateLayouts are tried in order. Month-first comes before day-first, so
// ambiguous dates such as 03/04/2020 resolve to March 4th.
var dateLayouts = []string{
	"1/2/2006",
	"2/1/2006",
}

// ParseDate parses a slash-separated numeric date. It returns nil when no layout matches.
func ParseDate(value string) *model.Date {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return &model.Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
		}
	}
	return nil
}
