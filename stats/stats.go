package stats

import (
	"fmt"
	"sort"
)

type Stage string

const (
	StageSource  Stage = "source"
	StageExtract Stage = "extract"
	StageMbox    Stage = "mbox"
)

type EventType string

const (
	EventTypeScanned    EventType = "scanned"
	EventTypeWritten    EventType = "written"
	EventTypeIncomplete EventType = "incomplete"
	EventTypeFiltered   EventType = "filtered"
	EventTypeDuplicate  EventType = "duplicate"
	EventTypeError      EventType = "error"
)

type Event struct {
	Stage  Stage
	Type   EventType
	Row    int
	Err    error
	Detail string
}

// Summary holds the run-wide counters. Processed counts every row read,
// Incomplete the rows also mirrored to the incomplete stream.
type Summary struct {
	Processed  int
	Written    int
	Incomplete int
	Filtered   int
	Duplicates int
	Errors     int
	LastError  error
}

func (s Summary) LogAttrs() []any {
	attrs := []any{
		"processed", s.Processed,
		"written", s.Written,
		"incomplete", s.Incomplete,
	}
	if s.Filtered > 0 {
		attrs = append(attrs, "filtered", s.Filtered)
	}
	if s.Duplicates > 0 {
		attrs = append(attrs, "duplicates", s.Duplicates)
	}
	if s.Errors > 0 {
		attrs = append(attrs, "errors", s.Errors)
	}
	if s.LastError != nil {
		attrs = append(attrs, "lastError", s.LastError.Error())
	}
	return attrs
}

// Collector folds events into a Summary. It is owned by a single run.
type Collector struct {
	summary Summary
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Apply(evt Event) {
	switch evt.Type {
	case EventTypeScanned:
		c.summary.Processed++
	case EventTypeWritten:
		c.summary.Written++
	case EventTypeIncomplete:
		c.summary.Incomplete++
	case EventTypeFiltered:
		c.summary.Filtered++
	case EventTypeDuplicate:
		c.summary.Duplicates++
	case EventTypeError:
		c.summary.Errors++
		if evt.Err != nil {
			c.summary.LastError = evt.Err
		}
	}
}

func (c *Collector) Snapshot() Summary {
	return c.summary
}

// PrettyPrintTop prints the top N most frequent items in a map.
// Ties are ordered by key so the output is stable.
func PrettyPrintTop(m map[string]int, limit int) {
	type pair struct {
		Key   string
		Value int
	}

	var pairs []pair
	for k, v := range m {
		pairs = append(pairs, pair{k, v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Value != pairs[j].Value {
			return pairs[i].Value > pairs[j].Value
		}
		return pairs[i].Key < pairs[j].Key
	})

	for i := 0; i < limit && i < len(pairs); i++ {
		fmt.Printf("%d. %s (%d)\n", i+1, pairs[i].Key, pairs[i].Value)
	}
}
