package runner

import (
	"fmt"

	"github.com/dayv-exe/PhishingEmailDetector/model"
)

// RowWriter receives rendered output rows.
type RowWriter interface {
	Write(fields []string) error
}

// Router writes every record to the main stream and mirrors incomplete
// records to a second stream.
type Router struct {
	main       RowWriter
	incomplete RowWriter
}

func NewRouter(main, incomplete RowWriter) *Router {
	return &Router{main: main, incomplete: incomplete}
}

// Route writes rec and reports whether it was incomplete.
func (r *Router) Route(rec model.EmailRecord) (bool, error) {
	fields := rec.Fields()
	incomplete := rec.Incomplete()

	if incomplete {
		if err := r.incomplete.Write(fields); err != nil {
			return true, fmt.Errorf("incomplete stream: %w", err)
		}
	}
	if err := r.main.Write(fields); err != nil {
		return incomplete, fmt.Errorf("main stream: %w", err)
	}
	return incomplete, nil
}
