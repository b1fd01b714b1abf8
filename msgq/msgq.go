// Package msgq is the shared diagnostic queue consumed by the SQL migrator
// and the schema parser. It is a plain ordered slice, not a channel:
// passes are synchronous and single-threaded, so there is never a
// producer/consumer running concurrently.
package msgq

import (
	"fmt"

	"github.com/ortschema/ort/model"
)

// Severity distinguishes a fatal-to-the-migration error from an advisory
// warning; no error is silently swallowed, every category maps to either a
// return value or a message queue entry.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Message is one diagnostic, carrying up to two source positions so a
// migration-irreconcilable-change message can point at both the "from" and
// "into" sides of a diff entry.
type Message struct {
	Severity Severity
	Text     string
	Pos      model.Position
	HasPos2  bool
	Pos2     model.Position
}

// Queue is an ordered, append-only list of diagnostics.
type Queue struct {
	messages []Message
}

// Warnf appends a warning at a single position.
func (q *Queue) Warnf(pos model.Position, format string, args ...any) {
	q.messages = append(q.messages, Message{
		Severity: SeverityWarning,
		Text:     fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// Errorf appends an error at a single position.
func (q *Queue) Errorf(pos model.Position, format string, args ...any) {
	q.messages = append(q.messages, Message{
		Severity: SeverityError,
		Text:     fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// DiffErrorf appends an error spanning both sides of a diff comparison,
// carrying both positions so a report can point at the before and after.
func (q *Queue) DiffErrorf(from, into model.Position, format string, args ...any) {
	q.messages = append(q.messages, Message{
		Severity: SeverityError,
		Text:     fmt.Sprintf(format, args...),
		Pos:      from,
		HasPos2:  true,
		Pos2:     into,
	})
}

// Messages returns every diagnostic in append order.
func (q *Queue) Messages() []Message { return q.messages }

// Errors returns only the SeverityError diagnostics, in append order.
func (q *Queue) Errors() []Message {
	var out []Message
	for _, m := range q.messages {
		if m.Severity == SeverityError {
			out = append(out, m)
		}
	}
	return out
}

// HasErrors reports whether any SeverityError diagnostic was appended.
func (q *Queue) HasErrors() bool {
	for _, m := range q.messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}
