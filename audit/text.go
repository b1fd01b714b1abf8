package audit

import (
	"fmt"
	"io"

	"github.com/ortschema/ort/model"
)

// WriteText renders the audit queue as one line per operation:
//
//	<op:11> <struct>[:<opname>[:<path>]] <file>:<line>:<col>
//
// Unnamed operations and paths render as "-"; a REACHABLE entry fans out to
// one line per path that reaches its structure.
func WriteText(w io.Writer, q *Queue) error {
	for _, e := range q.Entries {
		switch e.Kind {
		case EntryInsert:
			if err := writeLine(w, "insert", e.Struct.Name, e.Insert.Pos); err != nil {
				return err
			}
		case EntryUpdate:
			op := "update"
			if e.Update.Kind == model.OpDelete {
				op = "delete"
			}
			name := "-"
			if e.Update.HasName {
				name = e.Update.Name
			}
			if err := writeLine(w, op, e.Struct.Name+":"+name, e.Update.Pos); err != nil {
				return err
			}
		case EntryQuery:
			op := queryOpName(e.Query.Kind)
			name := "-"
			if e.Query.HasName {
				name = e.Query.Name
			}
			if err := writeLine(w, op, e.Struct.Name+":"+name, e.Query.Pos); err != nil {
				return err
			}
		case EntryReachable:
			for _, p := range e.Reachable.Paths {
				op := "read"
				if p.Exported {
					op = "readwrite"
				}
				name := "-"
				if p.Search.HasName {
					name = p.Search.Name
				}
				path := "-"
				if p.HasPath {
					path = p.Path
				}
				loc := e.Reachable.Struct.Name + ":" + name + ":" + path
				if err := writeLine(w, op, loc, e.Reachable.Struct.Pos); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func queryOpName(k model.SearchKind) string {
	switch k {
	case model.SearchCount:
		return "count"
	case model.SearchIterate:
		return "iterate"
	case model.SearchGet:
		return "search"
	default:
		return "list"
	}
}

func writeLine(w io.Writer, op, loc string, pos model.Position) error {
	_, err := fmt.Fprintf(w, "%-11s %s %s:%d:%d\n", op, loc, pos.File, pos.Line, pos.Column)
	return err
}
