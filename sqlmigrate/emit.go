package sqlmigrate

import (
	"fmt"
	"io"
	"strings"

	"github.com/ortschema/ort/diff"
	"github.com/ortschema/ort/model"
)

// Emit renders a diff.Queue as SQL, in a fixed order: a single
// "PRAGMA foreign_keys=ON;" prologue, then CREATE TABLE for every added
// structure, ALTER TABLE ADD COLUMN for every added field on a structure
// that already exists, DROP TABLE for every removed structure, and a
// commented-out stub for every removed column (SQLite's DROP COLUMN
// support is version-dependent, so the statement is emitted commented
// rather than silently dropping data).
//
// Emit does not call Validate itself: callers decide whether to refuse on
// irreconcilable/destructive findings before emitting — whether a change
// can be represented as SQL is a separate question from whether it should
// be run.
func Emit(w io.Writer, q *diff.Queue) error {
	if _, err := io.WriteString(w, "PRAGMA foreign_keys=ON;\n"); err != nil {
		return err
	}

	addedStruct := make(map[string]bool)
	for _, e := range q.Entries {
		if e.Kind == diff.AddStrct {
			addedStruct[e.Structure.Name] = true
		}
	}

	for _, phase := range []diff.Kind{diff.AddStrct, diff.AddField, diff.DelStrct, diff.DelField} {
		for _, e := range q.Entries {
			if e.Kind != phase {
				continue
			}
			var err error
			switch e.Kind {
			case diff.AddStrct:
				err = emitCreateTable(w, e.Structure)
			case diff.AddField:
				if !addedStruct[e.StructName] {
					err = emitAddColumn(w, e.StructName, e.Field)
				}
			case diff.DelStrct:
				_, err = fmt.Fprintf(w, "DROP TABLE %s;\n", e.Structure.Name)
			case diff.DelField:
				_, err = fmt.Fprintf(w, "-- ALTER TABLE %s DROP COLUMN %s; -- manual migration required\n", e.StructName, e.Field.Name)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func emitCreateTable(w io.Writer, st *model.Structure) error {
	var cols []string
	for i := range st.Fields {
		cols = append(cols, columnDef(&st.Fields[i]))
	}
	for _, u := range st.Uniques {
		cols = append(cols, "UNIQUE("+strings.Join(u.Fields, ", ")+")")
	}
	_, err := fmt.Fprintf(w, "CREATE TABLE %s (\n\t%s\n);\n", st.Name, strings.Join(cols, ",\n\t"))
	return err
}

func emitAddColumn(w io.Writer, structName string, f *model.Field) error {
	_, err := fmt.Fprintf(w, "ALTER TABLE %s ADD COLUMN %s;\n", structName, columnDef(f))
	return err
}
