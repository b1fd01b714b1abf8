// Package sqlmigrate turns a diff.Queue into SQL: it first validates every
// entry against the safe/destructive/irreconcilable table, then emits the
// SQL needed to carry a "from" database to the "into" schema.
package sqlmigrate

import (
	"fmt"
	"strings"

	"github.com/ortschema/ort/model"
)

// sqlType maps a Field's semantic type to its SQL column type. A rowid
// field is always INTEGER PRIMARY KEY regardless of its declared
// FieldType, since rowid implies the SQLite integer primary key alias.
func sqlType(f *model.Field) string {
	if f.Flags.Has(model.FieldRowid) {
		return "INTEGER PRIMARY KEY"
	}
	switch f.Type {
	case model.FtypeBit, model.FtypeInt, model.FtypeEpoch, model.FtypeEnum:
		return "INTEGER"
	case model.FtypeBitfield:
		return "INTEGER"
	case model.FtypeReal:
		return "REAL"
	case model.FtypeBlob:
		return "BLOB"
	case model.FtypeDate:
		return "INTEGER"
	case model.FtypeText, model.FtypePassword, model.FtypeEmail:
		return "TEXT"
	case model.FtypeStruct:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// columnConstraints renders NOT NULL / UNIQUE / REFERENCES clauses that
// follow the type in a column definition.
func columnConstraints(f *model.Field) string {
	var b strings.Builder
	if f.Flags.Has(model.FieldRowid) {
		return b.String()
	}
	if !f.Flags.Has(model.FieldNull) {
		b.WriteString(" NOT NULL")
	}
	if f.Flags.Has(model.FieldUnique) {
		b.WriteString(" UNIQUE")
	}
	if f.Flags.Has(model.FieldHasdef) {
		if lit, ok := defaultLiteral(f); ok {
			b.WriteString(" DEFAULT ")
			b.WriteString(lit)
		}
	}
	if f.Ref != nil {
		b.WriteString(fmt.Sprintf(" REFERENCES %s(%s)", f.Ref.TargetStrct, f.Ref.TargetField))
		b.WriteString(actionClause(f.ActUpdate, "UPDATE"))
		b.WriteString(actionClause(f.ActDelete, "DELETE"))
	}
	return b.String()
}

// defaultLiteral renders a field's default value by type: numeric types
// render bare, text/email are single-quoted (with embedded quotes
// doubled), enum defaults render as the item's integer value rather than
// its name. blob and password carry no default literal.
func defaultLiteral(f *model.Field) (string, bool) {
	switch f.Type {
	case model.FtypeInt, model.FtypeBit, model.FtypeEpoch, model.FtypeBitfield, model.FtypeDate:
		return f.Default, true
	case model.FtypeReal:
		return f.Default, true
	case model.FtypeText, model.FtypeEmail:
		return "'" + strings.ReplaceAll(f.Default, "'", "''") + "'", true
	case model.FtypeEnum:
		return f.Default, true
	case model.FtypeBlob, model.FtypePassword:
		return "", false
	default:
		return f.Default, true
	}
}

func actionClause(a model.UpdateAction, verb string) string {
	switch a {
	case model.ActionRestrict:
		return " ON " + verb + " RESTRICT"
	case model.ActionNullify:
		return " ON " + verb + " SET NULL"
	case model.ActionCascade:
		return " ON " + verb + " CASCADE"
	case model.ActionDefault:
		return " ON " + verb + " SET DEFAULT"
	default:
		return ""
	}
}

// columnDef renders one full "name TYPE constraints" column definition.
func columnDef(f *model.Field) string {
	return f.Name + " " + sqlType(f) + columnConstraints(f)
}
