package sqlmigrate

import (
	"github.com/ortschema/ort/diff"
	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/msgq"
)

// class is the outcome of validating one diff entry against the
// safe/destructive/irreconcilable table.
type class int

const (
	classSafe class = iota
	classDestructive
	classIrreconcilable
)

// Validate walks q and classifies every entry against the
// safe/destructive/irreconcilable table: adding a table, or a nullable or
// defaulted column, is always safe; dropping a table, column, bitfield,
// bit index, enum, or enum item is destructive (data loss, allowed only
// with Options.Destructive set); changing a column's type, its enum or
// bitfield binding, its rowid/unique/null flags, its reference, its
// update/delete action, a
// bit-index position, an enum-item value, or adding a unique constraint,
// is irreconcilable and refused unconditionally — no Options.Destructive
// setting permits it.
func Validate(q *diff.Queue, opts *Options) *msgq.Queue {
	out := &msgq.Queue{}
	for _, e := range q.Entries {
		c, pos, msg := classify(e)
		if c == classSafe {
			continue
		}
		switch c {
		case classDestructive:
			if opts.Destructive {
				out.Warnf(pos, "%s", msg)
			} else {
				out.Errorf(pos, "destructive change refused (enable --destructive): %s", msg)
			}
		case classIrreconcilable:
			out.Errorf(pos, "irreconcilable change: %s", msg)
		}
	}
	return out
}

func classify(e diff.Entry) (class, model.Position, string) {
	switch e.Kind {
	case diff.AddStrct:
		return classSafe, e.Structure.Pos, ""
	case diff.DelStrct:
		return classDestructive, e.Structure.Pos, "drop table " + e.Structure.Name
	case diff.AddField:
		if fieldAddSafe(e.Field) {
			return classSafe, e.Field.Pos, ""
		}
		return classIrreconcilable, e.Field.Pos, "add non-null column " + e.StructName + "." + e.Field.Name + " with no default and no existing rows to backfill"
	case diff.DelField:
		return classDestructive, e.Field.Pos, "drop column " + e.StructName + "." + e.Field.Name
	case diff.ModFieldType:
		return classIrreconcilable, e.FromField.Pos, "change column type " + e.StructName + "." + e.FromField.Name
	case diff.ModFieldBitf, diff.ModFieldEnm:
		return classIrreconcilable, e.FromField.Pos, "change enum/bitfield binding of " + e.StructName + "." + e.FromField.Name
	case diff.ModFieldActions:
		return classIrreconcilable, e.FromField.Pos, "change on-update/on-delete action on " + e.StructName + "." + e.FromField.Name
	case diff.ModFieldFlags:
		if flagsNeverMask(e.FromField, e.IntoField) {
			return classIrreconcilable, e.FromField.Pos, "change rowid/unique/null on " + e.StructName + "." + e.FromField.Name
		}
		return classSafe, e.FromField.Pos, ""
	case diff.ModFieldReference:
		return classIrreconcilable, e.FromField.Pos, "change foreign key on " + e.StructName + "." + e.FromField.Name
	case diff.AddUnique:
		return classIrreconcilable, e.Unique.Pos, "add unique constraint on " + e.StructName + " (existing rows may already violate it)"
	case diff.DelUnique:
		return classSafe, e.Unique.Pos, ""
	case diff.DelBitf:
		return classDestructive, e.Bitfield.Pos, "drop bitfield " + e.Bitfield.Name
	case diff.DelBitidx:
		return classDestructive, e.BitIndex.Pos, "drop bit index " + e.BitIndex.Name
	case diff.ModBitidxValue:
		return classIrreconcilable, e.FromBitIndex.Pos, "change bit position of " + e.FromBitIndex.Name
	case diff.DelEnm:
		return classDestructive, e.Enum.Pos, "drop enum " + e.Enum.Name
	case diff.DelEitem:
		return classDestructive, e.EnumItem.Pos, "drop enum item " + e.EnumItem.Name
	case diff.ModEitemValue:
		return classIrreconcilable, e.FromEnumItem.Pos, "change enum item value of " + e.FromEnumItem.Name
	default:
		return classSafe, model.Position{}, ""
	}
}

func fieldAddSafe(f *model.Field) bool {
	if f.Flags.Has(model.FieldNull) {
		return true
	}
	if f.Flags.Has(model.FieldHasdef) {
		_, ok := defaultLiteral(f)
		return ok
	}
	return f.Flags.Has(model.FieldRowid)
}

// flagsNeverMask reports whether rowid, unique, or null differs between the
// two flag sets in either direction: the validation table refuses every
// such change unconditionally, not just null-tightening.
func flagsNeverMask(from, into *model.Field) bool {
	const mask = model.FieldRowid | model.FieldUnique | model.FieldNull
	return from.Flags&mask != into.Flags&mask
}
