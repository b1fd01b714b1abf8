package diff

import "github.com/ortschema/ort/model"

// compareFields diffs the field list of one structure. Every attribute
// that can change (type, flags, foreign-key reference, enum/bitfield
// link, default, valids, per-field noexport rolemap, comment) becomes its
// own fine Kind, so a migration planner can tell "only the default
// literal changed" apart from "the type changed" — a distinction the
// safe/destructive/irreconcilable classification keys off directly.
func compareFields(q *Queue, structName string, from, into []model.Field) bool {
	intoIdx := fieldIndex(into)
	seen := make(map[string]bool, len(from))
	allSame := true

	for i := range from {
		ff := &from[i]
		seen[foldName(ff.Name)] = true
		j, ok := intoIdx[foldName(ff.Name)]
		if !ok {
			q.add(Entry{Kind: DelField, Field: ff, StructName: structName})
			allSame = false
			continue
		}
		fi := &into[j]
		same := compareFieldBody(q, structName, ff, fi)
		if same {
			q.add(Entry{Kind: SameField, FromField: ff, IntoField: fi, StructName: structName})
		} else {
			q.add(Entry{Kind: ModField, FromField: ff, IntoField: fi, StructName: structName})
			allSame = false
		}
	}
	for i := range into {
		if !seen[foldName(into[i].Name)] {
			q.add(Entry{Kind: AddField, Field: &into[i], StructName: structName})
			allSame = false
		}
	}
	return allSame
}

func compareFieldBody(q *Queue, structName string, ff, fi *model.Field) bool {
	same := true
	mark := func(k Kind) {
		q.add(Entry{Kind: k, FromField: ff, IntoField: fi, StructName: structName})
		same = false
	}

	if ff.Type != fi.Type {
		mark(ModFieldType)
	}
	if ff.Flags != fi.Flags {
		mark(ModFieldFlags)
	}
	if ff.ActDelete != fi.ActDelete || ff.ActUpdate != fi.ActUpdate {
		mark(ModFieldActions)
	}
	if !referenceEqual(ff.Ref, fi.Ref) {
		mark(ModFieldReference)
	}
	if ff.BitfName != fi.BitfName {
		mark(ModFieldBitf)
	}
	if ff.EnumName != fi.EnumName {
		mark(ModFieldEnm)
	}
	if ff.Flags.Has(model.FieldHasdef) && ff.Default != fi.Default {
		mark(ModFieldDef)
	}
	if !validsEqual(ff.Valids, fi.Valids) {
		mark(ModFieldValids)
	}
	if !roleMapEqual(ff.RoleMap, fi.RoleMap) {
		mark(ModFieldRolemap)
	}
	if !docEqual(ff.Doc, fi.Doc) {
		mark(ModFieldComment)
	}
	return same
}

func referenceEqual(a, b *model.Reference) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.SourceField == b.SourceField && a.TargetField == b.TargetField && a.TargetStrct == b.TargetStrct
}

func validsEqual(a, b []model.Valid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
