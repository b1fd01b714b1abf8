package diff

import "github.com/ortschema/ort/model"

// Compare produces the ordered diff queue between two schema models: from
// is the old revision, into is the new one. Entries are emitted
// deletion-first (every from-side entity classified DEL/SAME/MOD) then
// addition-last (every into-side entity absent from from classified ADD)
// — a two-pass walk rather than a single merged one, so the queue's order
// is easy to reason about independent of either side's declaration order.
func Compare(from, into *model.Config) *Queue {
	q := &Queue{}

	compareEnums(q, from.Enums, into.Enums)
	compareBitfields(q, from.Bitfields, into.Bitfields)
	compareStructures(q, from.Structures, into.Structures)
	compareRoles(q, from.RolesTree, into.RolesTree)

	return q
}

// foldName normalizes an identifier for comparison: identifier comparisons
// are case-insensitive throughout, so every index below keys on this form
// rather than the raw Name.
func foldName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// enumIndex and the other xxxIndex helpers below build a folded-name ->
// index lookup for a slice of named entities, used by the per-entity
// comparators to avoid an O(n*m) scan.
func enumIndex(items []model.Enum) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func bitfieldIndex(items []model.Bitfield) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func structureIndex(items []model.Structure) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func fieldIndex(items []model.Field) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func enumItemIndex(items []model.EnumItem) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func bitIndexIndex(items []model.BitIndex) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func updateIndex(items []model.Update) map[string]int {
	// An Update's identity key combines Kind (update vs delete) and Name,
	// since the same name may legitimately exist once per Kind.
	m := make(map[string]int, len(items))
	for i, it := range items {
		if !it.HasName {
			continue
		}
		m[updateKey(it)] = i
	}
	return m
}

func updateKey(u model.Update) string {
	if u.Kind == model.OpDelete {
		return "d:" + foldName(u.Name)
	}
	return "u:" + foldName(u.Name)
}

func roleIndex(items []*model.Role) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[foldName(it.Name)] = i
	}
	return m
}

func labelsEqual(a, b []model.Label) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]string, len(a))
	for _, l := range a {
		seen[l.Lang] = l.Text
	}
	for _, l := range b {
		t, ok := seen[l.Lang]
		if !ok || t != l.Text {
			return false
		}
	}
	return true
}

func docEqual(a, b model.Doc) bool {
	return a.HasText == b.HasText && a.Text == b.Text
}

func roleMapEqual(a, b *model.RoleMap) bool {
	if a.Empty() && b.Empty() {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind || len(a.Roles) != len(b.Roles) {
		return false
	}
	seen := make(map[string]bool, len(a.Roles))
	for _, r := range a.Roles {
		seen[r] = true
	}
	for _, r := range b.Roles {
		if !seen[r] {
			return false
		}
	}
	return true
}
