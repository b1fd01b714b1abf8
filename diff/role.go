package diff

import "github.com/ortschema/ort/model"

// compareRoles walks the role forest: a role is keyed by name regardless
// of its position in the tree, so a role moved to a different parent is a
// MOD_ROLE_PARENT rather than a DEL+ADD pair, matching rolemap's
// name-based ancestor lookup.
func compareRoles(q *Queue, from, into []*model.Role) {
	flatFrom := flattenRoles(from)
	flatInto := flattenRoles(into)
	intoIdx := roleIndex(flatInto)
	seen := make(map[string]bool, len(flatFrom))

	for _, fr := range flatFrom {
		seen[foldName(fr.Name)] = true
		j, ok := intoIdx[foldName(fr.Name)]
		if !ok {
			q.add(Entry{Kind: DelRole, Role: fr})
			continue
		}
		ir := flatInto[j]
		same := compareRoleBody(q, fr, ir)
		if same {
			q.add(Entry{Kind: SameRole, FromRole: fr, IntoRole: ir})
		} else {
			q.add(Entry{Kind: ModRole, FromRole: fr, IntoRole: ir})
		}
	}
	for _, ir := range flatInto {
		if !seen[foldName(ir.Name)] {
			q.add(Entry{Kind: AddRole, Role: ir})
		}
	}
}

func compareRoleBody(q *Queue, fr, ir *model.Role) bool {
	same := true

	fromParent, intoParent := "", ""
	if fr.Parent != nil {
		fromParent = fr.Parent.Name
	}
	if ir.Parent != nil {
		intoParent = ir.Parent.Name
	}
	if fromParent != intoParent {
		q.add(Entry{Kind: ModRoleParent, FromRole: fr, IntoRole: ir})
		same = false
	}
	if !docEqual(fr.Doc, ir.Doc) {
		q.add(Entry{Kind: ModRoleComment, FromRole: fr, IntoRole: ir})
		same = false
	}
	if !childrenEqual(fr.Children, ir.Children) {
		q.add(Entry{Kind: ModRoleChildren, FromRole: fr, IntoRole: ir})
		same = false
	}
	return same
}

func childrenEqual(a, b []*model.Role) bool {
	if len(a) != len(b) {
		return false
	}
	names := make(map[string]bool, len(a))
	for _, r := range a {
		names[foldName(r.Name)] = true
	}
	for _, r := range b {
		if !names[foldName(r.Name)] {
			return false
		}
	}
	return true
}

// flattenRoles walks the role forest into declaration order, same shape as
// model.Config.RolesFlat but scoped to whichever subtree Compare was given.
func flattenRoles(roots []*model.Role) []*model.Role {
	var out []*model.Role
	var walk func(r *model.Role)
	walk = func(r *model.Role) {
		out = append(out, r)
		for _, c := range r.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
