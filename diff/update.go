package diff

import "github.com/ortschema/ort/model"

// compareUpdates diffs a structure's update-and-delete operation list. A
// named operation's comparison key is its (Kind, Name) pair per updateKey,
// so an update and a delete that happen to share a name never collide. An
// unnamed operation has no such key; it is matched structurally against a
// not-yet-used unnamed into-side operation of the same Kind whose clauses
// are all identical (updateEqual), falling back to DEL+ADD only when no
// match exists.
func compareUpdates(q *Queue, structName string, from, into []model.Update) bool {
	intoIdx := updateIndex(into)
	var intoUnnamed []int
	for i, it := range into {
		if !it.HasName {
			intoUnnamed = append(intoUnnamed, i)
		}
	}
	seen := make(map[string]bool, len(from))
	usedUnnamed := make(map[int]bool, len(intoUnnamed))
	allSame := true

	var fromUnnamed []int
	for i := range from {
		fu := &from[i]
		if !fu.HasName {
			fromUnnamed = append(fromUnnamed, i)
			continue
		}
		key := updateKey(*fu)
		seen[key] = true
		j, ok := intoIdx[key]
		if !ok {
			q.add(Entry{Kind: DelUpdate, Update: fu, StructName: structName})
			allSame = false
			continue
		}
		iu := &into[j]
		same := compareUpdateBody(q, structName, fu, iu)
		if same {
			q.add(Entry{Kind: SameUpdate, FromUpdate: fu, IntoUpdate: iu, StructName: structName})
		} else {
			q.add(Entry{Kind: ModUpdate, FromUpdate: fu, IntoUpdate: iu, StructName: structName})
			allSame = false
		}
	}

	for _, fi := range fromUnnamed {
		fu := &from[fi]
		matched := false
		for _, ii := range intoUnnamed {
			if usedUnnamed[ii] {
				continue
			}
			if updateEqual(fu, &into[ii]) {
				usedUnnamed[ii] = true
				q.add(Entry{Kind: SameUpdate, FromUpdate: fu, IntoUpdate: &into[ii], StructName: structName})
				matched = true
				break
			}
		}
		if !matched {
			q.add(Entry{Kind: DelUpdate, Update: fu, StructName: structName})
			allSame = false
		}
	}

	for i := range into {
		if into[i].HasName {
			if !seen[updateKey(into[i])] {
				q.add(Entry{Kind: AddUpdate, Update: &into[i], StructName: structName})
				allSame = false
			}
			continue
		}
		if !usedUnnamed[i] {
			q.add(Entry{Kind: AddUpdate, Update: &into[i], StructName: structName})
			allSame = false
		}
	}
	return allSame
}

// updateEqual reports whether two update/delete operations are
// indistinguishable by every clause compareUpdateBody checks, used to
// structurally match unnamed operations that have no name to key on.
func updateEqual(a, b *model.Update) bool {
	return a.Kind == b.Kind &&
		modRefsEqual(a.Modify, b.Modify) &&
		constraintRefsEqual(a.Constrain, b.Constrain) &&
		a.All == b.All &&
		roleMapEqual(a.RoleMap, b.RoleMap) &&
		docEqual(a.Doc, b.Doc)
}

func compareUpdateBody(q *Queue, structName string, fu, iu *model.Update) bool {
	same := true
	mark := func(k Kind) {
		q.add(Entry{Kind: k, FromUpdate: fu, IntoUpdate: iu, StructName: structName})
		same = false
	}

	if fu.Kind == model.OpUpdate && !modRefsEqual(fu.Modify, iu.Modify) {
		mark(ModUpdateMrq)
	}
	if !constraintRefsEqual(fu.Constrain, iu.Constrain) {
		mark(ModUpdateCrq)
	}
	if fu.All != iu.All {
		mark(ModUpdateFlags)
	}
	if !roleMapEqual(fu.RoleMap, iu.RoleMap) {
		mark(ModUpdateRolemap)
	}
	if !docEqual(fu.Doc, iu.Doc) {
		mark(ModUpdateComment)
	}
	return same
}

func modRefsEqual(a, b []model.ModRef) bool {
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

func constraintRefsEqual(a, b []model.ConstraintRef) bool {
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
