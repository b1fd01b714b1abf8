package diff

import "github.com/ortschema/ort/model"

// compareEnums diffs two enum lists: an enum is SAME only when its
// comment, null labels, and every item compare SAME; any item-level
// difference downgrades the whole enum to MOD and still emits the item's
// own fine entries.
func compareEnums(q *Queue, from, into []model.Enum) {
	intoIdx := enumIndex(into)
	seen := make(map[string]bool, len(from))

	for i := range from {
		fe := &from[i]
		seen[foldName(fe.Name)] = true
		j, ok := intoIdx[foldName(fe.Name)]
		if !ok {
			q.add(Entry{Kind: DelEnm, Enum: fe})
			continue
		}
		ie := &into[j]
		same := compareEnumBody(q, fe, ie)
		if same {
			q.add(Entry{Kind: SameEnm, FromEnum: fe, IntoEnum: ie})
		} else {
			q.add(Entry{Kind: ModEnm, FromEnum: fe, IntoEnum: ie})
		}
	}
	for i := range into {
		if !seen[foldName(into[i].Name)] {
			q.add(Entry{Kind: AddEnm, Enum: &into[i]})
		}
	}
}

// compareEnumBody emits fine MOD_ENM_* entries and every MOD_EITEM* entry
// for the item list, returning whether the enum is otherwise identical.
func compareEnumBody(q *Queue, fe, ie *model.Enum) bool {
	same := true
	if !docEqual(fe.Doc, ie.Doc) {
		q.add(Entry{Kind: ModEnmComment, FromEnum: fe, IntoEnum: ie})
		same = false
	}
	if !labelsEqual(fe.LabelsNull, ie.LabelsNull) {
		q.add(Entry{Kind: ModEnmLabels, FromEnum: fe, IntoEnum: ie})
		same = false
	}
	if !compareEnumItems(q, fe.Items, ie.Items) {
		same = false
	}
	return same
}

func compareEnumItems(q *Queue, from, into []model.EnumItem) bool {
	intoIdx := enumItemIndex(into)
	seen := make(map[string]bool, len(from))
	allSame := true

	for i := range from {
		fi := &from[i]
		seen[foldName(fi.Name)] = true
		j, ok := intoIdx[foldName(fi.Name)]
		if !ok {
			q.add(Entry{Kind: DelEitem, EnumItem: fi})
			allSame = false
			continue
		}
		ii := &into[j]
		itemSame := true
		if fi.Value != ii.Value {
			q.add(Entry{Kind: ModEitemValue, FromEnumItem: fi, IntoEnumItem: ii})
			itemSame = false
		}
		if !labelsEqual(fi.Labels, ii.Labels) {
			q.add(Entry{Kind: ModEitemLabels, FromEnumItem: fi, IntoEnumItem: ii})
			itemSame = false
		}
		if !docEqual(fi.Doc, ii.Doc) {
			q.add(Entry{Kind: ModEitemComment, FromEnumItem: fi, IntoEnumItem: ii})
			itemSame = false
		}
		if itemSame {
			q.add(Entry{Kind: SameEitem, FromEnumItem: fi, IntoEnumItem: ii})
		} else {
			q.add(Entry{Kind: ModEitem, FromEnumItem: fi, IntoEnumItem: ii})
			allSame = false
		}
	}
	for i := range into {
		if !seen[foldName(into[i].Name)] {
			q.add(Entry{Kind: AddEitem, EnumItem: &into[i]})
			allSame = false
		}
	}
	return allSame
}
