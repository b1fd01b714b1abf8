package diff

import "github.com/ortschema/ort/model"

// compareSearches diffs a structure's query list. Named searches match by
// case-insensitive name; anonymous searches have no stable key, so a
// from-side unnamed search is paired with the first not-yet-used into-side
// unnamed search whose clauses are all identical (searchEqual), and only
// falls back to a straight DEL (paired with a leftover ADD on the into
// side) when no such match exists.
func compareSearches(q *Queue, structName string, from, into []model.Search) bool {
	intoIdx := make(map[string]int, len(into))
	var intoUnnamed []int
	for i, it := range into {
		if it.HasName {
			intoIdx[foldName(it.Name)] = i
		} else {
			intoUnnamed = append(intoUnnamed, i)
		}
	}
	seen := make(map[string]bool, len(from))
	usedUnnamed := make(map[int]bool, len(intoUnnamed))
	allSame := true

	var fromUnnamed []int
	for i := range from {
		fs := &from[i]
		if !fs.HasName {
			fromUnnamed = append(fromUnnamed, i)
			continue
		}
		seen[foldName(fs.Name)] = true
		j, ok := intoIdx[foldName(fs.Name)]
		if !ok {
			q.add(Entry{Kind: DelSearch, Search: fs, StructName: structName})
			allSame = false
			continue
		}
		is := &into[j]
		same := compareSearchBody(q, structName, fs, is)
		if same {
			q.add(Entry{Kind: SameSearch, FromSearch: fs, IntoSearch: is, StructName: structName})
		} else {
			q.add(Entry{Kind: ModSearch, FromSearch: fs, IntoSearch: is, StructName: structName})
			allSame = false
		}
	}

	for _, fi := range fromUnnamed {
		fs := &from[fi]
		matched := false
		for _, ii := range intoUnnamed {
			if usedUnnamed[ii] {
				continue
			}
			if searchEqual(fs, &into[ii]) {
				usedUnnamed[ii] = true
				q.add(Entry{Kind: SameSearch, FromSearch: fs, IntoSearch: &into[ii], StructName: structName})
				matched = true
				break
			}
		}
		if !matched {
			q.add(Entry{Kind: DelSearch, Search: fs, StructName: structName})
			allSame = false
		}
	}

	for i := range into {
		if into[i].HasName {
			if !seen[foldName(into[i].Name)] {
				q.add(Entry{Kind: AddSearch, Search: &into[i], StructName: structName})
				allSame = false
			}
			continue
		}
		if !usedUnnamed[i] {
			q.add(Entry{Kind: AddSearch, Search: &into[i], StructName: structName})
			allSame = false
		}
	}
	return allSame
}

// searchEqual reports whether two searches are indistinguishable by every
// clause compareSearchBody checks, used to structurally match unnamed
// searches that have no name to key on.
func searchEqual(a, b *model.Search) bool {
	return a.Kind == b.Kind &&
		sentEqual(a.Sent, b.Sent) &&
		orderEqual(a.Order, b.Order) &&
		aggrEqual(a.Aggr, b.Aggr) &&
		a.HasGroup == b.HasGroup && a.Group == b.Group &&
		distinctEqual(a.Distinct, b.Distinct) &&
		a.HasLimit == b.HasLimit && a.Limit == b.Limit &&
		a.HasOffset == b.HasOffset && a.Offset == b.Offset &&
		roleMapEqual(a.RoleMap, b.RoleMap) &&
		docEqual(a.Doc, b.Doc)
}

func compareSearchBody(q *Queue, structName string, fs, is *model.Search) bool {
	same := true
	mark := func(k Kind) {
		q.add(Entry{Kind: k, FromSearch: fs, IntoSearch: is, StructName: structName})
		same = false
	}

	if !sentEqual(fs.Sent, is.Sent) {
		mark(ModSearchParams)
	}
	if !orderEqual(fs.Order, is.Order) {
		mark(ModSearchOrder)
	}
	if !aggrEqual(fs.Aggr, is.Aggr) {
		mark(ModSearchAggr)
	}
	if fs.HasGroup != is.HasGroup || fs.Group != is.Group {
		mark(ModSearchGroup)
	}
	if !distinctEqual(fs.Distinct, is.Distinct) {
		mark(ModSearchDistinct)
	}
	if fs.HasLimit != is.HasLimit || fs.Limit != is.Limit {
		mark(ModSearchLimit)
	}
	if fs.HasOffset != is.HasOffset || fs.Offset != is.Offset {
		mark(ModSearchOffset)
	}
	if !roleMapEqual(fs.RoleMap, is.RoleMap) {
		mark(ModSearchRolemap)
	}
	if !docEqual(fs.Doc, is.Doc) {
		mark(ModSearchComment)
	}
	return same
}

func sentEqual(a, b []model.SentClause) bool {
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

func orderEqual(a, b []model.OrderClause) bool {
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

func aggrEqual(a, b *model.SentClause) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func distinctEqual(a, b *model.Distinct) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
