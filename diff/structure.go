package diff

import (
	"sort"
	"strings"

	"github.com/ortschema/ort/model"
)

// compareStructures diffs the table list: a structure is SAME only when
// its comment, insert operation, unique-clause set, and every
// field/search/update all compare SAME.
func compareStructures(q *Queue, from, into []model.Structure) {
	intoIdx := structureIndex(into)
	seen := make(map[string]bool, len(from))

	for i := range from {
		fs := &from[i]
		seen[foldName(fs.Name)] = true
		j, ok := intoIdx[foldName(fs.Name)]
		if !ok {
			q.add(Entry{Kind: DelStrct, Structure: fs})
			continue
		}
		is := &into[j]
		same := compareStructureBody(q, fs, is)
		if same {
			q.add(Entry{Kind: SameStrct, FromStructure: fs, IntoStructure: is})
		} else {
			q.add(Entry{Kind: ModStrct, FromStructure: fs, IntoStructure: is})
		}
	}
	for i := range into {
		if !seen[foldName(into[i].Name)] {
			q.add(Entry{Kind: AddStrct, Structure: &into[i]})
		}
	}
}

func compareStructureBody(q *Queue, fs, is *model.Structure) bool {
	same := true

	if !docEqual(fs.Doc, is.Doc) {
		q.add(Entry{Kind: ModStrctComment, FromStructure: fs, IntoStructure: is})
		same = false
	}
	if !compareFields(q, fs.Name, fs.Fields, is.Fields) {
		same = false
	}
	if !compareSearches(q, fs.Name, fs.Searches, is.Searches) {
		same = false
	}
	if !compareUpdates(q, fs.Name, fs.Updates, is.Updates) {
		same = false
	}
	if !compareUniques(q, fs.Name, fs.Uniques, is.Uniques) {
		same = false
	}
	if !compareInsert(q, fs.Name, fs.Insert, is.Insert) {
		same = false
	}
	return same
}

// compareUniques compares unordered field-name sets; a unique clause has
// no identity beyond its member set, so there is no MOD_UNIQUE: a change
// in membership is a deletion of the old set plus an addition of the new
// one, treating uniques as a bag of sets rather than named entities.
func compareUniques(q *Queue, structName string, from, into []model.UniqueClause) bool {
	intoKeys := make(map[string]bool, len(into))
	for _, u := range into {
		intoKeys[uniqueKey(u)] = true
	}
	fromKeys := make(map[string]bool, len(from))
	for _, u := range from {
		fromKeys[uniqueKey(u)] = true
	}

	same := true
	for i := range from {
		if !intoKeys[uniqueKey(from[i])] {
			q.add(Entry{Kind: DelUnique, Unique: &from[i], StructName: structName})
			same = false
		}
	}
	for i := range into {
		if !fromKeys[uniqueKey(into[i])] {
			q.add(Entry{Kind: AddUnique, Unique: &into[i], StructName: structName})
			same = false
		}
	}
	return same
}

func uniqueKey(u model.UniqueClause) string {
	fields := append([]string(nil), u.Fields...)
	sort.Strings(fields)
	return strings.Join(fields, ",")
}

// compareInsert diffs the (at most one) insert operation on a structure.
// Insert has no name, so presence alone decides ADD/DEL; when both sides
// have one, only its rolemap can differ.
func compareInsert(q *Queue, structName string, from, into *model.Insert) bool {
	if from == nil && into == nil {
		return true
	}
	if from == nil {
		q.add(Entry{Kind: AddInsert, Insert: into, StructName: structName})
		return false
	}
	if into == nil {
		q.add(Entry{Kind: DelInsert, Insert: from, StructName: structName})
		return false
	}
	if roleMapEqual(from.RoleMap, into.RoleMap) {
		q.add(Entry{Kind: SameInsert, FromInsert: from, IntoInsert: into, StructName: structName})
		return true
	}
	q.add(Entry{Kind: ModInsertRolemap, FromInsert: from, IntoInsert: into, StructName: structName})
	q.add(Entry{Kind: ModInsert, FromInsert: from, IntoInsert: into, StructName: structName})
	return false
}
