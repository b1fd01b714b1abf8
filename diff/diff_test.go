package diff

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/model"
)

func simpleConfig(fieldNames ...string) *model.Config {
	fields := make([]model.Field, 0, len(fieldNames))
	for _, n := range fieldNames {
		fields = append(fields, model.Field{Name: n, Type: model.FtypeInt})
	}
	return &model.Config{
		Structures: []model.Structure{
			{Name: "user", Fields: fields},
		},
	}
}

func TestCompareReflexive(t *testing.T) {
	c := qt.New(t)
	cfg := simpleConfig("id", "email")

	q := Compare(cfg, cfg)

	for _, e := range q.Entries {
		switch e.Kind {
		case SameStrct, SameField:
			// expected
		default:
			c.Fatalf("unexpected non-SAME entry comparing a config to itself: %s", e.Kind)
		}
	}
}

func TestCompareAddField(t *testing.T) {
	c := qt.New(t)
	from := simpleConfig("id")
	into := simpleConfig("id", "email")

	q := Compare(from, into)

	var sawAdd, sawModStrct bool
	for _, e := range q.Entries {
		if e.Kind == AddField && e.Field != nil && e.Field.Name == "email" {
			sawAdd = true
		}
		if e.Kind == ModStrct {
			sawModStrct = true
		}
	}
	c.Assert(sawAdd, qt.IsTrue)
	c.Assert(sawModStrct, qt.IsTrue)
}

func TestCompareDelField(t *testing.T) {
	c := qt.New(t)
	from := simpleConfig("id", "email")
	into := simpleConfig("id")

	q := Compare(from, into)

	var sawDel bool
	for _, e := range q.Entries {
		if e.Kind == DelField && e.Field != nil && e.Field.Name == "email" {
			sawDel = true
		}
	}
	c.Assert(sawDel, qt.IsTrue)
}

func TestCompareFieldTypeChange(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "age", Type: model.FtypeInt}}},
	}}
	into := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "age", Type: model.FtypeText}}},
	}}

	q := Compare(from, into)

	var sawTypeMod bool
	for _, e := range q.Entries {
		if e.Kind == ModFieldType {
			sawTypeMod = true
		}
	}
	c.Assert(sawTypeMod, qt.IsTrue)
}

func TestCompareStructureSymmetricNames(t *testing.T) {
	c := qt.New(t)
	from := simpleConfig("id")
	into := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "id", Type: model.FtypeInt}}},
		{Name: "company", Fields: []model.Field{{Name: "id", Type: model.FtypeInt}}},
	}}

	q := Compare(from, into)

	var sawAddStrct bool
	for _, e := range q.Entries {
		if e.Kind == AddStrct && e.Structure != nil && e.Structure.Name == "company" {
			sawAddStrct = true
		}
	}
	c.Assert(sawAddStrct, qt.IsTrue)
}

func TestRoleReparent(t *testing.T) {
	c := qt.New(t)
	fromParent := &model.Role{Name: "admin"}
	fromChild := &model.Role{Name: "editor", Parent: fromParent}
	fromParent.Children = []*model.Role{fromChild}

	intoOther := &model.Role{Name: "other"}
	intoChild := &model.Role{Name: "editor", Parent: intoOther}
	intoOther.Children = []*model.Role{intoChild}

	q := &Queue{}
	compareRoles(q, []*model.Role{fromParent}, []*model.Role{intoOther})

	var sawParentMod bool
	for _, e := range q.Entries {
		if e.Kind == ModRoleParent && e.FromRole != nil && e.FromRole.Name == "editor" {
			sawParentMod = true
		}
	}
	c.Assert(sawParentMod, qt.IsTrue)
}

func TestCompareCaseInsensitiveStructureRename(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{{Name: "Company"}}}
	into := &model.Config{Structures: []model.Structure{{Name: "company"}}}

	q := Compare(from, into)

	for _, e := range q.Entries {
		c.Assert(e.Kind, qt.Equals, SameStrct, qt.Commentf("renaming only the case of a structure name must not produce %s", e.Kind))
	}
}

func TestCompareCaseInsensitiveFieldAndRole(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{
		Structures: []model.Structure{{Name: "user", Fields: []model.Field{{Name: "Email", Type: model.FtypeEmail}}}},
		RolesFlat:  []*model.Role{{Name: "Admin"}},
		RolesTree:  []*model.Role{{Name: "Admin"}},
	}
	into := &model.Config{
		Structures: []model.Structure{{Name: "user", Fields: []model.Field{{Name: "email", Type: model.FtypeEmail}}}},
		RolesFlat:  []*model.Role{{Name: "admin"}},
		RolesTree:  []*model.Role{{Name: "admin"}},
	}

	q := Compare(from, into)

	for _, e := range q.Entries {
		switch e.Kind {
		case SameStrct, SameField, SameRole:
			// expected
		default:
			c.Fatalf("case-only rename produced non-SAME entry: %s", e.Kind)
		}
	}
}

func TestCompareUnnamedSearchReflexive(t *testing.T) {
	c := qt.New(t)
	cfg := &model.Config{Structures: []model.Structure{{
		Name: "user",
		Searches: []model.Search{
			{HasName: false, Kind: model.SearchList, Sent: []model.SentClause{{Fname: "email", Op: "eq"}}},
		},
	}}}

	q := Compare(cfg, cfg)

	for _, e := range q.Entries {
		switch e.Kind {
		case SameStrct, SameSearch:
			// expected
		default:
			c.Fatalf("unnamed search self-compare produced non-SAME entry: %s", e.Kind)
		}
	}
}

func TestCompareUnnamedUpdateReflexive(t *testing.T) {
	c := qt.New(t)
	cfg := &model.Config{Structures: []model.Structure{{
		Name: "user",
		Updates: []model.Update{
			{HasName: false, Kind: model.OpUpdate, Modify: []model.ModRef{{Field: "email", Op: "set"}}},
			{HasName: false, Kind: model.OpDelete, Constrain: []model.ConstraintRef{{Field: "id", Op: "eq"}}},
		},
	}}}

	q := Compare(cfg, cfg)

	for _, e := range q.Entries {
		switch e.Kind {
		case SameStrct, SameUpdate:
			// expected
		default:
			c.Fatalf("unnamed update self-compare produced non-SAME entry: %s", e.Kind)
		}
	}
}

func TestCompareUnnamedSearchFallsBackToDelAddWhenDifferent(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{{
		Name:     "user",
		Searches: []model.Search{{HasName: false, Kind: model.SearchList}},
	}}}
	into := &model.Config{Structures: []model.Structure{{
		Name:     "user",
		Searches: []model.Search{{HasName: false, Kind: model.SearchCount}},
	}}}

	q := Compare(from, into)

	var sawDel, sawAdd bool
	for _, e := range q.Entries {
		if e.Kind == DelSearch {
			sawDel = true
		}
		if e.Kind == AddSearch {
			sawAdd = true
		}
	}
	c.Assert(sawDel, qt.IsTrue)
	c.Assert(sawAdd, qt.IsTrue)
}

func TestReportWritesHeadings(t *testing.T) {
	c := qt.New(t)
	from := simpleConfig("id")
	into := simpleConfig("id", "email")
	q := Compare(from, into)

	var buf writerBuf
	err := WriteReport(&buf, q)
	c.Assert(err, qt.IsNil)
	c.Assert(buf.String(), qt.Contains, "@@ structures @@")
}

type writerBuf struct{ b []byte }

func (w *writerBuf) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

func (w *writerBuf) String() string { return string(w.b) }
