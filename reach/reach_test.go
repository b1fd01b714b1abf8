package reach

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/model"
)

func companyUserSchema() (*model.Structure, *model.Structure) {
	company := &model.Structure{
		Name:   "company",
		Fields: []model.Field{{Name: "id", Type: model.FtypeInt}},
	}
	user := &model.Structure{
		Name: "user",
		Fields: []model.Field{
			{Name: "id", Type: model.FtypeInt},
			{
				Name: "employer",
				Type: model.FtypeStruct,
				Ref:  &model.Reference{SourceField: "employer", TargetStrct: "company", TargetField: "id"},
			},
		},
	}
	return company, user
}

func resolverFor(structsByName map[string]*model.Structure) func(fd *model.Field) *model.Structure {
	return func(fd *model.Field) *model.Structure {
		if fd.Ref == nil {
			return nil
		}
		return structsByName[fd.Ref.TargetStrct]
	}
}

func TestWalkSingleStructureNoReferences(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	st := &model.Structure{Name: "user", Fields: []model.Field{{Name: "id", Type: model.FtypeInt}}}

	s := NewSet(admin, 10, func(*model.Field) *model.Structure { return nil })
	sr := &model.Search{Name: "list", HasName: true}
	c.Assert(s.Walk(st, sr, true), qt.IsNil)

	entries := s.Entries()
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Struct.Name, qt.Equals, "user")
	c.Assert(entries[0].Exported, qt.IsTrue)
	c.Assert(entries[0].Paths, qt.HasLen, 1)
	c.Assert(entries[0].Paths[0].HasPath, qt.IsFalse)
}

func TestWalkFollowsStructReference(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	company, user := companyUserSchema()
	resolve := resolverFor(map[string]*model.Structure{"company": company})

	s := NewSet(admin, 10, resolve)
	sr := &model.Search{Name: "list", HasName: true}
	c.Assert(s.Walk(user, sr, true), qt.IsNil)

	entries := s.Entries()
	c.Assert(entries, qt.HasLen, 2)
	c.Assert(entries[0].Struct.Name, qt.Equals, "user")
	c.Assert(entries[1].Struct.Name, qt.Equals, "company")
	c.Assert(entries[1].Paths[0].HasPath, qt.IsTrue)
	c.Assert(entries[1].Paths[0].Path, qt.Equals, "employer")
}

func TestWalkExportPromotesNeverDemotes(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	st := &model.Structure{Name: "user", Fields: []model.Field{{Name: "id", Type: model.FtypeInt}}}

	s := NewSet(admin, 10, func(*model.Field) *model.Structure { return nil })
	sr1 := &model.Search{Name: "restricted", HasName: true}
	sr2 := &model.Search{Name: "open", HasName: true}

	c.Assert(s.Walk(st, sr1, false), qt.IsNil)
	c.Assert(s.Entries()[0].Exported, qt.IsFalse)

	c.Assert(s.Walk(st, sr2, true), qt.IsNil)
	c.Assert(s.Entries()[0].Exported, qt.IsTrue)

	// a third, non-exported walk must not demote the entry again
	c.Assert(s.Walk(st, sr1, false), qt.IsNil)
	c.Assert(s.Entries()[0].Exported, qt.IsTrue)
	c.Assert(s.Entries()[0].Paths, qt.HasLen, 3)
}

func TestWalkDepthCapReturnsError(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}

	// a self-referencing structure with no depth cap headroom
	self := &model.Structure{Name: "node"}
	self.Fields = []model.Field{
		{Name: "id", Type: model.FtypeInt},
		{Name: "parent", Type: model.FtypeStruct, Ref: &model.Reference{TargetStrct: "node", TargetField: "id"}},
	}
	resolve := resolverFor(map[string]*model.Structure{"node": self})

	s := NewSet(admin, 1, resolve)
	sr := &model.Search{Name: "list", HasName: true}
	err := s.Walk(self, sr, true)
	c.Assert(err, qt.ErrorMatches, ".*path depth exceeded cap.*")
}

func TestWalkNoexportFieldNotExported(t *testing.T) {
	c := qt.New(t)
	viewer := &model.Role{Name: "viewer"}
	st := &model.Structure{
		Name: "user",
		Fields: []model.Field{
			{Name: "id", Type: model.FtypeInt},
			{Name: "password_hash", Type: model.FtypeText, Flags: model.FieldNoexport},
		},
	}

	s := NewSet(viewer, 10, func(*model.Field) *model.Structure { return nil })
	sr := &model.Search{Name: "list", HasName: true}
	c.Assert(s.Walk(st, sr, true), qt.IsNil)

	entry := s.Entries()[0]
	c.Assert(entry.Fields, qt.HasLen, 2)
	c.Assert(entry.Fields[0].Exported, qt.IsTrue)
	c.Assert(entry.Fields[1].Exported, qt.IsFalse)
}
