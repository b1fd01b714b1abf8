package rolemap

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/model"
)

func TestPermitsDirectMatch(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	rm := &model.RoleMap{Roles: []string{"admin"}}

	c.Assert(Permits(admin, rm), qt.IsTrue)
}

func TestPermitsAncestorMatch(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	editor := &model.Role{Name: "editor", Parent: admin}
	rm := &model.RoleMap{Roles: []string{"admin"}}

	c.Assert(Permits(editor, rm), qt.IsTrue)
}

func TestPermitsCaseInsensitive(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "Admin"}
	rm := &model.RoleMap{Roles: []string{"ADMIN"}}

	c.Assert(Permits(admin, rm), qt.IsTrue)
}

func TestPermitsNoMatch(t *testing.T) {
	c := qt.New(t)
	viewer := &model.Role{Name: "viewer"}
	rm := &model.RoleMap{Roles: []string{"admin"}}

	c.Assert(Permits(viewer, rm), qt.IsFalse)
}

func TestPermitsEmptyRoleMapDenies(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}

	c.Assert(Permits(admin, &model.RoleMap{}), qt.IsFalse)
	c.Assert(Permits(admin, nil), qt.IsFalse)
}

func TestPermitsNilRoleDenies(t *testing.T) {
	c := qt.New(t)
	rm := &model.RoleMap{Roles: []string{"admin"}}

	c.Assert(Permits(nil, rm), qt.IsFalse)
}

func TestPermitsSiblingDoesNotMatch(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	editorA := &model.Role{Name: "editorA", Parent: admin}
	editorB := &model.Role{Name: "editorB", Parent: admin}
	rm := &model.RoleMap{Roles: []string{"editorA"}}

	c.Assert(Permits(editorA, rm), qt.IsTrue)
	c.Assert(Permits(editorB, rm), qt.IsFalse)
}

func TestAncestorSetContainsSelfAndAncestors(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}
	editor := &model.Role{Name: "editor", Parent: admin}
	author := &model.Role{Name: "author", Parent: editor}

	set := AncestorSet(author)

	c.Assert(set, qt.HasLen, 3)
	for _, name := range []string{"author", "editor", "admin"} {
		_, ok := set[name]
		c.Assert(ok, qt.IsTrue, qt.Commentf("expected %q in ancestor set", name))
	}
}

func TestAncestorSetRoot(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "admin"}

	set := AncestorSet(admin)

	c.Assert(set, qt.HasLen, 1)
	_, ok := set["admin"]
	c.Assert(ok, qt.IsTrue)
}
