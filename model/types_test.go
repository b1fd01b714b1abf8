package model_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/model"
)

func TestFieldTypeString(t *testing.T) {
	c := qt.New(t)
	c.Assert(model.FtypeInt.String(), qt.Equals, "int")
	c.Assert(model.FtypeStruct.String(), qt.Equals, "struct")
	c.Assert(model.FieldType(999).String(), qt.Equals, "unknown")
}

func TestFieldFlagsHas(t *testing.T) {
	c := qt.New(t)
	f := model.FieldRowid | model.FieldHasdef

	c.Assert(f.Has(model.FieldRowid), qt.IsTrue)
	c.Assert(f.Has(model.FieldHasdef), qt.IsTrue)
	c.Assert(f.Has(model.FieldUnique), qt.IsFalse)
	c.Assert(f.Has(model.FieldNull), qt.IsFalse)
}

func TestRoleMapEmpty(t *testing.T) {
	c := qt.New(t)
	c.Assert((*model.RoleMap)(nil).Empty(), qt.IsTrue)
	c.Assert((&model.RoleMap{}).Empty(), qt.IsTrue)
	c.Assert((&model.RoleMap{Roles: []string{"admin"}}).Empty(), qt.IsFalse)
}

func TestStructureRowidField(t *testing.T) {
	c := qt.New(t)
	st := &model.Structure{
		Fields: []model.Field{
			{Name: "email", Type: model.FtypeText},
			{Name: "id", Type: model.FtypeInt, Flags: model.FieldRowid},
		},
	}

	f := st.RowidField()
	c.Assert(f, qt.IsNotNil)
	c.Assert(f.Name, qt.Equals, "id")

	noRowid := &model.Structure{Fields: []model.Field{{Name: "email", Type: model.FtypeText}}}
	c.Assert(noRowid.RowidField(), qt.IsNil)
}

func TestStructureFieldByNameCaseInsensitive(t *testing.T) {
	c := qt.New(t)
	st := &model.Structure{Fields: []model.Field{{Name: "Email", Type: model.FtypeEmail}}}

	f := st.FieldByName("email")
	c.Assert(f, qt.IsNotNil)
	c.Assert(f.Name, qt.Equals, "Email")

	c.Assert(st.FieldByName("missing"), qt.IsNil)
}

func TestConfigStructByNameCaseInsensitive(t *testing.T) {
	c := qt.New(t)
	cfg := &model.Config{Structures: []model.Structure{{Name: "Company"}}}

	st := cfg.StructByName("company")
	c.Assert(st, qt.IsNotNil)
	c.Assert(st.Name, qt.Equals, "Company")

	c.Assert(cfg.StructByName("nope"), qt.IsNil)
}

func TestConfigRoleByNameCaseInsensitive(t *testing.T) {
	c := qt.New(t)
	admin := &model.Role{Name: "Admin"}
	cfg := &model.Config{RolesFlat: []*model.Role{admin}}

	r := cfg.RoleByName("admin")
	c.Assert(r, qt.Equals, admin)

	c.Assert(cfg.RoleByName("nope"), qt.IsNil)
}
