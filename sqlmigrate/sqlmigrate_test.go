package sqlmigrate

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/diff"
	"github.com/ortschema/ort/model"
)

func TestEmitCreateTable(t *testing.T) {
	c := qt.New(t)
	into := &model.Config{Structures: []model.Structure{
		{
			Name: "user",
			Fields: []model.Field{
				{Name: "id", Type: model.FtypeInt, Flags: model.FieldRowid},
				{Name: "email", Type: model.FtypeEmail},
			},
		},
	}}
	from := &model.Config{}
	q := diff.Compare(from, into)

	var buf strings.Builder
	c.Assert(Emit(&buf, q), qt.IsNil)
	out := buf.String()
	c.Assert(out, qt.Contains, "PRAGMA foreign_keys=ON;")
	c.Assert(out, qt.Contains, "CREATE TABLE user")
	c.Assert(out, qt.Contains, "id INTEGER PRIMARY KEY")
}

func TestValidateRefusesDropTableWithoutDestructive(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{{Name: "user"}}}
	into := &model.Config{}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}

func TestValidateAllowsDropTableWithDestructive(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{{Name: "user"}}}
	into := &model.Config{}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsFalse)
}

func TestValidateIrreconcilableTypeChange(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "age", Type: model.FtypeInt}}},
	}}
	into := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "age", Type: model.FtypeText}}},
	}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}

func TestValidateSafeNullableAdd(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "id", Type: model.FtypeInt, Flags: model.FieldRowid}}},
	}}
	into := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{
			{Name: "id", Type: model.FtypeInt, Flags: model.FieldRowid},
			{Name: "nickname", Type: model.FtypeText, Flags: model.FieldNull},
		}},
	}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions())
	c.Assert(msgs.HasErrors(), qt.IsFalse)
}

func TestValidateAddUniqueNeverAllowed(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "email", Type: model.FtypeEmail}}},
	}}
	into := &model.Config{Structures: []model.Structure{
		{
			Name:    "user",
			Fields:  []model.Field{{Name: "email", Type: model.FtypeEmail}},
			Uniques: []model.UniqueClause{{Fields: []string{"email"}}},
		},
	}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}

func TestValidateModFieldFlagsAnyDirectionIrreconcilable(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "nickname", Type: model.FtypeText, Flags: model.FieldNull}}},
	}}
	into := &model.Config{Structures: []model.Structure{
		{Name: "user", Fields: []model.Field{{Name: "nickname", Type: model.FtypeText}}},
	}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}

func TestValidateModFieldActionsIrreconcilable(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Structures: []model.Structure{
		{Name: "post", Fields: []model.Field{{Name: "author", Type: model.FtypeStruct, ActDelete: model.ActionNone}}},
	}}
	into := &model.Config{Structures: []model.Structure{
		{Name: "post", Fields: []model.Field{{Name: "author", Type: model.FtypeStruct, ActDelete: model.ActionCascade}}},
	}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}

func TestValidateDropBitfieldDestructive(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Bitfields: []model.Bitfield{{Name: "perms"}}}
	into := &model.Config{}
	q := diff.Compare(from, into)

	c.Assert(Validate(q, DefaultOptions()).HasErrors(), qt.IsTrue)
	c.Assert(Validate(q, DefaultOptions().WithDestructive()).HasErrors(), qt.IsFalse)
}

func TestValidateDropBitIndexDestructive(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Bitfields: []model.Bitfield{{Name: "perms", Items: []model.BitIndex{{Name: "read", Pos_: 0}}}}}
	into := &model.Config{Bitfields: []model.Bitfield{{Name: "perms"}}}
	q := diff.Compare(from, into)

	c.Assert(Validate(q, DefaultOptions()).HasErrors(), qt.IsTrue)
	c.Assert(Validate(q, DefaultOptions().WithDestructive()).HasErrors(), qt.IsFalse)
}

func TestValidateModBitIndexValueIrreconcilable(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Bitfields: []model.Bitfield{{Name: "perms", Items: []model.BitIndex{{Name: "read", Pos_: 0}}}}}
	into := &model.Config{Bitfields: []model.Bitfield{{Name: "perms", Items: []model.BitIndex{{Name: "read", Pos_: 1}}}}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}

func TestValidateDropEnumDestructive(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Enums: []model.Enum{{Name: "status"}}}
	into := &model.Config{}
	q := diff.Compare(from, into)

	c.Assert(Validate(q, DefaultOptions()).HasErrors(), qt.IsTrue)
	c.Assert(Validate(q, DefaultOptions().WithDestructive()).HasErrors(), qt.IsFalse)
}

func TestValidateDropEnumItemDestructive(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Enums: []model.Enum{{Name: "status", Items: []model.EnumItem{{Name: "active", Value: 0}}}}}
	into := &model.Config{Enums: []model.Enum{{Name: "status"}}}
	q := diff.Compare(from, into)

	c.Assert(Validate(q, DefaultOptions()).HasErrors(), qt.IsTrue)
	c.Assert(Validate(q, DefaultOptions().WithDestructive()).HasErrors(), qt.IsFalse)
}

func TestValidateModEnumItemValueIrreconcilable(t *testing.T) {
	c := qt.New(t)
	from := &model.Config{Enums: []model.Enum{{Name: "status", Items: []model.EnumItem{{Name: "active", Value: 0}}}}}
	into := &model.Config{Enums: []model.Enum{{Name: "status", Items: []model.EnumItem{{Name: "active", Value: 1}}}}}
	q := diff.Compare(from, into)

	msgs := Validate(q, DefaultOptions().WithDestructive())
	c.Assert(msgs.HasErrors(), qt.IsTrue)
}
