package parse

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/model"
)

const sampleSchema = `
lang fr;

roles {
	role admin comment "top admin" {
		role editor comment "can edit";
	};
};

enum status comment "status of a user" {
	item active "Active" (fr:"Actif");
	item inactive "Inactive" (fr:"Inactif");
	isnull "Unknown";
};

bitfield flags comment "permission flags" {
	item read:0 "Read";
	item write:1 "Write";
	isunset "None";
	isnull "Unknown";
};

struct company comment "a company" {
	field id:int rowid;
	field name:text unique comment "company name";
	insert;
};

struct user comment "a user record" {
	field id:int rowid;
	field email:email unique comment "login email";
	field company:struct:company comment "owning company";
	field status:enum:status default 0;
	field flags:bitfield:flags default 0;
	unique { email };
	insert rolemap { admin };
	search name sent email eq comment "lookup by email";
	search get sent id eq rolemap { admin, editor };
	update setstatus modify status set constrain id eq rolemap { admin };
	delete byid constrain id eq rolemap { admin };
};
`

func TestParseSampleSchema(t *testing.T) {
	c := qt.New(t)
	p := NewParser(sampleSchema, "sample.ort")
	cfg, err := p.Parse()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.IsNotNil)

	c.Assert(len(cfg.Structures), qt.Equals, 2)
	c.Assert(cfg.StructByName("user"), qt.IsNotNil)
	c.Assert(cfg.StructByName("company"), qt.IsNotNil)

	c.Assert(len(cfg.Enums), qt.Equals, 1)
	status := cfg.Enums[0]
	c.Assert(status.Name, qt.Equals, "status")
	c.Assert(len(status.Items), qt.Equals, 2)
	c.Assert(status.Items[0].Value, qt.Equals, int64(0))
	c.Assert(status.Items[1].Value, qt.Equals, int64(1))
	c.Assert(status.Items[0].Labels[1].Text, qt.Equals, "Actif")

	c.Assert(len(cfg.Bitfields), qt.Equals, 1)
	flags := cfg.Bitfields[0]
	c.Assert(flags.Items[0].Pos_, qt.Equals, int64(0))
	c.Assert(flags.Items[1].Pos_, qt.Equals, int64(1))
	c.Assert(len(flags.LabelsUnset), qt.Equals, 1)
	c.Assert(len(flags.LabelsNull), qt.Equals, 1)

	c.Assert(len(cfg.RolesTree), qt.Equals, 1)
	admin := cfg.RolesTree[0]
	c.Assert(admin.Name, qt.Equals, "admin")
	c.Assert(len(admin.Children), qt.Equals, 1)
	c.Assert(admin.Children[0].Name, qt.Equals, "editor")
	c.Assert(admin.Children[0].Parent, qt.Equals, admin)
	c.Assert(cfg.RoleByName("editor"), qt.Equals, admin.Children[0])

	user := cfg.StructByName("user")
	idField := user.FieldByName("id")
	c.Assert(idField, qt.IsNotNil)
	c.Assert(idField.Flags.Has(model.FieldRowid), qt.IsTrue)

	emailField := user.FieldByName("email")
	c.Assert(emailField.Type, qt.Equals, model.FtypeEmail)
	c.Assert(emailField.Flags.Has(model.FieldUnique), qt.IsTrue)
	c.Assert(emailField.Doc.Text, qt.Equals, "login email")

	companyField := user.FieldByName("company")
	c.Assert(companyField.Type, qt.Equals, model.FtypeStruct)
	c.Assert(companyField.Ref, qt.IsNotNil)
	c.Assert(companyField.Ref.TargetStrct, qt.Equals, "company")

	statusField := user.FieldByName("status")
	c.Assert(statusField.EnumName, qt.Equals, "status")
	c.Assert(statusField.Flags.Has(model.FieldHasdef), qt.IsTrue)
	c.Assert(statusField.Default, qt.Equals, "0")

	c.Assert(len(user.Uniques), qt.Equals, 1)
	c.Assert(user.Uniques[0].Fields, qt.DeepEquals, []string{"email"})

	c.Assert(user.Insert, qt.IsNotNil)
	c.Assert(user.Insert.RoleMap.Roles, qt.DeepEquals, []string{"admin"})

	c.Assert(len(user.Searches), qt.Equals, 2)
	named := user.Searches[0]
	c.Assert(named.HasName, qt.IsTrue)
	c.Assert(named.Name, qt.Equals, "name")
	c.Assert(named.Sent, qt.DeepEquals, []model.SentClause{{Fname: "email", Op: "eq"}})

	get := user.Searches[1]
	c.Assert(get.HasName, qt.IsFalse)
	c.Assert(get.Kind, qt.Equals, model.SearchGet)
	c.Assert(get.RoleMap.Roles, qt.DeepEquals, []string{"admin", "editor"})

	c.Assert(len(user.Updates), qt.Equals, 2)
	upd := user.Updates[0]
	c.Assert(upd.Kind, qt.Equals, model.OpUpdate)
	c.Assert(upd.Name, qt.Equals, "setstatus")
	c.Assert(upd.Modify, qt.DeepEquals, []model.ModRef{{Field: "status", Op: "set"}})
	c.Assert(upd.Constrain, qt.DeepEquals, []model.ConstraintRef{{Field: "id", Op: "eq"}})

	del := user.Updates[1]
	c.Assert(del.Kind, qt.Equals, model.OpDelete)
	c.Assert(del.Name, qt.Equals, "byid")

	company := cfg.StructByName("company")
	c.Assert(company.Insert, qt.IsNotNil)
	c.Assert(company.Doc.Text, qt.Equals, "a company")
}

func TestParseRejectsUnknownFieldType(t *testing.T) {
	c := qt.New(t)
	p := NewParser(`struct s { field x:frobnicate; };`, "bad.ort")
	_, err := p.Parse()
	c.Assert(err, qt.ErrorMatches, ".*unknown field type.*")
}
