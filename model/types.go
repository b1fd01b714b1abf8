// Package model defines the in-memory representation of a parsed schema.
// A Config is built once by the parser package (model/parse) and is
// treated as immutable for the life of any audit, diff, or SQL-migration
// pass — nothing in this module mutates a Config after parsing finishes.
package model

// FieldType is the semantic type of a Field.
type FieldType int

const (
	FtypeBit FieldType = iota
	FtypeDate
	FtypeEpoch
	FtypeInt
	FtypeReal
	FtypeBlob
	FtypeText
	FtypePassword
	FtypeEmail
	FtypeStruct
	FtypeEnum
	FtypeBitfield
)

func (t FieldType) String() string {
	switch t {
	case FtypeBit:
		return "bit"
	case FtypeDate:
		return "date"
	case FtypeEpoch:
		return "epoch"
	case FtypeInt:
		return "int"
	case FtypeReal:
		return "real"
	case FtypeBlob:
		return "blob"
	case FtypeText:
		return "text"
	case FtypePassword:
		return "password"
	case FtypeEmail:
		return "email"
	case FtypeStruct:
		return "struct"
	case FtypeEnum:
		return "enum"
	case FtypeBitfield:
		return "bitfield"
	default:
		return "unknown"
	}
}

// FieldFlags are the bit flags carried on a Field (invariants:
// rowid implies not-null and implicit primary; null and rowid are mutually
// exclusive).
type FieldFlags uint8

const (
	FieldRowid FieldFlags = 1 << iota
	FieldUnique
	FieldNull
	FieldNoexport
	FieldHasdef
)

func (f FieldFlags) Has(flag FieldFlags) bool { return f&flag != 0 }

// UpdateAction is the ON UPDATE/ON DELETE behavior of a reference field.
type UpdateAction int

const (
	ActionNone UpdateAction = iota
	ActionRestrict
	ActionNullify
	ActionCascade
	ActionDefault
)

// SearchKind distinguishes the four query shapes a Search can express.
type SearchKind int

const (
	SearchCount SearchKind = iota
	SearchGet
	SearchList
	SearchIterate
)

// RoleMapKind tags which operation kind a RoleMap guards.
type RoleMapKind int

const (
	RoleMapAll RoleMapKind = iota
	RoleMapCount
	RoleMapDelete
	RoleMapInsert
	RoleMapIterate
	RoleMapList
	RoleMapSearch
	RoleMapUpdate
	RoleMapNoexport
)

// Position is a parse-time source location, used to anchor diagnostics and
// audit text lines.
type Position struct {
	File   string
	Line   int
	Column int
}

// Doc is an optional human-readable comment attached to most entities.
type Doc struct {
	Text    string
	HasText bool
}

// Label is one translated string in a label set, positioned by language
// index into the owning Config's Languages table.
type Label struct {
	Lang int
	Text string
}

// RoleMap is a tagged set of roles authorized for a specific operation, or
// marking a field/structure non-exportable.
type RoleMap struct {
	Kind  RoleMapKind
	Roles []string // role names; order does not matter for Permits, see rolemap package
	Pos   Position
}

// Empty reports whether the role map carries no roles, in which case
// rolemap.Permits always returns false for it.
func (r *RoleMap) Empty() bool { return r == nil || len(r.Roles) == 0 }

// Role is a named principal in the access-control forest.
type Role struct {
	Name     string
	Parent   *Role
	Children []*Role
	Doc      Doc
	Pos      Position
}

// Reference describes a FTYPE_STRUCT field's link to the rowid of another
// structure.
type Reference struct {
	SourceField string
	TargetField string
	TargetStrct string
}

// ValidKind is the kind of value a field validation clause constrains.
type ValidKind int

const (
	ValidLength ValidKind = iota
	ValidInt
	ValidDecimal
)

// Valid is one validation clause on a field.
type Valid struct {
	Kind  ValidKind
	Op    string // comparison operator, e.g. "ge", "le", "eq"
	Value float64
}

// Field is a column definition belonging to exactly one Structure.
type Field struct {
	Name      string
	Type      FieldType
	Flags     FieldFlags
	Default   string
	Ref       *Reference // non-nil only for FtypeStruct fields
	EnumName  string     // non-empty only for FtypeEnum fields
	BitfName  string     // non-empty only for FtypeBitfield fields
	ActDelete UpdateAction
	ActUpdate UpdateAction
	Valids    []Valid
	RoleMap   *RoleMap // per-field noexport role map
	Doc       Doc
	Pos       Position
}

// UniqueClause is an unordered (under same-length) multiset of field names
// that must be jointly unique within a structure.
type UniqueClause struct {
	Fields []string
	Pos    Position
}

// SentClause is one predicate ("sent" clause) in a query's criteria,
// referring to a dotted field chain and a comparison operator.
type SentClause struct {
	Fname string // dotted chain, e.g. "company.name"
	Op    string
}

// OrderClause orders a query's result rows by a dotted field chain.
type OrderClause struct {
	Fname string
	Op    string // "asc" or "desc"
}

// Distinct names a dotted subtree that changes a query's result structure
// (list-of-distinct-subtrees rather than list-of-rows).
type Distinct struct {
	Fname string
	Strct string // resolved target structure name
}

// Search is one query (count/get/list/iterate) belonging to a Structure.
type Search struct {
	Name      string
	HasName   bool
	Kind      SearchKind
	Sent      []SentClause
	Order     []OrderClause
	Aggr      *SentClause // aggregate function target, if any
	Group     string      // group-by field name, empty if none
	HasGroup  bool
	Distinct  *Distinct
	Limit     int64
	HasLimit  bool
	Offset    int64
	HasOffset bool
	RoleMap   *RoleMap
	Doc       Doc
	Pos       Position
}

// ModRef is one field modified by an Update, in order.
type ModRef struct {
	Field string
	Op    string // MODTYPE_* as a string ("set", "inc", "dec", "concat", "strset")
}

// ConstraintRef is one field constraint ("constrain-ref") used by an Update
// or Delete's WHERE-equivalent clause, in order.
type ConstraintRef struct {
	Field string
	Op    string
	Mod   string // unary/binary marker carried for equality comparisons
}

// OpKind distinguishes an Update entity's update-vs-delete role, since
// an audit pass reports both under the same update-family entry.
type OpKind int

const (
	OpUpdate OpKind = iota
	OpDelete
)

// Update represents both update and delete operations; Kind
// distinguishes which one this is.
type Update struct {
	Kind    OpKind
	Name    string
	HasName bool
	Modify  []ModRef // only meaningful when Kind == OpUpdate
	Constrain []ConstraintRef
	All     bool // UPDATE_ALL: applies to every row matching "set"
	RoleMap *RoleMap
	Doc     Doc
	Pos     Position
}

// Insert is the (at most one) insert operation on a Structure.
type Insert struct {
	RoleMap *RoleMap
	Pos     Position
}

// Structure is a table: its fields plus the operations defined over it.
type Structure struct {
	Name      string
	Fields    []Field
	Searches  []Search
	Updates   []Update // both update and delete entries, Kind distinguishes
	Uniques   []UniqueClause
	Insert    *Insert
	NoexportRoleMap *RoleMap // structure-level "noexport all" role map
	Doc       Doc
	Pos       Position
}

// RowidField returns the structure's rowid field, if any.
func (s *Structure) RowidField() *Field {
	for i := range s.Fields {
		if s.Fields[i].Flags.Has(FieldRowid) {
			return &s.Fields[i]
		}
	}
	return nil
}

// FieldByName looks up a field by case-insensitive name.
func (s *Structure) FieldByName(name string) *Field {
	for i := range s.Fields {
		if equalFold(s.Fields[i].Name, name) {
			return &s.Fields[i]
		}
	}
	return nil
}

// EnumItem is one named, valued member of an Enum.
type EnumItem struct {
	Name    string
	Value   int64
	HasAuto bool // true if Value was auto-assigned rather than explicit
	Doc     Doc
	Labels  []Label
	Pos     Position
}

// Enum is a named enumeration type.
type Enum struct {
	Name       string
	Items      []EnumItem
	Doc        Doc
	LabelsNull []Label // labels shown for a null value of this enum
	Pos        Position
}

// BitIndex is one named bit position of a Bitfield.
type BitIndex struct {
	Name   string
	Pos_   int64 // bit position (0-based)
	Doc    Doc
	Labels []Label
	Pos    Position
}

// Bitfield is a named set of bit positions.
type Bitfield struct {
	Name        string
	Items       []BitIndex
	Doc         Doc
	LabelsUnset []Label // labels shown when no bits are set
	LabelsNull  []Label // labels shown for a null value of this bitfield
	Pos         Position
}

// Config is the whole parsed model: every structure, enum, bitfield, and
// role known to a schema, plus the language table used to index Label.Lang.
type Config struct {
	Structures []Structure
	Enums      []Enum
	Bitfields  []Bitfield
	RolesFlat  []*Role // every role, declaration order
	RolesTree  []*Role // top-level (parentless) roles only
	Languages  []string
}

// StructByName looks up a structure by case-insensitive name.
func (c *Config) StructByName(name string) *Structure {
	for i := range c.Structures {
		if equalFold(c.Structures[i].Name, name) {
			return &c.Structures[i]
		}
	}
	return nil
}

// RoleByName looks up a role by case-insensitive name.
func (c *Config) RoleByName(name string) *Role {
	for _, r := range c.RolesFlat {
		if equalFold(r.Name, name) {
			return r
		}
	}
	return nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
