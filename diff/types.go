// Package diff is a two-model comparator producing a typed, ordered queue
// of additions, deletions, equalities, and fine-grained modifications
// across every entity kind a schema defines.
package diff

import "github.com/ortschema/ort/model"

// Kind tags every diff queue entry, spanning both coarse
// ({ADD,DEL,SAME,MOD}_{entity}) and fine (MOD_<entity>_<attr>) entries.
type Kind int

const (
	AddEnm Kind = iota
	DelEnm
	SameEnm
	ModEnm
	ModEnmComment
	ModEnmLabels

	AddEitem
	DelEitem
	SameEitem
	ModEitem
	ModEitemValue
	ModEitemLabels
	ModEitemComment

	AddBitf
	DelBitf
	SameBitf
	ModBitf
	ModBitfComment
	ModBitfLabels

	AddBitidx
	DelBitidx
	SameBitidx
	ModBitidx
	ModBitidxValue
	ModBitidxLabels
	ModBitidxComment

	AddStrct
	DelStrct
	SameStrct
	ModStrct
	ModStrctComment

	AddField
	DelField
	SameField
	ModField
	ModFieldRolemap
	ModFieldType
	ModFieldActions
	ModFieldFlags
	ModFieldBitf
	ModFieldEnm
	ModFieldDef
	ModFieldReference
	ModFieldValids
	ModFieldComment

	AddInsert
	DelInsert
	SameInsert
	ModInsert
	ModInsertRolemap

	AddSearch
	DelSearch
	SameSearch
	ModSearch
	ModSearchParams
	ModSearchOrder
	ModSearchAggr
	ModSearchGroup
	ModSearchDistinct
	ModSearchComment
	ModSearchLimit
	ModSearchOffset
	ModSearchRolemap

	AddUpdate
	DelUpdate
	SameUpdate
	ModUpdate
	ModUpdateMrq
	ModUpdateCrq
	ModUpdateComment
	ModUpdateRolemap
	ModUpdateFlags

	AddUnique
	DelUnique

	AddRole
	DelRole
	SameRole
	ModRole
	ModRoleParent
	ModRoleComment
	ModRoleChildren
)

// kindNames maps every Kind to its upper-case name (ADD_ENM,
// MOD_FIELD_TYPE, ...), returned by String() and printed by the report
// writer for both coarse and fine entries.
var kindNames = map[Kind]string{
	AddEnm: "ADD_ENM", DelEnm: "DEL_ENM", SameEnm: "SAME_ENM", ModEnm: "MOD_ENM",
	ModEnmComment: "MOD_ENM_COMMENT", ModEnmLabels: "MOD_ENM_LABELS",

	AddEitem: "ADD_EITEM", DelEitem: "DEL_EITEM", SameEitem: "SAME_EITEM", ModEitem: "MOD_EITEM",
	ModEitemValue: "MOD_EITEM_VALUE", ModEitemLabels: "MOD_EITEM_LABELS", ModEitemComment: "MOD_EITEM_COMMENT",

	AddBitf: "ADD_BITF", DelBitf: "DEL_BITF", SameBitf: "SAME_BITF", ModBitf: "MOD_BITF",
	ModBitfComment: "MOD_BITF_COMMENT", ModBitfLabels: "MOD_BITF_LABELS",

	AddBitidx: "ADD_BITIDX", DelBitidx: "DEL_BITIDX", SameBitidx: "SAME_BITIDX", ModBitidx: "MOD_BITIDX",
	ModBitidxValue: "MOD_BITIDX_VALUE", ModBitidxLabels: "MOD_BITIDX_LABELS", ModBitidxComment: "MOD_BITIDX_COMMENT",

	AddStrct: "ADD_STRCT", DelStrct: "DEL_STRCT", SameStrct: "SAME_STRCT", ModStrct: "MOD_STRCT",
	ModStrctComment: "MOD_STRCT_COMMENT",

	AddField: "ADD_FIELD", DelField: "DEL_FIELD", SameField: "SAME_FIELD", ModField: "MOD_FIELD",
	ModFieldRolemap: "MOD_FIELD_ROLEMAP", ModFieldType: "MOD_FIELD_TYPE", ModFieldActions: "MOD_FIELD_ACTIONS",
	ModFieldFlags: "MOD_FIELD_FLAGS", ModFieldBitf: "MOD_FIELD_BITF", ModFieldEnm: "MOD_FIELD_ENM",
	ModFieldDef: "MOD_FIELD_DEF", ModFieldReference: "MOD_FIELD_REFERENCE", ModFieldValids: "MOD_FIELD_VALIDS",
	ModFieldComment: "MOD_FIELD_COMMENT",

	AddInsert: "ADD_INSERT", DelInsert: "DEL_INSERT", SameInsert: "SAME_INSERT", ModInsert: "MOD_INSERT",
	ModInsertRolemap: "MOD_INSERT_ROLEMAP",

	AddSearch: "ADD_SEARCH", DelSearch: "DEL_SEARCH", SameSearch: "SAME_SEARCH", ModSearch: "MOD_SEARCH",
	ModSearchParams: "MOD_SEARCH_PARAMS", ModSearchOrder: "MOD_SEARCH_ORDER", ModSearchAggr: "MOD_SEARCH_AGGR",
	ModSearchGroup: "MOD_SEARCH_GROUP", ModSearchDistinct: "MOD_SEARCH_DISTINCT", ModSearchComment: "MOD_SEARCH_COMMENT",
	ModSearchLimit: "MOD_SEARCH_LIMIT", ModSearchOffset: "MOD_SEARCH_OFFSET", ModSearchRolemap: "MOD_SEARCH_ROLEMAP",

	AddUpdate: "ADD_UPDATE", DelUpdate: "DEL_UPDATE", SameUpdate: "SAME_UPDATE", ModUpdate: "MOD_UPDATE",
	ModUpdateMrq: "MOD_UPDATE_MRQ", ModUpdateCrq: "MOD_UPDATE_CRQ", ModUpdateComment: "MOD_UPDATE_COMMENT",
	ModUpdateRolemap: "MOD_UPDATE_ROLEMAP", ModUpdateFlags: "MOD_UPDATE_FLAGS",

	AddUnique: "ADD_UNIQUE", DelUnique: "DEL_UNIQUE",

	AddRole: "ADD_ROLE", DelRole: "DEL_ROLE", SameRole: "SAME_ROLE", ModRole: "MOD_ROLE",
	ModRoleParent: "MOD_ROLE_PARENT", ModRoleComment: "MOD_ROLE_COMMENT", ModRoleChildren: "MOD_ROLE_CHILDREN",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Entry is one diff queue item. It follows the flattened tagged-struct
// idiom already used by audit.Entry in this module: exactly the fields
// relevant to Kind are populated, everything else is zero.
type Entry struct {
	Kind Kind

	// Single-sided payloads, for ADD/DEL entries and single-sided fine
	// entries.
	Enum      *model.Enum
	EnumItem  *model.EnumItem
	Bitfield  *model.Bitfield
	BitIndex  *model.BitIndex
	Structure *model.Structure
	Field     *model.Field
	Search    *model.Search
	Update    *model.Update
	Insert    *model.Insert
	Unique    *model.UniqueClause
	Role      *model.Role

	// Paired payloads, for SAME/MOD entries (both coarse and fine).
	FromEnum, IntoEnum           *model.Enum
	FromEnumItem, IntoEnumItem   *model.EnumItem
	FromBitfield, IntoBitfield   *model.Bitfield
	FromBitIndex, IntoBitIndex   *model.BitIndex
	FromStructure, IntoStructure *model.Structure
	FromField, IntoField         *model.Field
	FromSearch, IntoSearch       *model.Search
	FromUpdate, IntoUpdate       *model.Update
	FromInsert, IntoInsert       *model.Insert
	FromRole, IntoRole           *model.Role

	// StructName carries the owning structure's name for field/search/
	// update/unique entries, where the payload pointers alone do not name
	// their parent.
	StructName string
}

// Queue is the ordered result of Compare.
type Queue struct {
	Entries []Entry
}

func (q *Queue) add(e Entry) { q.Entries = append(q.Entries, e) }
