package diff

import (
	"fmt"
	"io"

	"github.com/ortschema/ort/model"
)

// section groups the Kinds belonging to one "@@ heading @@" block, in
// fixed report order: enums, bitfields, structures, roles.
type section struct {
	heading string
	coarse  map[Kind]bool
	fine    map[Kind]bool
}

var sections = []section{
	{
		heading: "enums",
		coarse:  kset(AddEnm, DelEnm, SameEnm, ModEnm, AddEitem, DelEitem, SameEitem, ModEitem),
		fine:    kset(ModEnmComment, ModEnmLabels, ModEitemValue, ModEitemLabels, ModEitemComment),
	},
	{
		heading: "bitfields",
		coarse:  kset(AddBitf, DelBitf, SameBitf, ModBitf, AddBitidx, DelBitidx, SameBitidx, ModBitidx),
		fine:    kset(ModBitfComment, ModBitfLabels, ModBitidxValue, ModBitidxLabels, ModBitidxComment),
	},
	{
		heading: "structures",
		coarse: kset(AddStrct, DelStrct, SameStrct, ModStrct,
			AddField, DelField, SameField, ModField,
			AddSearch, DelSearch, SameSearch, ModSearch,
			AddUpdate, DelUpdate, SameUpdate, ModUpdate,
			AddUnique, DelUnique, AddInsert, DelInsert, SameInsert, ModInsert),
		fine: kset(ModStrctComment,
			ModFieldRolemap, ModFieldType, ModFieldActions, ModFieldFlags, ModFieldBitf,
			ModFieldEnm, ModFieldDef, ModFieldReference, ModFieldValids, ModFieldComment,
			ModSearchParams, ModSearchOrder, ModSearchAggr, ModSearchGroup, ModSearchDistinct,
			ModSearchComment, ModSearchLimit, ModSearchOffset, ModSearchRolemap,
			ModUpdateMrq, ModUpdateCrq, ModUpdateComment, ModUpdateRolemap, ModUpdateFlags,
			ModInsertRolemap),
	},
	{
		heading: "roles",
		coarse:  kset(AddRole, DelRole, SameRole, ModRole),
		fine:    kset(ModRoleParent, ModRoleComment, ModRoleChildren),
	},
}

func kset(ks ...Kind) map[Kind]bool {
	m := make(map[Kind]bool, len(ks))
	for _, k := range ks {
		m[k] = true
	}
	return m
}

// WriteReport renders the diff queue as a text report, one "@@ heading @@"
// block per entity family, each coarse entry prefixed "+"/"-"/" "/"*" for
// ADD/DEL/SAME/MOD. Fine MOD_<entity>_<attr> entries are written as
// "  ! <KIND> <name>" in queue order, which puts them before the coarse
// MOD line of the entity they belong to.
func WriteReport(w io.Writer, q *Queue) error {
	for _, sec := range sections {
		var lines []Entry
		for _, e := range q.Entries {
			if sec.coarse[e.Kind] || sec.fine[e.Kind] {
				lines = append(lines, e)
			}
		}
		if len(lines) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "@@ %s @@\n", sec.heading); err != nil {
			return err
		}
		for _, e := range lines {
			if err := writeEntry(w, sec.fine[e.Kind], e); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeEntry(w io.Writer, fine bool, e Entry) error {
	prefix, name := entryPrefix(e)
	if fine {
		_, err := fmt.Fprintf(w, "  ! %s %s\n", e.Kind, name)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s %s\n", prefix, e.Kind, name)
	return err
}

func entryPrefix(e Entry) (string, string) {
	switch {
	case e.Enum != nil:
		return addDel(e.Kind), e.Enum.Name
	case e.EnumItem != nil:
		return addDel(e.Kind), e.EnumItem.Name
	case e.Bitfield != nil:
		return addDel(e.Kind), e.Bitfield.Name
	case e.BitIndex != nil:
		return addDel(e.Kind), e.BitIndex.Name
	case e.Structure != nil:
		return addDel(e.Kind), e.Structure.Name
	case e.Field != nil:
		return addDel(e.Kind), e.StructName + "." + e.Field.Name
	case e.Search != nil:
		return addDel(e.Kind), e.StructName + "." + searchName(e.Search)
	case e.Update != nil:
		return addDel(e.Kind), e.StructName + "." + updateName(e.Update)
	case e.Insert != nil:
		return addDel(e.Kind), e.StructName
	case e.Unique != nil:
		return addDel(e.Kind), e.StructName
	case e.Role != nil:
		return addDel(e.Kind), e.Role.Name
	case e.FromEnum != nil:
		return sameMod(e.Kind), e.FromEnum.Name
	case e.FromEnumItem != nil:
		return sameMod(e.Kind), e.FromEnumItem.Name
	case e.FromBitfield != nil:
		return sameMod(e.Kind), e.FromBitfield.Name
	case e.FromBitIndex != nil:
		return sameMod(e.Kind), e.FromBitIndex.Name
	case e.FromStructure != nil:
		return sameMod(e.Kind), e.FromStructure.Name
	case e.FromField != nil:
		return sameMod(e.Kind), e.StructName + "." + e.FromField.Name
	case e.FromSearch != nil:
		return sameMod(e.Kind), e.StructName + "." + searchName(e.FromSearch)
	case e.FromUpdate != nil:
		return sameMod(e.Kind), e.StructName + "." + updateName(e.FromUpdate)
	case e.FromInsert != nil:
		return sameMod(e.Kind), e.StructName
	case e.FromRole != nil:
		return sameMod(e.Kind), e.FromRole.Name
	default:
		return "?", ""
	}
}

func searchName(s *model.Search) string {
	if s.HasName {
		return s.Name
	}
	return "-"
}

func updateName(u *model.Update) string {
	if u.HasName {
		return u.Name
	}
	return "-"
}

func addDel(k Kind) string {
	switch k {
	case AddEnm, AddEitem, AddBitf, AddBitidx, AddStrct, AddField, AddSearch, AddUpdate, AddUnique, AddInsert, AddRole:
		return "+"
	case DelEnm, DelEitem, DelBitf, DelBitidx, DelStrct, DelField, DelSearch, DelUpdate, DelUnique, DelInsert, DelRole:
		return "-"
	default:
		return " "
	}
}

func sameMod(k Kind) string {
	switch k {
	case SameEnm, SameEitem, SameBitf, SameBitidx, SameStrct, SameField, SameSearch, SameUpdate, SameInsert, SameRole:
		return " "
	default:
		return "*"
	}
}
