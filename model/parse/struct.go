package parse

import (
	"strconv"

	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/lang"
)

// parseStructStmt consumes `"struct" ident [doc] "{" { structItem } "}" ";"`.
func (p *Parser) parseStructStmt(cfg *model.Config) error {
	p.advance() // "struct"
	pos := p.pos()
	name, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	doc, err := p.parseDoc()
	if err != nil {
		return err
	}
	if err := p.expectOperator("{"); err != nil {
		return err
	}

	st := model.Structure{Name: name, Doc: doc, Pos: pos}
	for !p.current.MatchOperatorValue("}") {
		if err := p.checkTimeout(); err != nil {
			return err
		}
		switch {
		case p.current.MatchIdentifierValue("field"):
			f, err := p.parseFieldItem()
			if err != nil {
				return err
			}
			st.Fields = append(st.Fields, f)
		case p.current.MatchIdentifierValue("search"):
			s, err := p.parseSearchItem()
			if err != nil {
				return err
			}
			st.Searches = append(st.Searches, s)
		case p.current.MatchIdentifierValue("update"):
			u, err := p.parseUpdateItem(model.OpUpdate)
			if err != nil {
				return err
			}
			st.Updates = append(st.Updates, u)
		case p.current.MatchIdentifierValue("delete"):
			u, err := p.parseUpdateItem(model.OpDelete)
			if err != nil {
				return err
			}
			st.Updates = append(st.Updates, u)
		case p.current.MatchIdentifierValue("insert"):
			ins, err := p.parseInsertItem()
			if err != nil {
				return err
			}
			st.Insert = ins
		case p.current.MatchIdentifierValue("unique"):
			u, err := p.parseUniqueItem()
			if err != nil {
				return err
			}
			st.Uniques = append(st.Uniques, u)
		case p.current.MatchIdentifierValue("noexport"):
			p.advance()
			rm, err := p.parseRoleMap(model.RoleMapNoexport)
			if err != nil {
				return err
			}
			st.NoexportRoleMap = rm
			if err := p.expectSemicolon(); err != nil {
				return err
			}
		default:
			return p.errorf("unexpected struct member %q", p.current.Value)
		}
	}
	p.advance() // "}"
	if err := p.expectSemicolon(); err != nil {
		return err
	}
	cfg.Structures = append(cfg.Structures, st)
	return nil
}

// parseFieldItem consumes `"field" ident ":" typeSpec { fieldAttr } [doc] ";"`.
func (p *Parser) parseFieldItem() (model.Field, error) {
	p.advance() // "field"
	pos := p.pos()
	name, err := p.expectIdentifier()
	if err != nil {
		return model.Field{}, err
	}
	if err := p.expectOperator(":"); err != nil {
		return model.Field{}, err
	}
	typeName, err := p.expectIdentifier()
	if err != nil {
		return model.Field{}, err
	}

	f := model.Field{Name: name, Pos: pos}
	if ftype, ok := fieldTypeByName(typeName); ok {
		f.Type = ftype
	} else {
		return model.Field{}, p.errorf("unknown field type %q", typeName)
	}

	if p.matchOperator(":") {
		target, err := p.expectIdentifier()
		if err != nil {
			return model.Field{}, err
		}
		switch f.Type {
		case model.FtypeEnum:
			f.EnumName = target
		case model.FtypeBitfield:
			f.BitfName = target
		case model.FtypeStruct:
			f.Ref = &model.Reference{SourceField: name, TargetStrct: target, TargetField: "id"}
		default:
			return model.Field{}, p.errorf("type %q does not take a target name", typeName)
		}
	}

	for {
		switch {
		case p.matchIdentifier("rowid"):
			f.Flags |= model.FieldRowid
		case p.matchIdentifier("unique"):
			f.Flags |= model.FieldUnique
		case p.matchIdentifier("null"):
			f.Flags |= model.FieldNull
		case p.matchIdentifier("noexport"):
			f.Flags |= model.FieldNoexport
		case p.matchIdentifier("default"):
			lit, err := p.parseLiteral()
			if err != nil {
				return model.Field{}, err
			}
			f.Default = lit
			f.Flags |= model.FieldHasdef
		case p.matchIdentifier("valid"):
			v, err := p.parseValid()
			if err != nil {
				return model.Field{}, err
			}
			f.Valids = append(f.Valids, v)
		case p.matchIdentifier("actdel"):
			a, err := p.expectIdentifier()
			if err != nil {
				return model.Field{}, err
			}
			act, err := parseUpdateAction(a)
			if err != nil {
				return model.Field{}, p.errorf("%v", err)
			}
			f.ActDelete = act
		case p.matchIdentifier("actup"):
			a, err := p.expectIdentifier()
			if err != nil {
				return model.Field{}, err
			}
			act, err := parseUpdateAction(a)
			if err != nil {
				return model.Field{}, p.errorf("%v", err)
			}
			f.ActUpdate = act
		case p.current.MatchIdentifierValue("rolemap"):
			p.advance()
			rm, err := p.parseRoleMap(model.RoleMapNoexport)
			if err != nil {
				return model.Field{}, err
			}
			f.RoleMap = rm
		default:
			doc, err := p.parseDoc()
			if err != nil {
				return model.Field{}, err
			}
			f.Doc = doc
			if err := p.expectSemicolon(); err != nil {
				return model.Field{}, err
			}
			return f, nil
		}
	}
}

func fieldTypeByName(s string) (model.FieldType, bool) {
	switch s {
	case "bit":
		return model.FtypeBit, true
	case "date":
		return model.FtypeDate, true
	case "epoch":
		return model.FtypeEpoch, true
	case "int":
		return model.FtypeInt, true
	case "real":
		return model.FtypeReal, true
	case "blob":
		return model.FtypeBlob, true
	case "text":
		return model.FtypeText, true
	case "password":
		return model.FtypePassword, true
	case "email":
		return model.FtypeEmail, true
	case "struct":
		return model.FtypeStruct, true
	case "enum":
		return model.FtypeEnum, true
	case "bitfield":
		return model.FtypeBitfield, true
	default:
		return 0, false
	}
}

func (p *Parser) parseLiteral() (string, error) {
	switch p.current.Type {
	case lang.TokenString:
		return p.expectString()
	default:
		n, err := p.expectNumber()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	}
}

func (p *Parser) parseValid() (model.Valid, error) {
	op, err := p.expectIdentifier()
	if err != nil {
		return model.Valid{}, err
	}
	n, err := p.expectNumber()
	if err != nil {
		return model.Valid{}, err
	}
	return model.Valid{Kind: model.ValidInt, Op: op, Value: float64(n)}, nil
}

// parseUniqueItem consumes `"unique" identList ";"`.
func (p *Parser) parseUniqueItem() (model.UniqueClause, error) {
	p.advance() // "unique"
	pos := p.pos()
	fields, err := p.parseIdentList()
	if err != nil {
		return model.UniqueClause{}, err
	}
	if err := p.expectSemicolon(); err != nil {
		return model.UniqueClause{}, err
	}
	return model.UniqueClause{Fields: fields, Pos: pos}, nil
}

// parseInsertItem consumes `"insert" ["rolemap" roleList] ";"`.
func (p *Parser) parseInsertItem() (*model.Insert, error) {
	p.advance() // "insert"
	pos := p.pos()
	ins := &model.Insert{Pos: pos}
	if p.matchIdentifier("rolemap") {
		rm, err := p.parseRoleMap(model.RoleMapInsert)
		if err != nil {
			return nil, err
		}
		ins.RoleMap = rm
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ins, nil
}
