package parse

import (
	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/lang"
)

// parseUpdateItem consumes `("update"|"delete") [ident] { updateAttr } ";"`,
// kind distinguishing the two per model.Update's own Kind field.
func (p *Parser) parseUpdateItem(kind model.OpKind) (model.Update, error) {
	p.advance() // "update" or "delete"
	pos := p.pos()
	u := model.Update{Kind: kind, Pos: pos}

	if p.current.Type == lang.TokenIdentifier && !isUpdateKeyword(p.current.Value) {
		name, err := p.expectIdentifier()
		if err != nil {
			return model.Update{}, err
		}
		u.Name = name
		u.HasName = true
	}

	roleKind := model.RoleMapUpdate
	if kind == model.OpDelete {
		roleKind = model.RoleMapDelete
	}

	for {
		switch {
		case kind == model.OpUpdate && p.matchIdentifier("modify"):
			field, err := p.expectIdentifier()
			if err != nil {
				return model.Update{}, err
			}
			op, err := p.expectIdentifier()
			if err != nil {
				return model.Update{}, err
			}
			u.Modify = append(u.Modify, model.ModRef{Field: field, Op: op})
		case p.matchIdentifier("constrain"):
			field, err := p.expectIdentifier()
			if err != nil {
				return model.Update{}, err
			}
			op, err := p.expectIdentifier()
			if err != nil {
				return model.Update{}, err
			}
			mod := ""
			if p.current.Type == lang.TokenIdentifier && !isUpdateKeyword(p.current.Value) {
				mod, err = p.expectIdentifier()
				if err != nil {
					return model.Update{}, err
				}
			}
			u.Constrain = append(u.Constrain, model.ConstraintRef{Field: field, Op: op, Mod: mod})
		case p.matchIdentifier("all"):
			u.All = true
		case p.current.MatchIdentifierValue("rolemap"):
			p.advance()
			rm, err := p.parseRoleMap(roleKind)
			if err != nil {
				return model.Update{}, err
			}
			u.RoleMap = rm
		case p.current.MatchIdentifierValue("comment"):
			doc, err := p.parseDoc()
			if err != nil {
				return model.Update{}, err
			}
			u.Doc = doc
		default:
			if err := p.expectSemicolon(); err != nil {
				return model.Update{}, err
			}
			return u, nil
		}
	}
}

var updateKeywords = map[string]bool{
	"modify": true, "constrain": true, "all": true, "rolemap": true, "comment": true,
}

func isUpdateKeyword(v string) bool { return updateKeywords[v] }
