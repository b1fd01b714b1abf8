package parse

import "github.com/ortschema/ort/model"

// parseLangStmt consumes `"lang" ident ";"`, pre-registering a language so
// it gets a stable index even before any label clause mentions it.
func (p *Parser) parseLangStmt(cfg *model.Config) error {
	p.advance() // "lang"
	name, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	p.registerLanguage(name)
	return p.expectSemicolon()
}

// parseRolesStmt consumes `"roles" "{" { roleItem } "}" ";"`, building both
// the flat and top-level role lists the way model.Config expects.
func (p *Parser) parseRolesStmt(cfg *model.Config) error {
	p.advance() // "roles"
	if err := p.expectOperator("{"); err != nil {
		return err
	}
	roots, err := p.parseRoleItems(nil)
	if err != nil {
		return err
	}
	if err := p.expectOperator("}"); err != nil {
		return err
	}
	if err := p.expectSemicolon(); err != nil {
		return err
	}
	cfg.RolesTree = append(cfg.RolesTree, roots...)
	return nil
}

// parseRoleItems parses zero or more `roleItem`s under parent, flattening
// every role (at any depth) onto cfg.RolesFlat via the Parser's accumulator.
func (p *Parser) parseRoleItems(parent *model.Role) ([]*model.Role, error) {
	var out []*model.Role
	for p.current.MatchIdentifierValue("role") {
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		doc, err := p.parseDoc()
		if err != nil {
			return nil, err
		}
		r := &model.Role{Name: name, Parent: parent, Doc: doc, Pos: p.pos()}
		p.rolesFlat = append(p.rolesFlat, r)
		if p.matchOperator("{") {
			children, err := p.parseRoleItems(r)
			if err != nil {
				return nil, err
			}
			r.Children = children
			if err := p.expectOperator("}"); err != nil {
				return nil, err
			}
		}
		if err := p.expectSemicolon(); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
