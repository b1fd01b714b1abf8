package parse

import (
	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/lang"
)

// parseSearchItem consumes `"search" [ident] { searchAttr } ";"`.
func (p *Parser) parseSearchItem() (model.Search, error) {
	p.advance() // "search"
	pos := p.pos()
	s := model.Search{Kind: model.SearchList, Pos: pos}

	if p.current.Type == lang.TokenIdentifier && !isSearchKeyword(p.current.Value) {
		name, err := p.expectIdentifier()
		if err != nil {
			return model.Search{}, err
		}
		s.Name = name
		s.HasName = true
	}

	for {
		switch {
		case p.matchIdentifier("count"):
			s.Kind = model.SearchCount
		case p.matchIdentifier("get"):
			s.Kind = model.SearchGet
		case p.matchIdentifier("list"):
			s.Kind = model.SearchList
		case p.matchIdentifier("iterate"):
			s.Kind = model.SearchIterate
		case p.matchIdentifier("sent"):
			fname, err := p.expectIdentifier()
			if err != nil {
				return model.Search{}, err
			}
			op := "eq"
			if p.current.Type == lang.TokenIdentifier && !isSearchKeyword(p.current.Value) {
				op, err = p.expectIdentifier()
				if err != nil {
					return model.Search{}, err
				}
			}
			s.Sent = append(s.Sent, model.SentClause{Fname: fname, Op: op})
		case p.matchIdentifier("order"):
			fname, err := p.expectIdentifier()
			if err != nil {
				return model.Search{}, err
			}
			op := "asc"
			if p.matchIdentifier("desc") {
				op = "desc"
			} else {
				p.matchIdentifier("asc")
			}
			s.Order = append(s.Order, model.OrderClause{Fname: fname, Op: op})
		case p.matchIdentifier("aggr"):
			fn, err := p.expectIdentifier()
			if err != nil {
				return model.Search{}, err
			}
			fname, err := p.expectIdentifier()
			if err != nil {
				return model.Search{}, err
			}
			s.Aggr = &model.SentClause{Fname: fname, Op: fn}
		case p.matchIdentifier("group"):
			fname, err := p.expectIdentifier()
			if err != nil {
				return model.Search{}, err
			}
			s.Group = fname
			s.HasGroup = true
		case p.matchIdentifier("distinct"):
			fname, err := p.expectIdentifier()
			if err != nil {
				return model.Search{}, err
			}
			d := &model.Distinct{Fname: fname}
			if p.current.Type == lang.TokenIdentifier && !isSearchKeyword(p.current.Value) {
				strct, err := p.expectIdentifier()
				if err != nil {
					return model.Search{}, err
				}
				d.Strct = strct
			}
			s.Distinct = d
		case p.matchIdentifier("limit"):
			n, err := p.expectNumber()
			if err != nil {
				return model.Search{}, err
			}
			s.Limit = n
			s.HasLimit = true
		case p.matchIdentifier("offset"):
			n, err := p.expectNumber()
			if err != nil {
				return model.Search{}, err
			}
			s.Offset = n
			s.HasOffset = true
		case p.current.MatchIdentifierValue("rolemap"):
			p.advance()
			rm, err := p.parseRoleMap(model.RoleMapSearch)
			if err != nil {
				return model.Search{}, err
			}
			s.RoleMap = rm
		case p.current.MatchIdentifierValue("comment"):
			doc, err := p.parseDoc()
			if err != nil {
				return model.Search{}, err
			}
			s.Doc = doc
		default:
			if err := p.expectSemicolon(); err != nil {
				return model.Search{}, err
			}
			return s, nil
		}
	}
}

var searchKeywords = map[string]bool{
	"count": true, "get": true, "list": true, "iterate": true,
	"sent": true, "order": true, "aggr": true, "group": true,
	"distinct": true, "limit": true, "offset": true, "rolemap": true,
	"comment": true, "asc": true, "desc": true,
}

func isSearchKeyword(v string) bool { return searchKeywords[v] }
