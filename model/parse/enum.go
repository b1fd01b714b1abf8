package parse

import (
	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/lang"
)

// parseEnumStmt consumes `"enum" ident [doc] "{" { enumItem } [nullLabels] "}" ";"`.
func (p *Parser) parseEnumStmt(cfg *model.Config) error {
	p.advance() // "enum"
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

	e := model.Enum{Name: name, Doc: doc, Pos: pos}
	var next int64
	for p.current.MatchIdentifierValue("item") {
		item, err := p.parseEnumItem(next)
		if err != nil {
			return err
		}
		e.Items = append(e.Items, item)
		next = item.Value + 1
	}
	if p.matchIdentifier("isnull") {
		labels, err := p.parseLabels()
		if err != nil {
			return err
		}
		e.LabelsNull = labels
		if err := p.expectSemicolon(); err != nil {
			return err
		}
	}
	if err := p.expectOperator("}"); err != nil {
		return err
	}
	if err := p.expectSemicolon(); err != nil {
		return err
	}
	cfg.Enums = append(cfg.Enums, e)
	return nil
}

func (p *Parser) parseEnumItem(next int64) (model.EnumItem, error) {
	p.advance() // "item"
	pos := p.pos()
	name, err := p.expectIdentifier()
	if err != nil {
		return model.EnumItem{}, err
	}
	explicit, err := p.parseOptionalValue()
	if err != nil {
		return model.EnumItem{}, err
	}
	doc, err := p.parseDoc()
	if err != nil {
		return model.EnumItem{}, err
	}
	var labels []model.Label
	if p.current.Type == lang.TokenString {
		labels, err = p.parseLabels()
		if err != nil {
			return model.EnumItem{}, err
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return model.EnumItem{}, err
	}

	item := model.EnumItem{Name: name, Doc: doc, Labels: labels, Pos: pos}
	if explicit != nil {
		item.Value = *explicit
	} else {
		item.Value = next
		item.HasAuto = true
	}
	return item, nil
}
