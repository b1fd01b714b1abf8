package parse

import (
	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/lang"
)

// parseBitfieldStmt consumes
// `"bitfield" ident [doc] "{" { bitItem } [unsetLabels] [nullLabels] "}" ";"`.
func (p *Parser) parseBitfieldStmt(cfg *model.Config) error {
	p.advance() // "bitfield"
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

	b := model.Bitfield{Name: name, Doc: doc, Pos: pos}
	for p.current.MatchIdentifierValue("item") {
		item, err := p.parseBitItem()
		if err != nil {
			return err
		}
		b.Items = append(b.Items, item)
	}
	if p.matchIdentifier("isunset") {
		labels, err := p.parseLabels()
		if err != nil {
			return err
		}
		b.LabelsUnset = labels
		if err := p.expectSemicolon(); err != nil {
			return err
		}
	}
	if p.matchIdentifier("isnull") {
		labels, err := p.parseLabels()
		if err != nil {
			return err
		}
		b.LabelsNull = labels
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
	cfg.Bitfields = append(cfg.Bitfields, b)
	return nil
}

func (p *Parser) parseBitItem() (model.BitIndex, error) {
	p.advance() // "item"
	pos := p.pos()
	name, err := p.expectIdentifier()
	if err != nil {
		return model.BitIndex{}, err
	}
	if err := p.expectOperator(":"); err != nil {
		return model.BitIndex{}, err
	}
	bitpos, err := p.expectNumber()
	if err != nil {
		return model.BitIndex{}, err
	}
	doc, err := p.parseDoc()
	if err != nil {
		return model.BitIndex{}, err
	}
	var labels []model.Label
	if p.current.Type == lang.TokenString {
		labels, err = p.parseLabels()
		if err != nil {
			return model.BitIndex{}, err
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return model.BitIndex{}, err
	}
	return model.BitIndex{Name: name, Pos_: bitpos, Doc: doc, Labels: labels, Pos: pos}, nil
}
