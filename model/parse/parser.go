// Package parse is a recursive-descent parser turning schema-language
// source into a *model.Config. A Parser carries current/previous tokens
// and a wall-clock timeout guard, dispatches on lower-cased keywords at
// the top level, and has one parseXxx method per clause — this language's
// own keyword set (lang, roles, enum, bitfield, struct, field, search,
// update, delete, insert, unique).
//
// Grammar (EBNF, informal):
//
//	config       = { statement } ;
//	statement    = langStmt | rolesStmt | enumStmt | bitfieldStmt | structStmt ;
//
//	langStmt     = "lang" ident ";" ;
//
//	rolesStmt    = "roles" "{" { roleItem } "}" ";" ;
//	roleItem     = "role" ident [ doc ] [ "{" { roleItem } "}" ] ";" ;
//
//	enumStmt     = "enum" ident [ doc ] "{" { enumItem } [ nullLabels ] "}" ";" ;
//	enumItem     = "item" ident [ "=" number ] [ doc ] [ labels ] ";" ;
//
//	bitfieldStmt = "bitfield" ident [ doc ] "{" { bitItem } [ unsetLabels ] [ nullLabels ] "}" ";" ;
//	bitItem      = "item" ident ":" number [ doc ] [ labels ] ";" ;
//
//	nullLabels   = "isnull" labels ";" ;
//	unsetLabels  = "isunset" labels ";" ;
//	labels       = string { "(" ident ":" string ")" } ;
//
//	structStmt   = "struct" ident [ doc ] "{" { structItem } "}" ";" ;
//	structItem   = fieldItem | searchItem | updateItem | deleteItem
//	             | insertItem | uniqueItem | noexportItem ;
//
//	fieldItem    = "field" ident ":" typeSpec { fieldAttr } [ doc ] ";" ;
//	typeSpec     = ident [ ":" ident ] ;
//	fieldAttr    = "rowid" | "unique" | "null" | "noexport"
//	             | "default" literal
//	             | "valid" ident number
//	             | "actdel" ident | "actup" ident
//	             | "rolemap" roleList ;
//
//	uniqueItem   = "unique" identList ";" ;
//	insertItem   = "insert" [ "rolemap" roleList ] ";" ;
//	noexportItem = "noexport" roleList ";" ;
//
//	searchItem   = "search" [ ident ] { searchAttr } ";" ;
//	searchAttr   = "sent" ident [ ident ]
//	             | "order" ident [ ident ]
//	             | "aggr" ident ident
//	             | "group" ident
//	             | "distinct" ident [ ident ]
//	             | "limit" number | "offset" number
//	             | "rolemap" roleList
//	             | "count" | "list" | "iterate" | "get"
//	             | doc ;
//
//	updateItem   = "update" [ ident ] { updateAttr } ";" ;
//	deleteItem   = "delete" [ ident ] { updateAttr } ";" ;
//	updateAttr   = "modify" ident ident
//	             | "constrain" ident ident [ ident ]
//	             | "all" | "rolemap" roleList | doc ;
//
//	roleList     = "{" ident { "," ident } "}" ;
//	identList    = "{" ident { "," ident } "}" ;
//	doc          = "comment" string ;
//	literal      = string | number ;
package parse

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-extras/go-kit/ptr"

	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/lang"
	"github.com/ortschema/ort/msgq"
)

// defaultTimeout bounds a single Parse call, the same infinite-loop
// backstop core/parser/parser.go keeps via checkTimeout.
const defaultTimeout = 5 * time.Second

// Parser consumes a token stream from model/lang and builds a *model.Config.
type Parser struct {
	lexer       *lang.Lexer
	current     lang.Token
	previous    lang.Token
	startTime   time.Time
	timeout     time.Duration
	file        string
	diagnostics *msgq.Queue

	languages []string
	langIndex map[string]int
	rolesFlat []*model.Role
}

// NewParser creates a parser over src; file is used only to anchor
// model.Position values in diagnostics.
func NewParser(src, file string) *Parser {
	p := &Parser{
		lexer:       lang.NewLexer(src),
		timeout:     defaultTimeout,
		file:        file,
		diagnostics: &msgq.Queue{},
		languages:   []string{"en"},
		langIndex:   map[string]int{"en": 0},
	}
	p.advance()
	return p
}

// Diagnostics returns the parser's message queue. Parse appends nothing to
// it: duplicate declarations and unknown role names are not checked, and
// every problem Parse detects is returned as an error instead.
func (p *Parser) Diagnostics() *msgq.Queue { return p.diagnostics }

// Parse consumes the whole token stream and returns the assembled Config,
// or the first syntax error encountered.
func (p *Parser) Parse() (*model.Config, error) {
	p.startTime = time.Now()
	cfg := &model.Config{}

	for !p.isAtEnd() {
		if err := p.checkTimeout(); err != nil {
			return nil, err
		}
		switch {
		case p.current.MatchIdentifierValue("lang"):
			if err := p.parseLangStmt(cfg); err != nil {
				return nil, err
			}
		case p.current.MatchIdentifierValue("roles"):
			if err := p.parseRolesStmt(cfg); err != nil {
				return nil, err
			}
		case p.current.MatchIdentifierValue("enum"):
			if err := p.parseEnumStmt(cfg); err != nil {
				return nil, err
			}
		case p.current.MatchIdentifierValue("bitfield"):
			if err := p.parseBitfieldStmt(cfg); err != nil {
				return nil, err
			}
		case p.current.MatchIdentifierValue("struct"):
			if err := p.parseStructStmt(cfg); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("unexpected token %q", p.current.Value)
		}
	}

	cfg.Languages = p.languages
	cfg.RolesFlat = p.rolesFlat
	return cfg, nil
}

func (p *Parser) checkTimeout() error {
	if p.timeout > 0 && time.Since(p.startTime) > p.timeout {
		return fmt.Errorf("parse: timed out after %s", p.timeout)
	}
	return nil
}

// advance pulls the next significant token, discarding whitespace and
// comment tokens the lexer returns as their own kinds.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		t := p.lexer.NextToken()
		if t.Type == lang.TokenWhitespace || t.Type == lang.TokenComment {
			continue
		}
		p.current = t
		return
	}
}

func (p *Parser) isAtEnd() bool { return p.current.Type == lang.TokenEOF }

func (p *Parser) pos() model.Position {
	return model.Position{File: p.file, Line: p.current.Line, Column: p.current.Column}
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse: %s:%d:%d: %s", p.file, p.current.Line, p.current.Column, fmt.Sprintf(format, args...))
}

func (p *Parser) expectIdentifier() (string, error) {
	if p.current.Type != lang.TokenIdentifier {
		return "", p.errorf("expected identifier, got %s %q", p.current.Type, p.current.Value)
	}
	v := p.current.Value
	p.advance()
	return v, nil
}

func (p *Parser) expectString() (string, error) {
	if p.current.Type != lang.TokenString {
		return "", p.errorf("expected string, got %s %q", p.current.Type, p.current.Value)
	}
	v := p.current.Value
	p.advance()
	return v, nil
}

func (p *Parser) expectNumber() (int64, error) {
	if p.current.Type != lang.TokenNumber {
		return 0, p.errorf("expected number, got %s %q", p.current.Type, p.current.Value)
	}
	n, err := strconv.ParseInt(p.current.Value, 10, 64)
	if err != nil {
		return 0, p.errorf("invalid number %q: %v", p.current.Value, err)
	}
	p.advance()
	return n, nil
}

func (p *Parser) expectOperator(v string) error {
	if !p.current.MatchOperatorValue(v) {
		return p.errorf("expected %q, got %q", v, p.current.Value)
	}
	p.advance()
	return nil
}

func (p *Parser) expectSemicolon() error {
	if p.current.Type != lang.TokenSemicolon {
		return p.errorf("expected ';', got %q", p.current.Value)
	}
	p.advance()
	return nil
}

func (p *Parser) matchIdentifier(v string) bool {
	if p.current.MatchIdentifierValue(v) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOperator(v string) bool {
	if p.current.MatchOperatorValue(v) {
		p.advance()
		return true
	}
	return false
}

// parseDoc consumes an optional `comment "text"` clause.
func (p *Parser) parseDoc() (model.Doc, error) {
	if !p.matchIdentifier("comment") {
		return model.Doc{}, nil
	}
	s, err := p.expectString()
	if err != nil {
		return model.Doc{}, err
	}
	return model.Doc{Text: s, HasText: true}, nil
}

// parseLabels consumes `"default text" { "(" lang ":" "text" ")" }`.
func (p *Parser) parseLabels() ([]model.Label, error) {
	def, err := p.expectString()
	if err != nil {
		return nil, err
	}
	out := []model.Label{{Lang: 0, Text: def}}
	for p.matchOperator("(") {
		langName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperator(":"); err != nil {
			return nil, err
		}
		text, err := p.expectString()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		out = append(out, model.Label{Lang: p.registerLanguage(langName), Text: text})
	}
	return out, nil
}

func (p *Parser) registerLanguage(name string) int {
	if idx, ok := p.langIndex[name]; ok {
		return idx
	}
	idx := len(p.languages)
	p.languages = append(p.languages, name)
	p.langIndex[name] = idx
	return idx
}

// parseIdentList consumes `"{" ident { "," ident } "}"`.
func (p *Parser) parseIdentList() ([]string, error) {
	if err := p.expectOperator("{"); err != nil {
		return nil, err
	}
	var out []string
	for {
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
		if !p.matchOperator(",") {
			break
		}
	}
	if err := p.expectOperator("}"); err != nil {
		return nil, err
	}
	return out, nil
}

// parseRoleMap consumes a `"rolemap" "{" ident {"," ident} "}"` clause,
// given the already-determined Kind it guards.
func (p *Parser) parseRoleMap(kind model.RoleMapKind) (*model.RoleMap, error) {
	pos := p.pos()
	roles, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	return &model.RoleMap{Kind: kind, Roles: roles, Pos: pos}, nil
}

func parseUpdateAction(s string) (model.UpdateAction, error) {
	switch s {
	case "none":
		return model.ActionNone, nil
	case "restrict":
		return model.ActionRestrict, nil
	case "nullify":
		return model.ActionNullify, nil
	case "cascade":
		return model.ActionCascade, nil
	case "default":
		return model.ActionDefault, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// parseOptionalValue consumes an optional `"=" number` clause, returning a
// non-nil pointer only when a value was given explicitly — the same
// ptr.To-backed optional-value idiom core/parser/parser.go uses for its own
// optional literal clauses.
func (p *Parser) parseOptionalValue() (*int64, error) {
	if !p.matchOperator("=") {
		return nil, nil
	}
	n, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return ptr.To(n), nil
}
