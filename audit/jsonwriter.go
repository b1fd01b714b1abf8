package audit

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/ortschema/ort/model"
)

// accessFrom is one entry in a reachable structure's "accessfrom" list.
type accessFrom struct {
	Function  string `json:"function"`
	Exporting bool   `json:"exporting"`
	Path      string `json:"path"`
}

type access struct {
	Name   string       `json:"name"`
	Access accessDetail `json:"access"`
}

type accessDetail struct {
	Exportable bool         `json:"exportable"`
	Data       []string     `json:"data"`
	AccessFrom []accessFrom `json:"accessfrom"`
	Insert     *string      `json:"insert"`
	Update     []string     `json:"update"`
	Delete     []string     `json:"delete"`
	Count      []string     `json:"count"`
	Get        []string     `json:"get"`
	List       []string     `json:"list"`
	Iterate    []string     `json:"iterate"`
}

type functionDesc struct {
	Doc  *string `json:"doc"`
	Type string  `json:"type"`
}

type fieldDesc struct {
	Export bool    `json:"export"`
	Doc    *string `json:"doc"`
}

// Document is the top-level JSON object a JSON audit report renders as.
type Document struct {
	Role      string                  `json:"role"`
	Doc       *string                 `json:"doc"`
	Access    []access                `json:"access"`
	Functions map[string]functionDesc `json:"functions"`
	Fields    map[string]fieldDesc    `json:"fields"`
}

// BuildDocument assembles the audit JSON document for role from queue q as
// a single marshalable struct rather than hand-rolled printf escaping.
func BuildDocument(role *model.Role, q *Queue) *Document {
	doc := &Document{
		Role:      role.Name,
		Functions: make(map[string]functionDesc),
		Fields:    make(map[string]fieldDesc),
	}
	if role.Doc.HasText {
		doc.Doc = strPtr(role.Doc.Text)
	}

	byStruct := make(map[string]*accessDetail)
	order := make([]string, 0)
	ensure := func(st *model.Structure) *accessDetail {
		key := st.Name
		if d, ok := byStruct[key]; ok {
			return d
		}
		d := &accessDetail{Data: []string{}, AccessFrom: []accessFrom{}}
		byStruct[key] = d
		order = append(order, key)
		return d
	}

	for _, e := range q.Entries {
		switch e.Kind {
		case EntryInsert:
			d := ensure(e.Struct)
			fn := functionName(e.Struct.Name, "insert", "")
			d.Insert = strPtr(fn)
			doc.Functions[fn] = functionDesc{Type: "insert"}
		case EntryUpdate:
			d := ensure(e.Struct)
			opName := "update"
			if e.Update.Kind == model.OpDelete {
				opName = "delete"
			}
			name := e.Update.Name
			if !e.Update.HasName {
				name = opName
			}
			fn := functionName(e.Struct.Name, opName, name)
			doc.Functions[fn] = functionDesc{Type: opName}
			if e.Update.Kind == model.OpDelete {
				d.Delete = append(d.Delete, fn)
			} else {
				d.Update = append(d.Update, fn)
			}
		case EntryQuery:
			d := ensure(e.Struct)
			name := e.Query.Name
			if !e.Query.HasName {
				name = queryOpName(e.Query.Kind)
			}
			fn := functionName(e.Struct.Name, queryOpName(e.Query.Kind), name)
			if e.Query.Doc.HasText {
				doc.Functions[fn] = functionDesc{Type: queryOpName(e.Query.Kind), Doc: strPtr(e.Query.Doc.Text)}
			} else {
				doc.Functions[fn] = functionDesc{Type: queryOpName(e.Query.Kind)}
			}
			switch e.Query.Kind {
			case model.SearchCount:
				d.Count = append(d.Count, fn)
			case model.SearchGet:
				d.Get = append(d.Get, fn)
			case model.SearchIterate:
				d.Iterate = append(d.Iterate, fn)
			default:
				d.List = append(d.List, fn)
			}
		case EntryReachable:
			d := ensure(e.Reachable.Struct)
			d.Exportable = e.Reachable.Exported
			for _, fe := range e.Reachable.Fields {
				d.Data = append(d.Data, fe.Field.Name)
				key := e.Reachable.Struct.Name + "." + fe.Field.Name
				fd := fieldDesc{Export: fe.Exported}
				if fe.Field.Doc.HasText {
					fd.Doc = strPtr(fe.Field.Doc.Text)
				}
				doc.Fields[key] = fd
			}
			for _, p := range e.Reachable.Paths {
				name := "-"
				if p.Search.HasName {
					name = p.Search.Name
				} else {
					name = queryOpName(p.Search.Kind)
				}
				fn := functionName(e.Reachable.Struct.Name, queryOpName(p.Search.Kind), name)
				d.AccessFrom = append(d.AccessFrom, accessFrom{
					Function:  fn,
					Exporting: p.Exported,
					Path:      p.Path,
				})
			}
		}
	}

	for _, name := range order {
		doc.Access = append(doc.Access, access{Name: name, Access: *byStruct[name]})
	}

	return doc
}

// WriteJSON marshals the document as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteStandaloneJS wraps the document in an IIFE for standalone (browser)
// consumption: "(function(root){ 'use strict'; var audit = { ... };
// root.audit = audit; })(this);".
func WriteStandaloneJS(w io.Writer, doc *Document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("(function(root){ 'use strict'; var audit = ")
	b.Write([]byte(payload))
	b.WriteString("; root.audit = audit; })(this);\n")
	_, err = io.WriteString(w, b.String())
	return err
}

func functionName(structName, kind, detail string) string {
	if detail == "" {
		return "db_" + structName + "_" + kind
	}
	return "db_" + structName + "_" + kind + "_" + detail
}

func strPtr(s string) *string { return &s }
