// Package reach walks the reference graph reachable from a starting
// structure and a query that selects it: every struct-typed field is
// followed transitively, and for each reachable structure the walk
// records the set of paths by which queries reach it and whether each
// field remains exported along that path.
//
// The walk keeps a structure-keyed entry list, builds path strings by
// "%s.%s" concatenation per hop, and only ever promotes a structure's
// global export flag — never demotes it once another query has exported
// it more permissively.
package reach

import (
	"fmt"

	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/rolemap"
)

// FieldExport is the export verdict for one field of a Reachable structure.
type FieldExport struct {
	Field    *model.Field
	Exported bool
}

// PathEntry records one query's reach into a structure: the query itself,
// whether the path up to (and including) this hop is exported, and the
// dotted path string (empty for the structure directly named by the query).
type PathEntry struct {
	Search   *model.Search
	Exported bool
	Path     string // empty string ⇒ no leading dot (the query's own structure)
	HasPath  bool
}

// Reachable is the per-structure audit queue entry RE builds and AB and the
// audit writers consume: the structure, its global export flag (promoted, never
// demoted), a per-field export array computed once at first reach, and the
// growable list of paths that reach it.
type Reachable struct {
	Struct   *model.Structure
	Exported bool
	Fields   []FieldExport
	Paths    []PathEntry
}

// Set accumulates Reachable entries across possibly many queries sharing one
// role, keyed by structure name so repeated reaches extend a single entry in
// place rather than duplicating it.
type Set struct {
	order   []*Reachable
	byName  map[string]*Reachable
	role    *model.Role
	maxHops int                                     // path-depth cap; pass the model's total field count
	resolve func(fd *model.Field) *model.Structure // reference-target lookup, installed by the caller
}

// NewSet creates an empty reachability set for the given role, capping walk
// depth at maxHops (pass the total field count across the model to
// guarantee termination on cyclic reference graphs). resolve must return
// the structure a FtypeStruct field's reference points to (the structure
// owning fd.Ref.TargetField); audit.Build supplies this closing over the
// Config being audited.
func NewSet(role *model.Role, maxHops int, resolve func(fd *model.Field) *model.Structure) *Set {
	return &Set{
		byName:  make(map[string]*Reachable),
		role:    role,
		maxHops: maxHops,
		resolve: resolve,
	}
}

// Entries returns the accumulated Reachable entries in first-reached order.
func (s *Set) Entries() []*Reachable { return s.order }

// Walk extends the set by following query sr from starting structure st,
// with startExported as the export state the structure has before the walk
// begins (false only if some noexport-all role map on the query's own
// structure permits the role).
func (s *Set) Walk(st *model.Structure, sr *model.Search, startExported bool) error {
	return s.follow(st, sr, startExported, "", false, 0)
}

func (s *Set) follow(st *model.Structure, sr *model.Search, exported bool, path string, hasPath bool, depth int) error {
	if depth > s.maxHops {
		return fmt.Errorf("reach: path depth exceeded cap (%d) at structure %q — likely a reference cycle not bounded by field count", s.maxHops, st.Name)
	}

	entry, ok := s.byName[normalizeName(st.Name)]
	if !ok {
		entry = &Reachable{
			Struct:   st,
			Exported: exported,
			Fields:   make([]FieldExport, len(st.Fields)),
		}
		for i := range st.Fields {
			fd := &st.Fields[i]
			entry.Fields[i] = FieldExport{
				Field:    fd,
				Exported: !fd.Flags.Has(model.FieldNoexport) && !rolemap.Permits(s.role, fd.RoleMap),
			}
		}
		s.byName[normalizeName(st.Name)] = entry
		s.order = append(s.order, entry)
	}

	entry.Paths = append(entry.Paths, PathEntry{
		Search:   sr,
		Exported: exported,
		Path:     path,
		HasPath:  hasPath,
	})

	// Global export marker: promote only. A later, more permissive path
	// (e.g. via "distinct") can re-export a structure an earlier query
	// reached as non-exported; the reverse never happens.
	if !entry.Exported && exported {
		entry.Exported = true
	}

	for i := range st.Fields {
		fd := &st.Fields[i]
		if fd.Type != model.FtypeStruct {
			continue
		}
		if fd.Ref == nil {
			continue
		}

		var newPath string
		if hasPath {
			newPath = path + "." + fd.Name
		} else {
			newPath = fd.Name
		}

		nextExported := exported && !fd.Flags.Has(model.FieldNoexport) && !rolemap.Permits(s.role, fd.RoleMap)

		target := s.resolve(fd)
		if target == nil {
			continue
		}

		if err := s.follow(target, sr, nextExported, newPath, true, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func normalizeName(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
