// Package audit implements the audit pass: given a role and a model, it
// drives rolemap.Permits and reach.Set to produce an ordered queue of
// every insert/update/delete/query the role may invoke, plus one
// Reachable entry per structure observable from a role-permitted query.
//
// Structures are walked in declaration order, one audit entry is appended
// per permitted insert/update/delete/query, and REACHABLE entries are
// created (and later extended in place) by the reach walk.
package audit

import (
	"fmt"
	"log/slog"

	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/reach"
	"github.com/ortschema/ort/rolemap"
)

// EntryKind tags the four audit queue entry shapes.
type EntryKind int

const (
	EntryInsert EntryKind = iota
	EntryUpdate
	EntryQuery
	EntryReachable
)

// Entry is one tagged audit queue item. Exactly one of Insert/Update/Query/
// Reachable is populated, selected by Kind.
type Entry struct {
	Kind      EntryKind
	Struct    *model.Structure
	Insert    *model.Insert
	Update    *model.Update
	Query     *model.Search
	Reachable *reach.Reachable
}

// Queue is the ordered result of Build.
type Queue struct {
	Entries []Entry
}

// Builder runs the audit pass for one role against one Config. It carries
// only a logger (non-fatal diagnostics); Build itself is pure over its
// inputs.
type Builder struct {
	logger *slog.Logger
}

// New creates a Builder with the default logger.
func New() *Builder {
	return &Builder{logger: slog.Default()}
}

// WithLogger returns a copy of b using l for diagnostics.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	tmp := *b
	tmp.logger = l
	return &tmp
}

// Build computes the audit queue for role against cfg. It fails only when
// a reachability walk exceeds its depth cap, signaling a reference graph
// the model's field-count bound did not expect.
func (b *Builder) Build(role *model.Role, cfg *model.Config) (*Queue, error) {
	q := &Queue{}

	maxHops := totalFieldCount(cfg)
	resolve := func(fd *model.Field) *model.Structure {
		if fd.Ref == nil {
			return nil
		}
		return cfg.StructByName(fd.Ref.TargetStrct)
	}
	rs := reach.NewSet(role, maxHops, resolve)
	reachableIdx := make(map[string]int) // structure name -> index of its REACHABLE Entry in q.Entries

	for si := range cfg.Structures {
		st := &cfg.Structures[si]

		exported := true
		if rolemap.Permits(role, st.NoexportRoleMap) {
			exported = false
		}

		if st.Insert != nil && rolemap.Permits(role, st.Insert.RoleMap) {
			q.Entries = append(q.Entries, Entry{Kind: EntryInsert, Struct: st, Insert: st.Insert})
		}

		for ui := range st.Updates {
			up := &st.Updates[ui]
			if rolemap.Permits(role, up.RoleMap) {
				q.Entries = append(q.Entries, Entry{Kind: EntryUpdate, Struct: st, Update: up})
			}
		}

		for qi := range st.Searches {
			sr := &st.Searches[qi]
			if !rolemap.Permits(role, sr.RoleMap) {
				continue
			}
			q.Entries = append(q.Entries, Entry{Kind: EntryQuery, Struct: st, Query: sr})

			startStruct := st
			if sr.Distinct != nil && sr.Distinct.Strct != "" {
				if ds := cfg.StructByName(sr.Distinct.Strct); ds != nil {
					startStruct = ds
				}
			}

			if err := rs.Walk(startStruct, sr, exported); err != nil {
				b.logger.Warn("reachability walk aborted", "structure", st.Name, "query", sr.Name, "error", err)
				return nil, fmt.Errorf("audit: %w", err)
			}
		}
	}

	// Insert/extend REACHABLE entries at the position of the query that
	// first reached each structure: the first REACHABLE for a structure is
	// inserted at the point of the query that first reaches it, and every
	// subsequent query extends it in place.
	for _, r := range rs.Entries() {
		key := normalizeName(r.Struct.Name)
		if idx, ok := reachableIdx[key]; ok {
			q.Entries[idx].Reachable = r
			continue
		}
		insertAt := -1
		for i, e := range q.Entries {
			if e.Kind == EntryQuery && reachesFirstVia(r, e.Query) {
				insertAt = i + 1
				break
			}
		}
		entry := Entry{Kind: EntryReachable, Struct: r.Struct, Reachable: r}
		if insertAt < 0 || insertAt > len(q.Entries) {
			q.Entries = append(q.Entries, entry)
			reachableIdx[key] = len(q.Entries) - 1
		} else {
			q.Entries = append(q.Entries[:insertAt], append([]Entry{entry}, q.Entries[insertAt:]...)...)
			reachableIdx[key] = insertAt
			for k, v := range reachableIdx {
				if v >= insertAt && k != key {
					reachableIdx[k] = v + 1
				}
			}
		}
	}

	return q, nil
}

func reachesFirstVia(r *reach.Reachable, sr *model.Search) bool {
	for _, p := range r.Paths {
		if p.Search == sr {
			return true
		}
	}
	return false
}

func totalFieldCount(cfg *model.Config) int {
	n := 0
	for _, st := range cfg.Structures {
		n += len(st.Fields)
	}
	if n == 0 {
		n = 1
	}
	return n
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
