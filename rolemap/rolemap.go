// Package rolemap holds a single pure predicate deciding whether a role
// map permits a given role.
package rolemap

import "github.com/ortschema/ort/model"

// Permits returns true iff rm is non-empty and some entry in rm.Roles
// equals role's name or the name of an ancestor of role, walking the
// role.Parent chain. Roles form a forest, so the walk is finite.
func Permits(role *model.Role, rm *model.RoleMap) bool {
	if rm.Empty() || role == nil {
		return false
	}
	for _, name := range rm.Roles {
		for rc := role; rc != nil; rc = rc.Parent {
			if equalFold(rc.Name, name) {
				return true
			}
		}
	}
	return false
}

// AncestorSet materializes the transitive-closure set of role and its
// ancestors' names, for callers that want an O(1) membership check instead
// of repeated Permits calls.
func AncestorSet(role *model.Role) map[string]struct{} {
	set := make(map[string]struct{})
	for rc := role; rc != nil; rc = rc.Parent {
		set[normalize(rc.Name)] = struct{}{}
	}
	return set
}

func equalFold(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(s string) string {
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
