// Package authz implements role-hierarchy expansion and ordered
// path-pattern authorization rules.
package authz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle reports a role hierarchy whose implies edges loop. It is a
// configuration error; main refuses to start on it.
var ErrCycle = errors.New("role hierarchy contains cycle")

// Edge declares that holding Higher implies holding Lower.
type Edge struct {
	Higher string
	Lower  string
}

// Hierarchy is a read-only role graph built once at startup. Expansion of a
// role is the set of roles reachable over the implies edges, plus the role
// itself. Roles never mentioned in an edge expand to just themselves.
type Hierarchy struct {
	implied map[string][]string
}

// NewHierarchy builds a Hierarchy from implies edges. It rejects cyclic
// declarations so expansion can never loop at request time.
func NewHierarchy(edges []Edge) (*Hierarchy, error) {
	adjacent := make(map[string][]string)
	for _, e := range edges {
		higher := strings.TrimSpace(e.Higher)
		lower := strings.TrimSpace(e.Lower)
		if higher == "" || lower == "" {
			return nil, fmt.Errorf("authz: empty role in edge %q > %q", e.Higher, e.Lower)
		}
		adjacent[higher] = append(adjacent[higher], lower)
	}

	if cycle := findCycle(adjacent); len(cycle) > 0 {
		return nil, fmt.Errorf("authz: %w: %s", ErrCycle, strings.Join(cycle, " > "))
	}

	implied := make(map[string][]string, len(adjacent))
	for role := range adjacent {
		closure := make(map[string]struct{})
		collect(adjacent, role, closure)
		delete(closure, role)
		list := make([]string, 0, len(closure))
		for r := range closure {
			list = append(list, r)
		}
		implied[role] = list
	}
	return &Hierarchy{implied: implied}, nil
}

// ParseHierarchy reads a declarative hierarchy of "HIGHER > LOWER" pairs
// separated by newlines or semicolons. Blank entries are ignored.
func ParseHierarchy(decl string) (*Hierarchy, error) {
	var edges []Edge
	for _, line := range strings.FieldsFunc(decl, func(r rune) bool { return r == '\n' || r == ';' }) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ">")
		if len(parts) != 2 {
			return nil, fmt.Errorf("authz: malformed hierarchy line %q", line)
		}
		edges = append(edges, Edge{Higher: parts[0], Lower: parts[1]})
	}
	return NewHierarchy(edges)
}

// Expand returns role plus every role it transitively implies.
func (h *Hierarchy) Expand(role string) []string {
	roles := []string{role}
	if h == nil {
		return roles
	}
	return append(roles, h.implied[role]...)
}

func collect(adjacent map[string][]string, role string, out map[string]struct{}) {
	if _, seen := out[role]; seen {
		return
	}
	out[role] = struct{}{}
	for _, lower := range adjacent[role] {
		collect(adjacent, lower, out)
	}
}

// findCycle runs a coloured depth-first search and returns one offending
// path when the edge relation is not acyclic.
func findCycle(adjacent map[string][]string) []string {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	colour := make(map[string]int, len(adjacent))
	var stack []string
	var cycle []string

	var visit func(role string) bool
	visit = func(role string) bool {
		colour[role] = grey
		stack = append(stack, role)
		for _, lower := range adjacent[role] {
			switch colour[lower] {
			case grey:
				for i, r := range stack {
					if r == lower {
						cycle = append(append([]string(nil), stack[i:]...), lower)
						return true
					}
				}
			case white:
				if visit(lower) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		colour[role] = black
		return false
	}

	for role := range adjacent {
		if colour[role] == white {
			if visit(role) {
				return cycle
			}
		}
	}
	return nil
}
