package authz

import (
	"sort"
	"strings"
)

// Decision is the outcome of evaluating the rule table for a request.
type Decision int

const (
	// Allow lets the request proceed.
	Allow Decision = iota
	// Deny terminates the request; the caller is authenticated but lacks
	// a required role.
	Deny
	// RequireAuth asks the transport layer to prompt for credentials.
	RequireAuth
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "require-auth"
	}
}

// Principal is the authenticated identity with its expanded role set,
// resolved once per request and passed explicitly.
type Principal struct {
	Username string
	Roles    map[string]struct{}
}

// NewPrincipal builds a Principal from a username and expanded roles.
func NewPrincipal(username string, roles []string) *Principal {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return &Principal{Username: username, Roles: set}
}

// HasAny reports whether the principal holds at least one of the roles.
func (p *Principal) HasAny(roles map[string]struct{}) bool {
	if p == nil {
		return false
	}
	for r := range roles {
		if _, ok := p.Roles[r]; ok {
			return true
		}
	}
	return false
}

// RoleList returns the expanded roles sorted for stable display.
func (p *Principal) RoleList() []string {
	if p == nil {
		return nil
	}
	roles := make([]string, 0, len(p.Roles))
	for r := range p.Roles {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

type requirementKind int

const (
	reqPublic requirementKind = iota
	reqAuthenticated
	reqAnyRole
)

// Requirement states what a matching request must satisfy.
type Requirement struct {
	kind  requirementKind
	roles map[string]struct{}
}

// Public allows every request, anonymous included.
func Public() Requirement {
	return Requirement{kind: reqPublic}
}

// Authenticated requires any logged-in principal.
func Authenticated() Requirement {
	return Requirement{kind: reqAuthenticated}
}

// AnyRole requires a principal holding at least one of the given roles.
func AnyRole(roles ...string) Requirement {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Requirement{kind: reqAnyRole, roles: set}
}

// Rule ties a path pattern to a requirement. A pattern is either an exact
// path or a prefix ending in "/**" which matches every path under it.
type Rule struct {
	Pattern string
	Require Requirement
}

// Table is an ordered rule list evaluated first-match-wins. Order is part
// of the contract: a broad Public rule placed before a narrower restricted
// rule on an overlapping path makes the narrower rule unreachable. The
// table evaluates exactly as declared and does not reorder.
type Table struct {
	rules []Rule
}

// NewTable builds a Table preserving declaration order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: append([]Rule(nil), rules...)}
}

// DefaultTable mirrors the stock rule set: landing, login and join surfaces
// are public, /admin is admin-only, /my/** is for admins and users, and
// everything else needs a login.
func DefaultTable() *Table {
	return NewTable(
		Rule{Pattern: "/", Require: Public()},
		Rule{Pattern: "/login", Require: Public()},
		Rule{Pattern: "/loginProc", Require: Public()},
		Rule{Pattern: "/join", Require: Public()},
		Rule{Pattern: "/joinProc", Require: Public()},
		Rule{Pattern: "/admin", Require: AnyRole("ROLE_ADMIN")},
		Rule{Pattern: "/my/**", Require: AnyRole("ROLE_ADMIN", "ROLE_USER")},
	)
}

// Decide evaluates the table against a request path. Unmatched paths fall
// through to RequireAuth for anonymous callers and Allow for authenticated
// ones, the deny-by-default catch-all.
func (t *Table) Decide(path string, p *Principal) Decision {
	for _, rule := range t.rules {
		if !matchPattern(rule.Pattern, path) {
			continue
		}
		return apply(rule.Require, p)
	}
	return apply(Authenticated(), p)
}

func apply(req Requirement, p *Principal) Decision {
	switch req.kind {
	case reqPublic:
		return Allow
	case reqAuthenticated:
		if p != nil {
			return Allow
		}
		return RequireAuth
	default:
		if p == nil {
			return RequireAuth
		}
		if p.HasAny(req.roles) {
			return Allow
		}
		return Deny
	}
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return strings.HasPrefix(path, prefix+"/")
	}
	return pattern == path
}
