package core

import "fmt"

// RoleKey identifies a role in a catalog.
type RoleKey string

// Role is the display and matching metadata for a single role.
type Role struct {
	Key          RoleKey  `yaml:"key"`
	Emoji        string   `yaml:"emoji"`
	Name         string   `yaml:"name"`
	Priority     int      `yaml:"priority"`
	Capabilities []string `yaml:"capabilities"`
	Keywords     []string `yaml:"keywords"`
	ProblemTypes []string `yaml:"problem_types"`
}

// TopCapabilities returns at most n capabilities in declaration order. The
// result is capped so appending to it never writes into the role.
func (r Role) TopCapabilities(n int) []string {
	if n > len(r.Capabilities) {
		n = len(r.Capabilities)
	}
	if n < 0 {
		n = 0
	}
	return r.Capabilities[:n:n]
}

// HandlesProblem reports whether the role lists the problem type.
func (r Role) HandlesProblem(problemType string) bool {
	for _, p := range r.ProblemTypes {
		if p == problemType {
			return true
		}
	}
	return false
}

// RoleCatalog is an ordered mapping of role keys to roles.
// Iteration order is insertion order.
type RoleCatalog struct {
	order []RoleKey
	roles map[RoleKey]Role
}

// NewRoleCatalog builds a catalog, rejecting empty or duplicate keys.
func NewRoleCatalog(roles ...Role) (*RoleCatalog, error) {
	c := &RoleCatalog{roles: make(map[RoleKey]Role, len(roles))}
	for _, r := range roles {
		if r.Key == "" {
			return nil, fmt.Errorf("role %q has no key", r.Name)
		}
		if _, dup := c.roles[r.Key]; dup {
			return nil, fmt.Errorf("duplicate role key %q", r.Key)
		}
		c.order = append(c.order, r.Key)
		c.roles[r.Key] = r
	}
	return c, nil
}

// Get returns the role registered under key.
func (c *RoleCatalog) Get(key RoleKey) (Role, bool) {
	r, ok := c.roles[key]
	return r, ok
}

// Keys returns the role keys in catalog order.
func (c *RoleCatalog) Keys() []RoleKey {
	out := make([]RoleKey, len(c.order))
	copy(out, c.order)
	return out
}

// All returns the roles in catalog order.
func (c *RoleCatalog) All() []Role {
	out := make([]Role, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.roles[k])
	}
	return out
}

// Len returns the number of roles.
func (c *RoleCatalog) Len() int {
	return len(c.order)
}

// Situation is an optional hint passed alongside an input to role inference.
type Situation struct {
	ProblemType string `yaml:"problem_type"`
	Urgency     string `yaml:"urgency"`
}

// Decision is the outcome of role inference.
type Decision struct {
	Role       RoleKey
	Confidence float64
	Reasoning  string
}
