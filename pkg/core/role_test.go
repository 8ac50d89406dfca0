package core

import "testing"

func TestRoleCatalogOrder(t *testing.T) {
	catalog, err := NewRoleCatalog(
		Role{Key: "b", Name: "B"},
		Role{Key: "a", Name: "A"},
		Role{Key: "c", Name: "C"},
	)
	if err != nil {
		t.Fatalf("NewRoleCatalog failed: %v", err)
	}

	keys := catalog.Keys()
	want := []RoleKey{"b", "a", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, keys)
		}
	}
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 roles, got %d", catalog.Len())
	}
	if r, ok := catalog.Get("a"); !ok || r.Name != "A" {
		t.Fatalf("expected to find role a")
	}
	if _, ok := catalog.Get("z"); ok {
		t.Fatalf("did not expect role z")
	}
}

func TestRoleCatalogRejectsBadKeys(t *testing.T) {
	if _, err := NewRoleCatalog(Role{Key: "a"}, Role{Key: "a"}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if _, err := NewRoleCatalog(Role{Name: "nameless"}); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestTopCapabilities(t *testing.T) {
	tests := []struct {
		name string
		caps []string
		want int
	}{
		{name: "none", caps: nil, want: 0},
		{name: "one", caps: []string{"x"}, want: 1},
		{name: "two", caps: []string{"x", "y"}, want: 2},
		{name: "many", caps: []string{"x", "y", "z"}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Role{Capabilities: tt.caps}.TopCapabilities(2)
			if len(got) != tt.want {
				t.Fatalf("expected %d capabilities, got %d", tt.want, len(got))
			}
		})
	}
}

func TestTopCapabilitiesDoesNotAliasRole(t *testing.T) {
	c, err := NewRoleCatalog(Role{Key: "dev", Name: "Developer", Capabilities: []string{"a", "b", "c"}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	r, _ := c.Get("dev")
	top := r.TopCapabilities(2)
	_ = append(top, "injected")

	again, _ := c.Get("dev")
	if again.Capabilities[2] != "c" {
		t.Fatalf("catalog capabilities modified through TopCapabilities: %q", again.Capabilities)
	}
}

func TestHandlesProblem(t *testing.T) {
	r := Role{ProblemTypes: []string{"performance"}}
	if !r.HandlesProblem("performance") {
		t.Fatalf("expected performance to be handled")
	}
	if r.HandlesProblem("usability") {
		t.Fatalf("did not expect usability to be handled")
	}
}
