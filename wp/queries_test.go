package wp

import "testing"

func TestValidateAcceptsWellFormedVars(t *testing.T) {
	vars := map[string]any{"first": 10, "after": "cursor"}
	if err := QueryAllPosts.Validate(vars); err != nil {
		t.Fatalf("expected valid vars, got %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	if err := QueryPostBySlug.Validate(map[string]any{}); err == nil {
		t.Fatalf("expected error for missing required variable")
	}
}

func TestValidateOptionalMayBeAbsent(t *testing.T) {
	if err := QueryRecentPosts.Validate(map[string]any{"first": 3}); err != nil {
		t.Fatalf("optional variable should be allowed absent: %v", err)
	}
}

func TestValidateWrongType(t *testing.T) {
	cases := []struct {
		name  string
		query Query
		vars  map[string]any
	}{
		{"int as string", QueryAllPosts, map[string]any{"first": "10"}},
		{"string as int", QueryPostBySlug, map[string]any{"slug": 7}},
		{"list as string", QueryRecentPosts, map[string]any{"first": 3, "notIn": "cG9zdDox"}},
	}
	for _, tc := range cases {
		if err := tc.query.Validate(tc.vars); err == nil {
			t.Fatalf("%s: expected type error", tc.name)
		}
	}
}

func TestValidateRejectsUnknownVars(t *testing.T) {
	err := QueryCategories.Validate(map[string]any{"first": 10})
	if err == nil {
		t.Fatalf("expected error for unknown variable")
	}
}
