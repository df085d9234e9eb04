package model

import "testing"

func TestValidRole(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"USER", true},
		{"ADMIN", true},
		{"user", false}, // roles are stored upper-case; callers normalize first
		{"SUPERUSER", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidRole(tc.in); got != tc.want {
			t.Errorf("ValidRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
