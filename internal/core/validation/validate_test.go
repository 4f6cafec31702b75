package validation

import "testing"

func TestIsValidID(t *testing.T) {
	cases := []struct {
		name string
		id   int64
		want bool
	}{
		{"positive", 1, true},
		{"large", 914532, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"very negative", -99999, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidID(tc.id); got != tc.want {
				t.Errorf("IsValidID(%d) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestAllNonEmpty(t *testing.T) {
	cases := []struct {
		name string
		strs []string
		want bool
	}{
		{"all populated", []string{"a", "b", "c"}, true},
		{"single populated", []string{"hello"}, true},
		{"one empty", []string{"a", "", "c"}, false},
		{"all empty", []string{"", "", ""}, false},
		{"no arguments", nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AllNonEmpty(tc.strs...); got != tc.want {
				t.Errorf("AllNonEmpty(%q) = %v, want %v", tc.strs, got, tc.want)
			}
		})
	}
}
