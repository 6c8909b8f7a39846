package contract

import (
	"strings"
	"testing"
)

// FuzzTruncatePath fuzzes the TruncatePath function with random paths and widths.
func FuzzTruncatePath(f *testing.F) {
	seeds := []struct {
		path     string
		maxWidth int
	}{
		{"/api/users", 20},
		{"/api/v2/organizations/members/invitations", 20},
		{"", 10},
		{"/api/users/{id}", 4},
		{"/héllo/wörld/ünïcode", 10},
		{"/api", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.maxWidth)
	}

	f.Fuzz(func(t *testing.T, path string, maxWidth int) {
		result := TruncatePath(path, maxWidth)

		// Truncated output must respect the width and keep the marker prefix.
		if maxWidth > 3 && len([]rune(result)) > len([]rune(path)) {
			t.Errorf("result %q longer than input %q", result, path)
		}
		if result != path && !strings.HasPrefix(result, "...") {
			t.Errorf("truncated result %q should start with ellipsis", result)
		}
		if maxWidth > 3 && len([]rune(result)) > maxWidth {
			t.Errorf("result %q exceeds max width %d", result, maxWidth)
		}
	})
}
