package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	tests := []struct {
		version, commit string
		want            string
	}{
		{"dev", "none", "seatplan/dev"},
		{"v1.2.0", "0123456789abcdef", "seatplan/v1.2.0 (0123456)"},
		{"v1.2.0", "abc", "seatplan/v1.2.0"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := UserAgent(); got != tt.want {
			t.Errorf("UserAgent() = %q, want %q", got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
