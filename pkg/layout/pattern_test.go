package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
)

func TestParsePattern(t *testing.T) {
	physics := [][]int{{4}, {3, 3, 3}, {3, 3, 3}}
	tests := []struct {
		name string
		in   string
		want [][]int
	}{
		{"bracketed", "[4],[3,3,3],[3,3,3]", physics},
		{"bracketed with spaces", "[4], [3, 3, 3], [3, 3, 3]", physics},
		{"nested", "[[4],[3,3,3],[3,3,3]]", physics},
		{"adjacent brackets", "[4][3,3,3][3,3,3]", physics},
		{"semicolons", "4;3,3,3;3,3,3", physics},
		{"newlines", "4\n3,3,3\n3,3,3\n", physics},
		{"crlf", "4\r\n3,3,3\r\n3,3,3", physics},
		{"trailing comma", "2,2,", [][]int{{2, 2}}},
		{"blank rows skipped", "2;;2", [][]int{{2}, {2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePattern(tt.in)
			if err != nil {
				t.Fatalf("ParsePattern(%q) error: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePattern(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePatternInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "[]", "a,b", "3,-1", "0", "2;,", "1.5", "+3"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePattern(in)
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("ParsePattern(%q) error = %v, want INVALID_LAYOUT", in, err)
			}
		})
	}
}

func TestFormatPatternRoundTrip(t *testing.T) {
	p := [][]int{{4}, {3, 3, 3}}
	s := FormatPattern(p)
	if s != "[4], [3, 3, 3]" {
		t.Errorf("FormatPattern() = %q", s)
	}
	back, err := ParsePattern(s)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Errorf("ParsePattern(FormatPattern(p)) = %v, want %v", back, p)
	}
}
