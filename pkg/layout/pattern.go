package layout

import (
	"strconv"
	"strings"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// ParsePattern parses the textual form of an irregular layout.
//
// Rows are separated by "],[" (with or without a space), "][", ";" or a
// newline; banks within a row by ",". Surrounding brackets and whitespace are
// ignored. Every seat count must be a positive integer.
func ParsePattern(s string) ([][]int, error) {
	norm := strings.NewReplacer(
		"], [", ";",
		"],[", ";",
		"][", ";",
		"\r\n", ";",
		"\n", ";",
	).Replace(strings.TrimSpace(s))
	norm = strings.NewReplacer("[", "", "]", "").Replace(norm)

	var rows [][]int
	for _, part := range strings.Split(norm, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var row []int
		for _, field := range strings.Split(part, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil || !isDigits(field) {
				return nil, errors.New(errors.ErrCodeInvalidLayout, "invalid seat count %q in row %d", field, len(rows)+1)
			}
			if n <= 0 {
				return nil, errors.New(errors.ErrCodeInvalidLayout, "seat count must be > 0 in row %d, got %d", len(rows)+1, n)
			}
			row = append(row, n)
		}
		if len(row) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "row %d is empty", len(rows)+1)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "pattern is empty")
	}
	return rows, nil
}

// FormatPattern renders a pattern in bracketed form, e.g. "[4], [3, 3, 3]".
func FormatPattern(p [][]int) string {
	var b strings.Builder
	for r, row := range p {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		for i, n := range row {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(n))
		}
		b.WriteByte(']')
	}
	return b.String()
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
