package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/matzehuels/seatplan/pkg/seating"
)

// WriteRoster writes entities as CSV (slot,name,source). Slots are
// one-based; unplaced entities have an empty slot and come last.
func WriteRoster(w io.Writer, entities []*seating.Entity, slotCount int) error {
	sorted := slices.Clone(entities)
	slices.SortStableFunc(sorted, func(a, b *seating.Entity) int {
		ka, kb := rosterKey(a, slotCount), rosterKey(b, slotCount)
		return ka - kb
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"slot", "name", "source"}); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	for _, e := range sorted {
		slot := ""
		if e.Placed(slotCount) {
			slot = strconv.Itoa(e.Slot + 1)
		}
		if err := cw.Write([]string{slot, e.Name, e.Source}); err != nil {
			return fmt.Errorf("write roster: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func rosterKey(e *seating.Entity, slotCount int) int {
	if e.Placed(slotCount) {
		return e.Slot
	}
	return slotCount
}

// ExportRoster writes the roster CSV to path.
func ExportRoster(path string, entities []*seating.Entity, slotCount int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRoster(f, entities, slotCount); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
