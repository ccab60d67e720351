package core

import (
	"errors"
	"strconv"
	"strings"

	"tankmate/pkg/domain"
)

// MaxSelectionEntries is the cap applied when selection capping is enabled.
const MaxSelectionEntries = 8

// MaxCount bounds the count of one selection row. Larger submitted counts are
// clamped, which also bounds the expanded individuals list.
const MaxCount = 1000

// SpeciesLookup resolves species ids against a catalog snapshot.
type SpeciesLookup interface {
	Lookup(id string) (*domain.Species, bool)
}

// ParseCount converts submitted count text into a count in [1, MaxCount].
// Empty, unparsable, and non-positive text all resolve to 1; counts above
// MaxCount, including ones too large for an int, resolve to MaxCount.
func ParseCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	switch {
	case errors.Is(err, strconv.ErrRange) && n > 0:
		return MaxCount
	case err != nil || n < 1:
		return 1
	case n > MaxCount:
		return MaxCount
	}
	return n
}

// ResolveSelection maps entries onto catalog species, dropping unknown ids.
// Duplicate entries produce separate rows. When limit > 0 only the first
// limit recognized entries are kept. An empty result returns
// ErrNoRecognizedSpecies.
func ResolveSelection(lookup SpeciesLookup, entries []domain.SelectionEntry, limit int) (domain.Selection, error) {
	var sel domain.Selection
	for _, entry := range entries {
		if limit > 0 && len(sel.Rows) >= limit {
			break
		}
		sp, ok := lookup.Lookup(strings.TrimSpace(entry.SpeciesID))
		if !ok {
			continue
		}
		count := ParseCount(entry.Count)
		sel.Rows = append(sel.Rows, domain.SpeciesSelection{Species: sp, Count: count})
		for i := 0; i < count; i++ {
			sel.Individuals = append(sel.Individuals, sp)
		}
	}
	if len(sel.Rows) == 0 {
		return domain.Selection{}, ErrNoRecognizedSpecies
	}
	return sel, nil
}
