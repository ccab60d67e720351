package domain

// SelectionEntry is one raw user choice: a species identifier and a count as submitted.
type SelectionEntry struct {
	SpeciesID string `json:"species_id"`
	Count     string `json:"count"`
}

// SpeciesSelection is one resolved selection row. Duplicate entries for the
// same species produce separate rows.
type SpeciesSelection struct {
	Species *Species `json:"species"`
	Count   int      `json:"count"`
}

// Selection holds both derived views of a resolved user selection.
type Selection struct {
	// Rows has one element per recognized selection entry, in submission order.
	Rows []SpeciesSelection
	// Individuals repeats each row's species Count times. The pointers are shared with Rows.
	Individuals []*Species
}

// DistinctSpecies returns each species once, in first-selected order.
func (s Selection) DistinctSpecies() []*Species {
	return DistinctSpecies(s.Rows)
}

// DistinctSpecies returns each species referenced by rows once, in first-selected order.
func DistinctSpecies(rows []SpeciesSelection) []*Species {
	seen := make(map[string]struct{}, len(rows))
	out := make([]*Species, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Species.ID]; ok {
			continue
		}
		seen[row.Species.ID] = struct{}{}
		out = append(out, row.Species)
	}
	return out
}
