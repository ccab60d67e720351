package core

import (
	"tankmate/pkg/domain"
)

type mapLookup map[string]*domain.Species

func (m mapLookup) Lookup(id string) (*domain.Species, bool) {
	sp, ok := m[id]
	return sp, ok
}

func lookupOf(species ...*domain.Species) mapLookup {
	m := make(mapLookup, len(species))
	for _, sp := range species {
		m[sp.ID] = sp
	}
	return m
}

func newSpecies(id, name string, compat ...string) *domain.Species {
	return &domain.Species{
		ID:            id,
		Name:          name,
		Compatibility: compat,
		Temperature:   domain.DefaultTemperatureRange,
		PH:            domain.DefaultPHRange,
		Hardness:      domain.DefaultHardnessRange,
		Temperament:   domain.DefaultTemperament,
		Diet:          domain.DefaultDiet,
		MinGroupSize:  domain.DefaultGroupSize,
		Image:         domain.DefaultImage,
	}
}

func floatPtr(v float64) *float64 { return &v }

func rowsOf(species ...*domain.Species) []domain.SpeciesSelection {
	rows := make([]domain.SpeciesSelection, 0, len(species))
	for _, sp := range species {
		rows = append(rows, domain.SpeciesSelection{Species: sp, Count: 1})
	}
	return rows
}

func selectionOf(rows ...domain.SpeciesSelection) domain.Selection {
	sel := domain.Selection{Rows: rows}
	for _, row := range rows {
		for i := 0; i < row.Count; i++ {
			sel.Individuals = append(sel.Individuals, row.Species)
		}
	}
	return sel
}
