package core

import (
	"errors"
	"fmt"
	"testing"

	"tankmate/pkg/domain"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"  12 ", 12},
		{"abc", 1},
		{"0", 1},
		{"-2", 1},
		{"2.5", 1},
		{"1000", MaxCount},
		{"1001", MaxCount},
		{"1000000000", MaxCount},
		{"99999999999999999999999", MaxCount},
		{"-99999999999999999999999", 1},
	}
	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResolveSelection(t *testing.T) {
	neon := newSpecies("neon_tetra", "Neon Tetra")
	betta := newSpecies("betta", "Betta")
	lookup := lookupOf(neon, betta)

	sel, err := ResolveSelection(lookup, []domain.SelectionEntry{
		{SpeciesID: "neon_tetra", Count: "3"},
		{SpeciesID: "unknown", Count: "5"},
		{SpeciesID: "betta", Count: "zero"},
		{SpeciesID: "neon_tetra", Count: ""},
	}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(sel.Rows) != 3 {
		t.Fatalf("expected 3 rows with duplicate kept, got %d", len(sel.Rows))
	}
	wantCounts := []int{3, 1, 1}
	for i, row := range sel.Rows {
		if row.Count != wantCounts[i] {
			t.Fatalf("row %d count = %d, want %d", i, row.Count, wantCounts[i])
		}
	}
	if len(sel.Individuals) != 5 {
		t.Fatalf("expected 5 individuals, got %d", len(sel.Individuals))
	}
	if sel.Individuals[0] != neon || sel.Individuals[3] != betta {
		t.Fatalf("individuals must share catalog pointers in row order")
	}
	if distinct := sel.DistinctSpecies(); len(distinct) != 2 {
		t.Fatalf("expected 2 distinct species, got %d", len(distinct))
	}
}

func TestResolveSelectionLimit(t *testing.T) {
	var entries []domain.SelectionEntry
	var species []*domain.Species
	for i := 0; i < 10; i++ {
		sp := newSpecies(fmt.Sprintf("s%d", i), fmt.Sprintf("Species %d", i))
		species = append(species, sp)
		entries = append(entries, domain.SelectionEntry{SpeciesID: sp.ID, Count: "1"})
	}
	entries = append([]domain.SelectionEntry{{SpeciesID: "ghost"}}, entries...)
	sel, err := ResolveSelection(lookupOf(species...), entries, MaxSelectionEntries)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(sel.Rows) != MaxSelectionEntries {
		t.Fatalf("expected %d rows, got %d", MaxSelectionEntries, len(sel.Rows))
	}
	if sel.Rows[0].Species.ID != "s0" || sel.Rows[7].Species.ID != "s7" {
		t.Fatalf("cap must keep the first recognized entries")
	}
}

func TestResolveSelectionEmpty(t *testing.T) {
	_, err := ResolveSelection(lookupOf(), []domain.SelectionEntry{{SpeciesID: "ghost", Count: "2"}}, 0)
	if !errors.Is(err, ErrNoRecognizedSpecies) {
		t.Fatalf("expected ErrNoRecognizedSpecies, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "selection" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "selection: no recognized species selected" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, err := ResolveSelection(lookupOf(), nil, 0); !errors.Is(err, ErrNoRecognizedSpecies) {
		t.Fatalf("expected ErrNoRecognizedSpecies for nil entries, got %v", err)
	}
}

func TestValidationErrorIs(t *testing.T) {
	other := &ValidationError{Field: "selection", Message: "no recognized species selected"}
	if !errors.Is(fmt.Errorf("wrapped: %w", other), ErrNoRecognizedSpecies) {
		t.Fatalf("expected equal validation errors to match")
	}
	if errors.Is(&ValidationError{Field: "profile", Message: "bad"}, ErrNoRecognizedSpecies) {
		t.Fatalf("different validation errors must not match")
	}
	if (&ValidationError{Message: "bare"}).Error() != "bare" {
		t.Fatalf("expected bare message without field")
	}
}

func TestResolveSelectionClampsIndividuals(t *testing.T) {
	neon := newSpecies("neon_tetra", "Neon Tetra")
	sel, err := ResolveSelection(lookupOf(neon), []domain.SelectionEntry{
		{SpeciesID: "neon_tetra", Count: "1000000000"},
		{SpeciesID: "neon_tetra", Count: "2"},
	}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sel.Rows[0].Count != MaxCount {
		t.Fatalf("row count = %d, want %d", sel.Rows[0].Count, MaxCount)
	}
	if len(sel.Individuals) != MaxCount+2 {
		t.Fatalf("expected %d individuals, got %d", MaxCount+2, len(sel.Individuals))
	}
}
