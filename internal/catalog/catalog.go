// Package catalog normalizes raw species records into canonical domain
// species and exposes them as immutable, per-load catalog snapshots.
package catalog

import (
	"strings"

	"tankmate/pkg/domain"
)

// DefaultPageSize is the number of search results returned per page.
const DefaultPageSize = 20

// Catalog is an immutable snapshot of normalized species keyed by id.
// A Catalog is safe for concurrent reads.
type Catalog struct {
	ordered []*domain.Species
	byID    map[string]*domain.Species
}

// New builds a catalog from normalized species. When ids repeat, the last
// species wins while keeping the position of the first occurrence.
func New(species []domain.Species) *Catalog {
	c := &Catalog{
		ordered: make([]*domain.Species, 0, len(species)),
		byID:    make(map[string]*domain.Species, len(species)),
	}
	position := make(map[string]int, len(species))
	for i := range species {
		sp := species[i]
		if idx, ok := position[sp.ID]; ok {
			c.ordered[idx] = &sp
			c.byID[sp.ID] = &sp
			continue
		}
		position[sp.ID] = len(c.ordered)
		c.ordered = append(c.ordered, &sp)
		c.byID[sp.ID] = &sp
	}
	return c
}

// FromRecords normalizes raw records and builds a catalog from the result.
func FromRecords(records []Record) *Catalog {
	return New(Normalize(records))
}

// Lookup returns the species for id. The returned pointer is shared and must
// be treated as read-only.
func (c *Catalog) Lookup(id string) (*domain.Species, bool) {
	if c == nil {
		return nil, false
	}
	sp, ok := c.byID[id]
	return sp, ok
}

// Len returns the number of distinct species.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ordered)
}

// List returns copies of all species in catalog order.
func (c *Catalog) List() []domain.Species {
	if c == nil {
		return nil
	}
	out := make([]domain.Species, 0, len(c.ordered))
	for _, sp := range c.ordered {
		out = append(out, *sp)
	}
	return out
}

// Records renders the catalog back into canonical records.
func (c *Catalog) Records() []Record {
	species := c.List()
	out := make([]Record, 0, len(species))
	for _, sp := range species {
		out = append(out, ToRecord(sp))
	}
	return out
}

// SearchItem is a lightweight id/label pair for selection widgets.
type SearchItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items []SearchItem `json:"items"`
	More  bool         `json:"more"`
	Total int          `json:"total"`
}

// Search returns species whose name contains query (case-insensitive).
// Pages are 1-based; page < 1 is treated as 1 and perPage < 1 as DefaultPageSize.
func (c *Catalog) Search(query string, page, perPage int) SearchPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var matches []*domain.Species
	if c != nil {
		for _, sp := range c.ordered {
			if q == "" || strings.Contains(strings.ToLower(sp.Name), q) {
				matches = append(matches, sp)
			}
		}
	}
	start := (page - 1) * perPage
	end := start + perPage
	result := SearchPage{Items: []SearchItem{}, Total: len(matches)}
	if start >= len(matches) {
		return result
	}
	if end > len(matches) {
		end = len(matches)
	}
	for _, sp := range matches[start:end] {
		result.Items = append(result.Items, SearchItem{ID: sp.ID, Text: sp.Name})
	}
	result.More = end < len(matches)
	return result
}
