// Package holidays resolves a catalog of holiday definitions against concrete
// Ethiopian calendar years. Fixed entries carry an Ethiopic month/day; movable
// feasts (paschal and lunar dates) are not computed here; they arrive in the
// catalog as externally supplied per-year dates, and their accuracy is only as
// good as that source.
package holidays

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zemenlab/zemen/internal/ethiopic"
)

type Kind string

const (
	KindPublic    Kind = "public"
	KindReligious Kind = "religious"
	KindCultural  Kind = "cultural"
)

// Definition is one catalog entry with an Ethiopic month/day. For fixed
// entries the pair recurs every year; for movable entries it is the concrete
// date in the year it is keyed under.
type Definition struct {
	Title string `yaml:"title"`
	Month int    `yaml:"month"`
	Day   int    `yaml:"day"`
	Kind  Kind   `yaml:"kind"`
}

// Catalog is the full holiday source: fixed annual entries plus movable dates
// keyed by Ethiopian year.
type Catalog struct {
	Fixed   []Definition         `yaml:"fixed"`
	Movable map[int][]Definition `yaml:"movable"`
}

// Occurrence is a holiday resolved onto a concrete date. Recomputed on
// demand, never persisted.
type Occurrence struct {
	Date  ethiopic.Date `json:"date"`
	Title string        `json:"title"`
	Kind  Kind          `json:"kind"`
}

// DefaultCatalog returns the built-in fixed entries: the Ethiopian civil and
// fixed religious days. Movable dates must come from a catalog file.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Fixed: []Definition{
			{Title: "Enkutatash", Month: 1, Day: 1, Kind: KindPublic},
			{Title: "Meskel", Month: 1, Day: 17, Kind: KindReligious},
			{Title: "Gena", Month: 4, Day: 29, Kind: KindReligious},
			{Title: "Timket", Month: 5, Day: 11, Kind: KindReligious},
			{Title: "Adwa Victory Day", Month: 6, Day: 23, Kind: KindPublic},
			{Title: "International Labour Day", Month: 8, Day: 23, Kind: KindPublic},
			{Title: "Patriots' Victory Day", Month: 8, Day: 27, Kind: KindPublic},
			{Title: "Derg Downfall Day", Month: 9, Day: 20, Kind: KindPublic},
		},
	}
}

// Load reads a catalog file and merges it over the built-in defaults. The
// file may add fixed entries and supply movable dates per year.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holiday catalog: %w", err)
	}

	var loaded Catalog
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing holiday catalog: %w", err)
	}

	catalog := DefaultCatalog()
	catalog.Fixed = append(catalog.Fixed, loaded.Fixed...)
	catalog.Movable = loaded.Movable
	return catalog, nil
}

// OccurrencesForYear resolves every catalog entry against the given year and
// returns a flat, de-duplicated, date-sorted list. A fixed entry anchored on
// Pagume 6 only occurs in leap years; it is skipped, not clamped, elsewhere.
func (c *Catalog) OccurrencesForYear(year int) []Occurrence {
	var out []Occurrence
	seen := map[Occurrence]bool{}

	add := func(def Definition) {
		date, err := ethiopic.Of(year, def.Month, def.Day)
		if err != nil {
			return
		}
		occ := Occurrence{Date: date, Title: def.Title, Kind: def.Kind}
		if !seen[occ] {
			seen[occ] = true
			out = append(out, occ)
		}
	}

	for _, def := range c.Fixed {
		add(def)
	}
	for _, def := range c.Movable[year] {
		add(def)
	}

	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Date.Compare(out[j].Date); cmp != 0 {
			return cmp < 0
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// OccurrencesForMonth narrows OccurrencesForYear to a single month.
func (c *Catalog) OccurrencesForMonth(year, month int) []Occurrence {
	var out []Occurrence
	for _, occ := range c.OccurrencesForYear(year) {
		if occ.Date.Month == month {
			out = append(out, occ)
		}
	}
	return out
}
