package locations

import (
	"errors"
	"fmt"
	"strings"
)

// Settlement is a locality inside a region with its road distance from the hub.
type Settlement struct {
	Name     string `json:"name" yaml:"name"`
	Distance int    `json:"distance" yaml:"distance"`
}

// Region is a state-level area. BaseDistance applies when no settlement matches.
type Region struct {
	Name         string       `json:"name" yaml:"name"`
	BaseDistance int          `json:"baseDistance" yaml:"baseDistance"`
	Settlements  []Settlement `json:"settlements" yaml:"settlements"`
}

// RegionSummary is the listing row served by the locations endpoint.
type RegionSummary struct {
	State        string   `json:"state"`
	Cities       []string `json:"cities"`
	BaseDistance int      `json:"baseDistance"`
}

// Table is an immutable lookup over regions. Build it with NewTable; it is
// safe for concurrent readers.
type Table struct {
	order   []string
	regions map[string]Region
}

// NewTable copies regions into a read-only table after validating them.
func NewTable(regions []Region) (*Table, error) {
	if len(regions) == 0 {
		return nil, errors.New("locations: no regions")
	}
	t := &Table{
		order:   make([]string, 0, len(regions)),
		regions: make(map[string]Region, len(regions)),
	}
	for _, r := range regions {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, errors.New("locations: region with empty name")
		}
		if _, dup := t.regions[name]; dup {
			return nil, fmt.Errorf("locations: duplicate region %q", name)
		}
		if r.BaseDistance < 0 {
			return nil, fmt.Errorf("locations: region %q has negative base distance", name)
		}
		seen := make(map[string]struct{}, len(r.Settlements))
		settlements := make([]Settlement, 0, len(r.Settlements))
		for _, s := range r.Settlements {
			key := strings.ToLower(strings.TrimSpace(s.Name))
			if key == "" {
				return nil, fmt.Errorf("locations: region %q has a settlement with empty name", name)
			}
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("locations: duplicate settlement %q in %q", s.Name, name)
			}
			if s.Distance < 0 {
				return nil, fmt.Errorf("locations: settlement %q in %q has negative distance", s.Name, name)
			}
			seen[key] = struct{}{}
			settlements = append(settlements, Settlement{Name: strings.TrimSpace(s.Name), Distance: s.Distance})
		}
		t.order = append(t.order, name)
		t.regions[name] = Region{Name: name, BaseDistance: r.BaseDistance, Settlements: settlements}
	}
	return t, nil
}

// Regions returns region names in declared order.
func (t *Table) Regions() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Region returns a copy of the named region.
func (t *Table) Region(name string) (Region, bool) {
	r, ok := t.lookup(name)
	if !ok {
		return Region{}, false
	}
	r.Settlements = t.Settlements(name)
	return r, true
}

// Settlements lists the settlements of a region. Unknown regions and regions
// without explicit settlements both yield an empty slice.
func (t *Table) Settlements(region string) []Settlement {
	r, ok := t.lookup(region)
	if !ok {
		return []Settlement{}
	}
	out := make([]Settlement, len(r.Settlements))
	copy(out, r.Settlements)
	return out
}

// lookup returns the stored region; its Settlements must not leave the table.
func (t *Table) lookup(name string) (Region, bool) {
	r, ok := t.regions[strings.TrimSpace(name)]
	return r, ok
}

// Resolve finds the distance for a destination. The boolean is false only
// when the region is unknown. An empty or unmatched settlement resolves to the
// region itself at its base distance.
func (t *Table) Resolve(region, settlement string) (Settlement, bool) {
	r, ok := t.lookup(region)
	if !ok {
		return Settlement{}, false
	}
	if want := strings.TrimSpace(settlement); want != "" {
		for _, s := range r.Settlements {
			if strings.EqualFold(s.Name, want) {
				return s, true
			}
		}
	}
	return Settlement{Name: r.Name, Distance: r.BaseDistance}, true
}

// IsServiceable reports whether Resolve would succeed.
func (t *Table) IsServiceable(region, settlement string) bool {
	_, ok := t.Resolve(region, settlement)
	return ok
}

// Summaries returns one row per region in declared order.
func (t *Table) Summaries() []RegionSummary {
	out := make([]RegionSummary, 0, len(t.order))
	for _, name := range t.order {
		r := t.regions[name]
		cities := make([]string, 0, len(r.Settlements))
		for _, s := range r.Settlements {
			cities = append(cities, s.Name)
		}
		out = append(out, RegionSummary{State: r.Name, Cities: cities, BaseDistance: r.BaseDistance})
	}
	return out
}
