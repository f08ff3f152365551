package regions

import "strings"

// Composite is a named group of region labels treated as one selectable unit.
// The stored rosters spell the same cross-border territory several ways, so a
// composite carries every variant and queries fan out across all of them.
type Composite struct {
	Name    string
	Aliases []string
}

// Table holds the composite regions known at startup. It is immutable after
// construction; lookups never mutate it.
type Table struct {
	composites []Composite
	byAlias    map[string]int
}

// NewTable builds a lookup table from the given composites. Alias matching is
// case-insensitive via strings.ToLower on both sides.
func NewTable(composites []Composite) *Table {
	t := &Table{
		composites: composites,
		byAlias:    make(map[string]int),
	}
	for i, c := range composites {
		for _, alias := range c.Aliases {
			t.byAlias[strings.ToLower(strings.TrimSpace(alias))] = i
		}
	}
	return t
}

// Default returns the built-in composite table. Cyprus appears in the roster
// data under several spellings of the same label and is served as a single
// selectable "country".
func Default() *Table {
	return NewTable([]Composite{
		{
			Name:    "Kıbrıs",
			Aliases: []string{"Kıbrıs", "Kibris", "KIBRIS", "Kıbrıs (KKTC)"},
		},
	})
}

// Expand maps a city label to the set of labels to query. For a label that
// matches a composite alias it returns the composite's full ordered alias
// list; otherwise it returns the label alone.
func (t *Table) Expand(label string) []string {
	idx, ok := t.byAlias[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return []string{label}
	}
	aliases := t.composites[idx].Aliases
	out := make([]string, len(aliases))
	copy(out, aliases)
	return out
}

// IsMember reports whether a label belongs to any composite region.
func (t *Table) IsMember(label string) bool {
	_, ok := t.byAlias[strings.ToLower(strings.TrimSpace(label))]
	return ok
}
