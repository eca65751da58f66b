package layout

import (
	"fmt"
	"sort"
)

// All selects every matching child rather than a single position.
const All = -1

// Step selects child elements with the given tag. Index is zero-based; All
// (-1 in config files) keeps every match in document order.
type Step struct {
	Tag   string `yaml:"tag"`
	Index int    `yaml:"index"`
}

// Descriptor describes where publication records live in a catalog page
// that carries no ids or classes. Blocks walks from <body> to each record
// block; Cells walks from a block to each row whose text becomes one cell.
type Descriptor struct {
	Name    string `yaml:"name"`
	Version int    `yaml:"version"`
	Blocks  []Step `yaml:"blocks"`
	Cells   []Step `yaml:"cells"`
}

// Nth returns a step selecting the nth child with the given tag.
func Nth(tag string, index int) Step {
	return Step{Tag: tag, Index: index}
}

// Each returns a step selecting every child with the given tag.
func Each(tag string) Step {
	return Step{Tag: tag, Index: All}
}

// Classic is the results page layout the catalog has served so far:
// body > center[0] > table[1] > tr > td > table[0], then within each block
// tr > td[1] > table[0] > tr.
var Classic = Descriptor{
	Name:    "classic",
	Version: 1,
	Blocks: []Step{
		Nth("center", 0),
		Nth("table", 1),
		Each("tr"),
		Each("td"),
		Nth("table", 0),
	},
	Cells: []Step{
		Each("tr"),
		Nth("td", 1),
		Nth("table", 0),
		Each("tr"),
	},
}

var registry = map[string]Descriptor{
	Classic.Name: Classic,
}

// Validate checks that d has a name, both step lists, and usable steps.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor name is empty")
	}
	if len(d.Blocks) == 0 || len(d.Cells) == 0 {
		return fmt.Errorf("descriptor %q must have block and cell steps", d.Name)
	}
	for _, step := range append(append([]Step{}, d.Blocks...), d.Cells...) {
		if step.Tag == "" {
			return fmt.Errorf("descriptor %q has a step with no tag", d.Name)
		}
		if step.Index < All {
			return fmt.Errorf("descriptor %q has invalid index %d for %s", d.Name, step.Index, step.Tag)
		}
	}
	return nil
}

// Register adds or replaces a descriptor under its name.
func Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	registry[d.Name] = d
	return nil
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("unknown layout %q (known: %v)", name, Names())
	}
	return d, nil
}

// Names lists registered descriptor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
