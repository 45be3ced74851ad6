package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed logs.yaml
var bundled []byte

// Location is one place in the game where a story log can be found.
type Location struct {
	Rundown uint8    `yaml:"rundown"`
	Level   string   `yaml:"level"`
	Zones   []uint16 `yaml:"zones"`
	Name    string   `yaml:"name"`
}

// Code renders the expedition code shown in game, e.g. "R1A1".
func (l Location) Code() string {
	return fmt.Sprintf("R%d%s", l.Rundown, l.Level)
}

// Entry is a story log and every location it appears in.
type Entry struct {
	ID        uint32     `yaml:"id"`
	Locations []Location `yaml:"locations"`
}

// Catalog is the immutable story log table. Entries keep dataset order so
// lookups are deterministic when names repeat.
type Catalog struct {
	entries []Entry
}

// New builds a Catalog from entries. The slice is copied.
func New(entries []Entry) *Catalog {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return &Catalog{entries: dup}
}

// Bundled parses the dataset compiled into the binary.
func Bundled() (*Catalog, error) {
	return parse(bundled)
}

// Load reads a catalog from path, or the bundled dataset when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Bundled()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &Catalog{entries: entries}, nil
}

// Entries returns a copy of the catalog entries in dataset order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	dup := make([]Entry, len(c.entries))
	copy(dup, c.entries)
	return dup
}

// Len reports the number of story logs.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entry returns the entry with the given id.
func (c *Catalog) Entry(id uint32) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IDForName returns the id of the first entry with a location named exactly
// name. Unknown names are not an error; most matched text is unrelated.
func (c *Catalog) IDForName(name string) (uint32, bool) {
	if c == nil {
		return 0, false
	}
	for _, e := range c.entries {
		for _, loc := range e.Locations {
			if loc.Name == name {
				return e.ID, true
			}
		}
	}
	return 0, false
}
