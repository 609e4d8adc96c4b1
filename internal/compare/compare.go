package compare

import (
	"errors"
	"math/rand"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
)

// Capacity is the number of champions compared side by side.
const Capacity = 2

var ErrNotReady = errors.New("comparison needs two champions")
var ErrNotFound = errors.New("champion not in catalog")

type Entry struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Selection is an ordered set of at most Capacity entries. Methods return a
// new Selection and never modify the receiver's backing array.
type Selection struct {
	entries []Entry
}

func (s Selection) Len() int { return len(s.entries) }

// Ready reports whether exactly two champions are selected.
func (s Selection) Ready() bool { return len(s.entries) == Capacity }

func (s Selection) Entries() []Entry { return append([]Entry(nil), s.entries...) }

func (s Selection) Names() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Name)
	}
	return out
}

func (s Selection) Contains(name string) bool { return s.index(name) != -1 }

func (s Selection) index(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Toggle removes name when selected. Otherwise it appends it, first evicting
// the oldest entry when full. evicted is the name pushed out, if any.
func (s Selection) Toggle(name, image string) (next Selection, evicted string) {
	if i := s.index(name); i != -1 {
		entries := make([]Entry, 0, len(s.entries)-1)
		entries = append(entries, s.entries[:i]...)
		entries = append(entries, s.entries[i+1:]...)
		return Selection{entries: entries}, ""
	}

	entries := make([]Entry, 0, Capacity)
	kept := s.entries
	if len(kept) >= Capacity {
		evicted = kept[0].Name
		kept = kept[len(kept)-Capacity+1:]
	}
	entries = append(entries, kept...)
	entries = append(entries, Entry{Name: name, Image: image})
	return Selection{entries: entries}, evicted
}

func (s Selection) Clear() Selection { return Selection{} }

// Marked is the set of catalog champions shown as selected. It is derived
// from the selection each time so the marks cannot drift.
func (s Selection) Marked(cat catalog.Catalog) map[string]bool {
	marked := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		if cat.Has(e.Name) {
			marked[e.Name] = true
		}
	}
	return marked
}

type Stats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Magic   int `json:"magic"`
}

var baseStats = map[string]Stats{
	"Fighter":  {Attack: 80, Defense: 60, Magic: 20},
	"Mage":     {Attack: 30, Defense: 30, Magic: 95},
	"Assassin": {Attack: 95, Defense: 20, Magic: 40},
	"Tank":     {Attack: 40, Defense: 90, Magic: 30},
	"Support":  {Attack: 20, Defense: 50, Magic: 70},
	"Marksman": {Attack: 90, Defense: 20, Magic: 10},
}

var defaultStats = Stats{Attack: 50, Defense: 50, Magic: 50}

// StatsFor returns the display stats for a category with up to 9 points of
// variance, capped at 100.
func StatsFor(category string, rng *rand.Rand) Stats {
	base, ok := baseStats[category]
	if !ok {
		base = defaultStats
	}
	return Stats{
		Attack:  min(100, base.Attack+rng.Intn(10)),
		Defense: min(100, base.Defense+rng.Intn(10)),
		Magic:   min(100, base.Magic+rng.Intn(10)),
	}
}

type Side struct {
	Champion catalog.Champion `json:"champion"`
	Stats    Stats            `json:"stats"`
}

type Matchup struct {
	Left  Side `json:"left"`
	Right Side `json:"right"`
}

// BuildMatchup resolves a ready selection against the catalog.
func BuildMatchup(cat catalog.Catalog, s Selection, rng *rand.Rand) (Matchup, error) {
	if !s.Ready() {
		return Matchup{}, ErrNotReady
	}
	left, ok := cat.Find(s.entries[0].Name)
	if !ok {
		return Matchup{}, ErrNotFound
	}
	right, ok := cat.Find(s.entries[1].Name)
	if !ok {
		return Matchup{}, ErrNotFound
	}
	return Matchup{
		Left:  Side{Champion: left, Stats: StatsFor(left.Category, rng)},
		Right: Side{Champion: right, Stats: StatsFor(right.Category, rng)},
	}, nil
}
