package catalog

import (
	"math/rand"
	"strconv"
	"strings"
)

type Champion struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Region      string `json:"region"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Catalog is the ordered champion list. It is read-only once loaded.
type Catalog []Champion

func (c Catalog) Find(name string) (Champion, bool) {
	for _, champ := range c {
		if champ.Name == name {
			return champ, true
		}
	}
	return Champion{}, false
}

func (c Catalog) Has(name string) bool {
	_, ok := c.Find(name)
	return ok
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, champ := range c {
		names = append(names, champ.Name)
	}
	return names
}

// Random picks one champion, false on an empty catalog.
func (c Catalog) Random(rng *rand.Rand) (Champion, bool) {
	if len(c) == 0 {
		return Champion{}, false
	}
	return c[rng.Intn(len(c))], true
}

type Role struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Mode struct {
	Name        string `json:"name"`
	Players     string `json:"players"`
	Description string `json:"description"`
}

type Spell struct {
	Name        string `json:"name"`
	Cooldown    string `json:"cooldown"`
	Description string `json:"description"`
}

// Region is a lore region. Members lists the underlying champion regions
// when the region is a composite like "Piltover & Zaun".
type Region struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members,omitempty"`
}

type Item struct {
	Name        string `json:"name"`
	Cost        string `json:"cost"`
	Stats       string `json:"stats"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type IntroBlock struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

type Intro struct {
	Description string       `json:"description"`
	Content     []IntroBlock `json:"content"`
}

type Answer struct {
	Text string `json:"text"`
	Role string `json:"role"`
}

type Question struct {
	Text    string   `json:"text"`
	Answers []Answer `json:"answers"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

// rawChampion accepts both "category" and the older "role" key.
type rawChampion struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Role        string `json:"role"`
	Region      string `json:"region"`
	Difficulty  any    `json:"difficulty"`
	Description string `json:"description"`
	Short       string `json:"shortDescription"`
	Image       string `json:"image"`
}

func (r rawChampion) normalize() Champion {
	c := Champion{
		Name:        strings.TrimSpace(r.Name),
		Title:       strings.TrimSpace(r.Title),
		Category:    strings.TrimSpace(r.Category),
		Region:      strings.TrimSpace(r.Region),
		Difficulty:  difficultyString(r.Difficulty),
		Description: strings.TrimSpace(r.Description),
		Image:       strings.TrimSpace(r.Image),
	}
	if c.Category == "" {
		c.Category = strings.TrimSpace(r.Role)
	}
	if c.Description == "" {
		c.Description = strings.TrimSpace(r.Short)
	}
	return c
}

func difficultyString(v any) string {
	switch d := v.(type) {
	case string:
		return strings.TrimSpace(d)
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	default:
		return ""
	}
}
