// Package filter derives the visible champion list from the catalog and the
// visitor's filter selection. Everything here is pure.
package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
)

const (
	CategoryAll       = "all"
	CategoryFavorites = "favorites"
)

// CompositeSeparator joins the parts of a composite region tag.
const CompositeSeparator = "&"

const DefaultSuggestions = 5

// State is the three independent selectors. The zero value shows everything.
type State struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	Region   string `json:"region,omitempty"`
	// RegionMembers overrides the split of Region when the region schema
	// declares its members explicitly.
	RegionMembers []string `json:"region_members,omitempty"`
}

func NewState() State { return State{Category: CategoryAll} }

// Favorites is the membership test the favorites category needs.
type Favorites interface {
	IsFavorite(name string) bool
}

// Apply keeps the champions matching all three predicates, in catalog order.
func Apply(cat catalog.Catalog, st State, favs Favorites) []catalog.Champion {
	query := fold(st.Query)
	regions := regionParts(st)

	out := make([]catalog.Champion, 0, len(cat))
	for _, c := range cat {
		if !matchesCategory(c, st.Category, favs) {
			continue
		}
		if query != "" && !strings.Contains(fold(c.Name), query) {
			continue
		}
		if regions != nil && !slices.Contains(regions, c.Region) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesCategory(c catalog.Champion, category string, favs Favorites) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryFavorites:
		return favs != nil && favs.IsFavorite(c.Name)
	default:
		return c.Category == category
	}
}

// regionParts is nil when no region is selected.
func regionParts(st State) []string {
	if strings.TrimSpace(st.Region) == "" {
		return nil
	}
	if len(st.RegionMembers) > 0 {
		return st.RegionMembers
	}
	if strings.Contains(st.Region, CompositeSeparator) {
		return SplitComposite(st.Region)
	}
	return []string{st.Region}
}

// SplitComposite turns "Piltover & Zaun" into [Piltover Zaun].
func SplitComposite(tag string) []string {
	parts := strings.Split(tag, CompositeSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Suggest returns up to limit champions whose name starts with query.
func Suggest(cat catalog.Catalog, query string, limit int) []catalog.Champion {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := fold(query)
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	var out []catalog.Champion
	for _, c := range cat {
		if strings.HasPrefix(fold(c.Name), q) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// fold normalizes to NFKC and case folds. Whitespace is kept, so " " only
// matches names containing a space. A Caser keeps state, so each call gets
// its own.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFKC.String(s))
}
