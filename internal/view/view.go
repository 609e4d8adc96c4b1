// Package view derives the page snapshot from content and visitor state.
package view

import (
	"unicode/utf8"

	"github.com/DoyleJ11/lol-portal/internal/build"
	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/compare"
	"github.com/DoyleJ11/lol-portal/internal/engine"
	"github.com/DoyleJ11/lol-portal/internal/filter"
	"github.com/DoyleJ11/lol-portal/pkg/types"
)

// Favorites is what the view needs from the favorites store.
type Favorites interface {
	filter.Favorites
	Names() []string
}

// Build computes the snapshot. Version is left for the caller.
func Build(content *catalog.Content, s engine.State, favs Favorites) types.Snapshot {
	snap := types.Snapshot{
		Filter: types.FilterView{
			Category: s.Filter.Category,
			Query:    s.Filter.Query,
			Region:   s.Filter.Region,
		},
		Champions: []types.ChampionCard{},
		Favorites: []string{},
		Compare:   compareView(s.Compare),
		Build:     buildView(s.Build),
		Urf:       s.Urf,
	}
	if favs != nil {
		snap.Favorites = favs.Names()
	}

	switch content.Status(catalog.SectionChampions) {
	case catalog.StatusLoading:
		snap.Status = types.ListLoading
	case catalog.StatusFailed:
		snap.Status = types.ListUnavailable
	default:
		snap.Champions = Cards(content.Champions, s, favs)
		snap.Status = types.ListReady
		if len(snap.Champions) == 0 {
			snap.Status = types.ListEmpty
		}
		for _, c := range filter.Suggest(content.Champions, s.Filter.Query, filter.DefaultSuggestions) {
			snap.Suggestions = append(snap.Suggestions, types.Suggestion{Name: c.Name, Image: c.Image})
		}
	}

	if content.Ready(catalog.SectionQuiz) {
		snap.Quiz = quizView(content.Quiz, s)
	}
	return snap
}

// Cards filters the catalog and marks favorites and compared champions.
func Cards(cat catalog.Catalog, s engine.State, favs filter.Favorites) []types.ChampionCard {
	visible := filter.Apply(cat, s.Filter, favs)
	marked := s.Compare.Marked(cat)

	cards := make([]types.ChampionCard, 0, len(visible))
	for _, c := range visible {
		cards = append(cards, types.ChampionCard{
			Name:        c.Name,
			Title:       c.Title,
			Category:    c.Category,
			Region:      c.Region,
			Difficulty:  c.Difficulty,
			Description: c.Description,
			Image:       c.Image,
			Initial:     initial(c.Category),
			Favorite:    favs != nil && favs.IsFavorite(c.Name),
			Selected:    marked[c.Name],
		})
	}
	return cards
}

func initial(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return string(r)
}

func compareView(sel compare.Selection) types.CompareView {
	v := types.CompareView{
		Slots:  make([]types.CompareSlot, compare.Capacity),
		Active: sel.Len() > 0,
		Ready:  sel.Ready(),
	}
	for i, e := range sel.Entries() {
		v.Slots[i] = types.CompareSlot{Name: e.Name, Image: e.Image, Filled: true}
	}
	return v
}

func buildView(inv build.Inventory) types.BuildView {
	v := types.BuildView{Slots: make([]types.BuildSlot, 0, build.SlotCount), Full: inv.Full()}
	for _, s := range inv.Slots {
		v.Slots = append(v.Slots, types.BuildSlot{Item: s.Item, Image: s.Image, Filled: !s.Empty()})
	}
	return v
}

func quizView(q catalog.Quiz, s engine.State) types.QuizView {
	v := types.QuizView{
		Started: s.Quiz.Started,
		Done:    s.Quiz.Done(q),
		Index:   s.Quiz.Index,
		Total:   len(q.Questions),
	}
	if v.Done {
		v.Result = s.Quiz.Winner()
		return v
	}
	if question, ok := s.Quiz.Current(q); ok {
		v.Question = question.Text
		for _, a := range question.Answers {
			v.Answers = append(v.Answers, a.Text)
		}
	}
	return v
}
