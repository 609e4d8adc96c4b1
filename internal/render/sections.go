package render

import (
	"context"

	"github.com/a-h/templ"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/pkg/types"
)

func Intro(intro catalog.Intro) templ.Component {
	return component(func(_ context.Context, h *html) {
		if len(intro.Content) == 0 {
			h.raw("<p>")
			h.text(intro.Description)
			h.raw("</p>")
			return
		}
		for _, b := range intro.Content {
			h.raw(`<div class="intro-block" data-fade><h3>`)
			h.text(b.Heading)
			h.raw("</h3><p>")
			h.text(b.Text)
			h.raw("</p></div>")
		}
	})
}

func Roles(roles []catalog.Role) templ.Component {
	return component(func(_ context.Context, h *html) {
		for _, r := range roles {
			h.raw(`<div class="role-card" data-fade><h3>`)
			h.text(r.Name)
			h.raw("</h3><p>")
			h.text(r.Description)
			h.raw("</p></div>")
		}
	})
}

func Modes(modes []catalog.Mode) templ.Component {
	return component(func(_ context.Context, h *html) {
		for _, m := range modes {
			h.raw(`<div class="mode-card" data-fade><h3>`)
			h.text(m.Name)
			h.raw(`</h3><span class="mode-players">`)
			h.text(m.Players)
			h.raw("</span><p>")
			h.text(m.Description)
			h.raw("</p></div>")
		}
	})
}

func Spells(spells []catalog.Spell) templ.Component {
	return component(func(_ context.Context, h *html) {
		for _, s := range spells {
			h.raw(`<div class="spell-card" data-fade><div class="spell-header"><h3>`)
			h.text(s.Name)
			h.raw(`</h3><span class="spell-cd">`)
			h.text(s.Cooldown)
			h.raw("</span></div><p>")
			h.text(s.Description)
			h.raw("</p></div>")
		}
	})
}

// Regions renders clickable region cards; a click sets the region filter.
func Regions(regions []catalog.Region) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="regions-grid">`)
		for _, r := range regions {
			h.raw(`<div class="region-card" data-fade`)
			h.attr("data-region", r.Name)
			h.raw("><h3>")
			h.text(r.Name)
			h.raw("</h3><p>")
			h.text(r.Description)
			h.raw("</p></div>")
		}
		h.raw("</div>")
	})
}

func Items(items []catalog.Item) templ.Component {
	return component(func(_ context.Context, h *html) {
		for _, it := range items {
			h.raw(`<div class="item-card" data-fade`)
			h.attr("data-item", it.Name)
			h.raw(">")
			if it.Image != "" {
				h.raw("<img")
				h.attr("src", it.Image)
				h.attr("alt", it.Name)
				h.raw(` loading="lazy">`)
			}
			h.raw("<h3>")
			h.text(it.Name)
			h.raw(`</h3><span class="item-cost">`)
			h.text(it.Cost)
			h.raw(`</span><p class="item-stats">`)
			h.text(it.Stats)
			h.raw("</p><p>")
			h.text(it.Description)
			h.raw("</p></div>")
		}
	})
}

// Catalog renders every champion without visitor marks.
func Catalog(cat catalog.Catalog) templ.Component {
	cards := make([]types.ChampionCard, 0, len(cat))
	for _, c := range cat {
		cards = append(cards, types.ChampionCard{
			Name:        c.Name,
			Title:       c.Title,
			Category:    c.Category,
			Region:      c.Region,
			Difficulty:  c.Difficulty,
			Description: c.Description,
			Image:       c.Image,
			Initial:     placeholder(c.Category),
		})
	}
	status := types.ListReady
	if len(cards) == 0 {
		status = types.ListEmpty
	}
	return ChampionGrid(status, cards)
}

func QuizIntro(q catalog.Quiz) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="quiz-intro"><p>`)
		h.text(itoa(len(q.Questions)))
		h.raw(` questions to find your role.</p><button class="quiz-start" data-intent="StartQuiz">Start</button></div>`)
	})
}

func placeholder(category string) string {
	for _, r := range category {
		return string(r)
	}
	return "?"
}
