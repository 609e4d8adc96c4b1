package render

import (
	"context"

	"github.com/a-h/templ"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/compare"
	"github.com/DoyleJ11/lol-portal/pkg/types"
)

const EmptyListText = "No champion found."

// ChampionGrid renders the visible list, telling loading apart from empty.
func ChampionGrid(status types.ListStatus, cards []types.ChampionCard) templ.Component {
	return component(func(ctx context.Context, h *html) {
		switch status {
		case types.ListLoading:
			h.component(ctx, Skeleton(catalog.SectionChampions))
			return
		case types.ListUnavailable:
			h.component(ctx, Unavailable(catalog.SectionChampions))
			return
		}

		h.raw(`<div class="champion-grid" id="champion-grid">`)
		if len(cards) == 0 {
			h.raw(`<p class="empty-list">`, EmptyListText, "</p>")
		}
		for _, c := range cards {
			h.component(ctx, ChampionCard(c))
		}
		h.raw("</div>")
	})
}

func ChampionCard(c types.ChampionCard) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="champion-card visible"`)
		h.attr("data-name", c.Name)
		h.raw(">")

		h.raw(`<button class="compare-btn`)
		if c.Selected {
			h.raw(" active")
		}
		h.raw(`" aria-label="Compare" title="Compare" data-intent="ToggleCompare"`)
		h.attr("data-value", c.Name)
		h.raw("></button>")

		h.raw(`<button class="fav-btn`)
		if c.Favorite {
			h.raw(" active")
		}
		h.raw(`" aria-label="Add to favorites" data-intent="ToggleFavorite"`)
		h.attr("data-value", c.Name)
		h.raw("></button>")

		h.raw(`<div class="card-image-container">`)
		if c.Image != "" {
			h.raw("<img")
			h.attr("src", c.Image)
			h.attr("alt", c.Name)
			h.raw(` loading="lazy" onerror="this.remove()">`)
		}
		h.raw(`<div class="placeholder-icon">`)
		h.text(c.Initial)
		h.raw("</div></div>")

		h.raw(`<div class="champion-info"><h3>`)
		h.text(c.Name)
		h.raw(`</h3><p class="champion-title">`)
		h.text(c.Title)
		h.raw(`</p><div class="champion-badges">`)
		badge(h, "role", c.Category)
		badge(h, "difficulty", c.Difficulty)
		badge(h, "region", c.Region)
		h.raw(`</div><p class="champion-desc">`)
		h.text(c.Description)
		h.raw("</p></div></div>")
	})
}

func badge(h *html, kind, value string) {
	if value == "" {
		return
	}
	h.raw(`<span class="badge"`)
	h.attr("data-type", kind)
	h.raw(">")
	h.text(value)
	h.raw("</span>")
}

// CompareWidget is the floating two-slot comparator bar.
func CompareWidget(v types.CompareView) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="compare-widget`)
		if v.Active {
			h.raw(" active")
		}
		h.raw(`" id="compare-widget">`)
		for i, s := range v.Slots {
			h.raw(`<div class="compare-slot" id="slot-`, itoa(i+1), `">`)
			if s.Filled {
				h.raw("<img")
				h.attr("src", s.Image)
				h.attr("alt", s.Name)
				h.raw(">")
			}
			h.raw("</div>")
		}
		h.raw(`<button class="compare-go"`)
		if !v.Ready {
			h.raw(" disabled")
		}
		h.raw(`>Compare</button><button class="compare-clear" data-intent="ClearCompare">Clear</button></div>`)
	})
}

// Matchup renders the side-by-side comparison modal body.
func Matchup(m compare.Matchup) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="vs-container">`)
		side(h, m.Left)
		h.raw(`<div class="vs-badge">VS</div>`)
		side(h, m.Right)
		h.raw("</div>")
	})
}

func side(h *html, s compare.Side) {
	h.raw(`<div class="vs-card"><img`)
	h.attr("src", catalog.SplashURL(s.Champion.Name, 0))
	h.attr("alt", s.Champion.Name)
	h.raw("><h3>")
	h.text(s.Champion.Name)
	h.raw("</h3><p>")
	h.text(s.Champion.Title)
	h.raw("</p>")
	stat(h, "Attack", s.Stats.Attack)
	stat(h, "Defense", s.Stats.Defense)
	stat(h, "Magic", s.Stats.Magic)
	h.raw("</div>")
}

func stat(h *html, label string, value int) {
	h.raw(`<div class="stat-row"><span>`, label, `</span><div class="stat-bar"><div class="stat-fill" style="width: `, itoa(value), `%"></div></div></div>`)
}

func BuildPanel(v types.BuildView) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="build-slots`)
		if v.Full {
			h.raw(" full")
		}
		h.raw(`">`)
		for i, s := range v.Slots {
			h.raw(`<div class="build-slot" data-intent="RemoveItem" data-index="`, itoa(i), `">`)
			if s.Filled {
				h.raw("<img")
				h.attr("src", s.Image)
				h.attr("alt", s.Item)
				h.attr("title", s.Item)
				h.raw(">")
			}
			h.raw("</div>")
		}
		h.raw(`<button class="build-clear" data-intent="ClearBuild">Clear</button></div>`)
	})
}

func QuizPanel(v types.QuizView) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="quiz-panel">`)
		switch {
		case !v.Started:
			h.raw(`<button class="quiz-start" data-intent="StartQuiz">Start</button>`)
		case v.Done:
			h.raw(`<p class="quiz-result">Your role: <strong>`)
			h.text(v.Result)
			h.raw(`</strong></p><button class="quiz-restart" data-intent="RestartQuiz">Try again</button>`)
		default:
			h.raw(`<p class="quiz-progress">`, itoa(v.Index+1), " / ", itoa(v.Total), `</p><h3>`)
			h.text(v.Question)
			h.raw("</h3>")
			for i, a := range v.Answers {
				h.raw(`<button class="quiz-answer" data-intent="AnswerQuiz" data-index="`, itoa(i), `">`)
				h.text(a)
				h.raw("</button>")
			}
		}
		h.raw("</div>")
	})
}

// Page renders one visitor's interactive widgets.
func Page(s types.Snapshot) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="page`)
		if s.Urf {
			h.raw(" urf-mode")
		}
		h.raw(`" data-version="`, itoa(s.Version), `">`)
		if s.Filter.Region != "" {
			h.raw(`<div class="region-status">Region: <strong>`)
			h.text(s.Filter.Region)
			h.raw(`</strong> <span class="clear-region" data-intent="ClearRegion">&#x2716;</span></div>`)
		}
		h.component(ctx, ChampionGrid(s.Status, s.Champions))
		h.component(ctx, CompareWidget(s.Compare))
		h.component(ctx, BuildPanel(s.Build))
		h.component(ctx, QuizPanel(s.Quiz))
		h.raw("</div>")
	})
}
