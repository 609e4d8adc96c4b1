// Package render holds the HTML components for page sections and widgets.
package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
)

// skeletonCounts is how many placeholder cards each section shows while
// loading.
var skeletonCounts = map[catalog.Section]int{
	catalog.SectionRoles:     4,
	catalog.SectionModes:     3,
	catalog.SectionSpells:    2,
	catalog.SectionRegions:   6,
	catalog.SectionChampions: 8,
	catalog.SectionItems:     6,
}

// html accumulates output and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *html) text(s string) { h.raw(templ.EscapeString(s)) }

func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

func itoa(n int) string { return strconv.Itoa(n) }

func cardClass(section catalog.Section) string {
	switch section {
	case catalog.SectionRoles:
		return "role-card"
	case catalog.SectionModes:
		return "mode-card"
	case catalog.SectionSpells:
		return "spell-card"
	case catalog.SectionRegions:
		return "region-card"
	case catalog.SectionChampions:
		return "champion-card"
	case catalog.SectionItems:
		return "item-card"
	}
	return "card"
}

// Skeleton is the placeholder shown while a section loads.
func Skeleton(section catalog.Section) templ.Component {
	return component(func(_ context.Context, h *html) {
		n, ok := skeletonCounts[section]
		if !ok {
			n = 3
		}
		h.raw(`<div class="skeleton-group" aria-busy="true"`)
		h.attr("data-section", string(section))
		h.raw(">")
		for range n {
			h.raw(`<div class="`, cardClass(section), ` skeleton skeleton-card"></div>`)
		}
		h.raw("</div>")
	})
}

// Unavailable replaces a section whose data failed to load.
func Unavailable(section catalog.Section) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<p class="section-unavailable"`)
		h.attr("data-section", string(section))
		h.raw(">Content unavailable.</p>")
	})
}

// Section renders one static section, or its skeleton or unavailable notice.
func Section(content *catalog.Content, section catalog.Section) templ.Component {
	switch content.Status(section) {
	case catalog.StatusLoading:
		return Skeleton(section)
	case catalog.StatusFailed:
		return Unavailable(section)
	}

	switch section {
	case catalog.SectionIntro:
		return Intro(content.Intro)
	case catalog.SectionRoles:
		return Roles(content.Roles)
	case catalog.SectionModes:
		return Modes(content.Modes)
	case catalog.SectionSpells:
		return Spells(content.Spells)
	case catalog.SectionRegions:
		return Regions(content.Regions)
	case catalog.SectionItems:
		return Items(content.Items)
	case catalog.SectionChampions:
		return Catalog(content.Champions)
	case catalog.SectionQuiz:
		return QuizIntro(content.Quiz)
	}
	return Unavailable(section)
}
