package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Section string

const (
	SectionIntro     Section = "intro"
	SectionChampions Section = "champions"
	SectionRoles     Section = "roles"
	SectionModes     Section = "modes"
	SectionSpells    Section = "spells"
	SectionRegions   Section = "regions"
	SectionItems     Section = "items"
	SectionQuiz      Section = "quiz"
)

// Sections lists every section in page order.
var Sections = []Section{
	SectionIntro,
	SectionRoles,
	SectionModes,
	SectionSpells,
	SectionRegions,
	SectionItems,
	SectionChampions,
	SectionQuiz,
}

func (s Section) File() string { return string(s) + ".json" }

func ParseSection(name string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// LoadError reports a section that could not be fetched or parsed.
type LoadError struct {
	Section Section
	Err     error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Section, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Content is every loaded section. Failed sections stay at their zero value.
// A published Content is never mutated; loading a section publishes a copy.
type Content struct {
	Intro     Intro
	Champions Catalog
	Roles     []Role
	Modes     []Mode
	Spells    []Spell
	Regions   []Region
	Items     []Item
	Quiz      Quiz

	status map[Section]Status
}

func newContent() *Content {
	c := &Content{status: make(map[Section]Status, len(Sections))}
	for _, s := range Sections {
		c.status[s] = StatusLoading
	}
	return c
}

// Status is StatusLoading for a nil Content. Content assembled by hand
// rather than through Load counts as ready.
func (c *Content) Status(s Section) Status {
	if c == nil {
		return StatusLoading
	}
	if c.status == nil {
		return StatusReady
	}
	st, ok := c.status[s]
	if !ok {
		return StatusLoading
	}
	return st
}

// Ready reports whether section s loaded successfully.
func (c *Content) Ready(s Section) bool { return c.Status(s) == StatusReady }

// settle returns a copy of c with section s marked st and fill applied.
func (c *Content) settle(s Section, st Status, fill func(*Content)) *Content {
	next := *c
	next.status = maps.Clone(c.status)
	next.status[s] = st
	if fill != nil {
		fill(&next)
	}
	return &next
}

// ResolveRegion returns the explicit members of a composite region, or nil
// when the region schema does not declare any.
func (c *Content) ResolveRegion(tag string) []string {
	if c == nil {
		return nil
	}
	for _, r := range c.Regions {
		if r.Name == tag && len(r.Members) > 0 {
			return append([]string(nil), r.Members...)
		}
	}
	return nil
}

func (c *Content) FindItem(name string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	for _, it := range c.Items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

func decode(ctx context.Context, src Source, section Section, v any) error {
	rc, err := src.Open(ctx, section.File())
	if err != nil {
		return &LoadError{Section: section, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return &LoadError{Section: section, Err: fmt.Errorf("%w: %v", ErrUnreachable, err)}
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return &LoadError{Section: section, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return nil
}

// LoadChampions loads the champion catalog. On failure the catalog is nil;
// there is never a partial result.
func LoadChampions(ctx context.Context, src Source) (Catalog, error) {
	cat, _, err := loadChampions(ctx, src)
	return cat, err
}

func loadChampions(ctx context.Context, src Source) (Catalog, []string, error) {
	rc, err := src.Open(ctx, SectionChampions.File())
	if err != nil {
		return nil, nil, &LoadError{Section: SectionChampions, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, &LoadError{Section: SectionChampions, Err: fmt.Errorf("%w: %v", ErrUnreachable, err)}
	}

	// Older fixtures are a bare array instead of {"champions": [...]}.
	var raw []rawChampion
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = sonic.Unmarshal(trimmed, &raw)
	} else {
		var doc struct {
			Champions []rawChampion `json:"champions"`
		}
		err = sonic.Unmarshal(data, &doc)
		raw = doc.Champions
	}
	if err != nil {
		return nil, nil, &LoadError{Section: SectionChampions, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	cat, skipped := buildCatalog(raw)
	return cat, skipped, nil
}

func buildCatalog(raw []rawChampion) (Catalog, []string) {
	cat := make(Catalog, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	var skipped []string
	for i, r := range raw {
		c := r.normalize()
		if c.Name == "" {
			skipped = append(skipped, fmt.Sprintf("record %d has no name", i))
			continue
		}
		if seen[c.Name] {
			skipped = append(skipped, fmt.Sprintf("duplicate champion %q", c.Name))
			continue
		}
		seen[c.Name] = true
		cat = append(cat, c)
	}
	return cat, skipped
}

// loader fetches one section and returns how to fill it into a Content.
// Nothing is filled unless the whole section decoded.
type loader func(context.Context) (func(*Content), error)

func decodeSection[T any](src Source, section Section, fill func(*Content, T)) loader {
	return func(ctx context.Context) (func(*Content), error) {
		var v T
		if err := decode(ctx, src, section, &v); err != nil {
			return nil, err
		}
		return func(c *Content) { fill(c, v) }, nil
	}
}

func loaders(src Source, logger *zap.Logger) map[Section]loader {
	return map[Section]loader{
		SectionIntro: decodeSection(src, SectionIntro, func(c *Content, v Intro) { c.Intro = v }),
		SectionChampions: func(ctx context.Context) (func(*Content), error) {
			cat, skipped, err := loadChampions(ctx, src)
			if err != nil {
				return nil, err
			}
			for _, s := range skipped {
				logger.Warn("skipping champion record", zap.String("reason", s))
			}
			return func(c *Content) { c.Champions = cat }, nil
		},
		SectionRoles: decodeSection(src, SectionRoles, func(c *Content, v struct {
			Roles []Role `json:"roles"`
		}) {
			c.Roles = v.Roles
		}),
		SectionModes: decodeSection(src, SectionModes, func(c *Content, v struct {
			Modes []Mode `json:"modes"`
		}) {
			c.Modes = v.Modes
		}),
		SectionSpells: decodeSection(src, SectionSpells, func(c *Content, v struct {
			Spells []Spell `json:"spells"`
		}) {
			c.Spells = v.Spells
		}),
		SectionRegions: decodeSection(src, SectionRegions, func(c *Content, v struct {
			Regions []Region `json:"regions"`
		}) {
			c.Regions = v.Regions
		}),
		SectionItems: decodeSection(src, SectionItems, func(c *Content, v struct {
			Items []Item `json:"items"`
		}) {
			c.Items = v.Items
		}),
		SectionQuiz: decodeSection(src, SectionQuiz, func(c *Content, v Quiz) { c.Quiz = v }),
	}
}

// Load fetches every section concurrently and returns once all have
// settled. The returned error combines every LoadError.
func Load(ctx context.Context, src Source, logger *zap.Logger) (*Content, error) {
	return load(ctx, src, logger, func(*Content) {})
}

// load runs the section loaders independently. Each one that settles, loaded
// or failed, publishes a new Content, so a slow section never hides the
// others.
func load(ctx context.Context, src Source, logger *zap.Logger, publish func(*Content)) (*Content, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		current = newContent()
		errs    error
	)
	publish(current)

	for section, fetch := range loaders(src, logger) {
		g.Go(func() error {
			fill, err := fetch(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("section load failed", zap.String("section", string(section)), zap.Error(err))
				current = current.settle(section, StatusFailed, nil)
				errs = multierr.Append(errs, err)
			} else {
				current = current.settle(section, StatusReady, fill)
				logger.Debug("section loaded", zap.String("section", string(section)))
			}
			publish(current)
			return nil
		})
	}
	_ = g.Wait()

	return current, errs
}

// Library holds the current content. It is nil, and every section reports
// loading, until a load starts; after that each section flips on its own.
type Library struct {
	current atomic.Pointer[Content]
}

func NewLibrary() *Library { return &Library{} }

func (l *Library) Content() *Content { return l.current.Load() }

func (l *Library) Set(c *Content) { l.current.Store(c) }

// Load publishes each section as soon as it settles and returns once all
// have.
func (l *Library) Load(ctx context.Context, src Source, logger *zap.Logger) error {
	_, err := load(ctx, src, logger, l.Set)
	return err
}
