package fragment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"chall/internal/surface"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	RegionAbout      surface.Region = "about-content"
	RegionSkills     surface.Region = "skills-content"
	RegionExperience surface.Region = "experience-content"
)

const FallbackNotice = "Content temporarily unavailable. Please refresh the page."

const fallbackHTML = `<div class="content-error"><p>` + FallbackNotice + `</p></div>`

func DefaultSections() map[surface.Region]string {
	return map[surface.Region]string{
		RegionAbout:      "content/about.html",
		RegionSkills:     "content/skills.html",
		RegionExperience: "content/experience.html",
	}
}

func DefaultPreload() []string {
	return []string{"content/about.html", "content/skills.html"}
}

// NewPolicy is the sanitizer applied to every fetched fragment.
func NewPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("section", "figure", "figcaption")
	policy.AllowAttrs("class").OnElements("div", "section", "p", "span", "ul", "li", "figure", "figcaption")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

type Option func(*Loader)

func WithCache(c *Cache) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache = c
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithPolicy(p *bluemonday.Policy) Option {
	return func(l *Loader) {
		if p != nil {
			l.policy = p
		}
	}
}

// Loader fills surface regions with fetched fragments.
type Loader struct {
	fetcher Fetcher
	surface surface.Surface
	cache   *Cache
	policy  *bluemonday.Policy
	logger  *zap.Logger

	mu     sync.Mutex
	loaded map[surface.Region]bool
}

func NewLoader(fetcher Fetcher, s surface.Surface, opts ...Option) *Loader {
	l := &Loader{
		fetcher: fetcher,
		surface: s,
		cache:   NewCache(),
		policy:  NewPolicy(),
		logger:  zap.NewNop(),
		loaded:  make(map[surface.Region]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load writes the fragment at path into region. On failure the region
// receives the fallback notice and the error is returned.
func (l *Loader) Load(ctx context.Context, region surface.Region, path string) (string, error) {
	content, err := l.fetch(ctx, path)
	if err != nil {
		l.logger.Error("failed to load fragment",
			zap.String("region", string(region)),
			zap.String("path", path),
			zap.Error(err))
		l.surface.Write(region, fallbackHTML)
		return "", fmt.Errorf("region %s: %w", region, err)
	}

	l.surface.Write(region, content)
	l.mu.Lock()
	l.loaded[region] = true
	l.mu.Unlock()
	return content, nil
}

// LoadOnDemand loads path into region unless the region already holds
// content. It reports whether a load happened.
func (l *Loader) LoadOnDemand(ctx context.Context, region surface.Region, path string) (bool, error) {
	if l.IsLoaded(region) {
		return false, nil
	}
	_, err := l.Load(ctx, region, path)
	return true, err
}

type BatchResult struct {
	Loaded []surface.Region
	Failed map[surface.Region]error
}

// Err joins the failures in region order, or returns nil.
func (r BatchResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	regions := make([]surface.Region, 0, len(r.Failed))
	for region := range r.Failed {
		regions = append(regions, region)
	}
	slices.Sort(regions)

	errs := make([]error, len(regions))
	for i, region := range regions {
		errs[i] = r.Failed[region]
	}
	return errors.Join(errs...)
}

// LoadBatch loads every section in parallel. A failing section never
// cancels its siblings.
func (l *Loader) LoadBatch(ctx context.Context, sections map[surface.Region]string) BatchResult {
	var (
		g   errgroup.Group
		mu  sync.Mutex
		res = BatchResult{Failed: make(map[surface.Region]error)}
	)

	for region, path := range sections {
		g.Go(func() error {
			_, err := l.Load(ctx, region, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[region] = err
			} else {
				res.Loaded = append(res.Loaded, region)
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(res.Loaded)
	return res
}

// Preload warms the cache in the background. The returned channel is
// closed once every path has been attempted.
func (l *Loader) Preload(ctx context.Context, paths []string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var g errgroup.Group
		for _, path := range paths {
			g.Go(func() error {
				if _, err := l.fetch(ctx, path); err != nil {
					l.logger.Warn("preload failed", zap.String("path", path), zap.Error(err))
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return done
}

func (l *Loader) IsLoaded(region surface.Region) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded[region]
}

// ClearCache drops cached content and forgets which regions are loaded.
func (l *Loader) ClearCache() {
	l.cache.Clear()
	l.mu.Lock()
	clear(l.loaded)
	l.mu.Unlock()
}

func (l *Loader) fetch(ctx context.Context, path string) (string, error) {
	return l.cache.load(ctx, path, func(ctx context.Context) (string, error) {
		raw, err := l.fetcher.Fetch(ctx, path)
		if err != nil {
			return "", err
		}
		return l.policy.Sanitize(raw), nil
	})
}
