// Package gifsearch holds the search-as-you-type logic of the GIF screen.
// Results come from an in-memory catalogue; there is no network or rendering.
package gifsearch

import (
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"

	"github.com/xinjiayu/rxlite"
)

// ErrInvalidQuery is returned for queries the catalogue refuses to search.
var ErrInvalidQuery = errors.New("gifsearch: invalid query")

// Gif is one search result.
type Gif struct {
	ID    string
	Title string
	URL   string
	Tags  []string
}

// Searcher looks up GIFs. Search emits exactly one result slice and completes, or fails.
type Searcher interface {
	Search(query string) rxlite.Observable
}

// CatalogSearcher answers queries from a fixed catalogue after a simulated latency.
type CatalogSearcher struct {
	catalog   []Gif
	scheduler rxlite.Scheduler
	latency   time.Duration
	fault     error
	searches  int
}

// CatalogOption configures a CatalogSearcher.
type CatalogOption func(s *CatalogSearcher)

// WithLatency delays every answer by d on the searcher's scheduler.
func WithLatency(d time.Duration) CatalogOption {
	return func(s *CatalogSearcher) {
		s.latency = d
	}
}

// WithFault makes every search fail with err.
func WithFault(err error) CatalogOption {
	return func(s *CatalogSearcher) {
		s.fault = err
	}
}

// NewCatalogSearcher returns a searcher over catalog.
func NewCatalogSearcher(catalog []Gif, scheduler rxlite.Scheduler, opts ...CatalogOption) *CatalogSearcher {
	s := &CatalogSearcher{catalog: catalog, scheduler: scheduler}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Searches is the number of searches that reached the catalogue.
func (s *CatalogSearcher) Searches() int {
	return s.searches
}

// Search matches query against titles and tags, case-insensitively.
func (s *CatalogSearcher) Search(query string) rxlite.Observable {
	return rxlite.Create(func(emitter rxlite.Emitter) rxlite.Disposable {
		s.searches++
		return s.scheduler.ScheduleWithDelay(func() {
			if s.fault != nil {
				emitter.OnError(s.fault)
				return
			}
			if strings.TrimSpace(query) == "" || strings.ContainsAny(query, "%*?") {
				emitter.OnError(errors.Wrapf(ErrInvalidQuery, "%q", query))
				return
			}
			emitter.OnNext(s.match(query))
			emitter.OnComplete()
		}, s.latency)
	})
}

func (s *CatalogSearcher) match(query string) []Gif {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]Gif, 0)
	for _, gif := range s.catalog {
		if strings.Contains(strings.ToLower(gif.Title), needle) {
			results = append(results, gif)
			continue
		}
		for _, tag := range gif.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				results = append(results, gif)
				break
			}
		}
	}
	return results
}

// CachedSearcher memoizes successful results of another searcher for a fixed TTL.
type CachedSearcher struct {
	next  Searcher
	cache *ttlcache.Cache[string, []Gif]
}

// NewCachedSearcher wraps next with a cache whose entries live for ttl.
func NewCachedSearcher(next Searcher, ttl time.Duration) *CachedSearcher {
	cache := ttlcache.New[string, []Gif](
		ttlcache.WithTTL[string, []Gif](ttl),
		ttlcache.WithDisableTouchOnHit[string, []Gif](),
	)
	return &CachedSearcher{next: next, cache: cache}
}

// Search answers from the cache when possible. Failures are not cached.
func (c *CachedSearcher) Search(query string) rxlite.Observable {
	key := strings.ToLower(strings.TrimSpace(query))
	return rxlite.Defer(func() rxlite.Observable {
		if item := c.cache.Get(key); item != nil {
			return rxlite.Just(item.Value())
		}
		return c.next.Search(query).DoOnNext(func(value interface{}) {
			c.cache.Set(key, value.([]Gif), ttlcache.DefaultTTL)
		})
	})
}

// Len is the number of cached queries.
func (c *CachedSearcher) Len() int {
	return c.cache.Len()
}

// Purge drops every cached result.
func (c *CachedSearcher) Purge() {
	c.cache.DeleteAll()
}

// DefaultCatalog is a small built-in catalogue.
func DefaultCatalog() []Gif {
	return []Gif{
		{ID: "cat-1", Title: "Cat typing", URL: "https://gifs.example/cat-typing.gif", Tags: []string{"cat", "keyboard", "work"}},
		{ID: "cat-2", Title: "Cat falls off sofa", URL: "https://gifs.example/cat-sofa.gif", Tags: []string{"cat", "fail"}},
		{ID: "dog-1", Title: "Dog surfing", URL: "https://gifs.example/dog-surf.gif", Tags: []string{"dog", "beach", "summer"}},
		{ID: "dog-2", Title: "Dog with sunglasses", URL: "https://gifs.example/dog-cool.gif", Tags: []string{"dog", "cool"}},
		{ID: "party-1", Title: "Party parrot", URL: "https://gifs.example/parrot.gif", Tags: []string{"bird", "party", "dance"}},
		{ID: "code-1", Title: "Deploy on friday", URL: "https://gifs.example/friday.gif", Tags: []string{"work", "fire", "fail"}},
	}
}
