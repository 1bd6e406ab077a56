package gifsearch

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xinjiayu/rxlite"
)

const (
	// MinQueryLength is the shortest query that triggers a search.
	MinQueryLength = 3
	// DefaultThrottle is the minimum spacing between two searches.
	DefaultThrottle = 300 * time.Millisecond
)

// Controller turns query edits into result lists. Stale searches are cancelled
// when a newer query arrives and search failures show up as an empty list.
type Controller struct {
	id       string
	searcher Searcher
	query    *rxlite.BehaviorSubject
	results  *rxlite.BehaviorSubject
	bag      *rxlite.DisposeBag
	log      zerolog.Logger

	scheduler rxlite.Scheduler
	throttle  time.Duration
}

// ControllerOption configures a Controller.
type ControllerOption func(c *Controller)

// WithThrottle sets the spacing between searches.
func WithThrottle(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.throttle = d
	}
}

// WithLogger sets the controller logger.
func WithLogger(log zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController wires the search pipeline. Results are delivered on scheduler.
func NewController(searcher Searcher, scheduler rxlite.Scheduler, opts ...ControllerOption) *Controller {
	c := &Controller{
		id:        uuid.New().String(),
		searcher:  searcher,
		query:     rxlite.NewBehaviorSubject(""),
		results:   rxlite.NewBehaviorSubject([]Gif{}),
		log:       zerolog.Nop(),
		scheduler: scheduler,
		throttle:  DefaultThrottle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "gifsearch").Str("session", c.id).Logger()
	c.bag = rxlite.NewDisposeBag(rxlite.WithLogger(c.log))

	c.bag.Add(c.pipeline().Subscribe(func(event rxlite.Event) {
		switch event.Kind {
		case rxlite.KindNext:
			c.results.OnNext(event.Value)
		case rxlite.KindError:
			c.log.Error().Err(event.Err).Msg("search pipeline failed")
		}
	}))
	return c
}

func (c *Controller) pipeline() rxlite.Observable {
	return c.query.
		Map(func(value interface{}) (interface{}, error) {
			return strings.TrimSpace(value.(string)), nil
		}).
		Filter(func(value interface{}) bool {
			return len(value.(string)) >= MinQueryLength
		}).
		Throttle(c.throttle, c.scheduler).
		DistinctUntilChanged().
		FlatMapLatest(func(value interface{}) rxlite.Observable {
			query := value.(string)
			c.log.Debug().Str("query", query).Msg("searching")
			return c.searcher.Search(query).
				DoOnError(func(err error) {
					c.log.Warn().Err(err).Str("query", query).Msg("search failed")
				}).
				CatchAndReturn([]Gif{})
		}).
		ObserveOn(c.scheduler)
}

// SessionID identifies this controller in logs.
func (c *Controller) SessionID() string {
	return c.id
}

// UpdateQuery feeds a new query text.
func (c *Controller) UpdateQuery(query string) {
	c.query.OnNext(query)
}

// Results emits the current result list and every later one.
func (c *Controller) Results() rxlite.Observable {
	return c.results.AsObservable()
}

// Current returns the latest result list.
func (c *Controller) Current() []Gif {
	value, err := c.results.Value()
	if err != nil {
		return nil
	}
	return value.([]Gif)
}

// Close cancels any in-flight search and completes Results.
func (c *Controller) Close() error {
	err := c.bag.Dispose()
	c.query.OnComplete()
	c.results.OnComplete()
	return err
}
