package folio

import (
	"errors"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

// listing is one snapshot of the post directory.
type listing struct {
	ids       []string
	summaries []content.Summary
	scanErr   error // per-file rejections, summaries are still usable
}

// PostCache keeps the post listing in memory for a TTL. Post bodies are
// always read from the store. A zero TTL turns the cache into a
// pass-through. Rejected post files are logged once per load.
type PostCache struct {
	mu      sync.RWMutex
	current *listing
	fetched time.Time
	ttl     time.Duration
	store   PostSource
	logger  echo.Logger
}

// NewPostCache creates a PostCache backed by the given source. logger may
// be nil.
func NewPostCache(s PostSource, ttl time.Duration, logger echo.Logger) *PostCache {
	return &PostCache{store: s, ttl: ttl, logger: logger}
}

func (c *PostCache) valid() bool {
	return c.ttl > 0 && c.current != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

func (c *PostCache) load() (*listing, error) {
	ids, err := c.store.ListIdentifiers()
	if err != nil {
		return nil, err
	}
	summaries, err := c.store.ListSummaries()
	var scanErr *content.ScanError
	if err != nil && !errors.As(err, &scanErr) {
		return nil, err
	}
	if scanErr != nil && c.logger != nil {
		for _, e := range scanErr.Errs {
			c.logger.Warnf("skipping post: %v", e)
		}
	}
	return &listing{ids: ids, summaries: summaries, scanErr: err}, nil
}

// ensureLoaded returns the cached listing after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() (*listing, error) {
	c.mu.RLock()
	if c.valid() {
		l := c.current
		c.mu.RUnlock()
		return l, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.current, nil
	}
	l, err := c.load()
	if err != nil {
		return nil, err
	}
	c.current = l
	c.fetched = time.Now()
	return l, nil
}

// ListIdentifiers returns the cached post identifiers.
func (c *PostCache) ListIdentifiers() ([]string, error) {
	l, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return append([]string{}, l.ids...), nil
}

// ListSummaries returns the cached summaries together with any per-file
// error recorded when they were loaded.
func (c *PostCache) ListSummaries() ([]content.Summary, error) {
	l, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return append([]content.Summary{}, l.summaries...), l.scanErr
}

// GetPost reads a post straight from the store.
func (c *PostCache) GetPost(id string) (content.Post, error) {
	return c.store.GetPost(id)
}
