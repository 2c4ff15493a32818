// Package cache keeps the loaded dataset in memory for a limited time.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/rpametrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a loaded dataset is served before it is reloaded.
const DefaultTTL = 5 * time.Minute

// Dataset is a read-through cache in front of a Loader. Concurrent misses
// share a single load. Failed loads are not cached.
type Dataset struct {
	loader rpametrics.Loader
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	value   *rpametrics.Dataset
	expires time.Time
}

// Option configures a Dataset cache.
type Option func(*Dataset)

// WithTTL sets the lifetime of a loaded dataset. A non positive ttl disables caching.
func WithTTL(ttl time.Duration) Option { return func(d *Dataset) { d.ttl = ttl } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(d *Dataset) { d.now = now } }

// New returns a cache in front of loader.
func New(loader rpametrics.Loader, opts ...Option) *Dataset {
	d := &Dataset{loader: loader, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load returns the cached dataset, loading it when absent or expired.
func (d *Dataset) Load(ctx context.Context) (*rpametrics.Dataset, error) {
	if v := d.fresh(); v != nil {
		return v, nil
	}
	v, err, shared := d.group.Do("dataset", func() (any, error) {
		// another caller may have filled the cache while we waited.
		if v := d.fresh(); v != nil {
			return v, nil
		}
		start := d.now()
		v, err := d.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		d.value, d.expires = v, d.now().Add(d.ttl)
		d.mu.Unlock()
		zerolog.Ctx(ctx).Debug().Dur("elapsed", d.now().Sub(start)).Dur("ttl", d.ttl).Msg("dataset cached")
		return v, nil
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Bool("shared", shared).Msg("dataset load failed")
		return nil, err
	}
	return v.(*rpametrics.Dataset), nil
}

func (d *Dataset) fresh() *rpametrics.Dataset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.value != nil && d.now().Before(d.expires) {
		return d.value
	}
	return nil
}

// Invalidate drops the cached dataset. The next Load reloads it.
func (d *Dataset) Invalidate() {
	d.mu.Lock()
	d.value = nil
	d.mu.Unlock()
}

var _ rpametrics.Loader = (*Dataset)(nil)
