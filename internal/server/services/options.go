package services

import (
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/cryptox"
	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"github.com/dmitrijs2005/promisekeeper/internal/server/archive"
	"github.com/dmitrijs2005/promisekeeper/internal/server/cache"
	"github.com/dmitrijs2005/promisekeeper/internal/server/metrics"
)

type options struct {
	logger           logging.Logger
	metrics          *metrics.Recorder
	now              func() time.Time
	hasher           *cryptox.Hasher
	cache            cache.SolutionCache
	archiver         archive.Archiver
	keepParticipants bool
}

// Option customises a service.
type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// WithClock replaces time.Now; tests use it to pin the sweep instant.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithHasher(h *cryptox.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

func WithSolutionCache(c cache.SolutionCache) Option {
	return func(o *options) { o.cache = c }
}

func WithArchiver(a archive.Archiver) Option {
	return func(o *options) { o.archiver = a }
}

// WithKeepParticipants carries participants over to the replacing record on
// reframe. Off by default.
func WithKeepParticipants(keep bool) Option {
	return func(o *options) { o.keepParticipants = keep }
}

func buildOptions(opts []Option) options {
	h, _ := cryptox.NewHasher(cryptox.SHA256)
	o := options{
		logger:   logging.Nop(),
		now:      time.Now,
		hasher:   h,
		cache:    cache.Nop{},
		archiver: archive.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
