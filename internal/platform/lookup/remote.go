package lookup

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/cache"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// ErrNoMatch tells the remote tier that the query cannot match anything, so
// the clinical API is not called.
var ErrNoMatch = errors.New("no matching remote records")

// Searcher is the part of *fhir.Client the remote tier needs.
type Searcher interface {
	Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error)
	Read(ctx context.Context, resourceType, id string) (map[string]interface{}, error)
}

// QueryFunc maps a list filter to FHIR search parameters. _count and
// _offset are added by the tier.
type QueryFunc func(ctx context.Context, f Filter) (url.Values, error)

type RemoteOption func(*remoteConfig)

type remoteConfig struct {
	cache cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// WithCache stores normalized results for ttl. A zero ttl disables caching.
func WithCache(c cache.Cache, ttl time.Duration) RemoteOption {
	return func(rc *remoteConfig) {
		if ttl > 0 {
			rc.cache, rc.ttl = c, ttl
		}
	}
}

func WithRemoteLogger(l zerolog.Logger) RemoteOption {
	return func(rc *remoteConfig) { rc.log = l }
}

// Remote reads one FHIR resource type and normalizes each resource into T.
type Remote[T any] struct {
	client       Searcher
	resourceType string
	normalize    func(map[string]interface{}) T
	query        QueryFunc
	cfg          remoteConfig
}

func NewRemote[T any](client Searcher, resourceType string, normalize func(map[string]interface{}) T, query QueryFunc, opts ...RemoteOption) *Remote[T] {
	r := &Remote[T]{
		client:       client,
		resourceType: resourceType,
		normalize:    normalize,
		query:        query,
		cfg:          remoteConfig{log: zerolog.Nop()},
	}
	for _, opt := range opts {
		opt(&r.cfg)
	}
	return r
}

func (r *Remote[T]) Source() Source { return SourceRemote }

func (r *Remote[T]) Find(ctx context.Context, f Filter) ([]*T, error) {
	params := url.Values{}
	if r.query != nil {
		q, err := r.query(ctx, f)
		if errors.Is(err, ErrNoMatch) {
			return []*T{}, nil
		}
		if err != nil {
			return nil, err
		}
		if q != nil {
			params = q
		}
	}
	if f.Limit > 0 {
		params.Set("_count", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("_offset", strconv.Itoa(f.Offset))
	}

	key := "fhir:" + r.resourceType + "?" + params.Encode()
	var rows []*T
	if r.cached(ctx, key, &rows) {
		return rows, nil
	}

	bundle, err := r.client.Search(ctx, r.resourceType, params)
	if err != nil {
		return nil, err
	}
	resources := bundle.Resources()
	rows = make([]*T, 0, len(resources))
	for _, res := range resources {
		rec := r.normalize(res)
		rows = append(rows, &rec)
	}
	r.store(ctx, key, rows)
	return rows, nil
}

func (r *Remote[T]) Get(ctx context.Context, id string) (*T, error) {
	key := "fhir:" + fhir.FormatReference(r.resourceType, id)
	var rec *T
	if r.cached(ctx, key, &rec) && rec != nil {
		return rec, nil
	}

	res, err := r.client.Read(ctx, r.resourceType, id)
	if err != nil {
		return nil, err
	}
	normalized := r.normalize(res)
	r.store(ctx, key, &normalized)
	return &normalized, nil
}

func (r *Remote[T]) cached(ctx context.Context, key string, dst interface{}) bool {
	if r.cfg.cache == nil {
		return false
	}
	data, ok, err := r.cfg.cache.Get(ctx, key)
	if err != nil {
		r.cfg.log.Warn().Err(err).Str("key", key).Msg("remote cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.cfg.log.Warn().Err(err).Str("key", key).Msg("remote cache entry unreadable")
		return false
	}
	return true
}

func (r *Remote[T]) store(ctx context.Context, key string, v interface{}) {
	if r.cfg.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.cfg.cache.Set(ctx, key, data, r.cfg.ttl); err != nil {
		r.cfg.log.Warn().Err(err).Str("key", key).Msg("remote cache write failed")
	}
}
