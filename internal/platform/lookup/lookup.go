// Package lookup resolves reads against an ordered list of record sources.
// The first source that answers wins; results are never merged.
package lookup

import (
	"context"
	"errors"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

// Source names the tier that produced a result.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
	SourceNone   Source = "none"
)

// Filter carries the list parameters understood by every tier.
type Filter struct {
	PatientID string
	Search    string
	Limit     int
	Offset    int
	// Params holds resource specific filters (date, provider, status).
	Params map[string]string
}

// Param returns a resource specific filter value, or "".
func (f Filter) Param(key string) string {
	return f.Params[key]
}

// Tier is one record source. Get reports a miss with errs.ErrNotFound.
type Tier[T any] interface {
	Source() Source
	Find(ctx context.Context, f Filter) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
}

// Chain queries tiers in order.
type Chain[T any] struct {
	name  string
	tiers []Tier[T]
}

// NewChain builds a chain over the non-nil tiers. name is used in not-found
// messages ("patient").
func NewChain[T any](name string, tiers ...Tier[T]) *Chain[T] {
	c := &Chain[T]{name: name}
	for _, t := range tiers {
		if t != nil {
			c.tiers = append(c.tiers, t)
		}
	}
	return c
}

// Counter is implemented by tiers that can count the records a filter
// matches, ignoring Limit and Offset.
type Counter interface {
	Count(ctx context.Context, f Filter) (int, error)
}

// Find returns the rows of the first tier that holds any record matching the
// filter. Later tiers are not consulted once a tier holds matches, even when
// the requested page lies past its last row, so every page of a listing comes
// from the same tier. An error from any consulted tier aborts the lookup.
func (c *Chain[T]) Find(ctx context.Context, f Filter) ([]*T, Source, error) {
	for i, t := range c.tiers {
		rows, err := t.Find(ctx, f)
		if err != nil {
			return nil, t.Source(), err
		}
		if len(rows) > 0 {
			return rows, t.Source(), nil
		}
		if i == len(c.tiers)-1 {
			break
		}
		held, err := holds(ctx, t, f)
		if err != nil {
			return nil, t.Source(), err
		}
		if held {
			return []*T{}, t.Source(), nil
		}
	}
	return []*T{}, SourceNone, nil
}

// holds reports whether t has matches outside the page that came back empty.
func holds[T any](ctx context.Context, t Tier[T], f Filter) (bool, error) {
	if f.Offset <= 0 {
		return false, nil
	}
	if counter, ok := t.(Counter); ok {
		n, err := counter.Count(ctx, f)
		return n > 0, err
	}
	f.Offset, f.Limit = 0, 1
	rows, err := t.Find(ctx, f)
	return len(rows) > 0, err
}

// Get returns the record from the first tier that has it.
func (c *Chain[T]) Get(ctx context.Context, id string) (*T, Source, error) {
	for _, t := range c.tiers {
		rec, err := t.Get(ctx, id)
		if err == nil {
			return rec, t.Source(), nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, t.Source(), err
		}
	}
	return nil, SourceNone, errs.NotFound("%s %s not found", c.name, id)
}
