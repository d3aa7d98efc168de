package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/pagination"
)

// Repo adapts a Table to the repository contract used by the services.
type Repo[T any] struct {
	table *Table[T]
	match func(*T, lookup.Filter) bool
	less  func(a, b *T) bool
}

// NewRepo wraps a table. match applies search and resource specific
// filters (patient scoping is handled here); less orders List results and
// may be nil for insertion order.
func NewRepo[T any](table *Table[T], match func(*T, lookup.Filter) bool, less func(a, b *T) bool) *Repo[T] {
	return &Repo[T]{table: table, match: match, less: less}
}

func (r *Repo[T]) Table() *Table[T] { return r.table }

func (r *Repo[T]) Create(ctx context.Context, rec *T) error {
	return r.table.Insert(ctx, *rec)
}

func (r *Repo[T]) Get(ctx context.Context, id string) (*T, error) {
	rec, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo[T]) Update(ctx context.Context, rec *T) error {
	return r.table.Put(ctx, *rec)
}

func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

func (r *Repo[T]) List(ctx context.Context, f lookup.Filter) ([]*T, error) {
	out := r.matching(ctx, f)
	if r.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return r.less(out[i], out[j]) })
	}
	start, end := pagination.Params{Limit: f.Limit, Offset: f.Offset}.Window(len(out))
	return out[start:end], nil
}

// Count reports how many records match f, ignoring Limit and Offset.
func (r *Repo[T]) Count(ctx context.Context, f lookup.Filter) (int, error) {
	return len(r.matching(ctx, f)), nil
}

func (r *Repo[T]) matching(ctx context.Context, f lookup.Filter) []*T {
	all := r.table.All(ctx)
	out := make([]*T, 0, len(all))
	for i := range all {
		rec := &all[i]
		if f.PatientID != "" && r.table.patientID != nil && r.table.patientID(rec) != f.PatientID {
			continue
		}
		if r.match != nil && !r.match(rec, f) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Contains reports whether any of the values contains needle, ignoring case.
// An empty needle matches everything.
func Contains(needle string, values ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
