// Package crud provides the generic service and HTTP handler shared by every
// record type: reads go through a local-then-remote lookup chain, writes
// touch the local store only.
package crud

import (
	"context"
	"errors"

	"github.com/goccy/go-json"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/ident"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/render"
)

// Repository is the local store contract for one record type. Get, Update
// and Delete report unknown ids with errs.ErrNotFound.
type Repository[T any] interface {
	Create(ctx context.Context, rec *T) error
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f lookup.Filter) ([]*T, error)
	// Count reports how many records the filter matches, ignoring paging.
	Count(ctx context.Context, f lookup.Filter) (int, error)
}

// Validator checks a record before it is written.
type Validator interface {
	Validate(i interface{}) error
}

// Kind describes one record type.
type Kind[T any] struct {
	// Name is used in messages ("appointment").
	Name string
	// IDPrefix starts every generated id ("appt").
	IDPrefix string
	// Columns are the default table columns, in display order.
	Columns []string
	// ID exposes the id field so the service can assign it.
	ID func(*T) *string
	// Defaults fills optional fields on create. May be nil.
	Defaults func(*T)
}

// localTier exposes a Repository as the first lookup tier.
type localTier[T any] struct {
	repo Repository[T]
}

func (t localTier[T]) Source() lookup.Source { return lookup.SourceLocal }

func (t localTier[T]) Find(ctx context.Context, f lookup.Filter) ([]*T, error) {
	return t.repo.List(ctx, f)
}

func (t localTier[T]) Count(ctx context.Context, f lookup.Filter) (int, error) {
	return t.repo.Count(ctx, f)
}

func (t localTier[T]) Get(ctx context.Context, id string) (*T, error) {
	return t.repo.Get(ctx, id)
}

type Service[T any] struct {
	kind     Kind[T]
	repo     Repository[T]
	chain    *lookup.Chain[T]
	ids      ident.Generator
	validate Validator
}

// NewService builds a service over the local repository and an optional
// remote tier. Pass a nil interface (not a typed nil) to run local only.
func NewService[T any](kind Kind[T], repo Repository[T], remote lookup.Tier[T], ids ident.Generator, v Validator) *Service[T] {
	return &Service[T]{
		kind:     kind,
		repo:     repo,
		chain:    lookup.NewChain[T](kind.Name, localTier[T]{repo: repo}, remote),
		ids:      ids,
		validate: v,
	}
}

func (s *Service[T]) Kind() Kind[T] { return s.kind }

// List returns local rows when there are any, otherwise remote rows.
func (s *Service[T]) List(ctx context.Context, f lookup.Filter) ([]*T, lookup.Source, error) {
	return s.chain.Find(ctx, f)
}

func (s *Service[T]) Get(ctx context.Context, id string) (*T, lookup.Source, error) {
	if id == "" {
		return nil, lookup.SourceNone, errs.Validation("id is required")
	}
	return s.chain.Get(ctx, id)
}

// Create stores a new local record, generating its id when absent.
func (s *Service[T]) Create(ctx context.Context, rec *T) error {
	id := s.kind.ID(rec)
	if *id == "" {
		*id = s.ids.NewID(s.kind.IDPrefix)
	}
	if s.kind.Defaults != nil {
		s.kind.Defaults(rec)
	}
	if err := s.check(rec); err != nil {
		return err
	}
	return s.repo.Create(ctx, rec)
}

// Update merges a partial JSON document into the local record with that id.
func (s *Service[T]) Update(ctx context.Context, id string, patch []byte) (*T, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.localOnly(err, id)
	}
	if len(patch) > 0 {
		if err := json.Unmarshal(patch, rec); err != nil {
			return nil, errs.Validation("invalid request body: %v", err)
		}
	}
	*s.kind.ID(rec) = id
	if err := s.check(rec); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, s.localOnly(err, id)
	}
	return rec, nil
}

func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errs.Validation("id is required")
	}
	return s.localOnly(s.repo.Delete(ctx, id), id)
}

// Table lists records and renders them. columns narrows and orders the
// default columns.
func (s *Service[T]) Table(ctx context.Context, f lookup.Filter, columns []string) (render.Table, lookup.Source, error) {
	rows, src, err := s.List(ctx, f)
	if err != nil {
		return render.Table{}, src, err
	}
	tbl, err := render.FromRecords(rows, s.kind.Columns)
	if err != nil {
		return render.Table{}, src, err
	}
	return tbl.Select(columns), src, nil
}

func (s *Service[T]) check(rec *T) error {
	if s.validate == nil {
		return nil
	}
	return s.validate.Validate(rec)
}

func (s *Service[T]) localOnly(err error, id string) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.NotFound("%s %s not found locally; cannot modify records from the clinical API", s.kind.Name, id)
	}
	return err
}
