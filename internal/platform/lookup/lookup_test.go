package lookup

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

type item struct {
	ID string `json:"id"`
}

type fakeTier struct {
	source   Source
	rows     map[string]*item
	err      error
	findHits int
	getHits  int
}

func newFakeTier(source Source, ids ...string) *fakeTier {
	t := &fakeTier{source: source, rows: map[string]*item{}}
	for _, id := range ids {
		t.rows[id] = &item{ID: id}
	}
	return t
}

func (t *fakeTier) Source() Source { return t.source }

func (t *fakeTier) Find(_ context.Context, f Filter) ([]*item, error) {
	t.findHits++
	if t.err != nil {
		return nil, t.err
	}
	ids := make([]string, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if f.Offset >= len(ids) {
		ids = nil
	} else {
		ids = ids[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(ids) {
		ids = ids[:f.Limit]
	}
	out := []*item{}
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *fakeTier) Get(_ context.Context, id string) (*item, error) {
	t.getHits++
	if t.err != nil {
		return nil, t.err
	}
	if r, ok := t.rows[id]; ok {
		return r, nil
	}
	return nil, errs.NotFound("%s not found", id)
}

func TestChain_Find_LocalOverridesRemote(t *testing.T) {
	local := newFakeTier(SourceLocal, "patient-1")
	remote := newFakeTier(SourceRemote, "123", "456")
	chain := NewChain[item]("patient", local, remote)

	rows, src, err := chain.Find(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if src != SourceLocal || len(rows) != 1 || rows[0].ID != "patient-1" {
		t.Errorf("got %v from %s", rows, src)
	}
	if remote.findHits != 0 {
		t.Errorf("remote should not be consulted, got %d calls", remote.findHits)
	}
}

func TestChain_Find_FallsBackWhenLocalEmpty(t *testing.T) {
	local := newFakeTier(SourceLocal)
	remote := newFakeTier(SourceRemote, "123")
	chain := NewChain[item]("patient", local, remote)

	rows, src, err := chain.Find(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if src != SourceRemote || len(rows) != 1 {
		t.Errorf("got %v from %s", rows, src)
	}
}

func TestChain_Find_Empty(t *testing.T) {
	chain := NewChain[item]("patient", newFakeTier(SourceLocal), newFakeTier(SourceRemote))
	rows, src, err := chain.Find(context.Background(), Filter{})
	if err != nil || src != SourceNone || rows == nil || len(rows) != 0 {
		t.Errorf("got %v, %s, %v", rows, src, err)
	}
}

func TestChain_Find_Error(t *testing.T) {
	remote := newFakeTier(SourceRemote)
	remote.err = errs.Upstream(errors.New("down"), "search Patient")
	chain := NewChain[item]("patient", newFakeTier(SourceLocal), remote)

	if _, _, err := chain.Find(context.Background(), Filter{}); !errors.Is(err, errs.ErrUpstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestChain_Get(t *testing.T) {
	local := newFakeTier(SourceLocal, "patient-1")
	remote := newFakeTier(SourceRemote, "123")
	chain := NewChain[item]("patient", local, nil, remote)

	rec, src, err := chain.Get(context.Background(), "patient-1")
	if err != nil || src != SourceLocal || rec.ID != "patient-1" {
		t.Errorf("local get: %v %s %v", rec, src, err)
	}
	if remote.getHits != 0 {
		t.Error("remote consulted for a local hit")
	}

	rec, src, err = chain.Get(context.Background(), "123")
	if err != nil || src != SourceRemote || rec.ID != "123" {
		t.Errorf("remote get: %v %s %v", rec, src, err)
	}

	_, src, err = chain.Get(context.Background(), "nope")
	if !errors.Is(err, errs.ErrNotFound) || src != SourceNone {
		t.Errorf("expected not found, got %s %v", src, err)
	}
}

func TestChain_Get_LocalErrorStops(t *testing.T) {
	local := newFakeTier(SourceLocal)
	local.err = errors.New("db down")
	remote := newFakeTier(SourceRemote, "123")
	chain := NewChain[item]("patient", local, remote)

	if _, _, err := chain.Get(context.Background(), "123"); err == nil || errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected storage error, got %v", err)
	}
	if remote.getHits != 0 {
		t.Error("remote consulted after a storage error")
	}
}

// countingTier answers Count without paging, like the local repositories.
type countingTier struct {
	*fakeTier
	countHits int
}

func (t *countingTier) Count(_ context.Context, _ Filter) (int, error) {
	t.countHits++
	return len(t.rows), t.err
}

func TestChain_Find_PagePastLocalRowsStaysLocal(t *testing.T) {
	tests := []struct {
		name  string
		local Tier[item]
	}{
		{"counter", &countingTier{fakeTier: newFakeTier(SourceLocal, "patient-1", "patient-2")}},
		{"head query", newFakeTier(SourceLocal, "patient-1", "patient-2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeTier(SourceRemote, "123")
			chain := NewChain[item]("patient", tt.local, remote)

			rows, src, err := chain.Find(context.Background(), Filter{Limit: 1, Offset: 5})
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if src != SourceLocal || len(rows) != 0 {
				t.Errorf("got %v from %s, want an empty local page", rows, src)
			}
			if remote.findHits != 0 {
				t.Errorf("remote consulted %d times for a local listing", remote.findHits)
			}
		})
	}
}

func TestChain_Find_PagedFallbackWhenLocalEmpty(t *testing.T) {
	local := &countingTier{fakeTier: newFakeTier(SourceLocal)}
	remote := newFakeTier(SourceRemote, "123", "456")
	chain := NewChain[item]("patient", local, remote)

	rows, src, err := chain.Find(context.Background(), Filter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if src != SourceRemote || len(rows) != 1 || rows[0].ID != "456" {
		t.Errorf("got %v from %s", rows, src)
	}
	if local.countHits != 1 {
		t.Errorf("expected one count, got %d", local.countHits)
	}
}

func TestChain_Find_PagePastRemoteRows(t *testing.T) {
	remote := newFakeTier(SourceRemote, "123")
	chain := NewChain[item]("patient", newFakeTier(SourceLocal), remote)

	rows, src, err := chain.Find(context.Background(), Filter{Limit: 10, Offset: 10})
	if err != nil || src != SourceNone || len(rows) != 0 {
		t.Errorf("got %v, %s, %v", rows, src, err)
	}
	if remote.findHits != 1 {
		t.Errorf("the last tier is searched once, got %d", remote.findHits)
	}
}
