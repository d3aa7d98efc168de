package memstore

import (
	"context"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

// Table holds records of one type keyed by id, in insertion order.
// Values are copied in and out so callers never share storage.
type Table[T any] struct {
	store     *Store
	name      string
	id        func(*T) string
	patientID func(*T) string
	rows      map[string]T
	order     []string
}

// NewTable registers a table. patientID is nil for tables that do not
// reference a patient.
func NewTable[T any](s *Store, name string, id func(*T) string, patientID func(*T) string) *Table[T] {
	t := &Table[T]{
		store:     s,
		name:      name,
		id:        id,
		patientID: patientID,
		rows:      make(map[string]T),
	}
	s.register(name, t)
	return t
}

func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) checkPatient(rec *T) error {
	if t.patientID == nil {
		return nil
	}
	pid := t.patientID(rec)
	if pid == "" {
		return errs.Validation("%s: patientId is required", t.name)
	}
	if !t.store.patientExists(pid) {
		return errs.Validation("%s references unknown patient %s", t.name, pid)
	}
	return nil
}

func (t *Table[T]) Insert(ctx context.Context, rec T) error {
	return t.store.write(ctx, func() error {
		id := t.id(&rec)
		if _, exists := t.rows[id]; exists {
			return errs.Conflict("%s %s already exists", t.name, id)
		}
		if err := t.checkPatient(&rec); err != nil {
			return err
		}
		t.rows[id] = rec
		t.order = append(t.order, id)
		return nil
	})
}

func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var (
		rec T
		ok  bool
	)
	t.store.read(ctx, func() { rec, ok = t.rows[id] })
	if !ok {
		return rec, errs.NotFound("%s %s not found", t.name, id)
	}
	return rec, nil
}

// Put replaces an existing record.
func (t *Table[T]) Put(ctx context.Context, rec T) error {
	return t.store.write(ctx, func() error {
		id := t.id(&rec)
		if _, exists := t.rows[id]; !exists {
			return errs.NotFound("%s %s not found", t.name, id)
		}
		if err := t.checkPatient(&rec); err != nil {
			return err
		}
		t.rows[id] = rec
		return nil
	})
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	return t.store.write(ctx, func() error {
		if !t.deleteID(id) {
			return errs.NotFound("%s %s not found", t.name, id)
		}
		return nil
	})
}

// All returns every record in insertion order.
func (t *Table[T]) All(ctx context.Context) []T {
	var out []T
	t.store.read(ctx, func() {
		out = make([]T, 0, len(t.order))
		for _, id := range t.order {
			out = append(out, t.rows[id])
		}
	})
	return out
}

func (t *Table[T]) deleteID(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *Table[T]) hasID(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *Table[T]) scoped() bool { return t.patientID != nil }

func (t *Table[T]) deleteByPatient(patientID string) int {
	n := 0
	kept := t.order[:0:0]
	for _, id := range t.order {
		rec := t.rows[id]
		if t.patientID(&rec) == patientID {
			delete(t.rows, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return n
}

func (t *Table[T]) snapshot() func() {
	rows := make(map[string]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	order := append([]string(nil), t.order...)
	return func() {
		t.rows = rows
		t.order = order
	}
}
