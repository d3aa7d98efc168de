// Package memstore is an in-process record store with the same guarantees
// the Postgres schema gives: unique ids, patient foreign keys and atomic
// multi-table sections.
package memstore

import (
	"context"
	"sync"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

// PatientTable is the table every patient-scoped table references.
const PatientTable = "patient"

type atomicKey struct{}

type table interface {
	snapshot() func()
	hasID(id string) bool
	deleteByPatient(patientID string) int
	scoped() bool
}

// Store owns a set of tables guarded by one lock.
type Store struct {
	mu     sync.RWMutex
	tables map[string]table
	order  []string
}

func New() *Store {
	return &Store{tables: make(map[string]table)}
}

func (s *Store) register(name string, t table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.tables[name]; !dup {
		s.order = append(s.order, name)
	}
	s.tables[name] = t
}

func inAtomic(ctx context.Context) bool {
	v, _ := ctx.Value(atomicKey{}).(bool)
	return v
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !inAtomic(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inAtomic(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

// Atomic runs fn with the store locked. If fn fails every table is restored
// to its state before the call. Nested calls join the outer section.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if inAtomic(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	restores := make([]func(), 0, len(s.order))
	for _, name := range s.order {
		restores = append(restores, s.tables[name].snapshot())
	}
	if err := fn(context.WithValue(ctx, atomicKey{}, true)); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// patientExists must be called with the lock held.
func (s *Store) patientExists(id string) bool {
	t, ok := s.tables[PatientTable]
	return ok && t.hasID(id)
}

// DeletePatient removes a patient and every row that references it in one
// atomic section. Unknown patients report errs.ErrNotFound and change nothing.
func (s *Store) DeletePatient(ctx context.Context, patientID string) error {
	return s.Atomic(ctx, func(ctx context.Context) error {
		patients, ok := s.tables[PatientTable].(interface {
			deleteID(id string) bool
		})
		if !ok || !s.patientExists(patientID) {
			return errs.NotFound("patient %s not found", patientID)
		}
		for _, name := range s.order {
			if t := s.tables[name]; t.scoped() {
				t.deleteByPatient(patientID)
			}
		}
		patients.deleteID(patientID)
		return nil
	})
}
