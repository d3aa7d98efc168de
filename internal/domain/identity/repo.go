package identity

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

// PatientDependents lists the tables whose rows reference a patient. They
// are cleared before the patient row in one transaction.
var PatientDependents = []string{
	"appointment", "allergy", "condition", "observation", "encounter", "medication",
	"procedure", "diagnostic_report", "immunization", "billing_record",
}

// -- Postgres --

const patientTable = "patient"

var patientCols = []string{"id", "name", "gender", "birth_date"}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.ID, &p.Name, &p.Gender, &p.BirthDate); err != nil {
		return nil, err
	}
	return &p, nil
}

type patientRepoPG struct {
	*crud.PGRepo[Patient]
	dependents []*crud.PGRepo[dependentRow]
}

// dependentRow stands for a row of a patient-scoped table; only its
// patient_id column is used.
type dependentRow struct{}

func NewPatientRepo(pool *pgxpool.Pool) crud.Repository[Patient] {
	r := &patientRepoPG{
		PGRepo: crud.NewPGRepo(pool, crud.PGTable[Patient]{
			Name:          patientTable,
			Columns:       patientCols,
			Scan:          scanPatient,
			Values:        func(p *Patient) []interface{} { return []interface{}{p.ID, p.Name, p.Gender, p.BirthDate} },
			SearchColumns: []string{"name", "id"},
		}),
	}
	for _, table := range PatientDependents {
		r.dependents = append(r.dependents, crud.NewPGRepo(pool, crud.PGTable[dependentRow]{
			Name:          table,
			Columns:       []string{"id"},
			PatientColumn: "patient_id",
		}))
	}
	return r
}

// Delete removes the patient and every dependent row atomically.
func (r *patientRepoPG) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.Pool(), func(ctx context.Context) error {
		for _, dep := range r.dependents {
			if _, err := dep.DeleteByPatient(ctx, id); err != nil {
				return err
			}
		}
		return r.PGRepo.Delete(ctx, id)
	})
}

var practitionerCols = []string{"id", "name", "identifiers"}

func scanPractitioner(row pgx.Row) (*Practitioner, error) {
	var p Practitioner
	if err := row.Scan(&p.ID, &p.Name, &p.Identifiers); err != nil {
		return nil, err
	}
	return &p, nil
}

func NewPractitionerRepo(pool *pgxpool.Pool) crud.Repository[Practitioner] {
	return crud.NewPGRepo(pool, crud.PGTable[Practitioner]{
		Name:          "practitioner",
		Columns:       practitionerCols,
		Scan:          scanPractitioner,
		Values:        func(p *Practitioner) []interface{} { return []interface{}{p.ID, p.Name, p.Identifiers} },
		SearchColumns: []string{"name", "identifiers"},
	})
}

// -- In-memory --

type patientRepoMem struct {
	*memstore.Repo[Patient]
	store *memstore.Store
}

// NewPatientMemRepo registers the patient table. It must be created before
// any patient-scoped table of the same store.
func NewPatientMemRepo(store *memstore.Store) crud.Repository[Patient] {
	table := memstore.NewTable(store, memstore.PatientTable, func(p *Patient) string { return p.ID }, nil)
	return &patientRepoMem{
		Repo: memstore.NewRepo(table, func(p *Patient, f lookup.Filter) bool {
			return memstore.Contains(f.Search, p.Name, p.ID)
		}, nil),
		store: store,
	}
}

func (r *patientRepoMem) Delete(ctx context.Context, id string) error {
	return r.store.DeletePatient(ctx, id)
}

func NewPractitionerMemRepo(store *memstore.Store) crud.Repository[Practitioner] {
	table := memstore.NewTable(store, "practitioner", func(p *Practitioner) string { return p.ID }, nil)
	return memstore.NewRepo(table, func(p *Practitioner, f lookup.Filter) bool {
		return memstore.Contains(f.Search, p.Name, p.Identifiers)
	}, func(a, b *Practitioner) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// -- Clinical API --

func NewPatientRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Patient] {
	return lookup.NewRemote(client, "Patient", NormalizePatient, lookup.ByName(), opts...)
}

func NewPractitionerRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Practitioner] {
	return lookup.NewRemote(client, "Practitioner", NormalizePractitioner, lookup.ByName(), opts...)
}
