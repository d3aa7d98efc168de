package immunization

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

var immunizationCols = []string{"id", "patient_id", "status", "vaccine", "patient", "primary_source"}

func scanImmunization(row pgx.Row) (*Immunization, error) {
	var i Immunization
	if err := row.Scan(&i.ID, &i.PatientID, &i.Status, &i.Vaccine, &i.Patient, &i.PrimarySource); err != nil {
		return nil, err
	}
	return &i, nil
}

func NewRepo(pool *pgxpool.Pool) crud.Repository[Immunization] {
	return crud.NewPGRepo(pool, crud.PGTable[Immunization]{
		Name:    "immunization",
		Columns: immunizationCols,
		Scan:    scanImmunization,
		Values: func(i *Immunization) []interface{} {
			return []interface{}{i.ID, i.PatientID, i.Status, i.Vaccine, i.Patient, i.PrimarySource}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"vaccine", "patient"},
	})
}

func NewMemRepo(store *memstore.Store) crud.Repository[Immunization] {
	table := memstore.NewTable(store, "immunization",
		func(i *Immunization) string { return i.ID },
		func(i *Immunization) string { return i.PatientID })
	return memstore.NewRepo(table, func(i *Immunization, f lookup.Filter) bool {
		return memstore.Contains(f.Search, i.Vaccine, i.Patient)
	}, nil)
}

func NewRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Immunization] {
	return lookup.NewRemote(client, "Immunization", Normalize, lookup.ByPatient("patient", false), opts...)
}
