package encounter

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

var encounterCols = []string{"id", "patient_id", "status", "class", "subject", "start_time", "end_time"}

func scanEncounter(row pgx.Row) (*Encounter, error) {
	var e Encounter
	if err := row.Scan(&e.ID, &e.PatientID, &e.Status, &e.Class, &e.Subject, &e.Start, &e.End); err != nil {
		return nil, err
	}
	return &e, nil
}

// NewRepo lists encounters newest first.
func NewRepo(pool *pgxpool.Pool) crud.Repository[Encounter] {
	return crud.NewPGRepo(pool, crud.PGTable[Encounter]{
		Name:    "encounter",
		Columns: encounterCols,
		Scan:    scanEncounter,
		Values: func(e *Encounter) []interface{} {
			return []interface{}{e.ID, e.PatientID, e.Status, e.Class, e.Subject, e.Start, e.End}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"status", "class", "subject"},
		OrderBy:       "start_time DESC, id",
	})
}

func NewMemRepo(store *memstore.Store) crud.Repository[Encounter] {
	table := memstore.NewTable(store, "encounter",
		func(e *Encounter) string { return e.ID },
		func(e *Encounter) string { return e.PatientID })
	return memstore.NewRepo(table, func(e *Encounter, f lookup.Filter) bool {
		return memstore.Contains(f.Search, e.Status, e.Class, e.Subject)
	}, func(a, b *Encounter) bool {
		return a.Start > b.Start
	})
}

func NewRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Encounter] {
	return lookup.NewRemote(client, "Encounter", Normalize, lookup.ByPatient("subject", true), opts...)
}
