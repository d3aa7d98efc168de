package medication

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

var medicationCols = []string{"id", "patient_id", "code", "status"}

func scanMedication(row pgx.Row) (*MedicationRequest, error) {
	var m MedicationRequest
	if err := row.Scan(&m.ID, &m.PatientID, &m.Code, &m.Status); err != nil {
		return nil, err
	}
	return &m, nil
}

func NewRepo(pool *pgxpool.Pool) crud.Repository[MedicationRequest] {
	return crud.NewPGRepo(pool, crud.PGTable[MedicationRequest]{
		Name:          "medication",
		Columns:       medicationCols,
		Scan:          scanMedication,
		Values:        func(m *MedicationRequest) []interface{} { return []interface{}{m.ID, m.PatientID, m.Code, m.Status} },
		PatientColumn: "patient_id",
		SearchColumns: []string{"code"},
	})
}

func NewMemRepo(store *memstore.Store) crud.Repository[MedicationRequest] {
	table := memstore.NewTable(store, "medication",
		func(m *MedicationRequest) string { return m.ID },
		func(m *MedicationRequest) string { return m.PatientID })
	return memstore.NewRepo(table, func(m *MedicationRequest, f lookup.Filter) bool {
		return memstore.Contains(f.Search, m.Code)
	}, nil)
}

func NewRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[MedicationRequest] {
	return lookup.NewRemote(client, "MedicationRequest", Normalize, lookup.ByPatient("patient", false), opts...)
}
