package diagnostics

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

var reportCols = []string{"id", "patient_id", "status", "code", "subject", "effective_date", "issued"}

func scanReport(row pgx.Row) (*DiagnosticReport, error) {
	var r DiagnosticReport
	if err := row.Scan(&r.ID, &r.PatientID, &r.Status, &r.Code, &r.Subject, &r.EffectiveDate, &r.Issued); err != nil {
		return nil, err
	}
	return &r, nil
}

func NewRepo(pool *pgxpool.Pool) crud.Repository[DiagnosticReport] {
	return crud.NewPGRepo(pool, crud.PGTable[DiagnosticReport]{
		Name:    "diagnostic_report",
		Columns: reportCols,
		Scan:    scanReport,
		Values: func(r *DiagnosticReport) []interface{} {
			return []interface{}{r.ID, r.PatientID, r.Status, r.Code, r.Subject, r.EffectiveDate, r.Issued}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"code", "subject"},
		OrderBy:       "issued DESC, id",
	})
}

func NewMemRepo(store *memstore.Store) crud.Repository[DiagnosticReport] {
	table := memstore.NewTable(store, "diagnostic_report",
		func(r *DiagnosticReport) string { return r.ID },
		func(r *DiagnosticReport) string { return r.PatientID })
	return memstore.NewRepo(table, func(r *DiagnosticReport, f lookup.Filter) bool {
		return memstore.Contains(f.Search, r.Code, r.Subject)
	}, func(a, b *DiagnosticReport) bool {
		return a.Issued > b.Issued
	})
}

// NewRemote searches reports by subject=Patient/<id>.
func NewRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[DiagnosticReport] {
	return lookup.NewRemote(client, "DiagnosticReport", Normalize, lookup.ByPatient("subject", true), opts...)
}
