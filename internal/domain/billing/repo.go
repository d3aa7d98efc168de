package billing

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

var billingCols = []string{"id", "patient_id", "patient_name", "service", "amount", "status", "date", "insurance_status"}

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.PatientID, &r.PatientName, &r.Service, &r.Amount, &r.Status, &r.Date, &r.InsuranceStatus)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func NewRepo(pool *pgxpool.Pool) crud.Repository[Record] {
	return crud.NewPGRepo(pool, crud.PGTable[Record]{
		Name:    "billing_record",
		Columns: billingCols,
		Scan:    scanRecord,
		Values: func(r *Record) []interface{} {
			return []interface{}{r.ID, r.PatientID, r.PatientName, r.Service, r.Amount, r.Status, r.Date, r.InsuranceStatus}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"patient_name", "service", "id"},
		Where: func(q *db.SelectQuery, f lookup.Filter) {
			q.Eq("status", f.Param(ParamStatus))
		},
		OrderBy: "date DESC, id",
	})
}

func NewMemRepo(store *memstore.Store) crud.Repository[Record] {
	table := memstore.NewTable(store, "billing_record",
		func(r *Record) string { return r.ID },
		func(r *Record) string { return r.PatientID })
	return memstore.NewRepo(table, func(r *Record, f lookup.Filter) bool {
		if s := f.Param(ParamStatus); s != "" && r.Status != s {
			return false
		}
		return memstore.Contains(f.Search, r.PatientName, r.Service, r.ID)
	}, func(a, b *Record) bool {
		return a.Date > b.Date
	})
}
