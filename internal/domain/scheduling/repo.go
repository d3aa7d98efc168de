package scheduling

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

var appointmentCols = []string{"id", "patient_id", "status", "description", "start_time", "end_time", "patient", "provider"}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.Status, &a.Description, &a.Start, &a.End, &a.Patient, &a.Provider)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func appointmentValues(a *Appointment) []interface{} {
	return []interface{}{a.ID, a.PatientID, a.Status, a.Description, a.Start, a.End, a.Patient, a.Provider}
}

func NewAppointmentRepo(pool *pgxpool.Pool) crud.Repository[Appointment] {
	return crud.NewPGRepo(pool, crud.PGTable[Appointment]{
		Name:          "appointment",
		Columns:       appointmentCols,
		Scan:          scanAppointment,
		Values:        appointmentValues,
		PatientColumn: "patient_id",
		SearchColumns: []string{"description", "patient", "provider"},
		Where: func(q *db.SelectQuery, f lookup.Filter) {
			if d := f.Param(ParamDate); d != "" {
				q.Add(fmt.Sprintf("start_time LIKE $%d", q.Idx()), d+"%")
			}
			if p := f.Param(ParamProvider); p != "" {
				q.Contains(p, "provider")
			}
			q.Eq("status", f.Param(ParamStatus))
		},
		OrderBy: "start_time, id",
	})
}

// matchAppointment applies search, date, provider and status filters.
func matchAppointment(a *Appointment, f lookup.Filter) bool {
	if !memstore.Contains(f.Search, a.Description, a.Patient, a.Provider) {
		return false
	}
	if d := f.Param(ParamDate); d != "" && !strings.HasPrefix(a.Start, d) {
		return false
	}
	if s := f.Param(ParamStatus); s != "" && a.Status != s {
		return false
	}
	return memstore.Contains(f.Param(ParamProvider), a.Provider)
}

func NewAppointmentMemRepo(store *memstore.Store) crud.Repository[Appointment] {
	table := memstore.NewTable(store, "appointment",
		func(a *Appointment) string { return a.ID },
		func(a *Appointment) string { return a.PatientID })
	return memstore.NewRepo(table, matchAppointment, func(a, b *Appointment) bool {
		return a.Start < b.Start
	})
}

func NewAppointmentRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Appointment] {
	query := lookup.WithParams(lookup.ByPatient("patient", false), map[string]string{
		ParamDate:     "date",
		ParamProvider: "practitioner",
		ParamStatus:   "status",
	})
	return lookup.NewRemote(client, "Appointment", NormalizeAppointment, query, opts...)
}
