package clinical

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

// -- Allergy --

var allergyCols = []string{"id", "patient_id", "code", "status", "criticality", "patient"}

func scanAllergy(row pgx.Row) (*Allergy, error) {
	var a Allergy
	if err := row.Scan(&a.ID, &a.PatientID, &a.Code, &a.Status, &a.Criticality, &a.Patient); err != nil {
		return nil, err
	}
	return &a, nil
}

func NewAllergyRepo(pool *pgxpool.Pool) crud.Repository[Allergy] {
	return crud.NewPGRepo(pool, crud.PGTable[Allergy]{
		Name:    "allergy",
		Columns: allergyCols,
		Scan:    scanAllergy,
		Values: func(a *Allergy) []interface{} {
			return []interface{}{a.ID, a.PatientID, a.Code, a.Status, a.Criticality, a.Patient}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"code", "patient"},
	})
}

func NewAllergyMemRepo(store *memstore.Store) crud.Repository[Allergy] {
	table := memstore.NewTable(store, "allergy",
		func(a *Allergy) string { return a.ID },
		func(a *Allergy) string { return a.PatientID })
	return memstore.NewRepo(table, func(a *Allergy, f lookup.Filter) bool {
		return memstore.Contains(f.Search, a.Code, a.Patient)
	}, nil)
}

// NewAllergyRemote scopes searches to a patient. A bare search term is
// resolved to a patient by name first.
func NewAllergyRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Allergy] {
	return lookup.NewRemote(client, "AllergyIntolerance", NormalizeAllergy, lookup.ResolvePatientByName(client), opts...)
}

// -- Condition --

var conditionCols = []string{"id", "patient_id", "code", "patient"}

func scanCondition(row pgx.Row) (*Condition, error) {
	var c Condition
	if err := row.Scan(&c.ID, &c.PatientID, &c.Code, &c.Patient); err != nil {
		return nil, err
	}
	return &c, nil
}

func NewConditionRepo(pool *pgxpool.Pool) crud.Repository[Condition] {
	return crud.NewPGRepo(pool, crud.PGTable[Condition]{
		Name:          "condition",
		Columns:       conditionCols,
		Scan:          scanCondition,
		Values:        func(c *Condition) []interface{} { return []interface{}{c.ID, c.PatientID, c.Code, c.Patient} },
		PatientColumn: "patient_id",
		SearchColumns: []string{"code", "patient"},
	})
}

func NewConditionMemRepo(store *memstore.Store) crud.Repository[Condition] {
	table := memstore.NewTable(store, "condition",
		func(c *Condition) string { return c.ID },
		func(c *Condition) string { return c.PatientID })
	return memstore.NewRepo(table, func(c *Condition, f lookup.Filter) bool {
		return memstore.Contains(f.Search, c.Code, c.Patient)
	}, nil)
}

func NewConditionRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Condition] {
	return lookup.NewRemote(client, "Condition", NormalizeCondition, lookup.ByPatient("patient", false), opts...)
}

// -- Observation --

var observationCols = []string{"id", "patient_id", "status", "code", "value", "date"}

func scanObservation(row pgx.Row) (*Observation, error) {
	var o Observation
	if err := row.Scan(&o.ID, &o.PatientID, &o.Status, &o.Code, &o.Value, &o.Date); err != nil {
		return nil, err
	}
	return &o, nil
}

func NewObservationRepo(pool *pgxpool.Pool) crud.Repository[Observation] {
	return crud.NewPGRepo(pool, crud.PGTable[Observation]{
		Name:    "observation",
		Columns: observationCols,
		Scan:    scanObservation,
		Values: func(o *Observation) []interface{} {
			return []interface{}{o.ID, o.PatientID, o.Status, o.Code, o.Value, o.Date}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"code", "value"},
		OrderBy:       "date DESC, id",
	})
}

func NewObservationMemRepo(store *memstore.Store) crud.Repository[Observation] {
	table := memstore.NewTable(store, "observation",
		func(o *Observation) string { return o.ID },
		func(o *Observation) string { return o.PatientID })
	return memstore.NewRepo(table, func(o *Observation, f lookup.Filter) bool {
		return memstore.Contains(f.Search, o.Code, o.Value)
	}, func(a, b *Observation) bool {
		return a.Date > b.Date
	})
}

func NewObservationRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Observation] {
	return lookup.NewRemote(client, "Observation", NormalizeObservation, lookup.ByPatient("patient", false), opts...)
}

// -- Procedure --

var procedureCols = []string{"id", "patient_id", "status", "code", "performed"}

func scanProcedure(row pgx.Row) (*Procedure, error) {
	var p Procedure
	if err := row.Scan(&p.ID, &p.PatientID, &p.Status, &p.Code, &p.Performed); err != nil {
		return nil, err
	}
	return &p, nil
}

func NewProcedureRepo(pool *pgxpool.Pool) crud.Repository[Procedure] {
	return crud.NewPGRepo(pool, crud.PGTable[Procedure]{
		Name:    "procedure",
		Columns: procedureCols,
		Scan:    scanProcedure,
		Values: func(p *Procedure) []interface{} {
			return []interface{}{p.ID, p.PatientID, p.Status, p.Code, p.Performed}
		},
		PatientColumn: "patient_id",
		SearchColumns: []string{"code"},
	})
}

func NewProcedureMemRepo(store *memstore.Store) crud.Repository[Procedure] {
	table := memstore.NewTable(store, "procedure",
		func(p *Procedure) string { return p.ID },
		func(p *Procedure) string { return p.PatientID })
	return memstore.NewRepo(table, func(p *Procedure, f lookup.Filter) bool {
		return memstore.Contains(f.Search, p.Code)
	}, nil)
}

func NewProcedureRemote(client lookup.Searcher, opts ...lookup.RemoteOption) *lookup.Remote[Procedure] {
	return lookup.NewRemote(client, "Procedure", NormalizeProcedure, lookup.ByPatient("patient", false), opts...)
}
