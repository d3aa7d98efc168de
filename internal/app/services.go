// Package app assembles the resource services, the dashboard and the HTTP
// server from configuration.
package app

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/billing"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/clinical"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/dashboard"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/diagnostics"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/encounter"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/identity"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/immunization"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/medication"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/scheduling"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/cache"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/ident"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/validate"
	"github.com/vatsal-afk/EHR-Dashboard/internal/render"
)

// Deps are the collaborators the services are built on. Exactly one of Pool
// and Store backs the local tier; a nil Pool with a nil Store gets a fresh
// memory store. A nil FHIR disables the remote tier.
type Deps struct {
	Pool     *pgxpool.Pool
	Store    *memstore.Store
	FHIR     lookup.Searcher
	Cache    cache.Cache
	CacheTTL time.Duration
	IDs      ident.Generator
	Logger   zerolog.Logger
}

type tableFunc func(ctx context.Context, f lookup.Filter, columns []string) (render.Table, lookup.Source, error)

type Services struct {
	Patients      *crud.Service[identity.Patient]
	Practitioners *crud.Service[identity.Practitioner]
	Appointments  *crud.Service[scheduling.Appointment]
	Allergies     *crud.Service[clinical.Allergy]
	Conditions    *crud.Service[clinical.Condition]
	Observations  *crud.Service[clinical.Observation]
	Procedures    *crud.Service[clinical.Procedure]
	Encounters    *crud.Service[encounter.Encounter]
	Medications   *crud.Service[medication.MedicationRequest]
	Immunizations *crud.Service[immunization.Immunization]
	Reports       *crud.Service[diagnostics.DiagnosticReport]
	Billing       *crud.Service[billing.Record]
	Dashboard     *dashboard.Service

	routes []interface{ RegisterRoutes(*echo.Group) }
	tables map[string]tableFunc
}

type remoteFunc[T any] func(lookup.Searcher, ...lookup.RemoteOption) *lookup.Remote[T]

func localRepo[T any](d Deps, pg func(*pgxpool.Pool) crud.Repository[T], mem func(*memstore.Store) crud.Repository[T]) crud.Repository[T] {
	if d.Pool != nil {
		return pg(d.Pool)
	}
	return mem(d.Store)
}

func remoteTier[T any](d Deps, mk remoteFunc[T]) lookup.Tier[T] {
	if d.FHIR == nil || mk == nil {
		return nil
	}
	return mk(d.FHIR, lookup.WithCache(d.Cache, d.CacheTTL), lookup.WithRemoteLogger(d.Logger))
}

// resource builds the service for one record type and registers its routes
// under path.
func resource[T any](s *Services, d Deps, v crud.Validator, kind crud.Kind[T], path string,
	pg func(*pgxpool.Pool) crud.Repository[T], mem func(*memstore.Store) crud.Repository[T],
	remote remoteFunc[T], params ...string) *crud.Service[T] {
	svc := crud.NewService(kind, localRepo(d, pg, mem), remoteTier(d, remote), d.IDs, v)
	s.routes = append(s.routes, crud.NewHandler(svc, path, params...))
	s.tables[path] = svc.Table
	return svc
}

func NewServices(d Deps) *Services {
	if d.Pool == nil && d.Store == nil {
		d.Store = memstore.New()
	}
	if d.IDs == nil {
		d.IDs = ident.NewTimestampGenerator()
	}
	v := validate.New()
	s := &Services{tables: make(map[string]tableFunc)}

	// The patient table must exist before any table that references it.
	s.Patients = resource(s, d, v, identity.PatientKind, "patients",
		identity.NewPatientRepo, identity.NewPatientMemRepo, identity.NewPatientRemote)
	s.Practitioners = resource(s, d, v, identity.PractitionerKind, "practitioners",
		identity.NewPractitionerRepo, identity.NewPractitionerMemRepo, identity.NewPractitionerRemote)
	s.Appointments = resource(s, d, v, scheduling.AppointmentKind, "appointments",
		scheduling.NewAppointmentRepo, scheduling.NewAppointmentMemRepo, scheduling.NewAppointmentRemote,
		scheduling.ParamDate, scheduling.ParamProvider, scheduling.ParamStatus)
	s.Allergies = resource(s, d, v, clinical.AllergyKind, "allergies",
		clinical.NewAllergyRepo, clinical.NewAllergyMemRepo, clinical.NewAllergyRemote)
	s.Conditions = resource(s, d, v, clinical.ConditionKind, "conditions",
		clinical.NewConditionRepo, clinical.NewConditionMemRepo, clinical.NewConditionRemote)
	s.Observations = resource(s, d, v, clinical.ObservationKind, "observations",
		clinical.NewObservationRepo, clinical.NewObservationMemRepo, clinical.NewObservationRemote)
	s.Procedures = resource(s, d, v, clinical.ProcedureKind, "procedures",
		clinical.NewProcedureRepo, clinical.NewProcedureMemRepo, clinical.NewProcedureRemote)
	s.Encounters = resource(s, d, v, encounter.Kind, "encounters",
		encounter.NewRepo, encounter.NewMemRepo, encounter.NewRemote)
	s.Medications = resource(s, d, v, medication.Kind, "medications",
		medication.NewRepo, medication.NewMemRepo, medication.NewRemote)
	s.Immunizations = resource(s, d, v, immunization.Kind, "immunizations",
		immunization.NewRepo, immunization.NewMemRepo, immunization.NewRemote)
	s.Reports = resource(s, d, v, diagnostics.Kind, "diagnosticreports",
		diagnostics.NewRepo, diagnostics.NewMemRepo, diagnostics.NewRemote)

	// Billing has no clinical API counterpart.
	s.Billing = crud.NewService(billing.Kind, localRepo(d, billing.NewRepo, billing.NewMemRepo), nil, d.IDs, v)
	s.routes = append(s.routes, billing.NewHandler(s.Billing))
	s.tables["billing"] = s.Billing.Table

	s.Dashboard = dashboard.NewService(dashboard.Sources{
		Patients:      s.Patients,
		Appointments:  s.Appointments,
		Allergies:     s.Allergies,
		Conditions:    s.Conditions,
		Observations:  s.Observations,
		Procedures:    s.Procedures,
		Encounters:    s.Encounters,
		Medications:   s.Medications,
		Immunizations: s.Immunizations,
		Reports:       s.Reports,
		Billing:       s.Billing,
	}, d.Logger)
	s.routes = append(s.routes, dashboard.NewHandler(s.Dashboard))
	return s
}

// RegisterRoutes mounts every resource on api.
func (s *Services) RegisterRoutes(api *echo.Group) {
	for _, r := range s.routes {
		r.RegisterRoutes(api)
	}
}

// Resources lists the names accepted by Table.
func (s *Services) Resources() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table renders one resource through the same lookup chain as the API.
func (s *Services) Table(ctx context.Context, resource string, f lookup.Filter, columns []string) (render.Table, lookup.Source, error) {
	fn, ok := s.tables[resource]
	if !ok {
		return render.Table{}, lookup.SourceNone, errs.Validation("unknown resource %q", resource)
	}
	return fn(ctx, f, columns)
}
