// Package dashboard aggregates records from several resource services into
// the overview page and the per-patient chart.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/billing"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/clinical"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/diagnostics"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/encounter"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/identity"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/immunization"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/medication"
	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/scheduling"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

// RecentLimit is the length of the activity feed.
const RecentLimit = 5

// Lister is satisfied by *crud.Service.
type Lister[T any] interface {
	List(ctx context.Context, f lookup.Filter) ([]*T, lookup.Source, error)
}

type PatientSource interface {
	Lister[identity.Patient]
	Get(ctx context.Context, id string) (*identity.Patient, lookup.Source, error)
}

// Sources are the services the dashboard reads. A nil field reads as empty.
type Sources struct {
	Patients      PatientSource
	Appointments  Lister[scheduling.Appointment]
	Allergies     Lister[clinical.Allergy]
	Conditions    Lister[clinical.Condition]
	Observations  Lister[clinical.Observation]
	Procedures    Lister[clinical.Procedure]
	Encounters    Lister[encounter.Encounter]
	Medications   Lister[medication.MedicationRequest]
	Immunizations Lister[immunization.Immunization]
	Reports       Lister[diagnostics.DiagnosticReport]
	Billing       Lister[billing.Record]
}

type Stats struct {
	TotalPatients     int `json:"totalPatients"`
	AppointmentsToday int `json:"appointmentsToday"`
	PendingToday      int `json:"pendingToday"`
	ActiveCases       int `json:"activeCases"`
	Reports           int `json:"reports"`
}

type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Patient     string `json:"patient"`
	Time        string `json:"time"`

	at time.Time
}

type Overview struct {
	Stats        Stats                     `json:"stats"`
	Appointments []*scheduling.Appointment `json:"appointments"`
	Recent       []Activity                `json:"recent"`
}

// Chart is one patient with every dependent record.
type Chart struct {
	Patient       *identity.Patient               `json:"patient"`
	Appointments  []*scheduling.Appointment       `json:"appointments"`
	Allergies     []*clinical.Allergy             `json:"allergies"`
	Conditions    []*clinical.Condition           `json:"conditions"`
	Observations  []*clinical.Observation         `json:"observations"`
	Procedures    []*clinical.Procedure           `json:"procedures"`
	Encounters    []*encounter.Encounter          `json:"encounters"`
	Medications   []*medication.MedicationRequest `json:"medications"`
	Immunizations []*immunization.Immunization    `json:"immunizations"`
	Reports       []*diagnostics.DiagnosticReport `json:"reports"`
	Billing       []*billing.Record               `json:"billing"`
}

type Service struct {
	src Sources
	log zerolog.Logger
	now func() time.Time
}

func NewService(src Sources, log zerolog.Logger) *Service {
	return &Service{src: src, log: log, now: time.Now}
}

// Overview gathers the counters and the recent activity feed. A source that
// fails is logged and counted as empty.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := s.now()
	today := now.Format("2006-01-02")

	var (
		patients   []*identity.Patient
		appts      []*scheduling.Appointment
		conditions []*clinical.Condition
		encounters []*encounter.Encounter
		reports    []*diagnostics.DiagnosticReport
	)
	var g errgroup.Group
	collect[identity.Patient](ctx, &g, s.log, "patients", s.src.Patients, lookup.Filter{}, &patients)
	collect(ctx, &g, s.log, "appointments", s.src.Appointments,
		lookup.Filter{Params: map[string]string{scheduling.ParamDate: today}}, &appts)
	collect(ctx, &g, s.log, "conditions", s.src.Conditions, lookup.Filter{}, &conditions)
	collect(ctx, &g, s.log, "encounters", s.src.Encounters, lookup.Filter{}, &encounters)
	collect(ctx, &g, s.log, "reports", s.src.Reports, lookup.Filter{}, &reports)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := &Overview{
		Stats: Stats{
			TotalPatients:     len(patients),
			AppointmentsToday: len(appts),
			ActiveCases:       len(conditions),
			Reports:           len(reports),
		},
		Appointments: appts,
	}
	for _, a := range appts {
		if a.Status == fhirmodels.AppointmentScheduled {
			ov.Stats.PendingToday++
		}
	}
	ov.Recent = recent(now, patients, encounters, reports)
	return ov, nil
}

// Chart loads the patient and, concurrently, every record that references
// it. An unknown patient is an error; a failing dependent source is empty.
func (s *Service) Chart(ctx context.Context, patientID string) (*Chart, error) {
	if s.src.Patients == nil {
		return nil, errs.NotFound("patient %s not found", patientID)
	}
	p, _, err := s.src.Patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	ch := &Chart{Patient: p}
	f := lookup.Filter{PatientID: patientID}

	var g errgroup.Group
	collect(ctx, &g, s.log, "appointments", s.src.Appointments, f, &ch.Appointments)
	collect(ctx, &g, s.log, "allergies", s.src.Allergies, f, &ch.Allergies)
	collect(ctx, &g, s.log, "conditions", s.src.Conditions, f, &ch.Conditions)
	collect(ctx, &g, s.log, "observations", s.src.Observations, f, &ch.Observations)
	collect(ctx, &g, s.log, "procedures", s.src.Procedures, f, &ch.Procedures)
	collect(ctx, &g, s.log, "encounters", s.src.Encounters, f, &ch.Encounters)
	collect(ctx, &g, s.log, "medications", s.src.Medications, f, &ch.Medications)
	collect(ctx, &g, s.log, "immunizations", s.src.Immunizations, f, &ch.Immunizations)
	collect(ctx, &g, s.log, "reports", s.src.Reports, f, &ch.Reports)
	collect(ctx, &g, s.log, "billing", s.src.Billing, f, &ch.Billing)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ch, nil
}

func collect[T any](ctx context.Context, g *errgroup.Group, log zerolog.Logger, name string, l Lister[T], f lookup.Filter, dst *[]*T) {
	*dst = []*T{}
	if l == nil {
		return
	}
	g.Go(func() error {
		rows, src, err := l.List(ctx, f)
		if err != nil {
			log.Warn().Err(err).Str("source", name).Msg("dashboard source failed, using empty list")
			return nil
		}
		log.Debug().Str("source", name).Str("from", string(src)).Int("rows", len(rows)).Msg("dashboard source loaded")
		*dst = rows
		return nil
	})
}

// recent merges patients, encounters and reports newest first. Patients
// carry no timestamp and are stamped with now.
func recent(now time.Time, patients []*identity.Patient, encounters []*encounter.Encounter, reports []*diagnostics.DiagnosticReport) []Activity {
	acts := make([]Activity, 0, len(patients)+len(encounters)+len(reports))
	for _, p := range patients {
		acts = append(acts, Activity{
			ID: p.ID, Type: "patient", Description: "New patient registered",
			Patient: p.Name, Time: now.UTC().Format(time.RFC3339), at: now,
		})
	}
	for _, e := range encounters {
		acts = append(acts, Activity{
			ID: e.ID, Type: "encounter", Description: "Encounter status: " + e.Status,
			Patient: e.Subject, Time: e.Start, at: parseTime(e.Start),
		})
	}
	for _, r := range reports {
		acts = append(acts, Activity{
			ID: r.ID, Type: "report", Description: "Lab results available",
			Patient: r.Subject, Time: r.Issued, at: parseTime(r.Issued),
		})
	}
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].at.After(acts[j].at) })
	if len(acts) > RecentLimit {
		acts = acts[:RecentLimit]
	}
	return acts
}

func parseTime(s string) time.Time {
	t, _, _ := fhir.ParseDateTime(s)
	return t
}
