// Package clinical holds allergies, conditions, observations and procedures.
package clinical

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type Allergy struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId" validate:"required,notblank"`
	Code        string `json:"code" validate:"required,notblank"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive resolved"`
	Criticality string `json:"criticality,omitempty" validate:"omitempty,oneof=low medium high"`
	Patient     string `json:"patient,omitempty"`
}

type Condition struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId" validate:"required,notblank"`
	Code      string `json:"code" validate:"required,notblank"`
	Patient   string `json:"patient,omitempty"`
}

type Observation struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId" validate:"required,notblank"`
	Status    string `json:"status" validate:"omitempty,oneof=registered preliminary final amended corrected cancelled"`
	Code      string `json:"code" validate:"required,notblank"`
	Value     string `json:"value,omitempty"`
	Date      string `json:"date,omitempty" validate:"omitempty,fhirdate"`
}

type Procedure struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId" validate:"required,notblank"`
	Status    string `json:"status" validate:"omitempty,oneof=preparation in-progress not-done on-hold stopped completed"`
	Code      string `json:"code" validate:"required,notblank"`
	Performed string `json:"performed,omitempty" validate:"omitempty,fhirdate"`
}

var AllergyKind = crud.Kind[Allergy]{
	Name:     "allergy",
	IDPrefix: "allergy",
	Columns:  []string{"id", "code", "status", "criticality", "patient"},
	ID:       func(a *Allergy) *string { return &a.ID },
	Defaults: func(a *Allergy) {
		if a.Status == "" {
			a.Status = fhirmodels.AllergyActive
		}
	},
}

var ConditionKind = crud.Kind[Condition]{
	Name:     "condition",
	IDPrefix: "cond",
	Columns:  []string{"id", "code", "patient"},
	ID:       func(c *Condition) *string { return &c.ID },
}

var ObservationKind = crud.Kind[Observation]{
	Name:     "observation",
	IDPrefix: "obs",
	Columns:  []string{"id", "status", "code", "value", "date"},
	ID:       func(o *Observation) *string { return &o.ID },
	Defaults: func(o *Observation) {
		if o.Status == "" {
			o.Status = fhirmodels.ResultFinal
		}
	},
}

var ProcedureKind = crud.Kind[Procedure]{
	Name:     "procedure",
	IDPrefix: "proc",
	Columns:  []string{"id", "status", "code", "performed"},
	ID:       func(p *Procedure) *string { return &p.ID },
	Defaults: func(p *Procedure) {
		if p.Status == "" {
			p.Status = fhirmodels.EventCompleted
		}
	},
}
