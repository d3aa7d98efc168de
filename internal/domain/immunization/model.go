// Package immunization holds administered vaccines.
package immunization

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type Immunization struct {
	ID            string `json:"id"`
	PatientID     string `json:"patientId" validate:"required,notblank"`
	Status        string `json:"status" validate:"omitempty,oneof=completed entered-in-error not-done"`
	Vaccine       string `json:"vaccine" validate:"required,notblank"`
	Patient       string `json:"patient,omitempty"`
	PrimarySource bool   `json:"primarySource"`
}

var Kind = crud.Kind[Immunization]{
	Name:     "immunization",
	IDPrefix: "imm",
	Columns:  []string{"id", "status", "vaccine", "patient", "primarySource"},
	ID:       func(i *Immunization) *string { return &i.ID },
	Defaults: func(i *Immunization) {
		if i.Status == "" {
			i.Status = fhirmodels.EventCompleted
		}
	},
}
