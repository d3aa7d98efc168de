// Package diagnostics holds diagnostic reports.
package diagnostics

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type DiagnosticReport struct {
	ID            string `json:"id"`
	PatientID     string `json:"patientId" validate:"required,notblank"`
	Status        string `json:"status" validate:"omitempty,oneof=registered partial preliminary final amended corrected cancelled"`
	Code          string `json:"code" validate:"required,notblank"`
	Subject       string `json:"subject,omitempty"`
	EffectiveDate string `json:"effectiveDate,omitempty" validate:"omitempty,fhirdate"`
	Issued        string `json:"issued,omitempty" validate:"omitempty,fhirdate"`
}

var Kind = crud.Kind[DiagnosticReport]{
	Name:     "diagnostic report",
	IDPrefix: "report",
	Columns:  []string{"id", "status", "code", "subject", "effectiveDate", "issued"},
	ID:       func(r *DiagnosticReport) *string { return &r.ID },
	Defaults: func(r *DiagnosticReport) {
		if r.Status == "" {
			r.Status = fhirmodels.ResultFinal
		}
	},
}
