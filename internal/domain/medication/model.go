// Package medication holds medication requests.
package medication

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type MedicationRequest struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId" validate:"required,notblank"`
	Code      string `json:"code" validate:"required,notblank"`
	Status    string `json:"status" validate:"omitempty,oneof=active on-hold cancelled completed stopped draft"`
}

var Kind = crud.Kind[MedicationRequest]{
	Name:     "medication",
	IDPrefix: "med",
	Columns:  []string{"id", "code", "status"},
	ID:       func(m *MedicationRequest) *string { return &m.ID },
	Defaults: func(m *MedicationRequest) {
		if m.Status == "" {
			m.Status = fhirmodels.MedicationActive
		}
	},
}
