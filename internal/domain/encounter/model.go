// Package encounter holds patient encounters.
package encounter

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type Encounter struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId" validate:"required,notblank"`
	Status    string `json:"status" validate:"omitempty,oneof=planned arrived triaged in-progress onleave finished cancelled"`
	Class     string `json:"class,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Start     string `json:"start,omitempty" validate:"omitempty,fhirdate"`
	End       string `json:"end,omitempty" validate:"omitempty,fhirdate"`
}

var Kind = crud.Kind[Encounter]{
	Name:     "encounter",
	IDPrefix: "enc",
	Columns:  []string{"id", "status", "class", "subject", "start", "end"},
	ID:       func(e *Encounter) *string { return &e.ID },
	Defaults: func(e *Encounter) {
		if e.Status == "" {
			e.Status = fhirmodels.EncounterStatusPlanned
		}
	},
}
