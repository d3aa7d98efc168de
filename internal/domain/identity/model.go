// Package identity holds patients and practitioners.
package identity

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required,notblank"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	BirthDate string `json:"birthDate,omitempty" validate:"omitempty,fhirdate"`
}

type Practitioner struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,notblank"`
	Identifiers string `json:"identifiers,omitempty"`
}

var PatientKind = crud.Kind[Patient]{
	Name:     "patient",
	IDPrefix: "patient",
	Columns:  []string{"id", "name", "gender", "birthDate"},
	ID:       func(p *Patient) *string { return &p.ID },
	Defaults: func(p *Patient) {
		if p.Gender == "" {
			p.Gender = fhirmodels.GenderUnknown
		}
	},
}

var PractitionerKind = crud.Kind[Practitioner]{
	Name:     "practitioner",
	IDPrefix: "prac",
	Columns:  []string{"id", "name", "identifiers"},
	ID:       func(p *Practitioner) *string { return &p.ID },
}
