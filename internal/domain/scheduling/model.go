// Package scheduling holds appointments.
package scheduling

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId" validate:"required,notblank"`
	Status      string `json:"status" validate:"omitempty,oneof=proposed pending booked arrived fulfilled cancelled noshow scheduled completed no-show planned checked-in waitlist"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start" validate:"required,fhirdate"`
	End         string `json:"end,omitempty" validate:"omitempty,fhirdate"`
	Patient     string `json:"patient,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// Filter params understood by appointment lists.
const (
	ParamDate     = "date"
	ParamProvider = "provider"
	ParamStatus   = "status"
)

var AppointmentKind = crud.Kind[Appointment]{
	Name:     "appointment",
	IDPrefix: "appt",
	Columns:  []string{"id", "status", "description", "start", "end", "patient", "provider"},
	ID:       func(a *Appointment) *string { return &a.ID },
	Defaults: func(a *Appointment) {
		if a.Status == "" {
			a.Status = fhirmodels.AppointmentScheduled
		}
	},
}
