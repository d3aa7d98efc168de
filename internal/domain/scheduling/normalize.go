package scheduling

import (
	"strings"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// NormalizeAppointment flattens a FHIR Appointment. The patient and provider
// come from the first participant whose actor references a Patient or a
// Practitioner.
func NormalizeAppointment(res map[string]interface{}) Appointment {
	participants := res["participant"]
	return Appointment{
		ID:          fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID:   participantID(participants, "Patient"),
		Status:      fhir.StringOr(res, "status", fhir.NotAvailable),
		Description: fhir.StringOr(res, "description", fhir.NotAvailable),
		Start:       fhir.StringOr(res, "start", fhir.NotAvailable),
		End:         fhir.StringOr(res, "end", fhir.NotAvailable),
		Patient:     fhir.ParticipantActor(participants, "Patient"),
		Provider:    fhir.ParticipantActor(participants, "Practitioner"),
	}
}

func participantID(participants interface{}, prefix string) string {
	list, _ := participants.([]interface{})
	for _, item := range list {
		p, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		actor := fhir.Map(p, "actor")
		if strings.HasPrefix(fhir.String(actor, "reference"), prefix) {
			return fhir.ReferenceID(actor)
		}
	}
	return ""
}
