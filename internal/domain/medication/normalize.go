package medication

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// Normalize flattens a FHIR MedicationRequest. The code comes from
// medicationCodeableConcept, then code, then medicationReference.display.
func Normalize(res map[string]interface{}) MedicationRequest {
	code := fhir.NotAvailable
	switch {
	case fhir.Has(res, "medicationCodeableConcept"):
		code = fhir.CodeText(res["medicationCodeableConcept"])
	case fhir.Has(res, "code"):
		code = fhir.CodeText(res["code"])
	}
	if code == fhir.NotAvailable {
		code = fhir.StringOr(fhir.Map(res, "medicationReference"), "display", fhir.NotAvailable)
	}
	return MedicationRequest{
		ID:        fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID: fhir.ReferenceID(res["subject"]),
		Code:      code,
		Status:    fhir.StringOr(res, "status", fhir.NotAvailable),
	}
}
