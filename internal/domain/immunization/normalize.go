package immunization

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// Normalize flattens a FHIR Immunization. primarySource is false unless the
// resource says true.
func Normalize(res map[string]interface{}) Immunization {
	primary, _ := res["primarySource"].(bool)
	return Immunization{
		ID:            fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID:     fhir.ReferenceID(res["patient"]),
		Status:        fhir.StringOr(res, "status", fhir.NotAvailable),
		Vaccine:       fhir.CodeText(res["vaccineCode"]),
		Patient:       fhir.ReferenceText(res["patient"]),
		PrimarySource: primary,
	}
}
