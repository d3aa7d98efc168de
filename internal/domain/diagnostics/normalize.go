package diagnostics

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

func Normalize(res map[string]interface{}) DiagnosticReport {
	return DiagnosticReport{
		ID:            fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID:     fhir.ReferenceID(res["subject"]),
		Status:        fhir.StringOr(res, "status", fhir.NotAvailable),
		Code:          fhir.CodeText(res["code"]),
		Subject:       fhir.ReferenceText(res["subject"]),
		EffectiveDate: fhir.FirstString(res, "effectiveDateTime", "effectivePeriod.start"),
		Issued:        fhir.StringOr(res, "issued", fhir.NotAvailable),
	}
}
