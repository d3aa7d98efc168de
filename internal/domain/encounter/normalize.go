package encounter

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// Normalize flattens a FHIR Encounter. class is an R4 Coding or an R5 list
// of CodeableConcepts.
func Normalize(res map[string]interface{}) Encounter {
	period := fhir.Map(res, "period")
	return Encounter{
		ID:        fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID: fhir.ReferenceID(res["subject"]),
		Status:    fhir.StringOr(res, "status", fhir.NotAvailable),
		Class:     classText(res["class"]),
		Subject:   fhir.ReferenceText(res["subject"]),
		Start:     fhir.StringOr(period, "start", fhir.NotAvailable),
		End:       fhir.StringOr(period, "end", fhir.NotAvailable),
	}
}

func classText(v interface{}) string {
	switch c := v.(type) {
	case map[string]interface{}:
		if fhir.Has(c, "coding") || fhir.Has(c, "text") {
			return fhir.CodeText(c)
		}
		return fhir.CodingText(c)
	case []interface{}:
		if len(c) > 0 {
			return fhir.CodeText(c[0])
		}
	}
	return fhir.NotAvailable
}
