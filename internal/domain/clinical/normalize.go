package clinical

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

func NormalizeAllergy(res map[string]interface{}) Allergy {
	status := fhir.NotAvailable
	if c := fhir.First(fhir.Map(res, "clinicalStatus"), "coding"); c != nil {
		status = fhir.StringOr(c, "code", fhir.NotAvailable)
	}
	return Allergy{
		ID:          fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID:   fhir.ReferenceID(res["patient"]),
		Code:        fhir.CodeText(res["code"]),
		Status:      status,
		Criticality: fhir.StringOr(res, "criticality", fhir.NotAvailable),
		Patient:     fhir.ReferenceText(res["patient"]),
	}
}

func NormalizeCondition(res map[string]interface{}) Condition {
	return Condition{
		ID:        fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID: fhir.ReferenceID(res["subject"]),
		Code:      fhir.CodeText(res["code"]),
		Patient:   fhir.ReferenceText(res["subject"]),
	}
}

// NormalizeObservation flattens a FHIR Observation. The value is the first
// present of valueQuantity, valueString, valueCodeableConcept and
// valueBoolean; the date is effectiveDateTime, then effectivePeriod.start,
// then issued.
func NormalizeObservation(res map[string]interface{}) Observation {
	return Observation{
		ID:        fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID: fhir.ReferenceID(res["subject"]),
		Status:    fhir.StringOr(res, "status", fhir.NotAvailable),
		Code:      fhir.CodeText(res["code"]),
		Value:     observationValue(res),
		Date:      fhir.FirstString(res, "effectiveDateTime", "effectivePeriod.start", "issued"),
	}
}

func observationValue(res map[string]interface{}) string {
	switch {
	case fhir.Has(res, "valueQuantity"):
		return fhir.QuantityText(res["valueQuantity"])
	case fhir.String(res, "valueString") != "":
		return fhir.String(res, "valueString")
	case fhir.Has(res, "valueCodeableConcept"):
		return fhir.CodeText(res["valueCodeableConcept"])
	case fhir.Has(res, "valueBoolean"):
		if s := fhir.Scalar(res["valueBoolean"]); s != "" {
			return s
		}
	}
	return fhir.NotAvailable
}

// NormalizeProcedure flattens a FHIR Procedure. performed is
// performedDateTime, then performedPeriod.start.
func NormalizeProcedure(res map[string]interface{}) Procedure {
	return Procedure{
		ID:        fhir.StringOr(res, "id", fhir.NotAvailable),
		PatientID: fhir.ReferenceID(res["subject"]),
		Status:    fhir.StringOr(res, "status", fhir.NotAvailable),
		Code:      fhir.CodeText(res["code"]),
		Performed: fhir.FirstString(res, "performedDateTime", "performedPeriod.start"),
	}
}
