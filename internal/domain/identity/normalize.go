package identity

import (
	"strings"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

var genders = map[string]bool{
	fhirmodels.GenderMale:    true,
	fhirmodels.GenderFemale:  true,
	fhirmodels.GenderOther:   true,
	fhirmodels.GenderUnknown: true,
}

// NormalizePatient flattens a FHIR Patient. Unrecognized genders become
// "unknown".
func NormalizePatient(res map[string]interface{}) Patient {
	gender := strings.ToLower(fhir.String(res, "gender"))
	if !genders[gender] {
		gender = fhirmodels.GenderUnknown
	}
	return Patient{
		ID:        fhir.StringOr(res, "id", fhir.NotAvailable),
		Name:      fhir.NameText(res["name"]),
		Gender:    gender,
		BirthDate: fhir.StringOr(res, "birthDate", fhir.NotAvailable),
	}
}

// NormalizePractitioner flattens a FHIR Practitioner. Identifier values are
// joined with ", ".
func NormalizePractitioner(res map[string]interface{}) Practitioner {
	var values []string
	for _, item := range fhir.Array(res, "identifier") {
		if m, ok := item.(map[string]interface{}); ok {
			if v := strings.TrimSpace(fhir.String(m, "value")); v != "" {
				values = append(values, v)
			}
		}
	}
	identifiers := fhir.NotAvailable
	if len(values) > 0 {
		identifiers = strings.Join(values, ", ")
	}
	return Practitioner{
		ID:          fhir.StringOr(res, "id", fhir.NotAvailable),
		Name:        fhir.NameText(res["name"]),
		Identifiers: identifiers,
	}
}
