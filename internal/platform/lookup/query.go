package lookup

import (
	"context"
	"net/url"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// ByName searches by name=<search>. Used for Patient and Practitioner.
func ByName() QueryFunc {
	return func(_ context.Context, f Filter) (url.Values, error) {
		q := url.Values{}
		if f.Search != "" {
			q.Set("name", f.Search)
		}
		return q, nil
	}
}

// ByPatient scopes the search to a patient through param. When asReference
// is set the value is sent as "Patient/<id>". Without a patient, a search
// term is sent as code=<search>.
func ByPatient(param string, asReference bool) QueryFunc {
	return func(_ context.Context, f Filter) (url.Values, error) {
		q := url.Values{}
		switch {
		case f.PatientID != "":
			v := f.PatientID
			if asReference {
				v = fhir.FormatReference("Patient", f.PatientID)
			}
			q.Set(param, v)
		case f.Search != "":
			q.Set("code", f.Search)
		}
		return q, nil
	}
}

// ResolvePatientByName turns a search term into a patient scope: the first
// Patient matching name=<search> is looked up and the query becomes
// patient=Patient/<id>. An unmatched name yields ErrNoMatch.
func ResolvePatientByName(client Searcher) QueryFunc {
	return func(ctx context.Context, f Filter) (url.Values, error) {
		q := url.Values{}
		patientID := f.PatientID
		if patientID == "" && f.Search != "" {
			bundle, err := client.Search(ctx, "Patient", url.Values{"name": {f.Search}, "_count": {"1"}})
			if err != nil {
				return nil, err
			}
			for _, res := range bundle.Resources() {
				if id := fhir.String(res, "id"); id != "" {
					patientID = id
					break
				}
			}
			if patientID == "" {
				return nil, ErrNoMatch
			}
		}
		if patientID != "" {
			q.Set("patient", fhir.FormatReference("Patient", patientID))
		}
		return q, nil
	}
}

// WithParams copies the listed filter params into the query unchanged.
func WithParams(inner QueryFunc, mapping map[string]string) QueryFunc {
	return func(ctx context.Context, f Filter) (url.Values, error) {
		q, err := inner(ctx, f)
		if err != nil {
			return nil, err
		}
		for from, to := range mapping {
			if v := f.Param(from); v != "" {
				q.Set(to, v)
			}
		}
		return q, nil
	}
}
