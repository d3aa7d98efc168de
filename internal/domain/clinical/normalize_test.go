package clinical

import "testing"

func coding(display, code string) map[string]interface{} {
	return map[string]interface{}{"coding": []interface{}{map[string]interface{}{"display": display, "code": code}}}
}

func TestNormalizeAllergy(t *testing.T) {
	got := NormalizeAllergy(map[string]interface{}{
		"id":             "al1",
		"code":           map[string]interface{}{"text": "Peanut"},
		"clinicalStatus": coding("", "active"),
		"criticality":    "high",
		"patient":        map[string]interface{}{"reference": "Patient/42"},
	})
	want := Allergy{ID: "al1", PatientID: "42", Code: "Peanut", Status: "active", Criticality: "high", Patient: "Patient/42"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	empty := NormalizeAllergy(nil)
	if empty != (Allergy{ID: "N/A", Code: "N/A", Status: "N/A", Criticality: "N/A", Patient: "N/A"}) {
		t.Errorf("fallbacks = %+v", empty)
	}
}

func TestNormalizeCondition(t *testing.T) {
	got := NormalizeCondition(map[string]interface{}{
		"id":      "c1",
		"code":    coding("Hypertension", "38341003"),
		"subject": map[string]interface{}{"reference": "Patient/9", "display": "Ann Lee"},
	})
	if got != (Condition{ID: "c1", PatientID: "9", Code: "Hypertension", Patient: "Ann Lee"}) {
		t.Errorf("got %+v", got)
	}
	if c := NormalizeCondition(map[string]interface{}{"code": coding("", "38341003")}); c.Code != "38341003" {
		t.Errorf("bare code = %q", c.Code)
	}
}

func TestNormalizeObservation_Value(t *testing.T) {
	tests := []struct {
		name string
		res  map[string]interface{}
		want string
	}{
		{"quantity", map[string]interface{}{"valueQuantity": map[string]interface{}{"value": 98.6, "unit": "F"}}, "98.6 F"},
		{"quantity without unit", map[string]interface{}{"valueQuantity": map[string]interface{}{"value": 7.0}}, "7"},
		{"string", map[string]interface{}{"valueString": "positive"}, "positive"},
		{"concept", map[string]interface{}{"valueCodeableConcept": coding("Detected", "260373001")}, "Detected"},
		{"boolean", map[string]interface{}{"valueBoolean": false}, "No"},
		{"quantity wins", map[string]interface{}{"valueQuantity": map[string]interface{}{"value": 1.0, "unit": "mg"}, "valueString": "x"}, "1 mg"},
		{"none", map[string]interface{}{}, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeObservation(tt.res).Value; got != tt.want {
				t.Errorf("Value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeObservation_Date(t *testing.T) {
	tests := []struct {
		res  map[string]interface{}
		want string
	}{
		{map[string]interface{}{"effectiveDateTime": "2024-01-01T10:00:00Z", "issued": "2024-01-02"}, "2024-01-01T10:00:00Z"},
		{map[string]interface{}{"effectivePeriod": map[string]interface{}{"start": "2024-02-01"}}, "2024-02-01"},
		{map[string]interface{}{"issued": "2024-03-01T00:00:00Z"}, "2024-03-01T00:00:00Z"},
		{map[string]interface{}{}, "N/A"},
	}
	for _, tt := range tests {
		if got := NormalizeObservation(tt.res).Date; got != tt.want {
			t.Errorf("Date = %q, want %q", got, tt.want)
		}
	}
}

func TestNormalizeObservation_Record(t *testing.T) {
	got := NormalizeObservation(map[string]interface{}{
		"id":                "o1",
		"status":            "final",
		"code":              coding("Body temperature", "8310-5"),
		"subject":           map[string]interface{}{"reference": "Patient/1"},
		"valueQuantity":     map[string]interface{}{"value": 98.6, "unit": "F"},
		"effectiveDateTime": "2024-01-01",
	})
	want := Observation{ID: "o1", PatientID: "1", Status: "final", Code: "Body temperature", Value: "98.6 F", Date: "2024-01-01"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeProcedure(t *testing.T) {
	got := NormalizeProcedure(map[string]interface{}{
		"id":              "pr1",
		"status":          "completed",
		"code":            map[string]interface{}{"text": "Appendectomy"},
		"performedPeriod": map[string]interface{}{"start": "2023-06-01", "end": "2023-06-02"},
	})
	if got != (Procedure{ID: "pr1", Status: "completed", Code: "Appendectomy", Performed: "2023-06-01"}) {
		t.Errorf("got %+v", got)
	}
	if p := NormalizeProcedure(map[string]interface{}{"code": 12.0}); p.Code != "N/A" || p.Performed != "N/A" {
		t.Errorf("fallbacks = %+v", p)
	}
}
