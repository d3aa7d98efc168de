package immunization

import "testing"

func TestNormalize(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"id":            "i1",
		"status":        "completed",
		"vaccineCode":   map[string]interface{}{"coding": []interface{}{map[string]interface{}{"code": "207", "display": "COVID-19"}}},
		"patient":       map[string]interface{}{"reference": "Patient/12"},
		"primarySource": true,
	})
	want := Immunization{ID: "i1", PatientID: "12", Status: "completed", Vaccine: "COVID-19", Patient: "Patient/12", PrimarySource: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalize_Fallbacks(t *testing.T) {
	got := Normalize(map[string]interface{}{"primarySource": "yes"})
	want := Immunization{ID: "N/A", Status: "N/A", Vaccine: "N/A", Patient: "N/A"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
