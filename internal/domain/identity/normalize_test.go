package identity

import "testing"

func TestNormalizePatient(t *testing.T) {
	tests := []struct {
		name string
		res  map[string]interface{}
		want Patient
	}{
		{
			name: "full",
			res: map[string]interface{}{
				"resourceType": "Patient",
				"id":           "123",
				"name":         []interface{}{map[string]interface{}{"given": []interface{}{"John", "Q"}, "family": "Smith"}},
				"gender":       "male",
				"birthDate":    "1970-01-01",
			},
			want: Patient{ID: "123", Name: "John Q Smith", Gender: "male", BirthDate: "1970-01-01"},
		},
		{
			name: "empty",
			res:  map[string]interface{}{},
			want: Patient{ID: "N/A", Name: "Unknown", Gender: "unknown", BirthDate: "N/A"},
		},
		{
			name: "nil",
			res:  nil,
			want: Patient{ID: "N/A", Name: "Unknown", Gender: "unknown", BirthDate: "N/A"},
		},
		{
			name: "wrong shapes",
			res:  map[string]interface{}{"id": 5.0, "name": "not-a-list-but-usable", "gender": "M", "birthDate": []interface{}{}},
			want: Patient{ID: "N/A", Name: "not-a-list-but-usable", Gender: "unknown", BirthDate: "N/A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePatient(tt.res); got != tt.want {
				t.Errorf("NormalizePatient() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizePractitioner(t *testing.T) {
	got := NormalizePractitioner(map[string]interface{}{
		"id":         "pr1",
		"name":       []interface{}{map[string]interface{}{"prefix": []interface{}{"Dr."}, "given": []interface{}{"Ann"}, "family": "Lee"}},
		"identifier": []interface{}{map[string]interface{}{"value": "NPI-1"}, map[string]interface{}{"system": "x"}, map[string]interface{}{"value": "LIC-2"}},
	})
	want := Practitioner{ID: "pr1", Name: "Dr. Ann Lee", Identifiers: "NPI-1, LIC-2"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	empty := NormalizePractitioner(map[string]interface{}{"identifier": "bogus"})
	if empty.Name != "Unknown" || empty.Identifiers != "N/A" {
		t.Errorf("fallbacks = %+v", empty)
	}
}
