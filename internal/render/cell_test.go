package render

import (
	"testing"
	"time"
)

func TestRenderCell_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		field string
		want  string
	}{
		{"quantity", map[string]interface{}{"value": 98.6, "unit": "F"}, "value", "98.6 F"},
		{"null", nil, "status", "N/A"},
		{"string list", []interface{}{"a", "b"}, "tags", "a, b"},
		{"coding beats value", map[string]interface{}{"coding": []interface{}{map[string]interface{}{"display": "Penicillin"}}, "value": 5.0}, "code", "Penicillin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCell(tt.value, tt.field); got != tt.want {
				t.Errorf("RenderCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCell_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		field string
		want  string
	}{
		{"plain string", "active", "status", "active"},
		{"empty string", "", "status", "N/A"},
		{"date", "1990-05-17", "birthDate", "May 17, 1990"},
		{"datetime", "2024-03-01T09:30:00Z", "effectiveDate", "Mar 1, 2024, 9:30 AM"},
		{"datetime keeps offset", "2024-03-01T21:05:00+05:30", "startTime", "Mar 1, 2024, 9:05 PM"},
		{"month", "2024-03", "date", "Mar 2024"},
		{"unparseable date", "someday", "date", "someday"},
		{"date string without hint", "1990-05-17", "status", "1990-05-17"},
		{"epoch millis", float64(time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC).UnixMilli()), "issuedTime", "Jan 2, 2024, 3:04 PM"},
		{"number", 120.0, "value", "120"},
		{"fraction", 0.25, "value", "0.25"},
		{"int", 7, "count", "7"},
		{"true", true, "primarySource", "Yes"},
		{"false", false, "primarySource", "No"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCell(tt.value, tt.field); got != tt.want {
				t.Errorf("RenderCell(%v, %q) = %q, want %q", tt.value, tt.field, got, tt.want)
			}
		})
	}
}

func TestRenderCell_Arrays(t *testing.T) {
	obj := func(kv ...interface{}) map[string]interface{} {
		m := map[string]interface{}{}
		for i := 0; i < len(kv); i += 2 {
			m[kv[i].(string)] = kv[i+1]
		}
		return m
	}
	list := func(items ...interface{}) []interface{} { return items }

	tests := []struct {
		name  string
		value interface{}
		field string
		want  string
	}{
		{"empty", list(), "tags", "N/A"},
		{"names", list(obj("given", list("John", "Q"), "family", "Smith"), obj("text", "Johnny")), "name", "John Q Smith, Johnny"},
		{"telecom", list(obj("system", "phone", "value", "555-0100", "use", "home"), obj("system", "email", "value", "a@b.c")), "telecom", "phone: 555-0100 (home), email: a@b.c"},
		{"address", list(obj("line", list("1 Main St"), "city", "Springfield", "state", "IL"), obj("city", "Chicago")), "address", "1 Main St, Springfield, IL; Chicago"},
		{"qualification", list(obj("code", obj("text", "MD")), obj("code", obj("coding", list(obj("code", "RN"))))), "qualification", "MD, RN"},
		{"participant", list(obj("actor", obj("reference", "Patient/1", "display", "Ann")), obj("individual", obj("reference", "Practitioner/9"))), "participant", "Ann, Practitioner/9"},
		{"generic display", list(obj("display", "A"), obj("text", "B"), obj("code", "C")), "category", "A, B, C"},
		{"generic coding", list(obj("coding", list(obj("display", "Vital Signs")))), "category", "Vital Signs"},
		{"generic period", list(obj("start", "2024-01-01", "end", "2024-01-05")), "periods", "Jan 1, 2024 – Jan 5, 2024"},
		{"generic json", list(obj("foo", 1.0)), "extra", `{"foo":1}`},
		{"typed slice", []string{"x", "y"}, "tags", "x, y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCell(tt.value, tt.field); got != tt.want {
				t.Errorf("RenderCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_Order(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]interface{}
		want Shape
	}{
		{"human name", map[string]interface{}{"family": "Smith", "text": "x"}, ShapeHumanName},
		{"codeable before quantity", map[string]interface{}{"coding": []interface{}{}, "value": 5.0}, ShapeCodeable},
		{"quantity with unit", map[string]interface{}{"value": 5.0, "unit": "mg", "system": "http://unitsofmeasure.org"}, ShapeQuantity},
		{"bare value", map[string]interface{}{"value": "x"}, ShapeQuantity},
		{"reference", map[string]interface{}{"reference": "Patient/1"}, ShapeReference},
		{"period", map[string]interface{}{"start": "2024-01-01"}, ShapePeriod},
		{"contact point", map[string]interface{}{"system": "phone", "value": "555"}, ShapeContactPoint},
		{"address", map[string]interface{}{"city": "Paris"}, ShapeAddress},
		{"labeled", map[string]interface{}{"display": "x", "a": 1.0, "b": 2.0, "c": 3.0}, ShapeLabeled},
		{"small", map[string]interface{}{"a": 1.0, "b": 2.0}, ShapeSmall},
		{"complex", map[string]interface{}{"a": 1.0, "b": 2.0, "c": 3.0, "d": 4.0}, ShapeComplex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.obj); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderCell_Objects(t *testing.T) {
	tests := []struct {
		name  string
		value map[string]interface{}
		field string
		want  string
	}{
		{"name", map[string]interface{}{"given": []interface{}{"Ann"}, "family": "Lee"}, "name", "Ann Lee"},
		{"codeable text", map[string]interface{}{"text": "Asthma"}, "code", "Asthma"},
		{"codeable empty", map[string]interface{}{"coding": []interface{}{}}, "code", "N/A"},
		{"quantity code as unit", map[string]interface{}{"value": 5.0, "code": "mg"}, "dose", "5 mg"},
		{"reference display", map[string]interface{}{"reference": "Patient/1", "display": "Ann"}, "subject", "Ann"},
		{"reference only", map[string]interface{}{"reference": "Patient/1"}, "subject", "Patient/1"},
		{"period closed", map[string]interface{}{"start": "2024-01-01", "end": "2024-01-02"}, "period", "Jan 1, 2024 – Jan 2, 2024"},
		{"period open end", map[string]interface{}{"start": "2024-01-01"}, "period", "From Jan 1, 2024"},
		{"period open start", map[string]interface{}{"end": "2024-01-01T10:00:00Z"}, "period", "Until Jan 1, 2024, 10:00 AM"},
		{"contact point", map[string]interface{}{"system": "phone", "value": "555", "use": "work"}, "contact", "phone: 555 (work)"},
		{"address", map[string]interface{}{"line": []interface{}{"1 Main"}, "city": "Paris", "country": "FR"}, "address", "1 Main, Paris, FR"},
		{"labeled", map[string]interface{}{"display": "Clinic A", "x": 1.0, "y": 2.0, "z": 3.0}, "location", "Clinic A"},
		{"small", map[string]interface{}{"b": true, "a": 1.0}, "extra", "a: 1, b: Yes"},
		{"complex", map[string]interface{}{"d": 4.0, "a": 1.0, "b": 2.0, "c": 3.0}, "extra", `{"a":1,"b":2,"c":3,"d":4}`},
		{"empty", map[string]interface{}{}, "extra", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCell(tt.value, tt.field); got != tt.want {
				t.Errorf("RenderCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCell_Idempotent(t *testing.T) {
	inputs := []struct {
		value interface{}
		field string
	}{
		{map[string]interface{}{"value": 98.6, "unit": "F"}, "value"},
		{nil, "status"},
		{[]interface{}{"a", "b"}, "tags"},
		{"1990-05-17", "birthDate"},
		{"2024-03-01T09:30:00Z", "date"},
		{map[string]interface{}{"start": "2024-01-01"}, "period"},
		{map[string]interface{}{"a": 1.0, "b": 2.0}, "extra"},
	}
	for _, in := range inputs {
		once := RenderCell(in.value, in.field)
		if twice := RenderCell(once, in.field); twice != once {
			t.Errorf("RenderCell not idempotent for %v: %q then %q", in.value, once, twice)
		}
	}
}

type sampleStruct struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func TestRenderCell_GoValues(t *testing.T) {
	if got := RenderCell(sampleStruct{Value: 72, Unit: "bpm"}, "value"); got != "72 bpm" {
		t.Errorf("struct = %q", got)
	}
	var nilPtr *sampleStruct
	if got := RenderCell(nilPtr, "value"); got != "N/A" {
		t.Errorf("nil pointer = %q", got)
	}
	if got := RenderCell(int64(42), "count"); got != "42" {
		t.Errorf("int64 = %q", got)
	}
}

func TestShape_String(t *testing.T) {
	if ShapeQuantity.String() != "Quantity" || Shape(99).String() != "Shape(99)" {
		t.Error("unexpected shape names")
	}
}
