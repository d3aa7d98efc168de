package fhir

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Fallback values used by normalizers when a field is absent.
const (
	NotAvailable = "N/A"
	Unknown      = "Unknown"
)

// String safely extracts a string from a map.
func String(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// StringOr returns the string at key, or fallback when absent or empty.
func StringOr(m map[string]interface{}, key, fallback string) string {
	if s := String(m, key); s != "" {
		return s
	}
	return fallback
}

// Map safely extracts a nested object from a map.
func Map(m map[string]interface{}, key string) map[string]interface{} {
	nested, _ := m[key].(map[string]interface{})
	return nested
}

// Array safely extracts a slice from a map.
func Array(m map[string]interface{}, key string) []interface{} {
	arr, _ := m[key].([]interface{})
	return arr
}

// First returns the first element of the array at key when it is an object.
func First(m map[string]interface{}, key string) map[string]interface{} {
	arr := Array(m, key)
	if len(arr) == 0 {
		return nil
	}
	first, _ := arr[0].(map[string]interface{})
	return first
}

// Has reports whether key is present with a non-null value.
func Has(m map[string]interface{}, key string) bool {
	v, ok := m[key]
	return ok && v != nil
}

// Strings collects the string elements of a JSON array, skipping anything else.
// A bare string is treated as a one-element array.
func Strings(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Scalar formats a JSON scalar (string, number, bool) as text. Objects and
// arrays yield "".
func Scalar(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	}
	return ""
}

func ParseCoding(m map[string]interface{}) Coding {
	return Coding{System: String(m, "system"), Code: String(m, "code"), Display: String(m, "display")}
}

func ParseCodeableConcept(m map[string]interface{}) CodeableConcept {
	cc := CodeableConcept{Text: String(m, "text")}
	for _, item := range Array(m, "coding") {
		if c, ok := item.(map[string]interface{}); ok {
			cc.Coding = append(cc.Coding, ParseCoding(c))
		}
	}
	return cc
}

func ParseReference(m map[string]interface{}) Reference {
	return Reference{Reference: String(m, "reference"), Type: String(m, "type"), Display: String(m, "display")}
}

func ParseHumanName(m map[string]interface{}) HumanName {
	return HumanName{
		Use:    String(m, "use"),
		Text:   String(m, "text"),
		Family: Scalar(m["family"]),
		Given:  Strings(m["given"]),
		Prefix: Strings(m["prefix"]),
		Suffix: Strings(m["suffix"]),
	}
}

func ParseAddress(m map[string]interface{}) Address {
	return Address{
		Use:        String(m, "use"),
		Line:       Strings(m["line"]),
		City:       String(m, "city"),
		District:   String(m, "district"),
		State:      String(m, "state"),
		PostalCode: String(m, "postalCode"),
		Country:    String(m, "country"),
	}
}

func ParseContactPoint(m map[string]interface{}) ContactPoint {
	return ContactPoint{System: String(m, "system"), Value: Scalar(m["value"]), Use: String(m, "use")}
}

// ParsePeriod reads start and end as display strings; either may be empty.
func ParsePeriod(m map[string]interface{}) Period {
	return Period{Start: Scalar(m["start"]), End: Scalar(m["end"])}
}

func ParseQuantity(m map[string]interface{}) Quantity {
	return Quantity{
		Value:  Scalar(m["value"]),
		Unit:   String(m, "unit"),
		System: String(m, "system"),
		Code:   String(m, "code"),
	}
}

// NameText derives a display name from a FHIR name array: the first entry's
// prefix, given, family and suffix. A plain string is used as is. Returns
// "Unknown" when nothing usable is present.
func NameText(names interface{}) string {
	var first map[string]interface{}
	switch t := names.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
		return Unknown
	case []interface{}:
		if len(t) > 0 {
			first, _ = t[0].(map[string]interface{})
		}
	case map[string]interface{}:
		first = t
	}
	if first == nil {
		return Unknown
	}
	name := ParseHumanName(first)
	if s := name.Assemble(); s != "" {
		return s
	}
	if name.Text != "" {
		return name.Text
	}
	return Unknown
}

// CodeText renders a CodeableConcept: text, then the first coding's display,
// then its code. Returns "N/A" when none is present.
func CodeText(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
		return NotAvailable
	}
	if label := ParseCodeableConcept(m).Label(); label != "" {
		return label
	}
	return NotAvailable
}

// CodingText renders a single Coding: display, then code.
func CodingText(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return NotAvailable
	}
	c := ParseCoding(m)
	if c.Display != "" {
		return c.Display
	}
	if c.Code != "" {
		return c.Code
	}
	return NotAvailable
}

// ReferenceText renders a Reference as its display or literal reference.
func ReferenceText(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return NotAvailable
	}
	if label := ParseReference(m).Label(); label != "" {
		return label
	}
	return NotAvailable
}

// ReferenceID returns the target id of a Reference, or "" when absent.
func ReferenceID(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	return ParseReference(m).TargetID()
}

// QuantityText renders a Quantity as "value unit", or "N/A".
func QuantityText(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return NotAvailable
	}
	if s := ParseQuantity(m).Assemble(); s != "" {
		return s
	}
	return NotAvailable
}

// ParticipantActor scans an Appointment participant list for the first actor
// whose reference starts with prefix ("Patient", "Practitioner") and renders
// it. Returns "Unknown" when no participant matches.
func ParticipantActor(participants interface{}, prefix string) string {
	list, _ := participants.([]interface{})
	for _, item := range list {
		p, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		actor := ParseReference(Map(p, "actor"))
		if !strings.HasPrefix(actor.Reference, prefix) {
			continue
		}
		if label := actor.Label(); label != "" {
			return label
		}
	}
	return Unknown
}

// FirstString returns the first non-empty string found at the paths, each a
// key or "object.key". Returns "N/A" when none is present.
func FirstString(m map[string]interface{}, paths ...string) string {
	for _, p := range paths {
		obj, key := m, p
		if parent, child, ok := strings.Cut(p, "."); ok {
			obj, key = Map(m, parent), child
		}
		if s := String(obj, key); s != "" {
			return s
		}
	}
	return NotAvailable
}
