// Package render turns record fields into display strings for tables.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

// Missing is shown for null values and empty collections.
const Missing = "N/A"

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
	monthLayout    = "Jan 2006"
	yearLayout     = "2006"
)

// Shape is the closed set of object forms the renderer recognizes.
type Shape int

const (
	ShapeHumanName Shape = iota
	ShapeCodeable
	ShapeQuantity
	ShapeReference
	ShapePeriod
	ShapeContactPoint
	ShapeAddress
	ShapeLabeled
	ShapeSmall
	ShapeComplex
)

var shapeNames = [...]string{
	ShapeHumanName:    "HumanName",
	ShapeCodeable:     "Codeable",
	ShapeQuantity:     "Quantity",
	ShapeReference:    "Reference",
	ShapePeriod:       "Period",
	ShapeContactPoint: "ContactPoint",
	ShapeAddress:      "Address",
	ShapeLabeled:      "Labeled",
	ShapeSmall:        "Small",
	ShapeComplex:      "Complex",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
	return shapeNames[s]
}

// maxSmallKeys is the largest object rendered as "key: value" pairs.
const maxSmallKeys = 3

// Classify picks the first shape whose predicate matches obj. The order of
// the checks is significant: an object with both coding and value is
// Codeable, a value with a system but no unit is a ContactPoint.
func Classify(obj map[string]interface{}) Shape {
	has := func(k string) bool { return fhir.Has(obj, k) }
	switch {
	case has("family") || has("given"):
		return ShapeHumanName
	case has("coding") || has("text"):
		return ShapeCodeable
	case has("value") && (has("unit") || has("code") || !has("system")):
		return ShapeQuantity
	case has("reference"):
		return ShapeReference
	case has("start") || has("end"):
		return ShapePeriod
	case has("system") && has("value"):
		return ShapeContactPoint
	case has("line") || has("city") || has("state"):
		return ShapeAddress
	case has("display") || has("text") || has("value"):
		return ShapeLabeled
	case len(obj) <= maxSmallKeys:
		return ShapeSmall
	default:
		return ShapeComplex
	}
}

// RenderCell formats one field value for display. field is the column name;
// names containing "date" or "time" make strings parse as FHIR dates and
// numbers as Unix milliseconds. RenderCell never fails: values it cannot
// interpret fall back to their JSON text.
func RenderCell(value interface{}, field string) string {
	switch v := jsonValue(value).(type) {
	case nil:
		return Missing
	case string:
		return renderString(v, field)
	case float64:
		return renderNumber(v, field)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v.String()
		}
		return renderNumber(f, field)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []interface{}:
		return renderArray(v, field)
	case map[string]interface{}:
		return renderObject(v, field)
	default:
		return fmt.Sprint(v)
	}
}

// jsonValue brings arbitrary Go values into the JSON value space
// (nil, string, float64, bool, []interface{}, map[string]interface{}).
func jsonValue(value interface{}) interface{} {
	switch value.(type) {
	case nil, string, float64, bool, json.Number, []interface{}, map[string]interface{}:
		return value
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

func isTemporal(field string) bool {
	f := strings.ToLower(field)
	return strings.Contains(f, "date") || strings.Contains(f, "time")
}

func renderString(s, field string) string {
	if strings.TrimSpace(s) == "" {
		return Missing
	}
	if isTemporal(field) {
		if formatted, ok := formatDate(s); ok {
			return formatted
		}
	}
	return s
}

func renderNumber(f float64, field string) string {
	if isTemporal(field) {
		return time.UnixMilli(int64(f)).UTC().Format(dateTimeLayout)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatDate renders a FHIR date/dateTime at its own precision, keeping the
// offset it was written with.
func formatDate(s string) (string, bool) {
	t, precision, ok := fhir.ParseDateTime(s)
	if !ok {
		return "", false
	}
	switch precision {
	case fhir.PrecisionYear:
		return t.Format(yearLayout), true
	case fhir.PrecisionMonth:
		return t.Format(monthLayout), true
	case fhir.PrecisionDay:
		return t.Format(dateLayout), true
	default:
		return t.Format(dateTimeLayout), true
	}
}

// dateOrRaw formats s as a date when it parses and returns it unchanged otherwise.
func dateOrRaw(s string) string {
	if formatted, ok := formatDate(s); ok {
		return formatted
	}
	return s
}

func renderArray(items []interface{}, field string) string {
	if len(items) == 0 {
		return Missing
	}
	itemFn, sep := genericItem, ", "
	switch strings.ToLower(field) {
	case "name":
		itemFn = nameItem
	case "telecom":
		itemFn = telecomItem
	case "address":
		itemFn, sep = addressItem, "; "
	case "qualification":
		itemFn = qualificationItem
	case "participant":
		itemFn = participantItem
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := itemFn(item, field); s != "" && s != Missing {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return Missing
	}
	return strings.Join(parts, sep)
}

func nameItem(item interface{}, field string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return RenderCell(item, field)
	}
	if s := fhir.ParseHumanName(m).Assemble(); s != "" {
		return s
	}
	return fhir.String(m, "text")
}

func telecomItem(item interface{}, field string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return RenderCell(item, field)
	}
	return fhir.ParseContactPoint(m).Assemble()
}

func addressItem(item interface{}, field string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return RenderCell(item, field)
	}
	if s := fhir.ParseAddress(m).Assemble(); s != "" {
		return s
	}
	return fhir.String(m, "text")
}

func qualificationItem(item interface{}, field string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return RenderCell(item, field)
	}
	return fhir.CodeText(m["code"])
}

// participantItem reads Appointment actor or Encounter individual references.
func participantItem(item interface{}, field string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return RenderCell(item, field)
	}
	for _, key := range []string{"actor", "individual"} {
		if ref, ok := m[key].(map[string]interface{}); ok {
			if label := fhir.ParseReference(ref).Label(); label != "" {
				return label
			}
		}
	}
	return ""
}

// genericItem tries display, text, code, coding, a start/end range and
// finally compact JSON.
func genericItem(item interface{}, field string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return RenderCell(item, field)
	}
	for _, key := range []string{"display", "text", "code"} {
		if s := fhir.Scalar(m[key]); s != "" {
			return s
		}
	}
	if fhir.Has(m, "coding") {
		if s := fhir.CodeText(map[string]interface{}{"coding": m["coding"]}); s != Missing {
			return s
		}
	}
	if fhir.Has(m, "start") || fhir.Has(m, "end") {
		return renderPeriod(m)
	}
	return compactJSON(m)
}

func renderObject(obj map[string]interface{}, field string) string {
	switch Classify(obj) {
	case ShapeHumanName:
		if s := fhir.NameText(obj); s != fhir.Unknown {
			return s
		}
		return Missing
	case ShapeCodeable:
		return fhir.CodeText(obj)
	case ShapeQuantity:
		return renderQuantity(obj, field)
	case ShapeReference:
		if s := fhir.ReferenceText(obj); s != fhir.NotAvailable {
			return s
		}
		return Missing
	case ShapePeriod:
		return renderPeriod(obj)
	case ShapeContactPoint:
		return fhir.ParseContactPoint(obj).Assemble()
	case ShapeAddress:
		if s := fhir.ParseAddress(obj).Assemble(); s != "" {
			return s
		}
		return Missing
	case ShapeLabeled:
		for _, key := range []string{"display", "text", "value"} {
			if fhir.Has(obj, key) {
				return RenderCell(obj[key], field)
			}
		}
		return Missing
	case ShapeSmall:
		return renderSmall(obj)
	default:
		return compactJSON(obj)
	}
}

func renderQuantity(obj map[string]interface{}, field string) string {
	value := fhir.Scalar(obj["value"])
	if value == "" {
		value = RenderCell(obj["value"], field)
	}
	unit := fhir.String(obj, "unit")
	if unit == "" {
		unit = fhir.String(obj, "code")
	}
	if unit == "" {
		return value
	}
	return value + " " + unit
}

func renderPeriod(obj map[string]interface{}) string {
	p := fhir.ParsePeriod(obj)
	start, end := dateOrRaw(p.Start), dateOrRaw(p.End)
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return "From " + start
	case end != "":
		return "Until " + end
	default:
		return Missing
	}
}

func renderSmall(obj map[string]interface{}) string {
	if len(obj) == 0 {
		return Missing
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + RenderCell(obj[k], k)
	}
	return strings.Join(parts, ", ")
}

func compactJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
