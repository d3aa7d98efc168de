package fhir

import (
	"strings"
)

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Label returns the text of the concept, falling back to the display and
// then the bare code of the first coding. Empty when none is present.
func (cc CodeableConcept) Label() string {
	if cc.Text != "" {
		return cc.Text
	}
	if len(cc.Coding) == 0 {
		return ""
	}
	if cc.Coding[0].Display != "" {
		return cc.Coding[0].Display
	}
	return cc.Coding[0].Code
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

// Label prefers the display over the literal reference.
func (r Reference) Label() string {
	if r.Display != "" {
		return r.Display
	}
	return r.Reference
}

// TargetID returns the id part of a relative reference ("Patient/123" -> "123").
func (r Reference) TargetID() string {
	ref := strings.TrimSuffix(r.Reference, "/")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty"`
	Suffix []string `json:"suffix,omitempty"`
}

// Assemble joins prefix, given, family and suffix with single spaces.
func (n HumanName) Assemble() string {
	parts := make([]string, 0, len(n.Prefix)+len(n.Given)+len(n.Suffix)+1)
	parts = append(parts, n.Prefix...)
	parts = append(parts, n.Given...)
	parts = append(parts, n.Family)
	parts = append(parts, n.Suffix...)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

type Address struct {
	Use        string   `json:"use,omitempty"`
	Line       []string `json:"line,omitempty"`
	City       string   `json:"city,omitempty"`
	District   string   `json:"district,omitempty"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Country    string   `json:"country,omitempty"`
}

// Assemble joins the address parts that are present with ", ".
// State and postal code share one segment ("IL 62701").
func (a Address) Assemble() string {
	var parts []string
	for _, l := range a.Line {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	for _, p := range []string{a.City, a.District, strings.TrimSpace(a.State + " " + a.PostalCode), a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type ContactPoint struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
	Use    string `json:"use,omitempty"`
}

// Assemble renders "system: value (use)", dropping the parts that are absent.
func (cp ContactPoint) Assemble() string {
	s := cp.Value
	if cp.System != "" {
		s = cp.System + ": " + s
	}
	if cp.Use != "" {
		s += " (" + cp.Use + ")"
	}
	return s
}

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Quantity struct {
	Value  string `json:"value,omitempty"`
	Unit   string `json:"unit,omitempty"`
	System string `json:"system,omitempty"`
	Code   string `json:"code,omitempty"`
}

// Assemble renders "value unit"; the unit is omitted when absent.
func (q Quantity) Assemble() string {
	if q.Unit == "" {
		return q.Value
	}
	return strings.TrimSpace(q.Value + " " + q.Unit)
}

// OperationOutcome represents a FHIR OperationOutcome for errors.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Details     *CodeableConcept `json:"details,omitempty"`
	Diagnostics string           `json:"diagnostics,omitempty"`
}

func NewOperationOutcome(severity, code, diagnostics string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{
			{
				Severity:    severity,
				Code:        code,
				Diagnostics: diagnostics,
			},
		},
	}
}

// Summary returns the diagnostics of the first issue, or its details text.
func (o *OperationOutcome) Summary() string {
	if o == nil || len(o.Issue) == 0 {
		return ""
	}
	if o.Issue[0].Diagnostics != "" {
		return o.Issue[0].Diagnostics
	}
	if o.Issue[0].Details != nil {
		return o.Issue[0].Details.Label()
	}
	return o.Issue[0].Code
}

func FormatReference(resourceType, id string) string {
	return resourceType + "/" + id
}
