// Package billing holds locally recorded charges. Billing has no clinical
// API counterpart.
package billing

import (
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/fhirmodels"
)

type Record struct {
	ID              string  `json:"id"`
	PatientID       string  `json:"patientId" validate:"required,notblank"`
	PatientName     string  `json:"patientName,omitempty"`
	Service         string  `json:"service" validate:"required,notblank"`
	Amount          float64 `json:"amount" validate:"gte=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`
	Date            string  `json:"date" validate:"required,fhirdate"`
	InsuranceStatus string  `json:"insuranceStatus" validate:"omitempty,oneof=covered partial denied pending"`
}

// ParamStatus filters lists by billing status.
const ParamStatus = "status"

var Kind = crud.Kind[Record]{
	Name:     "billing record",
	IDPrefix: "bill",
	Columns:  []string{"id", "patientName", "service", "amount", "status", "date", "insuranceStatus"},
	ID:       func(r *Record) *string { return &r.ID },
	Defaults: func(r *Record) {
		if r.Status == "" {
			r.Status = fhirmodels.BillingPending
		}
		if r.InsuranceStatus == "" {
			r.InsuranceStatus = fhirmodels.InsurancePending
		}
	},
}

// Summary totals amounts by status.
type Summary struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Overdue float64 `json:"overdue"`
}

// Summarize adds up the records. Cancelled charges count toward Count only.
func Summarize(records []*Record) Summary {
	var s Summary
	for _, r := range records {
		s.Count++
		switch r.Status {
		case fhirmodels.BillingPaid:
			s.Paid += r.Amount
		case fhirmodels.BillingPending:
			s.Pending += r.Amount
		case fhirmodels.BillingOverdue:
			s.Overdue += r.Amount
		default:
			continue
		}
		s.Total += r.Amount
	}
	s.Total, s.Paid, s.Pending, s.Overdue = cents(s.Total), cents(s.Paid), cents(s.Pending), cents(s.Overdue)
	return s
}

func cents(v float64) float64 {
	if v < 0 {
		return -cents(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}
