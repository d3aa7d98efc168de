package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/vatsal-afk/EHR-Dashboard/internal/domain/identity"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db/dbtest"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

func seed(t *testing.T, patients interface {
	Create(context.Context, *identity.Patient) error
}, repo interface {
	Create(context.Context, *Appointment) error
}) {
	t.Helper()
	ctx := context.Background()
	if err := patients.Create(ctx, &identity.Patient{ID: "p1", Name: "Ann"}); err != nil {
		t.Fatal(err)
	}
	for _, a := range []*Appointment{
		{ID: "a3", PatientID: "p1", Status: "scheduled", Start: "2024-05-02T10:00:00Z", Provider: "Dr. Who"},
		{ID: "a1", PatientID: "p1", Status: "cancelled", Start: "2024-05-01T09:00:00Z", Provider: "Dr. House"},
		{ID: "a2", PatientID: "p1", Status: "scheduled", Start: "2024-05-01T14:00:00Z", Provider: "Dr. Who", Description: "Checkup"},
	} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
}

func ids(rows []*Appointment) string {
	s := ""
	for _, r := range rows {
		s += r.ID + ","
	}
	return s
}

func checkFilters(t *testing.T, repo interface {
	List(context.Context, lookup.Filter) ([]*Appointment, error)
}) {
	t.Helper()
	ctx := context.Background()
	tests := []struct {
		name string
		f    lookup.Filter
		want string
	}{
		{"ordered by start", lookup.Filter{PatientID: "p1"}, "a1,a2,a3,"},
		{"date", lookup.Filter{Params: map[string]string{ParamDate: "2024-05-01"}}, "a1,a2,"},
		{"provider", lookup.Filter{Params: map[string]string{ParamProvider: "who"}}, "a2,a3,"},
		{"status", lookup.Filter{Params: map[string]string{ParamStatus: "cancelled"}}, "a1,"},
		{"search", lookup.Filter{Search: "check"}, "a2,"},
		{"other patient", lookup.Filter{PatientID: "p2"}, ""},
		{"paged", lookup.Filter{Limit: 1, Offset: 1}, "a2,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.List(ctx, tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(rows); got != tt.want {
				t.Errorf("List() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAppointmentMemRepo(t *testing.T) {
	store := memstore.New()
	patients := identity.NewPatientMemRepo(store)
	repo := NewAppointmentMemRepo(store)
	seed(t, patients, repo)
	checkFilters(t, repo)

	err := repo.Create(context.Background(), &Appointment{ID: "x", PatientID: "ghost", Start: "2024-01-01"})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("unknown patient = %v", err)
	}
}

func TestAppointmentRepoPG(t *testing.T) {
	pool := dbtest.Pool(t)
	repo := NewAppointmentRepo(pool)
	seed(t, identity.NewPatientRepo(pool), repo)
	checkFilters(t, repo)

	err := repo.Create(context.Background(), &Appointment{ID: "x", PatientID: "ghost", Start: "2024-01-01"})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("unknown patient = %v", err)
	}
}
