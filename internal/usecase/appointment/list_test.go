package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

func TestGetAvailabilityViews(t *testing.T) {
	repo := newRepoStub()
	repo.seed(models.Appointment{ClientID: 2, PetID: 20, Date: "2026-03-12", Time: "10:00", Status: "pendiente"})
	repo.blocks = append(repo.blocks, models.BlockedSlot{Date: "2026-03-12", Time: "15:00"})

	uc := NewGetAvailability(repo, testSettings())

	customerDay, err := uc.Execute(context.Background(), "2026-03-12", ViewCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customerDay.IsAvailable("10:00") || customerDay.IsAvailable("15:00") {
		t.Fatalf("customer view: %v", customerDay.Unavailable)
	}
	if len(customerDay.Slots) != len(testSettings().PublicCatalog) {
		t.Fatalf("customer view must use the public catalog")
	}

	staffDay, err := uc.Execute(context.Background(), "2026-03-12", ViewStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !staffDay.IsAvailable("10:00") || staffDay.IsAvailable("15:00") {
		t.Fatalf("staff view: %v", staffDay.Unavailable)
	}

	if _, err := uc.Execute(context.Background(), "2026-3-12", ViewStaff); businessCode(t, err) != "invalid_date" {
		t.Fatalf("expected invalid_date")
	}
}

func TestListAppointmentsFilters(t *testing.T) {
	repo := newRepoStub()
	repo.seed(models.Appointment{ClientID: 1, PetID: 10, Date: "2026-03-12", Time: "11:00", Status: "pendiente"})
	repo.seed(models.Appointment{ClientID: 2, PetID: 20, Date: "2026-03-12", Time: "10:00", Status: "confirmada"})
	repo.seed(models.Appointment{ClientID: 1, PetID: 10, Date: "2026-04-01", Time: "10:00", Status: "confirmada"})

	uc := NewListAppointments(repo)

	day, err := uc.Execute(context.Background(), ListQuery{Date: "2026-03-12"})
	if err != nil || len(day) != 2 || day[0].Time != "10:00" {
		t.Fatalf("by date: %v %+v", err, day)
	}
	if day[0].StatusLabel == "" {
		t.Fatalf("summary must carry the status label")
	}

	pending, err := uc.Execute(context.Background(), ListQuery{Statuses: []string{"pendiente"}})
	if err != nil || len(pending) != 1 {
		t.Fatalf("by status: %v %+v", err, pending)
	}

	if _, err := uc.Execute(context.Background(), ListQuery{Statuses: []string{"done"}}); businessCode(t, err) != "invalid_status" {
		t.Fatalf("expected invalid_status")
	}

	month, err := uc.Month(context.Background(), 2026, 3)
	if err != nil || len(month) != 2 {
		t.Fatalf("by month: %v %+v", err, month)
	}
	if _, err := uc.Month(context.Background(), 2026, 13); businessCode(t, err) != "invalid_month" {
		t.Fatalf("expected invalid_month")
	}

	own, err := uc.ForCustomer(context.Background(), customer(1))
	if err != nil || len(own) != 2 || own[0].Date != "2026-03-12" {
		t.Fatalf("customer list: %v %+v", err, own)
	}
}

func TestAppointmentDetailVisibility(t *testing.T) {
	repo := newRepoStub()
	ap := repo.seed(models.Appointment{ClientID: 1, PetID: 10, Date: "2026-03-12", Time: "11:00", Status: "confirmada"})
	repo.photos[ap.ID] = []models.AppointmentPhoto{{AppointmentID: ap.ID, Type: "arrival", URL: "u"}}

	uc := NewGetAppointmentDetail(repo)

	got, err := uc.Execute(context.Background(), employee, ap.ID)
	if err != nil || len(got.Photos) != 1 || got.StatusLabel == "" {
		t.Fatalf("staff detail: %v %+v", err, got)
	}
	if _, err := uc.Execute(context.Background(), customer(1), ap.ID); err != nil {
		t.Fatalf("owner customer should see it: %v", err)
	}
	if _, err := uc.Execute(context.Background(), customer(2), ap.ID); businessCode(t, err) != "appointment_not_found" {
		t.Fatalf("other customer must not see it")
	}
}
