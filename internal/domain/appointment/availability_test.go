package appointment

import (
	"reflect"
	"testing"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

func booking(date, hm string, s Status) models.Appointment {
	return models.Appointment{Date: date, Time: hm, Status: string(s)}
}

func slotAt(day DayAvailability, hm string) SlotAvailability {
	for _, s := range day.Slots {
		if s.Time == hm {
			return s
		}
	}
	return SlotAvailability{}
}

func TestStaffCalculatorThreshold(t *testing.T) {
	calc := NewStaffCalculator(SlotCatalog(DefaultStaffSlots), 3)
	date := "2026-05-04"

	apps := []models.Appointment{
		booking(date, "10:00", StatusPending),
		booking(date, "10:00", StatusConfirmed),
		booking(date, "10:30", StatusPending),
		booking(date, "10:30", StatusConfirmed),
		booking(date, "10:30", StatusCompleted),
		booking(date, "11:00", StatusCancelled),
		booking(date, "11:00", StatusRejected),
		booking(date, "11:00", StatusCancelled),
		booking("2026-05-05", "12:00", StatusConfirmed),
		booking("2026-05-05", "12:00", StatusConfirmed),
		booking("2026-05-05", "12:00", StatusConfirmed),
	}

	day := calc.Compute(date, apps, nil)

	if s := slotAt(day, "10:00"); s.State != SlotAvailable || s.Count != 2 {
		t.Fatalf("10:00 = %+v", s)
	}
	if s := slotAt(day, "10:30"); s.State != SlotBooked || s.Count != 3 {
		t.Fatalf("10:30 = %+v", s)
	}
	if s := slotAt(day, "11:00"); s.State != SlotAvailable || s.Count != 0 {
		t.Fatalf("cancelled/rejected must not count: %+v", s)
	}
	if s := slotAt(day, "12:00"); s.State != SlotAvailable {
		t.Fatalf("other dates must not count: %+v", s)
	}
	if !reflect.DeepEqual(day.Unavailable, []string{"10:30"}) {
		t.Fatalf("unavailable = %v", day.Unavailable)
	}
}

func TestCustomerCalculatorHidesAnyBooking(t *testing.T) {
	calc := NewCustomerCalculator(SlotCatalog(DefaultPublicSlots))
	date := "2026-05-04"

	day := calc.Compute(date, []models.Appointment{booking(date, "10:00", StatusPending)}, nil)

	s := slotAt(day, "10:00")
	if s.State != SlotBooked {
		t.Fatalf("a single booking makes the slot unavailable: %+v", s)
	}
	if s.Count != 0 {
		t.Fatalf("customer view must not expose counts")
	}
	if len(day.Slots) != len(DefaultPublicSlots) {
		t.Fatalf("expected one entry per catalog slot")
	}
}

func TestBlockedDominates(t *testing.T) {
	calc := NewStaffCalculator(SlotCatalog(DefaultStaffSlots), 3)
	date := "2026-05-04"

	day := calc.Compute(date,
		[]models.Appointment{
			booking(date, "14:00", StatusConfirmed),
			booking(date, "14:00", StatusConfirmed),
			booking(date, "14:00", StatusConfirmed),
		},
		[]models.BlockedSlot{
			{Date: date, Time: "14:00"},
			{Date: date, Time: "09:00"},
			{Date: "2026-05-05", Time: "15:00"},
		},
	)

	if s := slotAt(day, "14:00"); s.State != SlotBlocked {
		t.Fatalf("blocked must win over booked: %+v", s)
	}
	if s := slotAt(day, "09:00"); s.State != SlotBlocked {
		t.Fatalf("09:00 = %+v", s)
	}
	if s := slotAt(day, "15:00"); s.State != SlotAvailable {
		t.Fatalf("blocks from other dates ignored: %+v", s)
	}
	if !reflect.DeepEqual(day.Unavailable, []string{"09:00", "14:00"}) {
		t.Fatalf("unavailable = %v", day.Unavailable)
	}
}

func TestComputeEmptyDay(t *testing.T) {
	day := NewStaffCalculator(SlotCatalog(DefaultStaffSlots), 0).Compute("2026-05-04", nil, nil)
	for _, s := range day.Slots {
		if s.State != SlotAvailable {
			t.Fatalf("empty day has %+v", s)
		}
	}
	if len(day.Unavailable) != 0 {
		t.Fatalf("unavailable = %v", day.Unavailable)
	}
}

func TestStaffPolicyDefaultThreshold(t *testing.T) {
	p := StaffPolicy{}
	if p.IsBooked(DefaultSlotCapacity - 1) {
		t.Fatalf("below default capacity")
	}
	if !p.IsBooked(DefaultSlotCapacity) {
		t.Fatalf("at default capacity")
	}
}

func TestSlotCatalog(t *testing.T) {
	if _, err := NewSlotCatalog([]string{"10:00", "09:00"}); err == nil {
		t.Fatalf("descending catalog accepted")
	}
	if _, err := NewSlotCatalog(nil); err == nil {
		t.Fatalf("empty catalog accepted")
	}

	c, err := NewSlotCatalog([]string{"9:00", "09:30:00", "10:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(c.Times(), []string{"09:00", "09:30", "10:00"}) {
		t.Fatalf("times = %v", c.Times())
	}
	if !c.Contains("09:30") || c.Contains("11:00") {
		t.Fatalf("contains")
	}

	if _, err := NormalizeTime("25:00"); err == nil {
		t.Fatalf("invalid time accepted")
	}
}
