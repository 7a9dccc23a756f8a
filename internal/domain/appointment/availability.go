package appointment

import (
	"sort"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// DefaultSlotCapacity é quantos atendimentos simultâneos um horário comporta.
const DefaultSlotCapacity = 3

type SlotState string

const (
	SlotAvailable SlotState = "AVAILABLE"
	SlotBooked    SlotState = "BOOKED"
	SlotBlocked   SlotState = "BLOCKED"
)

// Policy decide quando um horário está lotado.
type Policy interface {
	IsBooked(count int) bool
	ExposesCount() bool
}

// StaffPolicy: lotado quando count >= Threshold.
type StaffPolicy struct {
	Threshold int
}

func (p StaffPolicy) IsBooked(count int) bool {
	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultSlotCapacity
	}
	return count >= threshold
}

func (p StaffPolicy) ExposesCount() bool { return true }

// CustomerPolicy: qualquer agendamento no horário já o torna indisponível.
type CustomerPolicy struct{}

func (CustomerPolicy) IsBooked(count int) bool { return count > 0 }

func (CustomerPolicy) ExposesCount() bool { return false }

type SlotAvailability struct {
	Time  string    `json:"time"`
	State SlotState `json:"state"`
	Count int       `json:"count,omitempty"`
}

type DayAvailability struct {
	Date        string             `json:"date"`
	Slots       []SlotAvailability `json:"slots"`
	Unavailable []string           `json:"unavailable"`
}

func (d DayAvailability) IsAvailable(t string) bool {
	i := sort.SearchStrings(d.Unavailable, t)
	return i >= len(d.Unavailable) || d.Unavailable[i] != t
}

type Calculator struct {
	Catalog SlotCatalog
	Policy  Policy
}

func NewStaffCalculator(catalog SlotCatalog, threshold int) Calculator {
	return Calculator{Catalog: catalog, Policy: StaffPolicy{Threshold: threshold}}
}

func NewCustomerCalculator(catalog SlotCatalog) Calculator {
	return Calculator{Catalog: catalog, Policy: CustomerPolicy{}}
}

// Compute classifica cada horário do catálogo para a data.
// Linhas de outras datas e status que não ocupam vaga são ignoradas.
func (c Calculator) Compute(
	date string,
	appointments []models.Appointment,
	blocks []models.BlockedSlot,
) DayAvailability {

	counts := make(map[string]int)
	for _, ap := range appointments {
		if ap.Date != "" && ap.Date != date {
			continue
		}
		if !Status(ap.Status).Occupies() {
			continue
		}
		t, err := NormalizeTime(ap.Time)
		if err != nil {
			continue
		}
		counts[t]++
	}

	blocked := make(map[string]bool)
	for _, b := range blocks {
		if b.Date != "" && b.Date != date {
			continue
		}
		t, err := NormalizeTime(b.Time)
		if err != nil {
			continue
		}
		blocked[t] = true
	}

	unavailable := make(map[string]bool)
	for t, n := range counts {
		if c.Policy.IsBooked(n) {
			unavailable[t] = true
		}
	}
	for t := range blocked {
		unavailable[t] = true
	}

	out := DayAvailability{
		Date:        date,
		Slots:       make([]SlotAvailability, 0, len(c.Catalog)),
		Unavailable: make([]string, 0, len(unavailable)),
	}

	for _, t := range c.Catalog {
		slot := SlotAvailability{Time: t, State: SlotAvailable}
		if c.Policy.ExposesCount() {
			slot.Count = counts[t]
		}
		switch {
		case blocked[t]:
			slot.State = SlotBlocked
		case c.Policy.IsBooked(counts[t]):
			slot.State = SlotBooked
		}
		out.Slots = append(out.Slots, slot)
	}

	for t := range unavailable {
		out.Unavailable = append(out.Unavailable, t)
	}
	sort.Strings(out.Unavailable)

	return out
}
