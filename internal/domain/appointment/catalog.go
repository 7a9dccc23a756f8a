package appointment

import (
	"fmt"
	"strings"
	"time"
)

const TimeLayout = "15:04"

// Grade interna (calendário da equipe): 09:00..16:00 a cada 30 minutos.
var DefaultStaffSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
}

// Grade do agendamento público: 10:00..16:00 de hora em hora.
var DefaultPublicSlots = []string{
	"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
}

// SlotCatalog é a lista ordenada de horários agendáveis.
type SlotCatalog []string

func NewSlotCatalog(times []string) (SlotCatalog, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("slot catalog is empty")
	}

	out := make(SlotCatalog, 0, len(times))
	for _, raw := range times {
		t, err := NormalizeTime(raw)
		if err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && t <= out[n-1] {
			return nil, fmt.Errorf("slot catalog must be strictly ascending: %s after %s", t, out[n-1])
		}
		out = append(out, t)
	}
	return out, nil
}

func (c SlotCatalog) Contains(t string) bool {
	for _, s := range c {
		if s == t {
			return true
		}
	}
	return false
}

// Times devolve uma cópia; o catálogo carregado na partida não muda.
func (c SlotCatalog) Times() []string {
	out := make([]string, len(c))
	copy(out, c)
	return out
}

// NormalizeTime aceita "9:00", "09:00" e "09:00:00" e devolve HH:MM.
func NormalizeTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	layout := TimeLayout
	if strings.Count(raw, ":") == 2 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, raw)
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q", raw)
	}
	return t.Format(TimeLayout), nil
}
