package appointment

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

func w(v float64) *float64 { return &v }

func TestCheckCompletion(t *testing.T) {
	cases := []struct {
		name string
		st   CompletionState
		want []string
	}{
		{"nothing", CompletionState{}, []string{"arrival photo", "departure photo", "weight"}},
		{"only arrival", CompletionState{HasArrivalPhoto: true}, []string{"departure photo", "weight"}},
		{"photos, zero weight", CompletionState{HasArrivalPhoto: true, HasDeparturePhoto: true, Weight: w(0)}, []string{"weight"}},
		{"negative weight", CompletionState{HasArrivalPhoto: true, HasDeparturePhoto: true, Weight: w(-1)}, []string{"weight"}},
		{"NaN weight", CompletionState{HasArrivalPhoto: true, HasDeparturePhoto: true, Weight: w(math.NaN())}, []string{"weight"}},
		{"inf weight", CompletionState{HasArrivalPhoto: true, HasDeparturePhoto: true, Weight: w(math.Inf(1))}, []string{"weight"}},
		{"departure only", CompletionState{HasDeparturePhoto: true, Weight: w(4)}, []string{"arrival photo"}},
		{"complete", CompletionState{HasArrivalPhoto: true, HasDeparturePhoto: true, Weight: w(4.2)}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckCompletion(tc.st)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var inc *IncompleteError
			if !errors.As(err, &inc) {
				t.Fatalf("expected IncompleteError, got %v", err)
			}
			if !reflect.DeepEqual(inc.Items(), tc.want) {
				t.Fatalf("missing = %v, want %v", inc.Items(), tc.want)
			}
		})
	}
}

func TestCompleteKeepsStatusOnMissingItems(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	now := time.Now()

	if err := Complete(ap, now, CompletionState{HasArrivalPhoto: true}); err == nil {
		t.Fatalf("expected error")
	}
	if ap.Status != string(StatusConfirmed) || ap.CompletedAt != nil {
		t.Fatalf("status changed on failure: %+v", ap)
	}

	if err := Complete(ap, now, CompletionState{HasArrivalPhoto: true, HasDeparturePhoto: true, Weight: w(3)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("expected completada: %+v", ap)
	}
}

func TestCompletionDetailsOnlyTouchProvidedFields(t *testing.T) {
	ap := &models.Appointment{Observations: "tranquilo", PaymentMethod: "tarjeta"}
	obs := "nervioso"

	CompletionDetails{Observations: &obs, FinalWeight: w(6)}.ApplyTo(ap)

	if ap.Observations != "nervioso" || ap.PaymentMethod != "tarjeta" || *ap.FinalWeight != 6 {
		t.Fatalf("unexpected fields: %+v", ap)
	}
}

func TestParsePhotoType(t *testing.T) {
	if _, err := ParsePhotoType("arrival"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParsePhotoType("during"); err == nil {
		t.Fatalf("expected error")
	}
}
