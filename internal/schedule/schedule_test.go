package schedule

import (
	"testing"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
)

func mustLoadLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func weekHours() models.BusinessHours {
	return models.BusinessHours{
		0: {Open: "09:00", Close: "20:00", IsOpen: false},
		1: {Open: "09:00", Close: "20:00", IsOpen: true},
		2: {Open: "09:00", Close: "20:00", IsOpen: true},
		3: {Open: "09:00", Close: "20:00", IsOpen: true},
		4: {Open: "09:00", Close: "20:00", IsOpen: true},
		5: {Open: "09:00", Close: "20:00", IsOpen: true},
		6: {Open: "09:00", Close: "14:00", IsOpen: true},
	}
}

func TestGenerateSlotsWeekday(t *testing.T) {
	loc := mustLoadLoc(t)
	// 2026-03-02 is a Monday, 09:00-20:00 -> 22 half-hour slots.
	slots, err := GenerateSlots("2026-03-02", weekHours(), loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 22 {
		t.Fatalf("expected 22 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "19:30" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestGenerateSlotsSaturday(t *testing.T) {
	loc := mustLoadLoc(t)
	slots, err := GenerateSlots("2026-03-07", weekHours(), loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "13:30" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestGenerateSlotsClosedDayIgnoresHours(t *testing.T) {
	loc := mustLoadLoc(t)
	// Sunday carries open/close values but isOpen=false wins.
	slots, err := GenerateSlots("2026-03-01", weekHours(), loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected 0 slots, got %d", len(slots))
	}
}

func TestGenerateSlotsMissingWeekday(t *testing.T) {
	loc := mustLoadLoc(t)
	hours := weekHours()
	delete(hours, 1)
	slots, err := GenerateSlots("2026-03-02", hours, loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected 0 slots for missing entry, got %d", len(slots))
	}
}

func TestGenerateSlotsDegenerateRanges(t *testing.T) {
	loc := mustLoadLoc(t)
	for _, tc := range []struct {
		name        string
		open, close string
	}{
		{"equal", "10:00", "10:00"},
		{"inverted", "18:00", "09:00"},
	} {
		hours := models.BusinessHours{1: {Open: tc.open, Close: tc.close, IsOpen: true}}
		slots, err := GenerateSlots("2026-03-02", hours, loc)
		if err != nil {
			t.Fatalf("%s: GenerateSlots error: %v", tc.name, err)
		}
		if len(slots) != 0 {
			t.Fatalf("%s: expected 0 slots, got %d", tc.name, len(slots))
		}
	}
}

func TestGenerateSlotsCountMatchesWindow(t *testing.T) {
	loc := mustLoadLoc(t)
	hours := models.BusinessHours{1: {Open: "09:00", Close: "12:00", IsOpen: true}}
	slots, err := GenerateSlots("2026-03-02", hours, loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	// (12:00 - 09:00) / 30min = 6 slots, all inside [open, close).
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for _, s := range slots {
		min, err := ParseClockToMinutes(s)
		if err != nil {
			t.Fatalf("ParseClockToMinutes(%q): %v", s, err)
		}
		if min < 9*60 || min >= 12*60 {
			t.Fatalf("slot %s outside open window", s)
		}
	}
}

func TestGenerateSlotsPartialTrailingWindow(t *testing.T) {
	loc := mustLoadLoc(t)
	// Closing at 11:15 leaves a partial window after 11:00; the 11:00
	// slot still starts before close so it is emitted.
	hours := models.BusinessHours{1: {Open: "09:00", Close: "11:15", IsOpen: true}}
	slots, err := GenerateSlots("2026-03-02", hours, loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 5 || slots[len(slots)-1] != "11:00" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	loc := mustLoadLoc(t)
	first, err := GenerateSlots("2026-03-02", weekHours(), loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	second, err := GenerateSlots("2026-03-02", weekHours(), loc)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestIsDatePast(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)
	past, err := IsDatePast("2026-03-03", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if !past {
		t.Fatalf("expected date to be past")
	}

	past, err = IsDatePast("2026-03-04", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected date to be not past")
	}
}

func TestIsSlotPast(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)
	past, err := IsSlotPast("2026-03-04", "09:30", loc, now)
	if err != nil {
		t.Fatalf("IsSlotPast error: %v", err)
	}
	if !past {
		t.Fatalf("expected slot to be past")
	}
	past, err = IsSlotPast("2026-03-04", "10:30", loc, now)
	if err != nil {
		t.Fatalf("IsSlotPast error: %v", err)
	}
	if past {
		t.Fatalf("expected slot to be future")
	}
}

func TestValidateHours(t *testing.T) {
	if err := ValidateHours(weekHours()); err != nil {
		t.Fatalf("expected valid hours, got %v", err)
	}

	missing := weekHours()
	delete(missing, 3)
	if err := ValidateHours(missing); err == nil {
		t.Fatalf("expected error for missing weekday")
	}

	inverted := weekHours()
	inverted[2] = models.DaySchedule{Open: "20:00", Close: "09:00", IsOpen: true}
	if err := ValidateHours(inverted); err == nil {
		t.Fatalf("expected error for inverted range")
	}

	closedInverted := weekHours()
	closedInverted[0] = models.DaySchedule{Open: "20:00", Close: "09:00", IsOpen: false}
	if err := ValidateHours(closedInverted); err != nil {
		t.Fatalf("closed day should not be range-checked, got %v", err)
	}
}
