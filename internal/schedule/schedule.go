package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
)

// SlotMinutes is the fixed booking cadence. Every bookable slot starts
// on a 30-minute step from the day's opening time.
const SlotMinutes = 30

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidTime = errors.New("invalid time format")
)

func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return time.Time{}, ErrInvalidTime
	}
	if _, err := ParseDate(dateStr, loc); err != nil {
		return time.Time{}, err
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	return parsed, nil
}

func ParseClockToMinutes(timeStr string) (int, error) {
	tm, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return tm.Hour()*60 + tm.Minute(), nil
}

func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Weekday returns the schedule index for a date: 0=Sunday .. 6=Saturday.
func Weekday(dateStr string, loc *time.Location) (int, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return 0, err
	}
	return int(date.Weekday()), nil
}

func IsDatePast(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	startToday := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	return date.Before(startToday), nil
}

func IsSlotPast(dateStr, timeStr string, loc *time.Location, now time.Time) (bool, error) {
	slot, err := ParseDateTime(dateStr, timeStr, loc)
	if err != nil {
		return false, err
	}
	return !slot.After(now.In(loc)), nil
}

// GenerateSlots derives the bookable start times for a date from the
// weekly business hours. A closed or missing weekday entry yields an
// empty slice, which callers read as the salon-closed signal. Slots are
// emitted while the cursor is strictly before closing time, so a
// trailing partial window is never offered. open >= close also yields
// no slots; midnight-crossing ranges are not supported.
func GenerateSlots(dateStr string, hours models.BusinessHours, loc *time.Location) ([]string, error) {
	day, err := Weekday(dateStr, loc)
	if err != nil {
		return nil, err
	}

	sched, ok := hours[day]
	if !ok || !sched.IsOpen {
		return []string{}, nil
	}

	openMin, err := ParseClockToMinutes(sched.Open)
	if err != nil {
		return nil, err
	}
	closeMin, err := ParseClockToMinutes(sched.Close)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0)
	for cursor := openMin; cursor < closeMin; cursor += SlotMinutes {
		slots = append(slots, MinutesToClock(cursor))
	}
	return slots, nil
}

func Contains(slots []string, timeStr string) bool {
	for _, s := range slots {
		if s == timeStr {
			return true
		}
	}
	return false
}

// ValidateHours checks an admin-submitted weekly schedule: all seven
// weekday entries must be present, and open < close wherever the day
// is marked open. Closed days keep whatever open/close they carry.
func ValidateHours(hours models.BusinessHours) error {
	for day := 0; day < 7; day++ {
		sched, ok := hours[day]
		if !ok {
			return fmt.Errorf("missing schedule for weekday %d", day)
		}
		if !sched.IsOpen {
			continue
		}
		openMin, err := ParseClockToMinutes(sched.Open)
		if err != nil {
			return fmt.Errorf("weekday %d: %w", day, err)
		}
		closeMin, err := ParseClockToMinutes(sched.Close)
		if err != nil {
			return fmt.Errorf("weekday %d: %w", day, err)
		}
		if openMin >= closeMin {
			return fmt.Errorf("weekday %d: open must be before close", day)
		}
	}
	return nil
}
