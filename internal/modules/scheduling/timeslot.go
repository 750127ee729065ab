package scheduling

import (
	"fmt"
	"time"
)

// Business day window. Slot generation never leaves it.
const (
	openingMinute = 9 * 60  // 09:00
	closingMinute = 18 * 60 // 18:00
	minutesPerDay = 24 * 60
)

const dateLayout = "2006-01-02"

// TimeSlot is a derived value, never persisted. AppointmentID points at the
// blocking appointment when the slot is taken.
type TimeSlot struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsAvailable   bool   `json:"is_available"`
	AppointmentID *int64 `json:"appointment_id,omitempty"`
}

type busyRange struct {
	start, end    int // minutes since midnight, half-open
	appointmentID int64
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// rangesOverlap uses half-open semantics: touching boundaries do not overlap.
func rangesOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// buildDaySlots steps through the business window in increments of the
// service duration. A candidate whose end would pass closing time is dropped
// entirely rather than clamped.
func buildDaySlots(duration int, busy []busyRange) []TimeSlot {
	slots := make([]TimeSlot, 0, (closingMinute-openingMinute)/duration)
	for cur := openingMinute; cur+duration <= closingMinute; cur += duration {
		slot := TimeSlot{
			StartTime:   formatClock(cur),
			EndTime:     formatClock(cur + duration),
			IsAvailable: true,
		}
		for _, b := range busy {
			if rangesOverlap(cur, cur+duration, b.start, b.end) {
				slot.IsAvailable = false
				id := b.appointmentID
				slot.AppointmentID = &id
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}
