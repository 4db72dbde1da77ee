package attendance

import "errors"

var (
	// ErrNoCheckIn is returned when a check-out arrives with no attendance
	// record for that worker and day. Check-out never creates a record.
	ErrNoCheckIn = errors.New("no check-in record found for this date")

	ErrRecordNotFound = errors.New("attendance record not found")
)
