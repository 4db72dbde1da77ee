package attendance

import "time"

// Schedule is the fixed workday reference used to classify check-ins and
// check-outs. Loaded from configuration at startup.
type Schedule struct {
	StartHour    int
	EndHour      int
	GraceMinutes int
}

// WorkdayStart overlays the schedule's start hour on now's calendar date,
// in now's location.
func (s Schedule) WorkdayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), s.StartHour, 0, 0, 0, now.Location())
}

// WorkdayEnd overlays the schedule's end hour on now's calendar date.
func (s Schedule) WorkdayEnd(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), s.EndHour, 0, 0, 0, now.Location())
}

// ResolveCheckIn classifies a check-in at now. Arrivals within the grace
// period after the workday start are PRESENT; anything later is LATE.
// A repeated check-in re-runs this with the new now, overwriting the old
// classification.
func (s Schedule) ResolveCheckIn(now time.Time) Status {
	start := s.WorkdayStart(now)
	if now.After(start) && now.Sub(start) > time.Duration(s.GraceMinutes)*time.Minute {
		return StatusLate
	}
	return StatusPresent
}

// ResolveCheckOut classifies a check-out at now given the record's current
// status. Leaving before the workday end downgrades PRESENT to HALF_DAY.
// A LATE arrival stays LATE no matter when it checks out.
func (s Schedule) ResolveCheckOut(now time.Time, current Status) Status {
	if now.Before(s.WorkdayEnd(now)) && current == StatusPresent {
		return StatusHalfDay
	}
	return current
}
