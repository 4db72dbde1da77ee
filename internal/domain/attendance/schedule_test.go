package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSchedule() Schedule {
	return Schedule{StartHour: 9, EndHour: 17, GraceMinutes: 15}
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

func TestResolveCheckIn(t *testing.T) {
	s := testSchedule()

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"before start", at(8, 30), StatusPresent},
		{"exactly on start", at(9, 0), StatusPresent},
		{"within grace", at(9, 10), StatusPresent},
		{"exactly at grace boundary", at(9, 15), StatusPresent},
		{"one minute past grace", at(9, 16), StatusLate},
		{"midday", at(13, 0), StatusLate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, s.ResolveCheckIn(c.now))
		})
	}
}

func TestResolveCheckOut(t *testing.T) {
	s := testSchedule()

	cases := []struct {
		name    string
		now     time.Time
		current Status
		want    Status
	}{
		{"present leaving early", at(15, 0), StatusPresent, StatusHalfDay},
		{"present leaving at end", at(17, 0), StatusPresent, StatusPresent},
		{"present leaving after end", at(18, 30), StatusPresent, StatusPresent},
		{"late leaving early stays late", at(15, 0), StatusLate, StatusLate},
		{"late leaving after end stays late", at(18, 0), StatusLate, StatusLate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, s.ResolveCheckOut(c.now, c.current))
		})
	}
}

func TestWorkdayBoundsUseNowsDate(t *testing.T) {
	s := testSchedule()
	now := time.Date(2026, time.July, 9, 12, 41, 7, 0, time.UTC)

	start := s.WorkdayStart(now)
	end := s.WorkdayEnd(now)

	assert.Equal(t, time.Date(2026, time.July, 9, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.July, 9, 17, 0, 0, 0, time.UTC), end)
}
