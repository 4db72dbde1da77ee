package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestDuration(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.April, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		start int
		end   int
		want  int
	}{
		{"single day", 6, 6, 1},
		{"two days", 6, 7, 2},
		{"full week", 6, 12, 7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Request{StartDate: day(c.start), EndDate: day(c.end)}
			assert.Equal(t, c.want, r.Duration())
		})
	}
}
