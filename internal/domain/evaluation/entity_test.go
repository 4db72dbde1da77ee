package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRating(t *testing.T) {
	cases := []struct {
		name   string
		scores [4]int
		want   string
	}{
		{"all fives", [4]int{5, 5, 5, 5}, "5"},
		{"mixed", [4]int{4, 3, 5, 2}, "3.5"},
		{"quarter average", [4]int{3, 3, 3, 4}, "3.25"},
		{"low scores", [4]int{1, 2, 2, 2}, "1.75"},
		{"all ones", [4]int{1, 1, 1, 1}, "1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Rating(c.scores[0], c.scores[1], c.scores[2], c.scores[3])
			assert.Equal(t, c.want, got.String())
		})
	}
}
