package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	cases := []struct {
		name  string
		in    int
		wants int
	}{
		{"zero clamps up", 0, 1},
		{"negative clamps up", -5, 1},
		{"lower bound kept", 1, 1},
		{"normal value kept", 30, 30},
		{"upper bound kept", 100, 100},
		{"over max clamps down", 101, 100},
		{"far over max clamps down", 10000, 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.wants, clampLimit(c.in))
		})
	}
}
