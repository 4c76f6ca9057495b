package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristic(t *testing.T) {
	long := strings.Repeat("a", 300)
	tests := []struct {
		name       string
		text       string
		confidence float64
		want       int
	}{
		{"empty", "", 0, 75},
		{"empty with confidence", "", 0.9, 84},
		{"medium length", strings.Repeat("a", 100), 0, 80},
		{"long", long, 0, 85},
		{"framing", "You are a tutor", 0, 80},
		{"structure", "Do this:\n- one\n- two", 0, 80},
		{"numbered", "1. first\n2. second", 0.5, 85},
		{"everything clamps", "You are an expert. Follow these instructions:\n1. a\n2. b\n" + long, 1, 100},
		{"negative confidence", "", -3, 75},
		{"confidence above one", "", 7, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heuristic(tt.text, tt.confidence))
		})
	}
}

func TestHeuristicAlwaysInRange(t *testing.T) {
	inputs := []string{"", " ", "x", strings.Repeat("steps format you are\n- x\n", 200)}
	for _, in := range inputs {
		for _, c := range []float64{-1, 0, 0.33, 1, 100} {
			got := Heuristic(in, c)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}
