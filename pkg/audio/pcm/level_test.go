package pcm

import (
	"math"
	"testing"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{name: "empty", samples: nil, want: 0},
		{name: "silence", samples: make([]float32, 160), want: 0},
		{name: "full scale", samples: []float32{1, -1, 1, -1}, want: 1},
		{name: "half scale", samples: []float32{0.5, -0.5}, want: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Level(tt.samples)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelMeter(t *testing.T) {
	var m LevelMeter
	if got := m.Load(); got != 0 {
		t.Fatalf("initial level = %v, want 0", got)
	}
	m.Update([]float32{0.5, -0.5})
	if got := m.Load(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("level = %v, want 0.5", got)
	}
}
