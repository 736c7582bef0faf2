package pcm

import (
	"math"
	"sync/atomic"
)

// Level computes the RMS amplitude of a frame of normalized samples.
// The result is in [0, 1].
func Level(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// LevelMeter is a lock-free amplitude tap. The audio path stores the level of
// each processed frame; visualization code reads it at its own pace.
type LevelMeter struct {
	bits atomic.Uint64
}

// Update records the RMS level of the given frame.
func (m *LevelMeter) Update(samples []float32) {
	m.Store(Level(samples))
}

// Store records a precomputed level.
func (m *LevelMeter) Store(level float64) {
	m.bits.Store(math.Float64bits(level))
}

// Load returns the most recently recorded level.
func (m *LevelMeter) Load() float64 {
	return math.Float64frombits(m.bits.Load())
}
