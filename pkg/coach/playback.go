package coach

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
)

// ErrSchedulerClosed is returned by Enqueue after Close. Audio chunks that
// race with session teardown are refused, not played.
var ErrSchedulerClosed = errors.New("coach: playback scheduler closed")

// Scheduler lines up decoded model audio for gapless playback. Chunks arrive
// faster than real time, so each one is scheduled at the later of "now" and
// the end of the previous chunk; a monotonic nextStart cursor keeps units
// contiguous and non-overlapping. An interruption flush stops every live
// unit and resets the cursor to now.
type Scheduler struct {
	clock  Clock
	sink   Sink
	format pcm.Format
	meter  *pcm.LevelMeter

	mu        sync.Mutex
	nextStart time.Time
	live      map[*playbackUnit]struct{}
	closed    bool
}

// playbackUnit is one scheduled chunk. startTimer fires Play at the unit's
// slot; doneTimer removes it from the live set when its duration elapses.
type playbackUnit struct {
	chunk      *pcm.DataChunk
	startTimer Timer
	doneTimer  Timer
	handle     PlayHandle
}

// NewScheduler returns a playback scheduler emitting format audio to sink.
// A nil clock means the system clock.
func NewScheduler(sink Sink, format pcm.Format, clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		clock:  clock,
		sink:   sink,
		format: format,
		meter:  &pcm.LevelMeter{},
		live:   make(map[*playbackUnit]struct{}),
	}
}

// Enqueue schedules one chunk of raw PCM bytes onto the playback timeline.
// Empty chunks are dropped. Returns ErrSchedulerClosed after Close.
func (s *Scheduler) Enqueue(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSchedulerClosed
	}

	now := s.clock.Now()
	start := s.nextStart
	if start.Before(now) {
		start = now
	}

	chunk := s.format.DataChunk(data)
	unit := &playbackUnit{chunk: chunk}
	s.live[unit] = struct{}{}
	s.nextStart = start.Add(chunk.Duration())
	unit.startTimer = s.clock.AfterFunc(start.Sub(now), func() {
		s.startUnit(unit)
	})
	return nil
}

// startUnit hands the unit to the sink at its scheduled slot.
func (s *Scheduler) startUnit(unit *playbackUnit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live[unit]; !ok {
		// Flushed between scheduling and firing.
		return
	}

	s.meter.Update(pcm.DecodeFloat32(unit.chunk.Data))

	handle, err := s.sink.Play(unit.chunk)
	if err != nil {
		slog.Warn("playback start failed, dropping chunk",
			"bytes", unit.chunk.Len(), "error", err)
		delete(s.live, unit)
		return
	}
	unit.handle = handle
	unit.doneTimer = s.clock.AfterFunc(unit.chunk.Duration(), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.live, unit)
	})
}

// Flush stops and discards every live unit and resets the timeline cursor to
// now. Called on barge-in and during teardown.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *Scheduler) flushLocked() {
	for unit := range s.live {
		unit.startTimer.Stop()
		if unit.doneTimer != nil {
			unit.doneTimer.Stop()
		}
		if unit.handle != nil {
			unit.handle.Stop()
		}
	}
	clear(s.live)
	s.nextStart = s.clock.Now()
}

// Close flushes all live units and refuses further Enqueue calls. Safe to
// call multiple times.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	s.closed = true
}

// Pending returns the number of live (scheduled or playing) units.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Level returns the most recent RMS level of audio handed to the sink.
func (s *Scheduler) Level() float64 {
	return s.meter.Load()
}
