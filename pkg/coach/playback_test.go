package coach

import (
	"sync"
	"testing"
	"time"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
)

// recordingSink captures when each chunk starts and whether it was stopped.
type recordingSink struct {
	mu     sync.Mutex
	clock  *fakeClock
	starts []time.Time
	plays  []*recordedPlay
}

type recordedPlay struct {
	mu      sync.Mutex
	stopped bool
}

func (p *recordedPlay) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

func (p *recordedPlay) wasStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (s *recordingSink) Play(chunk *pcm.DataChunk) (PlayHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &recordedPlay{}
	s.starts = append(s.starts, s.clock.Now())
	s.plays = append(s.plays, p)
	return p, nil
}

// chunkBytes returns d worth of silence in format.
func chunkBytes(format pcm.Format, d time.Duration) []byte {
	return make([]byte, format.BytesInDuration(d))
}

func TestScheduler_contiguousPlayback(t *testing.T) {
	clock := newFakeClock()
	sink := &recordingSink{clock: clock}
	s := NewScheduler(sink, pcm.L16Mono24K, clock)

	t0 := clock.Now()
	for range 3 {
		if err := s.Enqueue(chunkBytes(pcm.L16Mono24K, 100*time.Millisecond)); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	if got := s.Pending(); got != 3 {
		t.Fatalf("pending = %d, want 3", got)
	}

	clock.Advance(250 * time.Millisecond)

	if len(sink.starts) != 3 {
		t.Fatalf("started %d chunks, want 3", len(sink.starts))
	}
	for i, want := range []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond} {
		if got := sink.starts[i].Sub(t0); got != want {
			t.Errorf("chunk %d started at +%v, want +%v", i, got, want)
		}
	}

	// 250ms in, the first two chunks are done and the third is playing.
	if got := s.Pending(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
	clock.Advance(100 * time.Millisecond)
	if got := s.Pending(); got != 0 {
		t.Errorf("pending after drain = %d, want 0", got)
	}
}

func TestScheduler_flushStopsEverythingAndResetsCursor(t *testing.T) {
	clock := newFakeClock()
	sink := &recordingSink{clock: clock}
	s := NewScheduler(sink, pcm.L16Mono24K, clock)

	for range 3 {
		if err := s.Enqueue(chunkBytes(pcm.L16Mono24K, 100*time.Millisecond)); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	// First chunk is playing, two are scheduled.
	clock.Advance(50 * time.Millisecond)

	s.Flush()

	if got := s.Pending(); got != 0 {
		t.Errorf("pending after flush = %d, want 0", got)
	}
	if len(sink.plays) != 1 {
		t.Fatalf("started %d chunks before flush, want 1", len(sink.plays))
	}
	if !sink.plays[0].wasStopped() {
		t.Error("playing chunk was not stopped by flush")
	}

	// The timeline restarts at now: the next chunk plays immediately, not
	// after the discarded backlog.
	flushAt := clock.Now()
	if err := s.Enqueue(chunkBytes(pcm.L16Mono24K, 100*time.Millisecond)); err != nil {
		t.Fatalf("Enqueue after flush: %v", err)
	}
	clock.Advance(0)
	if len(sink.starts) != 2 {
		t.Fatalf("started %d chunks, want 2", len(sink.starts))
	}
	if got := sink.starts[1]; !got.Equal(flushAt) {
		t.Errorf("post-flush chunk started at %v, want %v", got, flushAt)
	}
}

func TestScheduler_refusesAfterClose(t *testing.T) {
	clock := newFakeClock()
	sink := &recordingSink{clock: clock}
	s := NewScheduler(sink, pcm.L16Mono24K, clock)

	if err := s.Enqueue(chunkBytes(pcm.L16Mono24K, 100*time.Millisecond)); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	s.Close()

	if err := s.Enqueue(chunkBytes(pcm.L16Mono24K, 100*time.Millisecond)); err != ErrSchedulerClosed {
		t.Errorf("Enqueue after close = %v, want ErrSchedulerClosed", err)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("pending after close = %d, want 0", got)
	}

	// Timers cancelled by close never reach the sink.
	clock.Advance(time.Second)
	if len(sink.starts) != 0 {
		t.Errorf("sink received %d chunks after close, want 0", len(sink.starts))
	}

	s.Close()
}

func TestScheduler_dropsEmptyChunks(t *testing.T) {
	clock := newFakeClock()
	sink := &recordingSink{clock: clock}
	s := NewScheduler(sink, pcm.L16Mono24K, clock)

	if err := s.Enqueue(nil); err != nil {
		t.Fatalf("Enqueue(nil): %v", err)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("pending = %d, want 0", got)
	}
}
