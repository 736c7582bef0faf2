package coach

import (
	"fmt"
	"io"
	"sync"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
)

// Sink starts playback of scheduled audio chunks. The scheduler calls Play
// exactly when a chunk's slot on the playback timeline begins.
type Sink interface {
	// Play starts the chunk immediately and returns without waiting for it
	// to finish. The handle stops the chunk early on interruption.
	Play(chunk *pcm.DataChunk) (PlayHandle, error)
}

// PlayHandle controls one playing chunk.
type PlayHandle interface {
	// Stop halts playback of the chunk. Safe to call after the chunk has
	// already finished.
	Stop()
}

// WriterSink plays audio by appending raw PCM to an io.Writer, typically a
// file or stdout. Chunks arrive already paced by the scheduler, so a plain
// sequential write preserves the playback timeline in the output stream.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a Sink writing raw PCM to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Play writes the chunk's PCM bytes to the underlying writer.
func (s *WriterSink) Play(chunk *pcm.DataChunk) (PlayHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(chunk.Data); err != nil {
		return nil, fmt.Errorf("coach: sink write: %w", err)
	}
	return noopHandle{}, nil
}

// Close closes the underlying writer when it is an io.Closer.
func (s *WriterSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type noopHandle struct{}

func (noopHandle) Stop() {}

var _ Sink = (*WriterSink)(nil)
