package coach

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
	"github.com/rhetorlabs/rhetor/pkg/audio/resampler"
	"github.com/rhetorlabs/rhetor/pkg/live"
)

// FrameDuration is the fixed size of one capture frame.
const FrameDuration = 20 * time.Millisecond

// Source provides fixed-size frames of captured audio, normalized to
// [-1, 1] at the wire sample rate. It stands in for the microphone.
type Source interface {
	// ReadFrame returns the next frame of samples. It returns io.EOF when
	// the source is exhausted and a wrapped error after Close.
	ReadFrame() ([]float32, error)

	// Close releases the capture device. Safe to call multiple times.
	Close() error
}

// ReaderSource reads 16-bit little-endian mono PCM from an io.Reader and
// emits wire-rate frames, resampling when the reader's rate differs from the
// wire rate. With pacing enabled it emits one frame per FrameDuration of
// wall time, simulating a real microphone for file-driven sessions.
type ReaderSource struct {
	mu     sync.Mutex
	rs     resampler.Resampler
	buf    []byte
	paced  bool
	next   time.Time
	closed bool
}

// ReaderSourceOption configures a ReaderSource.
type ReaderSourceOption func(*ReaderSource)

// WithPacing makes ReadFrame block so frames are produced at real-time rate.
func WithPacing() ReaderSourceOption {
	return func(s *ReaderSource) { s.paced = true }
}

// NewReaderSource creates a Source over r, whose data is PCM in format.
func NewReaderSource(r io.Reader, format pcm.Format, opts ...ReaderSourceOption) (*ReaderSource, error) {
	rs, err := resampler.New(r, format, live.WireFormat)
	if err != nil {
		return nil, fmt.Errorf("coach: source: %w", err)
	}
	s := &ReaderSource{
		rs:  rs,
		buf: make([]byte, live.WireFormat.BytesInDuration(FrameDuration)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReadFrame returns the next frame of normalized samples.
func (s *ReaderSource) ReadFrame() ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("coach: source: %w", io.ErrClosedPipe)
	}

	n, err := io.ReadFull(s.rs, s.buf)
	if n == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return nil, err
	}

	if s.paced {
		now := time.Now()
		if s.next.After(now) {
			time.Sleep(s.next.Sub(now))
			s.next = s.next.Add(FrameDuration)
		} else {
			s.next = now.Add(FrameDuration)
		}
	}

	// A short final frame is still sent.
	return pcm.DecodeFloat32(s.buf[:n]), nil
}

// Close releases the source.
func (s *ReaderSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rs.Close()
}

var _ Source = (*ReaderSource)(nil)
