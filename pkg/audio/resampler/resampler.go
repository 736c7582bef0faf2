package resampler

import (
	"fmt"
	"io"
	"sync"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/rhetorlabs/rhetor/pkg/audio/pcm"
)

// Resampler wraps an io.Reader of 16-bit mono PCM and resamples it from the
// source format's rate to the destination format's rate. It must be closed
// with Close to release resources.
type Resampler interface {
	io.ReadCloser
	CloseWithError(error) error
}

type reader struct {
	src    io.Reader
	srcFmt pcm.Format
	dstFmt pcm.Format

	mu       sync.Mutex
	closeErr error
	rs       resampling.Resampler
	readBuf  []byte
	leftover []byte
}

// New creates a Resampler converting srcFmt to dstFmt. Both formats must be
// 16-bit mono. When the rates match, data passes through untouched.
func New(src io.Reader, srcFmt, dstFmt pcm.Format) (Resampler, error) {
	r := &reader{
		src:    newSampleReader(src),
		srcFmt: srcFmt,
		dstFmt: dstFmt,
	}
	if srcFmt.SampleRate() != dstFmt.SampleRate() {
		rs, err := resampling.New(&resampling.Config{
			InputRate:  float64(srcFmt.SampleRate()),
			OutputRate: float64(dstFmt.SampleRate()),
			Channels:   1,
			Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		})
		if err != nil {
			return nil, fmt.Errorf("resampler: %w", err)
		}
		r.rs = rs
	}
	return r, nil
}

// Read copies resampled audio into p. Not safe for concurrent use.
func (r *reader) Read(p []byte) (int, error) {
	if len(p) < 2 {
		return 0, io.ErrShortBuffer
	}
	p = p[:len(p)/2*2]

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.leftover) > 0 {
		n := copy(p, r.leftover)
		r.leftover = r.leftover[n:]
		return n, nil
	}
	if r.closeErr != nil {
		return 0, r.closeErr
	}
	if r.rs == nil {
		return r.src.Read(p)
	}
	return r.resampleInto(p)
}

func (r *reader) resampleInto(p []byte) (int, error) {
	// Over-read the source by the rate ratio so one Process call can usually
	// fill p.
	ratio := float64(r.srcFmt.SampleRate()) / float64(r.dstFmt.SampleRate())
	need := int(float64(len(p))*ratio)/2*2 + 8
	if cap(r.readBuf) < need {
		r.readBuf = make([]byte, need)
	}
	rn, readErr := r.src.Read(r.readBuf[:need])
	if rn == 0 {
		if readErr != nil {
			return 0, readErr
		}
		return 0, io.EOF
	}

	input := make([]float64, rn/2)
	for i := range input {
		v := int16(uint16(r.readBuf[i*2]) | uint16(r.readBuf[i*2+1])<<8)
		input[i] = float64(v) / 32768.0
	}
	output, err := r.rs.Process(input)
	if err != nil {
		return 0, fmt.Errorf("resampler: %w", err)
	}

	out := make([]byte, len(output)*2)
	for i, s := range output {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		var v int16
		if s >= 0 {
			v = int16(s * 32767)
		} else {
			v = int16(s * 32768)
		}
		out[i*2] = byte(v)
		out[i*2+1] = byte(uint16(v) >> 8)
	}

	n := copy(p, out)
	if len(out) > n {
		r.leftover = append(r.leftover, out[n:]...)
	}
	return n, readErr
}

// Close releases resources. Subsequent reads return io.ErrClosedPipe.
func (r *reader) Close() error {
	return r.CloseWithError(fmt.Errorf("resampler: %w", io.ErrClosedPipe))
}

// CloseWithError releases resources with a custom error returned by
// subsequent reads.
func (r *reader) CloseWithError(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closeErr == nil {
		r.closeErr = err
	}
	r.rs = nil
	return nil
}
