package resampler

import (
	"io"
	"log/slog"
)

// sampleReader ensures each Read returns a whole number of 16-bit samples.
// A dangling byte at a read boundary is buffered until its partner arrives.
type sampleReader struct {
	r        io.Reader
	pending  byte
	hasByte  bool
	finished bool
}

func newSampleReader(r io.Reader) io.Reader {
	return &sampleReader{r: r}
}

func (sr *sampleReader) Read(p []byte) (int, error) {
	if sr.finished {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	off := 0
	if sr.hasByte {
		p[0] = sr.pending
		sr.hasByte = false
		off = 1
	}

	n, err := sr.r.Read(p[off:])
	n += off

	if n%2 != 0 {
		sr.pending = p[n-1]
		sr.hasByte = true
		n--
	}

	if err == io.EOF {
		sr.finished = true
		if sr.hasByte {
			slog.Debug("discarding dangling byte at end of pcm stream")
			sr.hasByte = false
		}
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	return n, err
}
