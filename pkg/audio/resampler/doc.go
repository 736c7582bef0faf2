// Package resampler provides streaming sample-rate conversion for 16-bit
// mono PCM audio.
//
// The capture pipeline records at the microphone's native rate (typically
// 48 kHz) while the transport wire format is 16 kHz; this package bridges the
// two with a pure Go resampler (no CGO dependencies).
//
// Example usage:
//
//	r, err := resampler.New(micReader, pcm.L16Mono48K, pcm.L16Mono16K)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	// Read 16 kHz PCM from r
package resampler
