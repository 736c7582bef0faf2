package pcm

import "encoding/base64"

// Float/int16 conversion uses asymmetric scaling: negative samples are scaled
// by 32768 and non-negative samples by 32767, so that both -1.0 and +1.0 map
// onto representable int16 values without overflow.

// EncodeFloat32 converts normalized float32 samples in [-1, 1] to 16-bit
// signed little-endian PCM. Samples outside [-1, 1] are clamped first.
func EncodeFloat32(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
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
	return out
}

// DecodeFloat32 converts 16-bit signed little-endian PCM to normalized
// float32 samples. A trailing odd byte is ignored.
func DecodeFloat32(data []byte) []float32 {
	n := len(data) / 2
	out := make([]float32, n)
	for i := range n {
		v := int16(uint16(data[i*2]) | uint16(data[i*2+1])<<8)
		s := float32(v)
		if s >= 0 {
			s /= 32767
		} else {
			s /= 32768
		}
		out[i] = s
	}
	return out
}

// EncodeBase64 wraps raw PCM bytes for transport framing.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 unwraps transport-framed PCM bytes.
func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
