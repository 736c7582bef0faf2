// Package pcm provides types and utilities for working with PCM (Pulse Code
// Modulation) audio data as exchanged with a realtime voice endpoint.
//
// The package defines formats for 16-bit mono audio at the sample rates the
// engine cares about (16 kHz capture wire format, 24 kHz playback format,
// 48 kHz microphone format), stateless conversion between normalized float32
// samples and little-endian int16 PCM, base64 transcoding for transport
// framing, and RMS level metering.
//
// Key types:
//   - Format: sample rate / channel / depth configuration with duration math
//   - Chunk / DataChunk: a block of raw audio bytes in a known format
//   - LevelMeter: lock-free amplitude tap for live visualization
//
// Example usage:
//
//	// Encode captured samples for the wire
//	data := pcm.EncodeFloat32(frame)
//	payload := pcm.EncodeBase64(data)
//
//	// How long will a received chunk play for?
//	d := pcm.L16Mono24K.Duration(int64(len(data)))
package pcm
