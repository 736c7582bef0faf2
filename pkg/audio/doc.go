// Package audio is an umbrella for audio processing sub-packages:
//
//   - pcm: 16-bit PCM encoding, decoding and level metering
//   - resampler: streaming sample rate conversion between PCM formats
package audio
