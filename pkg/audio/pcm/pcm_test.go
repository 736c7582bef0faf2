package pcm

import (
	"bytes"
	"testing"
	"time"
)

func TestFormat_durationMath(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		bytes  int64
		want   time.Duration
	}{
		{name: "16k one second", format: L16Mono16K, bytes: 32000, want: time.Second},
		{name: "24k one second", format: L16Mono24K, bytes: 48000, want: time.Second},
		{name: "24k 100ms", format: L16Mono24K, bytes: 4800, want: 100 * time.Millisecond},
		{name: "48k 20ms", format: L16Mono48K, bytes: 1920, want: 20 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.Duration(tt.bytes); got != tt.want {
				t.Errorf("Duration(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
			if got := tt.format.BytesInDuration(tt.want); got != tt.bytes {
				t.Errorf("BytesInDuration(%v) = %d, want %d", tt.want, got, tt.bytes)
			}
		})
	}
}

func TestFormat_bytesRate(t *testing.T) {
	if got := L16Mono16K.BytesRate(); got != 32000 {
		t.Errorf("BytesRate = %d, want 32000", got)
	}
	if got := L16Mono24K.BytesRate(); got != 48000 {
		t.Errorf("BytesRate = %d, want 48000", got)
	}
}

func TestDataChunk(t *testing.T) {
	chunk := L16Mono24K.DataChunk(make([]byte, 4800))
	if got := chunk.Duration(); got != 100*time.Millisecond {
		t.Errorf("Duration = %v, want 100ms", got)
	}
	var buf bytes.Buffer
	n, err := chunk.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != 4800 || buf.Len() != 4800 {
		t.Errorf("WriteTo wrote %d bytes, want 4800", n)
	}
}
