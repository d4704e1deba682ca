package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestEncodeSamplesLinear16Stereo(t *testing.T) {
	info := EncodingInfo{SampleRate: 48000, Channels: 2, Format: EncodingLinear16}
	dst := make([]byte, 8)

	n := EncodeSamples(dst, [][2]float64{{1, -1}, {2, 0}}, info)
	if n != 8 {
		t.Fatalf("expected 8 bytes, got %d", n)
	}

	if got := int16(binary.LittleEndian.Uint16(dst[0:])); got != math.MaxInt16 {
		t.Fatalf("expected left channel max, got %d", got)
	}
	if got := int16(binary.LittleEndian.Uint16(dst[2:])); got != -math.MaxInt16 {
		t.Fatalf("expected right channel min, got %d", got)
	}
	if got := int16(binary.LittleEndian.Uint16(dst[4:])); got != math.MaxInt16 {
		t.Fatalf("expected clamped sample, got %d", got)
	}
}

func TestEncodeSamplesMonoAveragesChannels(t *testing.T) {
	info := EncodingInfo{SampleRate: 16000, Channels: 1, Format: EncodingFloat32}
	dst := make([]byte, 4)

	if n := EncodeSamples(dst, [][2]float64{{0.5, 0.25}, {1, 1}}, info); n != 4 {
		t.Fatalf("expected only one frame to fit, got %d bytes", n)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(dst)); got != 0.375 {
		t.Fatalf("expected 0.375, got %v", got)
	}
}
