package audio

import (
	"encoding/binary"
	"math"
)

// EncodeSamples writes samples into dst using the layout described by info
// and returns the number of bytes written. Mono outputs receive the average
// of both channels. Values are clamped to [-1, 1].
func EncodeSamples(dst []byte, samples [][2]float64, info EncodingInfo) int {
	frameSize := info.BytesPerFrame()
	if frameSize <= 0 {
		return 0
	}

	written := 0
	for _, sample := range samples {
		if written+frameSize > len(dst) {
			break
		}

		for ch := 0; ch < info.Channels; ch++ {
			var value float64
			switch {
			case info.Channels == 1:
				value = (sample[0] + sample[1]) / 2
			case ch < 2:
				value = sample[ch]
			}
			value = max(-1, min(1, value))

			switch info.Format {
			case EncodingFloat32:
				binary.LittleEndian.PutUint32(dst[written:], math.Float32bits(float32(value)))
			default:
				binary.LittleEndian.PutUint16(dst[written:], uint16(int16(value*math.MaxInt16)))
			}
			written += info.Format.ByteSize()
		}
	}
	return written
}
