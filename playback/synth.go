package playback

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	DefaultSampleRate = 44100
	envelopeRamp      = 10 * time.Millisecond
)

// Render synthesizes the events as mono sine tones with a short linear
// attack and release so notes do not click.
func Render(events []Event, sampleRate int, volume float64) []float32 {
	var end time.Duration
	for _, e := range events {
		if e.Start+e.Length > end {
			end = e.Start + e.Length
		}
	}

	out := make([]float32, frames(end, sampleRate))
	ramp := float64(frames(envelopeRamp, sampleRate))

	for _, e := range events {
		start := frames(e.Start, sampleRate)
		n := frames(e.Length, sampleRate)
		step := 2 * math.Pi * e.Frequency / float64(sampleRate)
		for i := 0; i < n && start+i < len(out); i++ {
			gain := volume
			if r := math.Min(float64(i), float64(n-1-i)); r < ramp {
				gain *= r / ramp
			}
			out[start+i] += float32(gain * math.Sin(step*float64(i)))
		}
	}
	return out
}

func frames(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}

// EncodeWAV writes samples as an IEEE float WAV file.
func EncodeWAV(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
