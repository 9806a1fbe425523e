package segmentation

import (
	"math"
	"sort"

	"github.com/sublab/subtitle-api/pkg/ffmpeg"
)

const (
	vadFrameMs   = 30
	vadPaddingMs = 300
)

// ApplyGate mutes audio outside detected speech regions while preserving
// the timeline, so silence splitting sees cleaner boundaries. The energy
// threshold adapts to the recording's noise floor. The input is not
// modified.
func ApplyGate(audio *ffmpeg.PCMAudio) *ffmpeg.PCMAudio {
	if audio == nil || len(audio.Samples) == 0 {
		return audio
	}

	frameSamples := audio.SampleRate * vadFrameMs / 1000
	if frameSamples <= 0 {
		return audio
	}

	numFrames := (len(audio.Samples) + frameSamples - 1) / frameSamples
	energies := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		lo := i * frameSamples
		hi := lo + frameSamples
		if hi > len(audio.Samples) {
			hi = len(audio.Samples)
		}
		energies[i] = frameEnergy(audio.Samples[lo:hi])
	}

	threshold := adaptiveThreshold(energies)

	speech := make([]bool, numFrames)
	for i, e := range energies {
		speech[i] = e > threshold
	}
	padFrames := vadPaddingMs / vadFrameMs
	speech = dilate(speech, padFrames)

	out := &ffmpeg.PCMAudio{
		Samples:    make([]float32, len(audio.Samples)),
		SampleRate: audio.SampleRate,
	}
	for i := 0; i < numFrames; i++ {
		if !speech[i] {
			continue
		}
		lo := i * frameSamples
		hi := lo + frameSamples
		if hi > len(audio.Samples) {
			hi = len(audio.Samples)
		}
		copy(out.Samples[lo:hi], audio.Samples[lo:hi])
	}
	return out
}

// frameEnergy computes mean squared amplitude for a frame.
func frameEnergy(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return sum / float64(len(samples))
}

// adaptiveThreshold places the speech gate above the noise floor, taken
// from the quietest decile of frames.
func adaptiveThreshold(energies []float64) float64 {
	sorted := make([]float64, len(energies))
	copy(sorted, energies)
	sort.Float64s(sorted)

	decile := len(sorted) / 10
	if decile < 1 {
		decile = 1
	}
	var floor float64
	for _, e := range sorted[:decile] {
		floor += e
	}
	floor /= float64(decile)

	// -45 dBFS as an absolute minimum so pure digital silence does not
	// drag the gate to zero.
	minThreshold := math.Pow(10, -45.0/10)
	threshold := floor * 4
	if threshold < minThreshold {
		threshold = minThreshold
	}
	return threshold
}

// dilate extends true runs by n frames in both directions.
func dilate(mask []bool, n int) []bool {
	if n <= 0 {
		return mask
	}
	out := make([]bool, len(mask))
	for i, v := range mask {
		if !v {
			continue
		}
		lo := i - n
		if lo < 0 {
			lo = 0
		}
		hi := i + n
		if hi >= len(mask) {
			hi = len(mask) - 1
		}
		for j := lo; j <= hi; j++ {
			out[j] = true
		}
	}
	return out
}
