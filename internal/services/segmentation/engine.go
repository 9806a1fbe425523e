package segmentation

import (
	"log"
	"math"

	"github.com/sublab/subtitle-api/pkg/ffmpeg"
)

// Params controls silence-based audio splitting. Thresholds are in dBFS,
// durations in milliseconds.
type Params struct {
	MinSilenceLen int64
	SilenceThresh float64
	KeepSilence   int64
	MaxChunkMs    int64
}

// DefaultParams returns the baseline splitting parameters.
func DefaultParams() Params {
	return Params{
		MinSilenceLen: 500,
		SilenceThresh: -40,
		KeepSilence:   300,
		MaxChunkMs:    10000,
	}
}

// Chunk is a contiguous slice of decoded audio selected for recognition.
type Chunk struct {
	StartMs int64
	EndMs   int64
	Samples []float32
}

// DurationMs returns the chunk length in milliseconds.
func (c Chunk) DurationMs() int64 {
	return c.EndMs - c.StartMs
}

// windowMs is the analysis window for silence detection.
const windowMs = 10

// Engine splits decoded audio into recognition-sized chunks.
type Engine struct {
	params Params
}

// NewEngine creates an engine with the given parameters. Zero values fall
// back to defaults.
func NewEngine(params Params) *Engine {
	def := DefaultParams()
	if params.MinSilenceLen <= 0 {
		params.MinSilenceLen = def.MinSilenceLen
	}
	if params.SilenceThresh == 0 {
		params.SilenceThresh = def.SilenceThresh
	}
	if params.KeepSilence <= 0 {
		params.KeepSilence = def.KeepSilence
	}
	if params.MaxChunkMs <= 0 {
		params.MaxChunkMs = def.MaxChunkMs
	}
	return &Engine{params: params}
}

// Segment splits audio on silence, retrying with progressively looser
// parameters when the split produces too few chunks for the audio length.
// Chunks longer than MaxChunkMs are sliced into fixed-size pieces.
func (e *Engine) Segment(audio *ffmpeg.PCMAudio) []Chunk {
	if audio == nil || len(audio.Samples) == 0 {
		return nil
	}

	durationMs := audio.DurationMs()
	params := e.params

	chunks := splitOnSilence(audio, params)
	for pass := 1; pass <= 3 && tooFewChunks(len(chunks), durationMs); pass++ {
		params = loosen(params, pass)
		log.Printf("[DEBUG] retrying silence split pass=%d min_silence=%dms thresh=%.0fdBFS keep=%dms",
			pass, params.MinSilenceLen, params.SilenceThresh, params.KeepSilence)
		chunks = splitOnSilence(audio, params)
	}

	if len(chunks) == 0 {
		chunks = []Chunk{{StartMs: 0, EndMs: durationMs, Samples: audio.Samples}}
	}

	return sliceOversized(chunks, audio, e.params.MaxChunkMs)
}

// tooFewChunks applies the length heuristics that decide whether a split
// result is usable or the parameters need loosening.
func tooFewChunks(count int, durationMs int64) bool {
	switch {
	case count < 5 && durationMs > 10000:
		return true
	case count < 10 && durationMs > 20000:
		return true
	case count < 20 && durationMs > 60000:
		return true
	}
	return false
}

// loosen derives the parameters for the given retry pass.
func loosen(p Params, pass int) Params {
	switch pass {
	case 1, 2:
		p.SilenceThresh += 5
		floor := int64(300)
		if pass == 2 {
			floor = 200
		}
		p.MinSilenceLen -= 100
		if p.MinSilenceLen < floor {
			p.MinSilenceLen = floor
		}
	default:
		p.SilenceThresh = -30
		p.MinSilenceLen = 150
		p.KeepSilence = 200
	}
	return p
}

// splitOnSilence finds non-silent ranges and pads each with KeepSilence.
func splitOnSilence(audio *ffmpeg.PCMAudio, params Params) []Chunk {
	ranges := nonSilentRanges(audio, params.MinSilenceLen, params.SilenceThresh)
	durationMs := audio.DurationMs()

	chunks := make([]Chunk, 0, len(ranges))
	for _, r := range ranges {
		start := r[0] - params.KeepSilence
		if start < 0 {
			start = 0
		}
		end := r[1] + params.KeepSilence
		if end > durationMs {
			end = durationMs
		}
		chunks = append(chunks, extract(audio, start, end))
	}
	return chunks
}

// nonSilentRanges returns [startMs, endMs) pairs of audio louder than
// thresh, where silent gaps shorter than minSilenceLen do not split a range.
func nonSilentRanges(audio *ffmpeg.PCMAudio, minSilenceLen int64, thresh float64) [][2]int64 {
	windowSamples := audio.SampleRate * windowMs / 1000
	if windowSamples <= 0 {
		windowSamples = 1
	}

	numWindows := (len(audio.Samples) + windowSamples - 1) / windowSamples
	silent := make([]bool, numWindows)
	for i := 0; i < numWindows; i++ {
		lo := i * windowSamples
		hi := lo + windowSamples
		if hi > len(audio.Samples) {
			hi = len(audio.Samples)
		}
		silent[i] = windowDBFS(audio.Samples[lo:hi]) < thresh
	}

	minSilentWindows := int(minSilenceLen / windowMs)
	if minSilentWindows < 1 {
		minSilentWindows = 1
	}

	// Runs of silence shorter than the minimum are treated as speech.
	var ranges [][2]int64
	var start int64 = -1
	i := 0
	for i < numWindows {
		if !silent[i] {
			if start < 0 {
				start = int64(i) * windowMs
			}
			i++
			continue
		}
		runStart := i
		for i < numWindows && silent[i] {
			i++
		}
		if i-runStart >= minSilentWindows && start >= 0 {
			ranges = append(ranges, [2]int64{start, int64(runStart) * windowMs})
			start = -1
		}
	}
	if start >= 0 {
		ranges = append(ranges, [2]int64{start, audio.DurationMs()})
	}
	return ranges
}

// windowDBFS computes the RMS level of a sample window in dBFS.
func windowDBFS(samples []float32) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}

// sliceOversized cuts chunks longer than maxMs into fixed-size pieces so
// recognition never sees an unbounded input.
func sliceOversized(chunks []Chunk, audio *ffmpeg.PCMAudio, maxMs int64) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.DurationMs() <= maxMs {
			out = append(out, c)
			continue
		}
		for start := c.StartMs; start < c.EndMs; start += maxMs {
			end := start + maxMs
			if end > c.EndMs {
				end = c.EndMs
			}
			out = append(out, extract(audio, start, end))
		}
	}
	return out
}

// extract slices audio by millisecond offsets.
func extract(audio *ffmpeg.PCMAudio, startMs, endMs int64) Chunk {
	lo := int(startMs) * audio.SampleRate / 1000
	hi := int(endMs) * audio.SampleRate / 1000
	if hi > len(audio.Samples) {
		hi = len(audio.Samples)
	}
	if lo > hi {
		lo = hi
	}
	return Chunk{StartMs: startMs, EndMs: endMs, Samples: audio.Samples[lo:hi]}
}
