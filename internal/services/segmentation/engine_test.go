package segmentation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublab/subtitle-api/pkg/ffmpeg"
)

const testSampleRate = 16000

// synthAudio builds audio of the given length where each [startMs, endMs)
// burst carries a 440Hz tone and everything else is digital silence.
func synthAudio(durationMs int64, bursts [][2]int64) *ffmpeg.PCMAudio {
	samples := make([]float32, durationMs*testSampleRate/1000)
	for _, b := range bursts {
		lo := b[0] * testSampleRate / 1000
		hi := b[1] * testSampleRate / 1000
		for i := lo; i < hi && i < int64(len(samples)); i++ {
			samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/testSampleRate))
		}
	}
	return &ffmpeg.PCMAudio{Samples: samples, SampleRate: testSampleRate}
}

func TestSegmentPureSilence(t *testing.T) {
	audio := synthAudio(35000, nil)

	chunks := NewEngine(DefaultParams()).Segment(audio)

	require.NotEmpty(t, chunks)
	var total int64
	for _, c := range chunks {
		assert.LessOrEqual(t, c.DurationMs(), int64(10000))
		total += c.DurationMs()
	}
	assert.Equal(t, int64(35000), total)
}

func TestSegmentSpeechBursts(t *testing.T) {
	bursts := [][2]int64{
		{1000, 3000},
		{5000, 7000},
		{9000, 11000},
	}
	audio := synthAudio(12000, bursts)

	chunks := NewEngine(DefaultParams()).Segment(audio)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.DurationMs(), int64(10000))
		assert.GreaterOrEqual(t, c.StartMs, int64(0))
		assert.LessOrEqual(t, c.EndMs, int64(12000))
	}

	// Every burst midpoint must land inside some chunk.
	for _, b := range bursts {
		mid := (b[0] + b[1]) / 2
		found := false
		for _, c := range chunks {
			if c.StartMs <= mid && mid < c.EndMs {
				found = true
				break
			}
		}
		assert.True(t, found, "burst midpoint %dms not covered", mid)
	}
}

func TestSegmentEmptyAudio(t *testing.T) {
	assert.Nil(t, NewEngine(DefaultParams()).Segment(nil))
	assert.Nil(t, NewEngine(DefaultParams()).Segment(&ffmpeg.PCMAudio{SampleRate: testSampleRate}))
}

func TestTooFewChunks(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		durationMs int64
		want       bool
	}{
		{"short audio few chunks", 2, 8000, false},
		{"medium audio few chunks", 4, 15000, true},
		{"medium audio enough chunks", 5, 15000, false},
		{"long audio needs ten", 8, 25000, true},
		{"very long audio needs twenty", 15, 90000, true},
		{"very long audio enough", 20, 90000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tooFewChunks(tt.count, tt.durationMs))
		})
	}
}

func TestLoosenProgression(t *testing.T) {
	p := DefaultParams()

	p1 := loosen(p, 1)
	assert.Equal(t, float64(-35), p1.SilenceThresh)
	assert.Equal(t, int64(400), p1.MinSilenceLen)
	assert.Equal(t, int64(300), p1.KeepSilence)

	p2 := loosen(p1, 2)
	assert.Equal(t, float64(-30), p2.SilenceThresh)
	assert.Equal(t, int64(300), p2.MinSilenceLen)

	p3 := loosen(p2, 3)
	assert.Equal(t, float64(-30), p3.SilenceThresh)
	assert.Equal(t, int64(150), p3.MinSilenceLen)
	assert.Equal(t, int64(200), p3.KeepSilence)
}

func TestLoosenMinSilenceFloor(t *testing.T) {
	p := Params{MinSilenceLen: 320, SilenceThresh: -40, KeepSilence: 300}
	assert.Equal(t, int64(300), loosen(p, 1).MinSilenceLen)
	assert.Equal(t, int64(220), loosen(p, 2).MinSilenceLen)
}

func TestSliceOversized(t *testing.T) {
	audio := synthAudio(25000, [][2]int64{{0, 25000}})
	chunks := []Chunk{extract(audio, 0, 25000)}

	sliced := sliceOversized(chunks, audio, 10000)

	require.Len(t, sliced, 3)
	assert.Equal(t, int64(10000), sliced[0].DurationMs())
	assert.Equal(t, int64(10000), sliced[1].DurationMs())
	assert.Equal(t, int64(5000), sliced[2].DurationMs())
	assert.Equal(t, int64(10000), sliced[1].StartMs)
	assert.Equal(t, int64(25000), sliced[2].EndMs)
}

func TestApplyGateKeepsSpeech(t *testing.T) {
	audio := synthAudio(10000, [][2]int64{{2000, 4000}})

	gated := ApplyGate(audio)
	require.NotNil(t, gated)
	require.Len(t, gated.Samples, len(audio.Samples))

	// Burst interior survives the gate.
	mid := 3000 * testSampleRate / 1000
	assert.Equal(t, audio.Samples[mid], gated.Samples[mid])

	// Silence well outside the padded speech region stays muted.
	far := 8000 * testSampleRate / 1000
	assert.Zero(t, gated.Samples[far])
}

func TestApplyGateEmpty(t *testing.T) {
	assert.Nil(t, ApplyGate(nil))
}
