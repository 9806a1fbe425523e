package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	output := &ffprobeOutput{}
	output.Format.Duration = "125.5"
	output.Format.Size = "1048576"
	output.Format.Bitrate = "128000"
	output.Format.FormatName = "mov,mp4,m4a,3gp,3g2,mj2"
	output.Format.Tags = map[string]string{"title": "Test Video"}
	output.Streams = []struct {
		Index      int    `json:"index"`
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	}{
		{Index: 0, CodecType: "video", CodecName: "h264"},
		{Index: 1, CodecType: "audio", CodecName: "aac", SampleRate: "44100", Channels: 2},
	}

	metadata := parseMetadata(output)

	assert.Equal(t, 125.5, metadata.Duration)
	assert.Equal(t, int64(1048576), metadata.Size)
	assert.Equal(t, 128000, metadata.Bitrate)
	assert.Equal(t, "Test Video", metadata.Title)
	assert.True(t, metadata.HasAudio)
	assert.Equal(t, 1, metadata.AudioStream)
	assert.Equal(t, "aac", metadata.AudioCodec)
	assert.Equal(t, 44100, metadata.SampleRate)
	assert.Equal(t, 2, metadata.Channels)
}

func TestParseMetadataNoAudio(t *testing.T) {
	output := &ffprobeOutput{}
	output.Format.Duration = "10.0"
	output.Streams = []struct {
		Index      int    `json:"index"`
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	}{
		{Index: 0, CodecType: "video", CodecName: "h264"},
	}

	metadata := parseMetadata(output)
	assert.False(t, metadata.HasAudio)
	assert.Empty(t, metadata.AudioCodec)
}

func TestValidateBinariesMissing(t *testing.T) {
	f := New("definitely-not-ffmpeg-binary", "definitely-not-ffprobe-binary", 0)
	err := f.ValidateBinaries()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFFmpegNotFound)
}

func TestPCMAudioDurationMs(t *testing.T) {
	audio := &PCMAudio{Samples: make([]float32, 16000*3), SampleRate: 16000}
	assert.Equal(t, int64(3000), audio.DurationMs())

	empty := &PCMAudio{SampleRate: 0}
	assert.Equal(t, int64(0), empty.DurationMs())
}
