package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeaderFields(t *testing.T) {
	// 48000 zero bytes of mono 16-bit PCM at 24kHz == 1 second of silence
	pcm := make([]byte, 48000)

	wav, err := EncodeWAV(pcm, 1, 24000, 16)
	require.NoError(t, err)
	require.Len(t, wav, 44+48000)

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, "data", string(wav[36:40]))

	assert.Equal(t, uint32(36+48000), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]), "audio format should be PCM")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]), "channels")
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]), "sample rate")
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]), "byte rate")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]), "block align")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]), "bits per sample")
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[40:44]), "data size")

	assert.True(t, bytes.Equal(pcm, wav[44:]), "PCM payload must pass through unmodified")
}

func TestEncodeWAVRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		pcm           []byte
		channels      int
		sampleRate    int
		bitsPerSample int
	}{
		{"mono 16-bit 24kHz", []byte{0x01, 0x02, 0x03, 0x04}, 1, 24000, 16},
		{"stereo 16-bit 44.1kHz", []byte{1, 2, 3, 4, 5, 6, 7, 8}, 2, 44100, 16},
		{"mono 8-bit 8kHz", []byte{10, 20, 30}, 1, 8000, 8},
		{"empty payload", []byte{}, 1, 24000, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wav, err := EncodeWAV(tt.pcm, tt.channels, tt.sampleRate, tt.bitsPerSample)
			require.NoError(t, err)

			pcm, channels, sampleRate, bits, err := DecodeWAV(wav)
			require.NoError(t, err)

			assert.Equal(t, tt.pcm, append([]byte{}, pcm...))
			assert.Equal(t, tt.channels, channels)
			assert.Equal(t, tt.sampleRate, sampleRate)
			assert.Equal(t, tt.bitsPerSample, bits)
		})
	}
}

func TestEncodeWAVDeterministic(t *testing.T) {
	pcm := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	first, err := EncodeWAV(pcm, 1, 24000, 16)
	require.NoError(t, err)

	second, err := EncodeWAV(pcm, 1, 24000, 16)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce byte-identical output")
}

func TestEncodeWAVEmptyInput(t *testing.T) {
	wav, err := EncodeWAV(nil, 1, 24000, 16)
	require.NoError(t, err)
	require.Len(t, wav, 44, "empty input produces a header-only file")

	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(wav[40:44]))

	d, err := Duration(wav)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestEncodeWAVInvalidParameters(t *testing.T) {
	tests := []struct {
		name          string
		pcm           []byte
		channels      int
		sampleRate    int
		bitsPerSample int
	}{
		{"zero channels", []byte{1, 2}, 0, 24000, 16},
		{"negative channels", []byte{1, 2}, -1, 24000, 16},
		{"zero sample rate", []byte{1, 2}, 1, 0, 16},
		{"zero bits per sample", []byte{1, 2}, 1, 24000, 0},
		{"bits not multiple of 8", []byte{1, 2}, 1, 24000, 12},
		{"misaligned payload", []byte{1, 2, 3}, 1, 24000, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeWAV(tt.pcm, tt.channels, tt.sampleRate, tt.bitsPerSample)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, _, _, _, err := DecodeWAV([]byte("not a wav file"))
	assert.Error(t, err)

	junk := make([]byte, 64)
	copy(junk, "RIFF....WAVE")
	_, _, _, _, err = DecodeWAV(junk)
	assert.Error(t, err)
}

func TestDuration(t *testing.T) {
	// One second of mono 16-bit silence at 24kHz
	wav, err := EncodeWAV(make([]byte, 48000), 1, 24000, 16)
	require.NoError(t, err)

	d, err := Duration(wav)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 0.001)
}

func TestDataURI(t *testing.T) {
	pcm := []byte{0x00, 0x01, 0x02, 0x03}
	wav, err := EncodeWAV(pcm, 1, 24000, 16)
	require.NoError(t, err)

	uri := DataURI(wav)
	require.True(t, strings.HasPrefix(uri, "data:audio/wav;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:audio/wav;base64,"))
	require.NoError(t, err)
	assert.Equal(t, wav, decoded)

	roundTripped, _, _, _, err := DecodeWAV(decoded)
	require.NoError(t, err)
	assert.Equal(t, pcm, append([]byte{}, roundTripped...))
}
