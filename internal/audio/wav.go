package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when encoder inputs would produce a
// corrupt header (zero sample rate, zero channels, misaligned payload).
var ErrInvalidParameter = errors.New("invalid audio parameter")

// Default parameters for PCM returned by the speech providers.
const (
	DefaultChannels      = 1
	DefaultSampleRate    = 24000
	DefaultBitsPerSample = 16
)

const headerSize = 44

// WAVHeader represents the canonical 44-byte header of a PCM WAV file
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

// EncodeWAV wraps a raw linear-PCM byte buffer in a WAV header. The PCM
// payload is passed through unmodified, so identical inputs always
// produce byte-identical output. An empty buffer is legal and yields a
// header-only file.
func EncodeWAV(pcm []byte, channels, sampleRate, bitsPerSample int) ([]byte, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidParameter, channels)
	}

	if sampleRate < 1 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, sampleRate)
	}

	if bitsPerSample < 8 || bitsPerSample%8 != 0 {
		return nil, fmt.Errorf("%w: bits per sample must be a positive multiple of 8, got %d", ErrInvalidParameter, bitsPerSample)
	}

	blockAlign := channels * bitsPerSample / 8
	if len(pcm)%blockAlign != 0 {
		return nil, fmt.Errorf("%w: PCM length %d is not a multiple of block align %d", ErrInvalidParameter, len(pcm), blockAlign)
	}

	dataSize := uint32(len(pcm))

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(channels) * uint32(bitsPerSample) / 8,
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: uint16(bitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(pcm)))

	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	buf.Write(pcm)

	return buf.Bytes(), nil
}

// DecodeWAV splits a PCM WAV file back into its raw payload and the
// parameters declared in the header.
func DecodeWAV(data []byte) (pcm []byte, channels, sampleRate, bitsPerSample int, err error) {
	header, err := readHeader(data)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	if int(header.Subchunk2Size) > len(data)-headerSize {
		return nil, 0, 0, 0, fmt.Errorf("WAV data truncated: header declares %d payload bytes, %d present",
			header.Subchunk2Size, len(data)-headerSize)
	}

	pcm = data[headerSize : headerSize+int(header.Subchunk2Size)]
	return pcm, int(header.NumChannels), int(header.SampleRate), int(header.BitsPerSample), nil
}

// Duration calculates the playing time of a WAV file in seconds.
func Duration(data []byte) (float64, error) {
	header, err := readHeader(data)
	if err != nil {
		return 0, err
	}

	if header.ByteRate == 0 {
		return 0, fmt.Errorf("invalid WAV file: zero byte rate")
	}

	return float64(header.Subchunk2Size) / float64(header.ByteRate), nil
}

// DataURI encodes a WAV buffer as a data URI playable by any browser
// audio element.
func DataURI(wav []byte) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav)
}

func readHeader(data []byte) (*WAVHeader, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", headerSize, len(data))
	}

	var header WAVHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	}

	if string(header.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	}

	if string(header.Subchunk1ID[:]) != "fmt " {
		return nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}

	if string(header.Subchunk2ID[:]) != "data" {
		return nil, fmt.Errorf("invalid WAV file: missing data chunk")
	}

	if header.AudioFormat != 1 {
		return nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", header.AudioFormat)
	}

	return &header, nil
}
