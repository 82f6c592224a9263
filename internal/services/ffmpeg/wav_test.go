package ffmpeg

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestWAV builds a minimal PCM WAV file: 16-bit, 2 channels, 44100 Hz,
// with a data chunk holding the given number of sample frames
func writeTestWAV(t *testing.T, path string, frames int) {
	t.Helper()

	const (
		channels   = 2
		sampleRate = 44100
		bits       = 16
	)
	byteRate := sampleRate * channels * bits / 8
	blockAlign := channels * bits / 8
	dataLen := frames * blockAlign

	buf := make([]byte, 0, 44+dataLen)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataLen))
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, channels)
	buf = binary.LittleEndian.AppendUint32(buf, sampleRate)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, bits)

	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataLen))
	buf = append(buf, make([]byte, dataLen)...)

	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWAVDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.wav")
	// 2.5 seconds at 44100 Hz
	writeTestWAV(t, path, 110250)

	duration, err := WAVDuration(path)
	if err != nil {
		t.Fatalf("WAVDuration failed: %v", err)
	}
	if math.Abs(duration-2.5) > 1e-9 {
		t.Errorf("Expected 2.5s, got %f", duration)
	}
}

func TestWAVDurationDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.wav")
	writeTestWAV(t, path, 44100)

	first, err := WAVDuration(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := WAVDuration(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Duration not deterministic: %f vs %f", first, second)
	}
	if first != 1.0 {
		t.Errorf("Expected 1s, got %f", first)
	}
}

func TestWAVDurationRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	if err := os.WriteFile(path, []byte("this is not a wav file"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := WAVDuration(path); err == nil {
		t.Fatal("Expected an error for a non-WAV file")
	}
}
