package ffmpeg

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WAVDuration returns the duration in seconds of a PCM WAV file, computed
// as data-chunk byte count over byte rate. Reading the sample data length
// instead of any header-declared duration keeps the measurement immune to
// wrong container metadata.
func WAVDuration(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open wav: %w", err)
	}
	defer file.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(file, header); err != nil {
		return 0, fmt.Errorf("failed to read wav header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return 0, fmt.Errorf("%s is not a RIFF/WAVE file", path)
	}

	var (
		byteRate uint32
		dataLen  uint32
		haveFmt  bool
		haveData bool
	)

	chunkHeader := make([]byte, 8)
	for !(haveFmt && haveData) {
		if _, err := io.ReadFull(file, chunkHeader); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return 0, fmt.Errorf("failed to read wav chunk header: %w", err)
		}

		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			fmtChunk := make([]byte, 16)
			if _, err := io.ReadFull(file, fmtChunk); err != nil {
				return 0, fmt.Errorf("failed to read wav fmt chunk: %w", err)
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			haveFmt = true
			if chunkSize > 16 {
				if _, err := file.Seek(int64(chunkSize)-16, io.SeekCurrent); err != nil {
					return 0, fmt.Errorf("failed to skip wav fmt extension: %w", err)
				}
			}
		case "data":
			dataLen = chunkSize
			haveData = true
			if _, err := file.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("failed to skip wav data chunk: %w", err)
			}
		default:
			// chunks are word-aligned, odd sizes carry a pad byte
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := file.Seek(skip, io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("failed to skip wav chunk %q: %w", chunkID, err)
			}
		}
	}

	if !haveFmt || !haveData {
		return 0, fmt.Errorf("%s is missing fmt or data chunk", path)
	}
	if byteRate == 0 {
		return 0, fmt.Errorf("%s declares a zero byte rate", path)
	}

	return float64(dataLen) / float64(byteRate), nil
}
