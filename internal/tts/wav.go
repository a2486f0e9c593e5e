package tts

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	wavSampleRate    = 8000
	wavChannels      = 1
	wavBitsPerSample = 16
)

// writeSilentWAV writes a valid PCM WAV container with zeroed sample data.
// Last-resort output for the mock backend when ffmpeg is unavailable.
func writeSilentWAV(path string, seconds int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	bytesPerSample := wavBitsPerSample / 8
	byteRate := wavSampleRate * wavChannels * bytesPerSample
	dataSize := byteRate * seconds

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], wavChannels)
	binary.LittleEndian.PutUint32(header[24:28], wavSampleRate)
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(wavChannels*bytesPerSample))
	binary.LittleEndian.PutUint16(header[34:36], wavBitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := f.Write(header[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	silence := make([]byte, byteRate)
	for i := 0; i < seconds; i++ {
		if _, err := f.Write(silence); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}
	return nil
}
