package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// GenerateSilence renders a silent audio track of the given duration.
func (t *Tool) GenerateSilence(ctx context.Context, outputPath string, seconds int) error {
	out, err := t.run.Run(ctx, t.ffmpeg,
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=44100:cl=mono:d=%d", seconds),
		"-c:a", "pcm_s16le",
		outputPath,
	)
	if err != nil {
		return toolFailure("generate silence", err, out)
	}
	return nil
}

// ConcatAudio joins audio chunks in order with a stream copy.
func (t *Tool) ConcatAudio(ctx context.Context, orderedPaths []string, outputPath string) error {
	manifestPath := filepath.Join(filepath.Dir(outputPath), "audio_concat_list.txt")
	manifest, err := os.Create(manifestPath)
	if err != nil {
		return fmt.Errorf("create audio concat list: %w", err)
	}
	defer os.Remove(manifestPath)

	for _, p := range orderedPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			manifest.Close()
			return fmt.Errorf("resolve chunk path: %w", err)
		}
		if _, err := fmt.Fprintf(manifest, "file '%s'\n", absPath); err != nil {
			manifest.Close()
			return fmt.Errorf("write audio concat list: %w", err)
		}
	}
	manifest.Close()

	out, err := t.run.Run(ctx, t.ffmpeg,
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		"-y", outputPath,
	)
	if err != nil {
		return toolFailure("concat audio", err, out)
	}
	return nil
}
