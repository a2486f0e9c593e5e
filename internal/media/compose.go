package media

import (
	"context"
	"fmt"
	"strings"
)

// ReplaceAudio maps the video stream from videoPath and the audio stream from
// audioPath, trimmed to the shorter of the two. If that mapping fails it
// retries once without the trim constraint, which tolerates narration tracks
// with malformed timing.
func (t *Tool) ReplaceAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	out, err := t.run.Run(ctx, t.ffmpeg, replaceAudioArgs(videoPath, audioPath, outputPath, true)...)
	if err == nil {
		return nil
	}
	t.logger.Warnf("replace audio with -shortest failed, retrying without trim: %v: %s",
		err, strings.TrimSpace(string(out)))

	out, err = t.run.Run(ctx, t.ffmpeg, replaceAudioArgs(videoPath, audioPath, outputPath, false)...)
	if err != nil {
		return toolFailure("replace audio", err, out)
	}
	return nil
}

func replaceAudioArgs(videoPath, audioPath, outputPath string, shortest bool) []string {
	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
	}
	if shortest {
		args = append(args, "-shortest")
	}
	return append(args, "-movflags", "+faststart", outputPath)
}

// MixAudio attenuates the original audio, sums it with the narration, and
// copies the video stream unchanged. Any failure falls back to ReplaceAudio,
// since a clip without usable original audio cannot be mixed.
func (t *Tool) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, originalVolume, narrationVolume float64) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-filter_complex", mixFilter(originalVolume, narrationVolume),
		"-map", "0:v:0",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		outputPath,
	}
	out, err := t.run.Run(ctx, t.ffmpeg, args...)
	if err == nil {
		return nil
	}
	t.logger.Warnf("mix audio failed, falling back to replace: %v: %s",
		err, strings.TrimSpace(string(out)))
	return t.ReplaceAudio(ctx, videoPath, audioPath, outputPath)
}

func mixFilter(originalVolume, narrationVolume float64) string {
	return fmt.Sprintf(
		"[0:a]volume=%.2f[orig];[1:a]volume=%.2f[narr];[orig][narr]amix=inputs=2:duration=shortest[aout]",
		originalVolume, narrationVolume)
}
