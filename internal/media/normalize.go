package media

import (
	"context"
	"fmt"

	"github.com/rankreel/rankreel/internal/models"
)

const aspectEpsilon = 1e-3

// Normalize rewrites a clip into the fixed vertical target profile. The
// crop-or-pad strategy depends on the probed aspect ratio; all paths force
// the target frame rate and square pixels and always re-encode.
func (t *Tool) Normalize(ctx context.Context, inputPath, outputPath string) (models.MediaProperties, error) {
	in := t.Probe(ctx, inputPath)

	args := []string{
		"-y",
		"-i", inputPath,
		"-vf", normalizeFilter(in),
		"-r", fmt.Sprintf("%d", TargetFrameRate),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		outputPath,
	}
	out, err := t.run.Run(ctx, t.ffmpeg, args...)
	if err != nil {
		return models.MediaProperties{}, toolFailure("normalize", err, out)
	}
	return t.Probe(ctx, outputPath), nil
}

// normalizeFilter selects the video filter chain for the probed input
// geometry: center-crop when wider than the target aspect, letterbox-pad when
// narrower, straight scale when equal or unknown.
func normalizeFilter(in models.MediaProperties) string {
	tail := fmt.Sprintf("setsar=1,fps=%d", TargetFrameRate)

	if in.Width <= 0 || in.Height <= 0 {
		return fmt.Sprintf("scale=%d:%d,%s", TargetWidth, TargetHeight, tail)
	}

	inputAspect := float64(in.Width) / float64(in.Height)
	targetAspect := float64(TargetWidth) / float64(TargetHeight)

	switch {
	case inputAspect > targetAspect+aspectEpsilon:
		// Wider than target: crop horizontally to the target aspect, then scale.
		return fmt.Sprintf("crop=ih*%d/%d:ih,scale=%d:%d,%s",
			TargetWidth, TargetHeight, TargetWidth, TargetHeight, tail)
	case inputAspect < targetAspect-aspectEpsilon:
		// Narrower than target: scale to width, pad top/bottom with black.
		return fmt.Sprintf("scale=%d:-2,pad=%d:%d:0:(oh-ih)/2:color=black,%s",
			TargetWidth, TargetWidth, TargetHeight, tail)
	default:
		return fmt.Sprintf("scale=%d:%d,%s", TargetWidth, TargetHeight, tail)
	}
}
