package media

import (
	"context"
	"fmt"
)

// Rank label envelope: linear fade-in, full-opacity hold, linear fade-out,
// then fully transparent for the rest of the clip.
const (
	overlayFadeIn  = 0.5
	overlayHold    = 2.0
	overlayFadeOut = 0.5

	overlayFontSize  = 96
	overlayTopOffset = 150
	overlayBorderW   = 6
)

// AddRankOverlay burns a "Rank #N" label onto a normalized clip. The alpha
// expression modulates fill and border together, so the label fades as one.
func (t *Tool) AddRankOverlay(ctx context.Context, inputPath, outputPath string, rank int) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-vf", overlayFilter(rank),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "copy",
		"-movflags", "+faststart",
		outputPath,
	}
	out, err := t.run.Run(ctx, t.ffmpeg, args...)
	if err != nil {
		return toolFailure(fmt.Sprintf("overlay rank %d", rank), err, out)
	}
	return nil
}

func overlayFilter(rank int) string {
	return fmt.Sprintf(
		"drawtext=text='Rank #%d':x=(w-text_w)/2:y=%d:fontsize=%d:fontcolor=white:borderw=%d:bordercolor=black:alpha='%s'",
		rank, overlayTopOffset, overlayFontSize, overlayBorderW, overlayAlphaExpr())
}

// overlayAlphaExpr builds the three-phase opacity envelope over elapsed time.
func overlayAlphaExpr() string {
	holdEnd := overlayFadeIn + overlayHold
	fadeEnd := holdEnd + overlayFadeOut
	return fmt.Sprintf("if(lt(t,%.1f),t/%.1f,if(lt(t,%.1f),1,if(lt(t,%.1f),(%.1f-t)/%.1f,0)))",
		overlayFadeIn, overlayFadeIn, holdEnd, fadeEnd, fadeEnd, overlayFadeOut)
}
