package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Concat joins clips that are already in identical format with a stream-level
// copy. The orchestrator always normalizes first, so this fast path is the
// expected case.
func (t *Tool) Concat(ctx context.Context, orderedPaths []string, outputPath string) error {
	manifestPath := filepath.Join(filepath.Dir(outputPath), "concat_list.txt")
	manifest, err := os.Create(manifestPath)
	if err != nil {
		return fmt.Errorf("create concat list: %w", err)
	}
	defer os.Remove(manifestPath)

	for _, p := range orderedPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			manifest.Close()
			return fmt.Errorf("resolve segment path: %w", err)
		}
		if _, err := fmt.Fprintf(manifest, "file '%s'\n", absPath); err != nil {
			manifest.Close()
			return fmt.Errorf("write concat list: %w", err)
		}
	}
	manifest.Close()

	out, err := t.run.Run(ctx, t.ffmpeg,
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		"-movflags", "+faststart",
		"-y", outputPath,
	)
	if err != nil {
		return toolFailure("concat", err, out)
	}
	return nil
}

// ConcatReencode joins heterogeneous clips by decoding everything into the
// target geometry. It is the documented alternative entry point for inputs
// that skipped normalization, not an automatic fallback.
func (t *Tool) ConcatReencode(ctx context.Context, orderedPaths []string, outputPath string) error {
	args := []string{"-y"}
	for _, p := range orderedPaths {
		args = append(args, "-i", p)
	}
	args = append(args,
		"-filter_complex", concatReencodeFilter(len(orderedPaths)),
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		outputPath,
	)
	out, err := t.run.Run(ctx, t.ffmpeg, args...)
	if err != nil {
		return toolFailure("concat reencode", err, out)
	}
	return nil
}

func concatReencodeFilter(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%d[v%d];",
			i, TargetWidth, TargetHeight, TargetWidth, TargetHeight, TargetFrameRate, i)
		fmt.Fprintf(&b, "[%d:a]aresample=44100[a%d];", i, i)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[v%d][a%d]", i, i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=1[v][a]", n)
	return b.String()
}
