package media

import (
	"context"
	"strconv"
	"strings"

	"github.com/rankreel/rankreel/internal/models"
)

// Probe inspects a media file and reports its intrinsic properties. Probing
// is advisory: any failure yields the documented default record instead of an
// error, because every geometry decision downstream has a sane fallback.
func (t *Tool) Probe(ctx context.Context, path string) models.MediaProperties {
	props := models.DefaultMediaProperties()

	out, err := t.run.Run(ctx, t.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,codec_name",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		t.logger.Warnf("probe %s: %v: %s", path, err, strings.TrimSpace(string(out)))
		return props
	}
	parseVideoStreamLine(strings.TrimSpace(string(out)), &props)

	if out, err = t.run.Run(ctx, t.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	); err == nil {
		if d, perr := strconv.ParseFloat(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(string(out)), ",")), 64); perr == nil {
			props.Duration = d
		}
	}

	if out, err = t.run.Run(ctx, t.ffprobe,
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path,
	); err == nil {
		props.HasAudio = strings.TrimSpace(string(out)) != ""
	}

	return props
}

func parseVideoStreamLine(line string, props *models.MediaProperties) {
	line = strings.TrimRight(line, ",")
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return
	}
	if w, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		props.Width = w
	}
	if h, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
		props.Height = h
	}
	if len(parts) > 2 {
		props.FrameRate = parseFrameRate(strings.TrimSpace(parts[2]))
	}
	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		props.Codec = strings.TrimSpace(parts[3])
	}
}

// parseFrameRate handles ffprobe's "N/D" rational form by integer division.
// A zero denominator or unparseable string defaults to 30.
func parseFrameRate(s string) int {
	if s == "" {
		return TargetFrameRate
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.Atoi(num)
		d, err2 := strconv.Atoi(den)
		if err1 != nil || err2 != nil || d == 0 {
			return TargetFrameRate
		}
		return n / d
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return TargetFrameRate
	}
	return int(f)
}
