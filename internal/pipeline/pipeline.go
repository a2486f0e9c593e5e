// Package pipeline sequences the media transformations for one compile job:
// normalize each clip, burn the rank label, concatenate in countdown order,
// synthesize the narration track, and compose the final audio.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rankreel/rankreel/internal/media"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/internal/tts"
	"github.com/rankreel/rankreel/pkg/logger"
)

const (
	defaultOriginalVolume  = 0.3
	defaultNarrationVolume = 1.0
)

type Pipeline struct {
	tool   *media.Tool
	tts    *tts.Engine
	logger logger.Logger
}

func New(tool *media.Tool, ttsEngine *tts.Engine, log logger.Logger) *Pipeline {
	return &Pipeline{tool: tool, tts: ttsEngine, logger: log}
}

// Run executes the full pipeline for one job. Steps run strictly in sequence;
// each consumes the previous step's output file. On a fatal step the result
// carries the diagnostic and the caller discards the working directory.
func (p *Pipeline) Run(ctx context.Context, job *models.Job) *models.ProcessingResult {
	if err := p.tool.Available(); err != nil {
		return failure(err)
	}

	clips := make([]models.RankedClip, len(job.Clips))
	copy(clips, job.Clips)
	models.SortClipsByRankDesc(clips)

	stagedPaths := make([]string, 0, len(clips))
	for i, clip := range clips {
		p.logger.Infof("job %s: normalizing clip rank %d", job.JobID, clip.Rank)
		normalized := filepath.Join(job.WorkDir, fmt.Sprintf("normalized_%d.mp4", i))
		if _, err := p.tool.Normalize(ctx, clip.SourcePath, normalized); err != nil {
			return failure(err)
		}

		staged := normalized
		if job.Overlay {
			labeled := filepath.Join(job.WorkDir, fmt.Sprintf("labeled_%d.mp4", i))
			if err := p.tool.AddRankOverlay(ctx, normalized, labeled, clip.Rank); err != nil {
				return failure(err)
			}
			staged = labeled
		}
		stagedPaths = append(stagedPaths, staged)
	}

	combined := filepath.Join(job.WorkDir, "combined.mp4")
	p.logger.Infof("job %s: concatenating %d clips", job.JobID, len(stagedPaths))
	if err := p.tool.Concat(ctx, stagedPaths, combined); err != nil {
		return failure(err)
	}

	synth, err := p.tts.Synthesize(ctx, job.Script, job.WorkDir)
	if err != nil {
		return failure(err)
	}
	p.logger.Infof("job %s: narration synthesized via %s backend", job.JobID, synth.Backend)

	switch job.AudioMode {
	case models.AudioModeMix:
		err = p.tool.MixAudio(ctx, combined, synth.AudioPath, job.OutputPath,
			defaultOriginalVolume, defaultNarrationVolume)
	default:
		err = p.tool.ReplaceAudio(ctx, combined, synth.AudioPath, job.OutputPath)
	}
	if err != nil {
		return failure(err)
	}

	final := p.tool.Probe(ctx, job.OutputPath)
	return &models.ProcessingResult{
		Success:          true,
		OutputPath:       job.OutputPath,
		Duration:         final.Duration,
		Resolution:       fmt.Sprintf("%dx%d", final.Width, final.Height),
		NarrationBackend: synth.Backend,
	}
}

func failure(err error) *models.ProcessingResult {
	return &models.ProcessingResult{Success: false, Error: err.Error()}
}
