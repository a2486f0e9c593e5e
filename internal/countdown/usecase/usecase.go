package usecase

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rankreel/rankreel/internal/cleanup"
	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/countdown"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/internal/narration"
	"github.com/rankreel/rankreel/internal/pipeline"
	"github.com/rankreel/rankreel/pkg/logger"
	"github.com/rankreel/rankreel/pkg/utils"
)

type countdownUC struct {
	cfg       *config.Config
	pipe      *pipeline.Pipeline
	generator *narration.Generator
	scheduler *cleanup.Scheduler
	logger    logger.Logger
}

func NewCountdownUseCase(
	cfg *config.Config,
	pipe *pipeline.Pipeline,
	generator *narration.Generator,
	scheduler *cleanup.Scheduler,
	log logger.Logger,
) countdown.UseCase {
	return &countdownUC{
		cfg:       cfg,
		pipe:      pipe,
		generator: generator,
		scheduler: scheduler,
		logger:    log,
	}
}

func (u *countdownUC) GenerateNarration(ctx context.Context, req *models.NarrationRequest) (*models.NarrationResult, error) {
	if err := utils.ValidateStruct(ctx, req); err != nil {
		return nil, models.NewProcessingError(models.ErrValidation, "invalid narration request", err.Error())
	}
	ranks := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		ranks = append(ranks, item.Rank)
	}
	if !models.ValidRankPermutation(ranks) {
		return nil, models.NewProcessingError(models.ErrValidation,
			"invalid narration request", "item ranks must be a permutation of 1..5")
	}

	res := u.generator.Generate(ctx, req.Items, narration.Options{
		Topic:         req.Topic,
		Style:         req.Style,
		IncludeEmojis: req.IncludeEmojis,
		UseLLM:        req.UseLLM,
	})
	return &res, nil
}

func (u *countdownUC) CompileVideo(ctx context.Context, input *models.CompileInput) (*models.ProcessingResult, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, models.NewProcessingError(models.ErrValidation, "invalid compile request", err.Error())
	}
	ranks := make([]int, 0, len(input.Clips))
	for _, clip := range input.Clips {
		ranks = append(ranks, clip.Rank)
	}
	if !models.ValidRankPermutation(ranks) {
		return nil, models.NewProcessingError(models.ErrValidation,
			"invalid compile request", "clip ranks must be a permutation of 1..5")
	}

	if ok, usage := utils.CheckCPUUsage(u.cfg.Worker.MaxCPUUsage); !ok {
		u.logger.Warnf("rejecting compile job, CPU usage %.1f%% above ceiling", usage)
		return nil, models.NewProcessingError(models.ErrBusy, "server busy", "try again shortly")
	}

	jobID := uuid.New().String()
	workDir := filepath.Join(u.cfg.Media.WorkDir, jobID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, errors.Wrap(err, "create working directory")
	}
	defer func() {
		// Working files are a scoped resource, released as soon as the job
		// ends either way. Removal failures never surface to the caller.
		if err := os.RemoveAll(workDir); err != nil {
			u.logger.Warnf("job %s: working directory cleanup failed: %v", jobID, err)
		}
	}()

	clips := make([]models.RankedClip, 0, len(input.Clips))
	for i, upload := range input.Clips {
		dst := filepath.Join(workDir, fmt.Sprintf("input_%d%s", i, safeExt(upload.File.Filename)))
		if err := saveUpload(upload.File, dst); err != nil {
			return nil, errors.Wrapf(err, "save upload %d", i)
		}
		clips = append(clips, models.RankedClip{
			SourcePath:  dst,
			Rank:        upload.Rank,
			Description: upload.Description,
		})
	}

	if err := os.MkdirAll(u.cfg.Media.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}

	job := &models.Job{
		JobID:      jobID,
		WorkDir:    workDir,
		Clips:      clips,
		Script:     input.Script,
		AudioMode:  input.AudioMode,
		Overlay:    input.Overlay,
		OutputPath: filepath.Join(u.cfg.Media.OutputDir, jobID+".mp4"),
	}

	u.logger.Infof("job %s: starting compile, audio mode %q", jobID, job.AudioMode)
	result := u.pipe.Run(ctx, job)
	if result.Success {
		retention := time.Duration(u.cfg.Media.OutputRetentionSec) * time.Second
		u.scheduler.ScheduleRemoval(job.OutputPath, retention)
		u.logger.Infof("job %s: compiled %s (%s), retained for %s",
			jobID, job.OutputPath, result.Resolution, retention)
	} else {
		u.logger.Errorf("job %s: pipeline failed: %s", jobID, result.Error)
	}
	return result, nil
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func safeExt(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" || len(ext) > 5 {
		return ".mp4"
	}
	return ext
}
