package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/media"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/internal/tts"
	"github.com/rankreel/rankreel/pkg/logger"
)

func testLogger() logger.Logger {
	l := logger.NewApiLogger(&config.Config{
		Server: config.ServerConfig{Mode: "Development"},
		Logger: config.Logger{Encoding: "console", Level: "error"},
	})
	l.InitLogger()
	return l
}

// stubRunner answers every probe with a fixed vertical profile and lets a test
// fail selected ffmpeg invocations.
type stubRunner struct {
	lookErr error
	failOn  string
	calls   [][]string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	call := append([]string{name}, args...)
	s.calls = append(s.calls, call)

	joined := strings.Join(call, " ")
	if s.failOn != "" && strings.Contains(joined, s.failOn) {
		return []byte("stub stderr output"), errors.New("exit status 1")
	}

	if strings.Contains(name, "ffprobe") {
		switch {
		case strings.Contains(joined, "format=duration"):
			return []byte("45.500000\n"), nil
		case strings.Contains(joined, "stream=index"):
			return []byte("1\n"), nil
		default:
			return []byte("1080,1920,30/1,h264\n"), nil
		}
	}
	return nil, nil
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if s.lookErr != nil {
		return "", s.lookErr
	}
	return "/usr/bin/" + name, nil
}

func newTestPipeline(run media.Runner) *Pipeline {
	log := testLogger()
	tool := media.NewToolWithRunner(&config.MediaConfig{}, log, run)
	engine := tts.NewEngine(config.TTSConfig{}, tool, log)
	return New(tool, engine, log)
}

func testJob(t *testing.T, overlay bool, audioMode string) *models.Job {
	dir := t.TempDir()
	clips := make([]models.RankedClip, 0, models.ClipCount)
	for _, rank := range []int{3, 1, 5, 2, 4} {
		clips = append(clips, models.RankedClip{
			SourcePath: filepath.Join(dir, fmt.Sprintf("clip_rank%d.mp4", rank)),
			Rank:       rank,
		})
	}
	return &models.Job{
		JobID:      "job-test",
		WorkDir:    dir,
		Clips:      clips,
		Script:     "the narration script for this countdown",
		AudioMode:  audioMode,
		Overlay:    overlay,
		OutputPath: filepath.Join(dir, "final.mp4"),
	}
}

// sourceOrder reports the order in which clip source files were fed to ffmpeg.
func sourceOrder(calls [][]string) []int {
	var order []int
	for _, call := range calls {
		if !strings.Contains(call[0], "ffmpeg") {
			continue
		}
		for _, arg := range call {
			for rank := 1; rank <= 5; rank++ {
				if strings.HasSuffix(arg, fmt.Sprintf("clip_rank%d.mp4", rank)) {
					order = append(order, rank)
				}
			}
		}
	}
	return order
}

func callsContaining(calls [][]string, substr string) int {
	n := 0
	for _, call := range calls {
		if strings.Contains(strings.Join(call, " "), substr) {
			n++
		}
	}
	return n
}

func TestRun_FullPipelineSuccess(t *testing.T) {
	run := &stubRunner{}
	p := newTestPipeline(run)
	job := testJob(t, true, models.AudioModeMix)

	res := p.Run(context.Background(), job)
	require.True(t, res.Success, "pipeline failed: %s", res.Error)

	assert.Equal(t, job.OutputPath, res.OutputPath)
	assert.Equal(t, "1080x1920", res.Resolution)
	assert.Equal(t, 45.5, res.Duration)
	assert.Equal(t, models.BackendMock, res.NarrationBackend)

	// Countdown order: rank 5 is normalized first, rank 1 last.
	assert.Equal(t, []int{5, 4, 3, 2, 1}, sourceOrder(run.calls))

	assert.Equal(t, 5, callsContaining(run.calls, "drawtext"), "one overlay per clip")
	assert.Equal(t, 1, callsContaining(run.calls, "amix"), "mix mode composes both tracks")
}

func TestRun_ReplaceModeByDefault(t *testing.T) {
	run := &stubRunner{}
	p := newTestPipeline(run)
	job := testJob(t, false, "")

	res := p.Run(context.Background(), job)
	require.True(t, res.Success, "pipeline failed: %s", res.Error)

	assert.Zero(t, callsContaining(run.calls, "drawtext"))
	assert.Zero(t, callsContaining(run.calls, "amix"))
	assert.Equal(t, 1, callsContaining(run.calls, "-shortest"))
}

func TestRun_ToolUnavailable(t *testing.T) {
	run := &stubRunner{lookErr: errors.New("executable file not found")}
	p := newTestPipeline(run)

	res := p.Run(context.Background(), testJob(t, false, ""))
	require.False(t, res.Success)
	assert.Contains(t, res.Error, string(models.ErrToolUnavailable))
	assert.Empty(t, res.OutputPath)
}

func TestRun_OverlayFailureAbortsJob(t *testing.T) {
	run := &stubRunner{failOn: "drawtext"}
	p := newTestPipeline(run)

	res := p.Run(context.Background(), testJob(t, true, ""))
	require.False(t, res.Success)
	assert.Contains(t, res.Error, string(models.ErrToolExecution))
	assert.Contains(t, res.Error, "stub stderr output")

	// The first overlay failure stops the pipeline before concatenation.
	assert.Zero(t, callsContaining(run.calls, "concat"))
}

func TestRun_NormalizeFailureAbortsJob(t *testing.T) {
	run := &stubRunner{failOn: "libx264"}
	p := newTestPipeline(run)

	res := p.Run(context.Background(), testJob(t, false, ""))
	require.False(t, res.Success)
	assert.Contains(t, res.Error, string(models.ErrToolExecution))
}
