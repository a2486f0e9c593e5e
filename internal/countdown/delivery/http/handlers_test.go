package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/models"
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

type stubUseCase struct {
	narrationRes *models.NarrationResult
	narrationErr error
	compileRes   *models.ProcessingResult
	compileErr   error
	gotInput     *models.CompileInput
}

func (s *stubUseCase) GenerateNarration(ctx context.Context, req *models.NarrationRequest) (*models.NarrationResult, error) {
	return s.narrationRes, s.narrationErr
}

func (s *stubUseCase) CompileVideo(ctx context.Context, input *models.CompileInput) (*models.ProcessingResult, error) {
	s.gotInput = input
	return s.compileRes, s.compileErr
}

func multipartRequest(t *testing.T, fileKey func(int) string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i := 0; i < models.ClipCount; i++ {
		fw, err := w.CreateFormFile(fileKey(i), fmt.Sprintf("clip_%d.mp4", i))
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake video payload"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/countdown/compile", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func compileContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestParseCompileForm_PlainNamingScheme(t *testing.T) {
	fields := map[string]string{
		"script":       "the narration script",
		"audioMode":    "mix",
		"overlay":      "true",
		"rank0":        "5",
		"rank1":        "4",
		"rank2":        "3",
		"rank3":        "2",
		"rank4":        "1",
		"description0": "best for last",
	}
	c, _ := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video%d", i) }, fields))

	input, err := parseCompileForm(c)
	require.NoError(t, err)

	assert.Equal(t, "the narration script", input.Script)
	assert.Equal(t, models.AudioModeMix, input.AudioMode)
	assert.True(t, input.Overlay)
	require.Len(t, input.Clips, models.ClipCount)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, clipRanks(input))
	assert.Equal(t, "best for last", input.Clips[0].Description)
}

func TestParseCompileForm_UnderscoreNamingScheme(t *testing.T) {
	fields := map[string]string{
		"script":        "the narration script",
		"rank_0":        "1",
		"rank_1":        "2",
		"rank_2":        "3",
		"rank_3":        "4",
		"rank_4":        "5",
		"description_2": "middle of the pack",
	}
	c, _ := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video_%d", i) }, fields))

	input, err := parseCompileForm(c)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, clipRanks(input))
	assert.Equal(t, "middle of the pack", input.Clips[2].Description)
	assert.Equal(t, models.AudioModeReplace, input.AudioMode, "audio mode defaults to replace")
	assert.True(t, input.Overlay, "overlay defaults to on")
}

func TestParseCompileForm_OverlayOptOut(t *testing.T) {
	fields := map[string]string{
		"script": "s", "overlay": "false",
		"rank0": "1", "rank1": "2", "rank2": "3", "rank3": "4", "rank4": "5",
	}
	c, _ := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video%d", i) }, fields))

	input, err := parseCompileForm(c)
	require.NoError(t, err)
	assert.False(t, input.Overlay)
}

func TestParseCompileForm_MissingFile(t *testing.T) {
	fields := map[string]string{
		"script": "s",
		"rank0":  "1", "rank1": "2", "rank2": "3", "rank3": "4", "rank4": "5",
	}
	// Files uploaded under a name neither scheme recognizes.
	c, _ := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("clip%d", i) }, fields))

	_, err := parseCompileForm(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing video file 0")
}

func TestParseCompileForm_MissingRank(t *testing.T) {
	fields := map[string]string{"script": "s", "rank0": "1"}
	c, _ := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video%d", i) }, fields))

	_, err := parseCompileForm(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank for video 1")
}

func clipRanks(input *models.CompileInput) []int {
	ranks := make([]int, 0, len(input.Clips))
	for _, c := range input.Clips {
		ranks = append(ranks, c.Rank)
	}
	return ranks
}

func TestGenerateNarration_ReturnsResult(t *testing.T) {
	uc := &stubUseCase{narrationRes: &models.NarrationResult{Script: "generated", WordCount: 1, EstimatedDuration: 1}}
	h := NewCountdownHandler(uc, testLogger())

	body := `{"items":[],"topic":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/countdown/narration", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := compileContext(req)

	require.NoError(t, h.GenerateNarration()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res models.NarrationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "generated", res.Script)
}

func TestGenerateNarration_ValidationErrorMapsTo400(t *testing.T) {
	uc := &stubUseCase{narrationErr: models.NewProcessingError(models.ErrValidation, "invalid narration request", "bad ranks")}
	h := NewCountdownHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/countdown/narration", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := compileContext(req)

	require.NoError(t, h.GenerateNarration()(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), string(models.ErrValidation))
}

func TestCompileVideo_BusyMapsTo503(t *testing.T) {
	uc := &stubUseCase{compileErr: models.NewProcessingError(models.ErrBusy, "server busy", "try again shortly")}
	h := NewCountdownHandler(uc, testLogger())

	fields := map[string]string{
		"script": "s",
		"rank0":  "1", "rank1": "2", "rank2": "3", "rank3": "4", "rank4": "5",
	}
	c, rec := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video%d", i) }, fields))

	require.NoError(t, h.CompileVideo()(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), string(models.ErrBusy))
}

func TestCompileVideo_PipelineFailureMapsTo500(t *testing.T) {
	uc := &stubUseCase{compileRes: &models.ProcessingResult{Success: false, Error: "tool_execution_failure: normalize"}}
	h := NewCountdownHandler(uc, testLogger())

	fields := map[string]string{
		"script": "s",
		"rank0":  "1", "rank1": "2", "rank2": "3", "rank3": "4", "rank4": "5",
	}
	c, rec := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video%d", i) }, fields))

	require.NoError(t, h.CompileVideo()(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "processing_failed")
}

func TestCompileVideo_SuccessStreamsFileWithHeaders(t *testing.T) {
	output := filepath.Join(t.TempDir(), "final.mp4")
	require.NoError(t, os.WriteFile(output, []byte("compiled video bytes"), 0644))

	uc := &stubUseCase{compileRes: &models.ProcessingResult{
		Success:          true,
		OutputPath:       output,
		Duration:         42.5,
		Resolution:       "1080x1920",
		NarrationBackend: models.BackendMock,
	}}
	h := NewCountdownHandler(uc, testLogger())

	fields := map[string]string{
		"script": "s",
		"rank0":  "1", "rank1": "2", "rank2": "3", "rank3": "4", "rank4": "5",
	}
	c, rec := compileContext(multipartRequest(t, func(i int) string { return fmt.Sprintf("video%d", i) }, fields))

	require.NoError(t, h.CompileVideo()(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42.50", rec.Header().Get("X-Video-Duration"))
	assert.Equal(t, "1080x1920", rec.Header().Get("X-Video-Resolution"))
	assert.Equal(t, string(models.BackendMock), rec.Header().Get("X-Narration-Backend"))
	assert.Equal(t, "compiled video bytes", rec.Body.String())

	assert.Equal(t, models.AudioModeReplace, uc.gotInput.AudioMode)
}
