package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rankreel/rankreel/internal/countdown"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/pkg/logger"
)

type countdownHandler struct {
	countdownUC countdown.UseCase
	logger      logger.Logger
}

func NewCountdownHandler(countdownUC countdown.UseCase, log logger.Logger) countdown.Handler {
	return &countdownHandler{countdownUC: countdownUC, logger: log}
}

func (h *countdownHandler) GenerateNarration() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &models.NarrationRequest{}
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		result, err := h.countdownUC.GenerateNarration(c.Request().Context(), req)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}
}

func (h *countdownHandler) CompileVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		input, err := parseCompileForm(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		result, err := h.countdownUC.CompileVideo(c.Request().Context(), input)
		if err != nil {
			return errorResponse(c, err)
		}
		if !result.Success {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error":   "processing_failed",
				"details": result.Error,
			})
		}

		c.Response().Header().Set("X-Video-Duration", fmt.Sprintf("%.2f", result.Duration))
		c.Response().Header().Set("X-Video-Resolution", result.Resolution)
		c.Response().Header().Set("X-Narration-Backend", string(result.NarrationBackend))
		return c.File(result.OutputPath)
	}
}

// parseCompileForm accepts the two upload naming schemes: "video0".."video4"
// and "video_0".."video_4", with matching rank/description field names.
func parseCompileForm(c echo.Context) (*models.CompileInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("expected multipart form with 5 video files")
	}

	input := &models.CompileInput{
		Script:    c.FormValue("script"),
		AudioMode: c.FormValue("audioMode"),
		Overlay:   c.FormValue("overlay") != "false",
	}
	if input.AudioMode == "" {
		input.AudioMode = models.AudioModeReplace
	}

	for i := 0; i < models.ClipCount; i++ {
		key := fmt.Sprintf("video%d", i)
		files, ok := form.File[key]
		if !ok || len(files) == 0 {
			key = fmt.Sprintf("video_%d", i)
			files = form.File[key]
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("missing video file %d: expected field video%d or video_%d", i, i, i)
		}

		rankValue := formValueEither(c, fmt.Sprintf("rank%d", i), fmt.Sprintf("rank_%d", i))
		rank, err := strconv.Atoi(rankValue)
		if err != nil {
			return nil, fmt.Errorf("invalid or missing rank for video %d", i)
		}

		input.Clips = append(input.Clips, models.ClipUpload{
			File:        files[0],
			Rank:        rank,
			Description: formValueEither(c, fmt.Sprintf("description%d", i), fmt.Sprintf("description_%d", i)),
		})
	}
	return input, nil
}

func formValueEither(c echo.Context, primary, alternate string) string {
	if v := c.FormValue(primary); v != "" {
		return v
	}
	return c.FormValue(alternate)
}

func errorResponse(c echo.Context, err error) error {
	kind := models.KindOf(err)
	if kind == "" {
		kind = "internal_error"
	}
	status := http.StatusInternalServerError
	switch kind {
	case models.ErrValidation:
		status = http.StatusBadRequest
	case models.ErrBusy:
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]string{
		"error":   string(kind),
		"details": err.Error(),
	})
}
