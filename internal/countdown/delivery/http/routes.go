package http

import (
	"github.com/labstack/echo/v4"

	"github.com/rankreel/rankreel/internal/countdown"
)

func MapCountdownRoutes(countdownGroup *echo.Group, h countdown.Handler) {
	countdownGroup.POST("/narration", h.GenerateNarration())
	countdownGroup.POST("/compile", h.CompileVideo())
}
