package countdown

import "github.com/labstack/echo/v4"

type Handler interface {
	GenerateNarration() echo.HandlerFunc
	CompileVideo() echo.HandlerFunc
}
