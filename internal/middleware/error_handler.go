package middleware

import (
	"fmt"
	"net/http"

	"github.com/bookfast/bookfast/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error, framework or handler raised, as the
// service's single error shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprintf("%v", m)
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
