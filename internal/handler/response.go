package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DetailResponse is the envelope for every non-item response body:
// {"detail": "Item not found"} or {"detail": [<validation errors>]}.
type DetailResponse struct {
	Detail interface{} `json:"detail"`
}

func NewDetailResponse(detail interface{}) DetailResponse {
	return DetailResponse{Detail: detail}
}

// HTTPErrorHandler renders errors that reach echo as {"detail": ...}.
// Anything that is not an *echo.HTTPError is a storage failure and becomes a 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var detail interface{} = http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		detail = he.Message
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		detail = http.StatusText(code)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, NewDetailResponse(detail))
	}
	if werr != nil {
		c.Logger().Error(werr)
	}
}
