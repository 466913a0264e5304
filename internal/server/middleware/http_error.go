package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorPage is the data of the rendered error template.
type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

// ErrorHandler renders failures with the named template. Server errors are
// logged and shown without detail.
func ErrorHandler(log Logger, template string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		page := ErrorPage{Status: http.StatusInternalServerError}

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			page.Status = he.Code
			page.Message = fmt.Sprint(he.Message)
		case errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled:
			page.Status = 499
		}

		if page.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			page.Message = "no route matched"
		}
		if page.Status >= 500 {
			log.Errorw("request failed", "error", err, "request_id", GetRequestID(c))
			page.Message = "Something went wrong"
		}
		page.Title = http.StatusText(page.Status)
		if page.Title == "" {
			page.Title = "Error"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(page.Status)
		} else {
			err = c.Render(page.Status, template, page)
		}
		if err != nil {
			log.Errorw("could not respond", "status", page.Status, "error", err)
		}
	}
}
