package middleware

import (
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

var maskedFormValues = map[string]bool{
	"password": true,
}

type LogRequestConfig struct {
	Logger       Logger
	Enabled      func(c echo.Context) bool
	RequestID    func(c echo.Context) string
	FormValues   func(c echo.Context) bool
	QueryParams  func(c echo.Context) bool
	KeyAndValues func(c echo.Context) []interface{}
}

// LogRequest logs one line per request. Form values are logged with
// passwords masked.
func LogRequest(config LogRequestConfig) echo.MiddlewareFunc {
	defFunc := func(c echo.Context) bool {
		return true
	}
	if config.Logger == nil {
		panic("Logger is required to use LogRequest")
	}
	if config.Enabled == nil {
		config.Enabled = defFunc
	}
	if config.FormValues == nil {
		config.FormValues = defFunc
	}
	if config.QueryParams == nil {
		config.QueryParams = defFunc
	}
	if config.RequestID == nil {
		config.RequestID = GetRequestID
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !config.Enabled(c) {
				return next(c)
			}

			start := time.Now()
			req := c.Request()
			res := c.Response()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			args := make([]interface{}, 0, 24)
			args = append(args,
				"status", res.Status,
				"method", req.Method,
				"uri", req.RequestURI,
				"latency_ms", time.Since(start).Milliseconds(),
				"real_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
				"request_id", config.RequestID(c),
			)
			if tabID := GetTabID(c); tabID != "" {
				args = append(args, "tab_id", tabID)
			}
			if config.QueryParams(c) {
				if query := c.QueryParams(); len(query) > 0 {
					args = append(args, "query", query)
				}
			}
			if config.FormValues(c) && len(req.PostForm) > 0 {
				args = append(args, "form", mask(req.PostForm))
			}
			if config.KeyAndValues != nil {
				args = append(args, config.KeyAndValues(c)...)
			}

			switch {
			case res.Status >= 500:
				if err != nil {
					args = append(args, "error", err.Error())
				}
				config.Logger.Errorw("request", args...)
			case res.Status >= 400:
				config.Logger.Warnw("request", args...)
			default:
				config.Logger.Infow("request", args...)
			}

			return err
		}
	}
}

func mask(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		if maskedFormValues[k] {
			out[k] = []string{"****"}
			continue
		}
		out[k] = v
	}
	return out
}
