package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const tabContextKey = "tab_id"

type TabConfig struct {
	Skipper    Skipper
	CookieName string
	Secure     bool
}

// GetTabID returns the tab id resolved by the Tab middleware.
func GetTabID(c echo.Context) string {
	id, _ := c.Get(tabContextKey).(string)
	return id
}

// Tab gives every browser tab a stable id. The cookie has no Max-Age so the
// browser drops it when the session ends.
func Tab(config TabConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultSkipper
	}
	if config.CookieName == "" {
		config.CookieName = "tab"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			var tabID string
			if cookie, err := c.Cookie(config.CookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					tabID = id.String()
				}
			}
			if tabID == "" {
				tabID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     config.CookieName,
					Value:    tabID,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(tabContextKey, tabID)
			return next(c)
		}
	}
}
