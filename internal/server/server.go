package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-console/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/product-console/internal/server/middleware"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

// NewEcho builds the web front with every route and middleware mounted.
func NewEcho(conf *config.Config, handler Controller) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	log := logger.MustNamed("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(log, "error")

	isProbe := func(c echo.Context) bool {
		path := c.Path()
		return path == "/health" || path == "/metrics"
	}
	logConfig := pkgmdw.LogRequestConfig{
		Logger: log,
		Enabled: func(c echo.Context) bool {
			return !isProbe(c)
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw("PANIC RECOVER", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(pkgmdw.Tab(pkgmdw.TabConfig{
		Skipper:    isProbe,
		CookieName: conf.Server.CookieName,
		Secure:     conf.Server.CookieSecure,
	}))

	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/login", handler.LoginPage)
	e.POST("/login", handler.Login)
	e.GET("/register", handler.RegisterPage)
	e.POST("/register", handler.Register)
	e.POST("/logout", handler.Logout)

	e.GET("/", handler.MainPage)
	e.POST("/products", handler.CreateProduct)
	e.POST("/products/:id", handler.UpdateProduct)
	e.POST("/products/:id/delete", handler.DeleteProduct)

	return e, nil
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
) error {
	e, err := NewEcho(conf, handler)
	if err != nil {
		return err
	}
	log := logger.MustNamed("http")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return nil
}
