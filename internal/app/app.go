package app

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/product-console/internal/config"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-console/internal/server"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

func Invoke(funcs ...any) *fx.App {
	conf := config.MustLoad()
	if err := logger.Init(conf.Log.Level, conf.Log.Development); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	log := logger.MustNamed("app")
	log.Debugw("config loaded",
		"api_base_url", conf.API.BaseURL,
		"api_timeout", conf.API.Timeout,
		"server_addr", conf.Server.Addr,
		"session_backend", conf.Session.Backend,
		"session_sealed", conf.Session.EncryptionKey != "",
		"query_stale_time", conf.Query.StaleTime,
	)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		Module(conf),
		fx.Invoke(funcs...),
	)
}

// Module provides everything both fronts need.
func Module(conf *config.Config) fx.Option {
	return fx.Options(
		fx.Provide(
			newSessionStore,
			newQueryRegistry,

			productapi.NewClient,

			usecase.NewTabManager,
			usecase.NewAuthUsecase,
			usecase.NewUserUsecase,
			usecase.NewProductUsecase,

			server.NewHandler,
		),
		fx.Supply(conf),
		fx.Invoke(RunRegistrySweeper),
	)
}
