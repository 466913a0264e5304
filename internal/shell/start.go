package shell

import (
	"context"
	"os"

	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-console/internal/usecase"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

// Start runs the shell on stdin/stdout and stops the app when it exits.
func Start(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	tabs usecase.TabManager,
	auth usecase.AuthUsecase,
	users usecase.UserUsecase,
	products usecase.ProductUsecase,
) error {
	sh, err := New(tabs, auth, users, products, NewPrompter(), os.Stdout)
	if err != nil {
		return err
	}
	log := logger.MustNamed("shell")
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer func() { _ = sd.Shutdown() }()
				if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
					log.Errorw("shell stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return nil
}
