package usecase

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-console/internal/session"
)

type AuthUsecase interface {
	// Login stores the returned token for the tab. On failure the stored
	// session is left as it was.
	Login(ctx context.Context, tab *Tab, req models.LoginRequest) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context, tab *Tab) error
	Session(ctx context.Context, tab *Tab) (session.Session, error)
}

type authUsecase struct {
	api      productapi.Client
	sessions session.Store
}

func NewAuthUsecase(api productapi.Client, sessions session.Store) AuthUsecase {
	return &authUsecase{
		api:      api,
		sessions: sessions,
	}
}

func (uc *authUsecase) Login(ctx context.Context, tab *Tab, req models.LoginRequest) error {
	resp, err := uc.api.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := uc.sessions.Write(ctx, tab.ID, resp.Token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	tab.cache.Reset()
	return nil
}

func (uc *authUsecase) Register(ctx context.Context, req models.RegisterRequest) error {
	return uc.api.Register(ctx, req)
}

func (uc *authUsecase) Logout(ctx context.Context, tab *Tab) error {
	if err := uc.sessions.Clear(ctx, tab.ID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	tab.cache.Reset()
	return nil
}

func (uc *authUsecase) Session(ctx context.Context, tab *Tab) (session.Session, error) {
	return tab.Session(ctx)
}
