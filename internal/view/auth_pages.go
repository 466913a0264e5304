package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

var (
	loginFailed    = Alert{Title: "Login gagal", Message: "Login gagal, silakan coba lagi"}
	registerFailed = Alert{Title: "Register gagal", Message: "Register gagal, silakan coba lagi"}
)

type LoginPage struct {
	Input  form.LoginInput
	Errors form.FieldErrors
	Status Status
	Alert  *Alert

	auth usecase.AuthUsecase
	tab  *usecase.Tab
	log  *zap.SugaredLogger
}

func NewLoginPage(auth usecase.AuthUsecase, tab *usecase.Tab) *LoginPage {
	return &LoginPage{
		Status: StatusIdle,
		auth:   auth,
		tab:    tab,
		log:    logger.MustNamed("view.login"),
	}
}

// Submit returns the path to navigate to, or "" to stay on the page.
func (p *LoginPage) Submit(ctx context.Context, in form.LoginInput) string {
	p.Input = in
	p.Alert = nil
	if p.Errors = in.Validate(); p.Errors != nil {
		p.Status = StatusIdle
		return ""
	}

	p.Status = StatusSubmitting
	if err := p.auth.Login(ctx, p.tab, in.Request()); err != nil {
		p.log.Warnw("login failed", "tab", p.tab.ID, "error", err)
		p.Status = StatusError
		p.Alert = &loginFailed
		return ""
	}
	p.Status = StatusIdle
	p.Input.Password = ""
	return PathMain
}

type RegisterPage struct {
	Input  form.RegisterInput
	Errors form.FieldErrors
	Status Status
	Alert  *Alert

	auth usecase.AuthUsecase
	tab  *usecase.Tab
	log  *zap.SugaredLogger
}

func NewRegisterPage(auth usecase.AuthUsecase, tab *usecase.Tab) *RegisterPage {
	return &RegisterPage{
		Status: StatusIdle,
		auth:   auth,
		tab:    tab,
		log:    logger.MustNamed("view.register"),
	}
}

// Mount sends a tab that already holds a session to the main page.
func (p *RegisterPage) Mount(ctx context.Context) (string, error) {
	sess, err := p.auth.Session(ctx, p.tab)
	if err != nil {
		return "", err
	}
	if sess.Valid() {
		return PathMain, nil
	}
	return "", nil
}

// Submit registers the account and sends the user to the login page. The
// new account is not logged in.
func (p *RegisterPage) Submit(ctx context.Context, in form.RegisterInput) string {
	p.Input = in
	p.Alert = nil
	if p.Errors = in.Validate(); p.Errors != nil {
		p.Status = StatusIdle
		return ""
	}

	p.Status = StatusSubmitting
	if err := p.auth.Register(ctx, in.Request()); err != nil {
		p.log.Warnw("register failed", "tab", p.tab.ID, "error", err)
		p.Status = StatusError
		p.Alert = &registerFailed
		return ""
	}
	p.Status = StatusIdle
	p.Input.Password = ""
	return PathLogin
}
