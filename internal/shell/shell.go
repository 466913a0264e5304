// Package shell drives the page views from an interactive terminal.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
	"github.com/nguyentranbao-ct/product-console/internal/view"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

var errQuit = errors.New("quit")

const (
	keyLogin    = "login"
	keyRegister = "register"
	keyQuit     = "quit"
	keyCreate   = "create"
	keyEdit     = "edit"
	keyDelete   = "delete"
	keyPage     = "page"
	keyRefresh  = "refresh"
	keyLogout   = "logout"
	keyBack     = "back"
)

// Shell is one terminal session. The whole process is a single tab.
type Shell struct {
	tabs     usecase.TabManager
	auth     usecase.AuthUsecase
	users    usecase.UserUsecase
	products usecase.ProductUsecase
	prompt   Prompter
	out      io.Writer
	styles   styles
	log      *zap.SugaredLogger

	tab  *usecase.Tab
	page int
}

func New(
	tabs usecase.TabManager,
	auth usecase.AuthUsecase,
	users usecase.UserUsecase,
	products usecase.ProductUsecase,
	prompt Prompter,
	out io.Writer,
) (*Shell, error) {
	tab, err := tabs.Open(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &Shell{
		tabs:     tabs,
		auth:     auth,
		users:    users,
		products: products,
		prompt:   prompt,
		out:      out,
		styles:   defaultStyles(),
		log:      logger.MustNamed("shell"),
		tab:      tab,
		page:     1,
	}, nil
}

// Run shows screens until the user quits. The session is cleared on exit.
func (s *Shell) Run(ctx context.Context) error {
	defer func() {
		if err := s.auth.Logout(context.Background(), s.tab); err != nil {
			s.log.Warnw("clear session on exit", "error", err)
		}
		s.tabs.Close(s.tab.ID)
	}()

	path := view.PathMain
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			next string
			err  error
		)
		switch path {
		case view.PathLogin:
			next, err = s.loginScreen(ctx)
		case view.PathRegister:
			next, err = s.registerScreen(ctx)
		default:
			next, err = s.mainScreen(ctx)
		}
		if errors.Is(err, errQuit) || errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if next != "" {
			path = next
		}
	}
}

func (s *Shell) println(parts ...string) {
	for _, p := range parts {
		if p != "" {
			fmt.Fprintln(s.out, p)
		}
	}
}

func (s *Shell) loginScreen(ctx context.Context) (string, error) {
	choice, err := s.prompt.Menu("Product Console", []Option{
		{Key: keyLogin, Label: "Login"},
		{Key: keyRegister, Label: "Register"},
		{Key: keyQuit, Label: "Quit"},
	})
	if err != nil {
		return "", err
	}
	switch choice {
	case keyRegister:
		return view.PathRegister, nil
	case keyQuit:
		return "", errQuit
	}

	page := view.NewLoginPage(s.auth, s.tab)
	var in form.LoginInput
	if err := s.prompt.Login(&in); err != nil {
		if errors.Is(err, ErrAborted) {
			return "", nil
		}
		return "", err
	}

	var next string
	if err := s.prompt.Spin("Signing in...", func() { next = page.Submit(ctx, in) }); err != nil {
		return "", err
	}
	s.println(s.styles.fieldErrors(page.Errors), s.styles.alert(page.Alert))
	return next, nil
}

func (s *Shell) registerScreen(ctx context.Context) (string, error) {
	page := view.NewRegisterPage(s.auth, s.tab)
	next, err := page.Mount(ctx)
	if err != nil || next != "" {
		return next, err
	}

	var in form.RegisterInput
	if err := s.prompt.Register(&in); err != nil {
		if errors.Is(err, ErrAborted) {
			return view.PathLogin, nil
		}
		return "", err
	}

	if err := s.prompt.Spin("Creating account...", func() { next = page.Submit(ctx, in) }); err != nil {
		return "", err
	}
	s.println(s.styles.fieldErrors(page.Errors), s.styles.alert(page.Alert))
	if next == view.PathLogin {
		s.println(s.styles.Muted.Render("Account created, please login."))
	}
	return next, nil
}

func (s *Shell) mainScreen(ctx context.Context) (string, error) {
	p := view.NewMainPage(s.auth, s.users, s.products, s.tab)
	next, err := p.Mount(ctx)
	if err != nil || next != "" {
		return next, err
	}
	p.SetPage(s.page)

	for {
		if err := s.prompt.Spin("Loading products...", func() { _ = p.Load(ctx) }); err != nil {
			return "", err
		}
		s.println(s.styles.main(p))

		choice, err := s.prompt.Menu("What next?", []Option{
			{Key: keyCreate, Label: "Create product"},
			{Key: keyEdit, Label: "Edit one of my products"},
			{Key: keyDelete, Label: "Delete one of my products"},
			{Key: keyPage, Label: "Change page"},
			{Key: keyRefresh, Label: "Refresh"},
			{Key: keyLogout, Label: "Logout"},
			{Key: keyQuit, Label: "Quit"},
		})
		if err != nil {
			return "", err
		}

		switch choice {
		case keyCreate:
			err = s.productDialog(p.OpenCreate(), func(in form.ProductInput) bool {
				return p.SubmitCreate(ctx, in)
			})
			p.CloseCreate()
		case keyEdit:
			var product models.Product
			var ok bool
			if product, ok, err = s.pickProduct(p, "Edit which product?"); ok {
				err = s.productDialog(p.OpenUpdate(product), func(in form.ProductInput) bool {
					return p.SubmitUpdate(ctx, in)
				})
			}
			p.CloseUpdate()
		case keyDelete:
			var product models.Product
			var ok bool
			if product, ok, err = s.pickProduct(p, "Delete which product?"); ok {
				err = s.deleteDialog(ctx, p, p.OpenDelete(product))
			}
			p.CloseDelete()
		case keyPage:
			err = s.pickPage(p)
		case keyRefresh:
			s.tab.Cache().Invalidate(usecase.TagProducts)
			s.tab.Cache().Invalidate(usecase.TagUserProducts)
		case keyLogout:
			return p.Logout(ctx)
		default:
			return "", errQuit
		}
		if errors.Is(err, ErrAborted) {
			err = nil
		}
		if err != nil {
			return "", err
		}
	}
}

// productDialog asks until submit succeeds or the user aborts.
func (s *Shell) productDialog(d *view.ProductDialog, submit func(form.ProductInput) bool) error {
	for {
		in := d.Input
		if err := s.prompt.Product(d.Title(), &in); err != nil {
			return err
		}
		var ok bool
		if err := s.prompt.Spin(d.SubmitLabel(), func() { ok = submit(in) }); err != nil {
			return err
		}
		if ok {
			return nil
		}
		s.println(s.styles.fieldErrors(d.Errors), s.styles.alert(d.Alert))
		if d.Alert != nil {
			return nil
		}
	}
}

func (s *Shell) deleteDialog(ctx context.Context, p *view.MainPage, d *view.DeleteDialog) error {
	if d.Disabled() {
		s.println(s.styles.Muted.Render(d.ConfirmLabel()))
		return nil
	}
	title := fmt.Sprintf("Delete %s? This cannot be undone.", d.Product.Name)
	confirmed, err := s.prompt.Confirm(title, d.ConfirmLabel())
	if err != nil || !confirmed {
		return err
	}
	if err := s.prompt.Spin("Deleting...", func() { p.ConfirmDelete(ctx) }); err != nil {
		return err
	}
	s.println(s.styles.alert(d.Alert))
	return nil
}

func (s *Shell) pickProduct(p *view.MainPage, title string) (models.Product, bool, error) {
	if len(p.UserProducts) == 0 {
		s.println(s.styles.Muted.Render("You have no products yet."))
		return models.Product{}, false, nil
	}
	options := make([]Option, 0, len(p.UserProducts)+1)
	for _, product := range p.UserProducts {
		options = append(options, Option{
			Key:   strconv.Itoa(product.ID),
			Label: fmt.Sprintf("#%d %s", product.ID, product.Name),
		})
	}
	options = append(options, Option{Key: keyBack, Label: "Back"})

	choice, err := s.prompt.Menu(title, options)
	if err != nil || choice == keyBack {
		return models.Product{}, false, err
	}
	id, _ := strconv.Atoi(choice)
	for _, product := range p.UserProducts {
		if product.ID == id {
			return product, true, nil
		}
	}
	return models.Product{}, false, nil
}

func (s *Shell) pickPage(p *view.MainPage) error {
	options := make([]Option, 0, view.PageCount)
	for _, n := range p.Pages() {
		options = append(options, Option{Key: strconv.Itoa(n), Label: "Page " + strconv.Itoa(n)})
	}
	choice, err := s.prompt.Menu("Go to page", options)
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(choice)
	p.SetPage(n)
	s.page = p.Page
	return nil
}
