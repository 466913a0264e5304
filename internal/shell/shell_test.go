package shell

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/query"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi/productapitest"
	"github.com/nguyentranbao-ct/product-console/internal/session"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
)

// scripted answers prompts from queues; an empty menu queue quits.
type scripted struct {
	menus    []string
	logins   []form.LoginInput
	products []form.ProductInput
	confirms []bool
	titles   []string
}

func (p *scripted) Menu(title string, options []Option) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.menus) == 0 {
		return keyQuit, nil
	}
	next := p.menus[0]
	p.menus = p.menus[1:]
	return next, nil
}

func (p *scripted) Login(in *form.LoginInput) error {
	if len(p.logins) == 0 {
		return ErrAborted
	}
	*in = p.logins[0]
	p.logins = p.logins[1:]
	return nil
}

func (p *scripted) Register(in *form.RegisterInput) error {
	return ErrAborted
}

func (p *scripted) Product(title string, in *form.ProductInput) error {
	p.titles = append(p.titles, title+": "+in.Name)
	if len(p.products) == 0 {
		return ErrAborted
	}
	*in = p.products[0]
	p.products = p.products[1:]
	return nil
}

func (p *scripted) Confirm(title, affirmative string) (bool, error) {
	p.titles = append(p.titles, affirmative)
	if len(p.confirms) == 0 {
		return false, nil
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}

func (p *scripted) Spin(title string, action func()) error {
	action()
	return nil
}

type harness struct {
	api      *productapitest.Fake
	sessions session.Store
	registry *query.Registry
	out      *bytes.Buffer
	shell    *Shell
}

func newHarness(t *testing.T, prompt Prompter) *harness {
	t.Helper()
	api := productapitest.New()
	sessions := session.NewMemoryStore(time.Hour)
	registry := query.NewRegistry(time.Minute, time.Hour)
	out := &bytes.Buffer{}
	sh, err := New(
		usecase.NewTabManager(sessions, registry),
		usecase.NewAuthUsecase(api, sessions),
		usecase.NewUserUsecase(api),
		usecase.NewProductUsecase(api),
		prompt,
		out,
	)
	require.NoError(t, err)
	return &harness{api: api, sessions: sessions, registry: registry, out: out, shell: sh}
}

var goodLogin = form.LoginInput{Email: productapitest.Email, Password: productapitest.Password}

func TestShellQuitFromLogin(t *testing.T) {
	prompt := &scripted{}
	h := newHarness(t, prompt)

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, []string{"Product Console"}, prompt.titles)
	assert.Empty(t, h.api.Calls())
}

func TestShellLoginFailureThenSuccess(t *testing.T) {
	prompt := &scripted{
		menus:  []string{keyLogin, keyLogin},
		logins: []form.LoginInput{{Email: productapitest.Email, Password: "wrong-password"}, goodLogin},
	}
	h := newHarness(t, prompt)
	h.api.Seed(true, models.Product{ID: 1, Name: "Teh Tarik", Price: 5000})

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Login gagal, silakan coba lagi")
	assert.Contains(t, out, "Budi")
	assert.Contains(t, out, "Teh Tarik")
	assert.Equal(t, "What next?", prompt.titles[len(prompt.titles)-1])
	assert.Equal(t, 0, h.registry.Len())
}

func TestShellCreateEditDelete(t *testing.T) {
	prompt := &scripted{
		menus: []string{
			keyLogin,
			keyCreate,
			keyEdit, "2",
			keyDelete, "1",
		},
		logins: []form.LoginInput{goodLogin},
		products: []form.ProductInput{
			{Name: "Kopi", Price: "-5"},
			{Name: "Kopi", Price: "15000", Quantity: "3"},
			{Name: "Kopi Susu", Price: "18000", Quantity: "3"},
		},
		confirms: []bool{true},
	}
	h := newHarness(t, prompt)
	h.api.Seed(true, models.Product{ID: 1, Name: "Teh Tarik", Price: 5000})

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Price must be positive")
	assert.Contains(t, prompt.titles, "Update Product: Kopi")
	assert.Contains(t, prompt.titles, "I'm sure")

	_, ok := h.api.Product(1)
	assert.False(t, ok)
	updated, ok := h.api.Product(2)
	require.True(t, ok)
	assert.Equal(t, "Kopi Susu", updated.Name)
	assert.Equal(t, 1, h.api.Count(productapi.OpCreateProduct))
}

func TestShellChangePage(t *testing.T) {
	prompt := &scripted{
		menus:  []string{keyLogin, keyPage, "4"},
		logins: []form.LoginInput{goodLogin},
	}
	h := newHarness(t, prompt)

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Contains(t, h.api.Pages(), 4)
	assert.Equal(t, 4, h.shell.page)
}

func TestShellLogout(t *testing.T) {
	prompt := &scripted{
		menus:  []string{keyLogin, keyLogout},
		logins: []form.LoginInput{goodLogin},
	}
	h := newHarness(t, prompt)

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, []string{"Product Console", "What next?", "Product Console"}, prompt.titles)
}
