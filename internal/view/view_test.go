package view

import (
	"context"
	"errors"
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

type env struct {
	api      *productapitest.Fake
	sessions session.Store
	tab      *usecase.Tab
	auth     usecase.AuthUsecase
	users    usecase.UserUsecase
	products usecase.ProductUsecase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	api := productapitest.New()
	sessions := session.NewMemoryStore(time.Hour)
	tab, err := usecase.NewTabManager(sessions, query.NewRegistry(time.Minute, time.Hour)).Open("tab-1")
	require.NoError(t, err)
	return &env{
		api:      api,
		sessions: sessions,
		tab:      tab,
		auth:     usecase.NewAuthUsecase(api, sessions),
		users:    usecase.NewUserUsecase(api),
		products: usecase.NewProductUsecase(api),
	}
}

func (e *env) login(t *testing.T) {
	t.Helper()
	require.NoError(t, e.sessions.Write(context.Background(), e.tab.ID, productapitest.Token))
}

func (e *env) mainPage() *MainPage {
	return NewMainPage(e.auth, e.users, e.products, e.tab)
}

func (e *env) token(t *testing.T) string {
	t.Helper()
	sess, err := e.sessions.Read(context.Background(), e.tab.ID)
	require.NoError(t, err)
	token, _ := sess.Bearer()
	return token
}

func qty(n int) *int { return &n }

func TestLoginSuccess(t *testing.T) {
	e := newEnv(t)
	page := NewLoginPage(e.auth, e.tab)

	next := page.Submit(context.Background(), form.LoginInput{Email: productapitest.Email, Password: productapitest.Password})

	assert.Equal(t, PathMain, next)
	assert.Equal(t, StatusIdle, page.Status)
	assert.Nil(t, page.Alert)
	assert.Equal(t, productapitest.Token, e.token(t))
}

func TestLoginFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*productapitest.Fake)
		in    form.LoginInput
	}{
		{
			name: "wrong password",
			in:   form.LoginInput{Email: productapitest.Email, Password: "wrong-password"},
		},
		{
			name: "server error",
			setup: func(f *productapitest.Fake) {
				f.Fail(productapi.OpLogin, &productapi.Error{Op: productapi.OpLogin, Kind: productapi.KindRequest, Status: 500})
			},
			in: form.LoginInput{Email: productapitest.Email, Password: productapitest.Password},
		},
		{
			name: "network error",
			setup: func(f *productapitest.Fake) {
				f.Fail(productapi.OpLogin, &productapi.Error{Op: productapi.OpLogin, Kind: productapi.KindNetwork, Err: errors.New("refused")})
			},
			in: form.LoginInput{Email: productapitest.Email, Password: productapitest.Password},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if tt.setup != nil {
				tt.setup(e.api)
			}
			page := NewLoginPage(e.auth, e.tab)

			next := page.Submit(context.Background(), tt.in)

			assert.Empty(t, next)
			assert.Equal(t, StatusError, page.Status)
			require.NotNil(t, page.Alert)
			assert.Equal(t, "Login gagal", page.Alert.Title)
			assert.Equal(t, "Login gagal, silakan coba lagi", page.Alert.Message)
			assert.Empty(t, e.token(t))
		})
	}
}

func TestLoginInvalidInputMakesNoCall(t *testing.T) {
	e := newEnv(t)
	page := NewLoginPage(e.auth, e.tab)

	next := page.Submit(context.Background(), form.LoginInput{Email: "budi.example.com", Password: productapitest.Password})

	assert.Empty(t, next)
	assert.Equal(t, "Email tidak valid", page.Errors.Get("email"))
	assert.Equal(t, StatusIdle, page.Status)
	assert.Empty(t, e.api.Calls())
}

func TestRegisterPage(t *testing.T) {
	ctx := context.Background()

	t.Run("redirects with session", func(t *testing.T) {
		e := newEnv(t)
		e.login(t)
		next, err := NewRegisterPage(e.auth, e.tab).Mount(ctx)
		require.NoError(t, err)
		assert.Equal(t, PathMain, next)
	})

	t.Run("stays without session", func(t *testing.T) {
		e := newEnv(t)
		next, err := NewRegisterPage(e.auth, e.tab).Mount(ctx)
		require.NoError(t, err)
		assert.Empty(t, next)
	})

	t.Run("success goes to login without session", func(t *testing.T) {
		e := newEnv(t)
		page := NewRegisterPage(e.auth, e.tab)
		next := page.Submit(ctx, form.RegisterInput{Name: "Sari", Email: "sari@example.com", Password: "secret123", Gender: "female"})
		assert.Equal(t, PathLogin, next)
		assert.Empty(t, e.token(t))
	})

	t.Run("failure shows alert", func(t *testing.T) {
		e := newEnv(t)
		page := NewRegisterPage(e.auth, e.tab)
		next := page.Submit(ctx, form.RegisterInput{Name: "Budi", Email: productapitest.Email, Password: "secret123", Gender: "male"})
		assert.Empty(t, next)
		assert.Equal(t, StatusError, page.Status)
		require.NotNil(t, page.Alert)
		assert.Equal(t, "Register gagal", page.Alert.Title)
	})

	t.Run("invalid gender makes no call", func(t *testing.T) {
		e := newEnv(t)
		page := NewRegisterPage(e.auth, e.tab)
		next := page.Submit(ctx, form.RegisterInput{Name: "Sari", Email: "sari@example.com", Password: "secret123", Gender: "other"})
		assert.Empty(t, next)
		assert.True(t, page.Errors.Has("gender"))
		assert.Empty(t, e.api.Calls())
	})
}

func TestMainPageRedirectsBeforeLoading(t *testing.T) {
	e := newEnv(t)
	page := e.mainPage()

	next, err := page.Mount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, PathLogin, next)
	assert.Empty(t, e.api.Calls())
}

func TestMainPageLoad(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	e.api.Seed(false, models.Product{ID: 1, Name: "Roti", Price: 8000})
	e.api.Seed(true, models.Product{ID: 2, Name: "Teh", Price: 5000})
	page := e.mainPage()
	page.SetPage(3)

	next, err := page.Mount(context.Background())
	require.NoError(t, err)
	require.Empty(t, next)
	require.NoError(t, page.Load(context.Background()))

	assert.Equal(t, "Budi", page.User.Name)
	assert.Len(t, page.Products, 2)
	assert.Len(t, page.UserProducts, 1)
	assert.ElementsMatch(t, []int{3, 3}, e.api.Pages())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page.Pages())
}

func TestMainPageLoadSectionFailure(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	e.api.Fail(productapi.OpProfile, &productapi.Error{Op: productapi.OpProfile, Kind: productapi.KindAuth, Status: 401})
	page := e.mainPage()

	err := page.Load(context.Background())

	assert.Equal(t, productapi.KindAuth, productapi.KindOf(err))
	assert.Equal(t, "Failed to fetch user", page.ProfileState.Err)
	assert.True(t, page.ProductsState.Loaded)
	assert.Empty(t, page.ProductsState.Err)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t)
	page := e.mainPage()
	require.NoError(t, page.Load(ctx))
	require.Empty(t, page.Products)

	page.OpenCreate()
	ok := page.SubmitCreate(ctx, form.ProductInput{Name: "Kopi", Price: "15000", Quantity: "2"})
	require.True(t, ok)
	assert.Nil(t, page.Create)

	require.NoError(t, page.Load(ctx))
	require.Len(t, page.Products, 1)
	require.Len(t, page.UserProducts, 1)
	assert.Equal(t, "Kopi", page.UserProducts[0].Name)
	assert.Equal(t, 2, *page.UserProducts[0].Quantity)

	next := page.OpenCreate()
	assert.Empty(t, next.Input.Name)
}

func TestCreateProductInvalidInputMakesNoCall(t *testing.T) {
	tests := []struct {
		name  string
		in    form.ProductInput
		field string
		msg   string
	}{
		{"negative price", form.ProductInput{Name: "Kopi", Price: "-5"}, "price", "Price must be positive"},
		{"negative quantity", form.ProductInput{Name: "Kopi", Price: "10", Quantity: "-1"}, "quantity", "Quantity cannot be negative"},
		{"missing name", form.ProductInput{Price: "10"}, "name", "Name is required"},
		{"price not a number", form.ProductInput{Name: "Kopi", Price: "abc"}, "price", "Price must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.login(t)
			page := e.mainPage()

			page.OpenCreate()
			ok := page.SubmitCreate(context.Background(), tt.in)

			assert.False(t, ok)
			require.NotNil(t, page.Create)
			assert.Equal(t, tt.msg, page.Create.Errors.Get(tt.field))
			assert.Equal(t, tt.in, page.Create.Input)
			assert.Empty(t, e.api.Calls())
		})
	}
}

func TestCreateProductFailureShowsAlert(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	e.api.Fail(productapi.OpCreateProduct, &productapi.Error{Op: productapi.OpCreateProduct, Kind: productapi.KindValidation, Status: 422})
	page := e.mainPage()

	page.OpenCreate()
	ok := page.SubmitCreate(context.Background(), form.ProductInput{Name: "Kopi", Price: "15000"})

	assert.False(t, ok)
	require.NotNil(t, page.Create)
	assert.Equal(t, StatusError, page.Create.Status)
	assert.Equal(t, &Alert{Title: "Failed Create Product", Message: "Failed to create product"}, page.Create.Alert)
}

func TestUpdateDialogShowsSelectedProduct(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t)
	e.api.Seed(true,
		models.Product{ID: 1, Name: "Teh", Price: 5000, Quantity: qty(4)},
		models.Product{ID: 2, Name: "Kopi", Price: 15000},
	)
	page := e.mainPage()
	require.NoError(t, page.Load(ctx))

	a, ok := page.OpenUpdateByID(1)
	require.True(t, ok)
	assert.Equal(t, form.ProductInput{Name: "Teh", Price: "5000", Quantity: "4"}, a.Input)
	a.Input.Name = "edited but not saved"

	b, ok := page.OpenUpdateByID(2)
	require.True(t, ok)
	assert.Equal(t, 2, b.ProductID)
	assert.Equal(t, form.ProductInput{Name: "Kopi", Price: "15000"}, b.Input)
	assert.Same(t, b, page.Update)

	page.OpenCreate()
	assert.Equal(t, form.ProductInput{}, page.Create.Input)

	_, ok = page.OpenUpdateByID(99)
	assert.False(t, ok)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t)
	e.api.Seed(true, models.Product{ID: 1, Name: "Teh", Price: 5000})
	page := e.mainPage()
	require.NoError(t, page.Load(ctx))

	_, ok := page.OpenUpdateByID(1)
	require.True(t, ok)
	require.True(t, page.SubmitUpdate(ctx, form.ProductInput{Name: "Teh Manis", Price: "6000"}))
	assert.Nil(t, page.Update)

	require.NoError(t, page.Load(ctx))
	assert.Equal(t, "Teh Manis", page.Products[0].Name)
	assert.Equal(t, "Teh Manis", page.UserProducts[0].Name)

	assert.False(t, page.SubmitUpdate(ctx, form.ProductInput{Name: "x", Price: "1"}))
}

func TestUpdateProductFailureTitle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t)
	page := e.mainPage()

	page.OpenUpdate(models.Product{ID: 42, Name: "Gone", Price: 1})
	ok := page.SubmitUpdate(ctx, form.ProductInput{Name: "Gone", Price: "1"})

	assert.False(t, ok)
	require.NotNil(t, page.Update.Alert)
	assert.Equal(t, "Failed Update Product", page.Update.Alert.Title)
	assert.Equal(t, "Failed to update product", page.Update.Alert.Message)
}

func TestDeleteDisablesConfirmWhilePending(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t)
	e.api.Seed(true, models.Product{ID: 1, Name: "Teh", Price: 5000})
	page := e.mainPage()
	require.NoError(t, page.Load(ctx))

	dialog, ok := page.OpenDeleteByID(1)
	require.True(t, ok)
	assert.False(t, dialog.Disabled())
	assert.Equal(t, "I'm sure", dialog.ConfirmLabel())

	started, release := e.api.Hold(productapi.OpDeleteProduct)
	done := make(chan bool, 1)
	go func() { done <- page.ConfirmDelete(ctx) }()
	<-started

	assert.True(t, dialog.Disabled())
	assert.Equal(t, "Deleting...", dialog.ConfirmLabel())

	second := NewMainPage(e.auth, e.users, e.products, e.tab)
	second.OpenDelete(models.Product{ID: 1})
	assert.False(t, second.ConfirmDelete(ctx))
	assert.Equal(t, 1, e.api.Count(productapi.OpDeleteProduct))

	release()
	require.True(t, <-done)
	assert.False(t, dialog.Disabled())
	assert.Equal(t, "I'm sure", dialog.ConfirmLabel())
	assert.Nil(t, page.Delete)

	require.NoError(t, page.Load(ctx))
	assert.Empty(t, page.Products)
	assert.Empty(t, page.UserProducts)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t)
	page := e.mainPage()

	next, err := page.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, PathLogin, next)
	assert.Empty(t, e.token(t))

	next, err = e.mainPage().Mount(ctx)
	require.NoError(t, err)
	assert.Equal(t, PathLogin, next)
}
