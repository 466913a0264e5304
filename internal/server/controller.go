package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	pkgmdw "github.com/nguyentranbao-ct/product-console/internal/server/middleware"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
	"github.com/nguyentranbao-ct/product-console/internal/view"
)

type Controller interface {
	Health(c echo.Context) error

	LoginPage(c echo.Context) error
	Login(c echo.Context) error
	RegisterPage(c echo.Context) error
	Register(c echo.Context) error
	Logout(c echo.Context) error

	MainPage(c echo.Context) error
	CreateProduct(c echo.Context) error
	UpdateProduct(c echo.Context) error
	DeleteProduct(c echo.Context) error
}

type controller struct {
	tabs     usecase.TabManager
	auth     usecase.AuthUsecase
	users    usecase.UserUsecase
	products usecase.ProductUsecase
}

func NewHandler(
	tabs usecase.TabManager,
	auth usecase.AuthUsecase,
	users usecase.UserUsecase,
	products usecase.ProductUsecase,
) Controller {
	return &controller{
		tabs:     tabs,
		auth:     auth,
		users:    users,
		products: products,
	}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "product-console",
	})
}

func (h *controller) tab(c echo.Context) (*usecase.Tab, error) {
	tab, err := h.tabs.Open(pkgmdw.GetTabID(c))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing tab")
	}
	return tab, nil
}

func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

// formStatus is 422 when the submitted form did not validate.
func formStatus(errs form.FieldErrors) int {
	if errs != nil {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func (h *controller) LoginPage(c echo.Context) error {
	tab, err := h.tab(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "login", view.NewLoginPage(h.auth, tab))
}

func (h *controller) Login(c echo.Context) error {
	tab, err := h.tab(c)
	if err != nil {
		return err
	}
	var in form.LoginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	page := view.NewLoginPage(h.auth, tab)
	if next := page.Submit(c.Request().Context(), in); next != "" {
		return redirect(c, next)
	}
	return c.Render(formStatus(page.Errors), "login", page)
}

func (h *controller) RegisterPage(c echo.Context) error {
	tab, err := h.tab(c)
	if err != nil {
		return err
	}
	page := view.NewRegisterPage(h.auth, tab)
	next, err := page.Mount(c.Request().Context())
	if err != nil {
		return err
	}
	if next != "" {
		return redirect(c, next)
	}
	return c.Render(http.StatusOK, "register", page)
}

func (h *controller) Register(c echo.Context) error {
	tab, err := h.tab(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	page := view.NewRegisterPage(h.auth, tab)
	next, err := page.Mount(ctx)
	if err != nil {
		return err
	}
	if next != "" {
		return redirect(c, next)
	}

	var in form.RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if next := page.Submit(ctx, in); next != "" {
		return redirect(c, next)
	}
	return c.Render(formStatus(page.Errors), "register", page)
}

func (h *controller) Logout(c echo.Context) error {
	tab, err := h.tab(c)
	if err != nil {
		return err
	}
	next, err := h.mainPage(tab).Logout(c.Request().Context())
	if err != nil {
		return err
	}
	return redirect(c, next)
}

func (h *controller) mainPage(tab *usecase.Tab) *view.MainPage {
	return view.NewMainPage(h.auth, h.users, h.products, tab)
}

// mountMain builds the main page for the tab, or returns the path to send
// the browser to instead.
func (h *controller) mountMain(c echo.Context, page int) (*view.MainPage, string, error) {
	tab, err := h.tab(c)
	if err != nil {
		return nil, "", err
	}
	p := h.mainPage(tab)
	next, err := p.Mount(c.Request().Context())
	if err != nil || next != "" {
		return nil, next, err
	}
	p.SetPage(page)
	return p, "", nil
}

func (h *controller) renderMain(c echo.Context, status int, p *view.MainPage) error {
	// section failures are shown inline
	_ = p.Load(c.Request().Context())
	return c.Render(status, "main", p)
}

func (h *controller) MainPage(c echo.Context) error {
	p, next, err := h.mountMain(c, cast.ToInt(c.QueryParam("page")))
	if err != nil {
		return err
	}
	if next != "" {
		return redirect(c, next)
	}

	_ = p.Load(c.Request().Context())
	if c.QueryParam("create") != "" {
		p.OpenCreate()
	}
	if id := cast.ToInt(c.QueryParam("edit")); id > 0 {
		p.OpenUpdateByID(id)
	}
	if id := cast.ToInt(c.QueryParam("delete")); id > 0 {
		p.OpenDeleteByID(id)
	}
	return c.Render(http.StatusOK, "main", p)
}

func productID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return id, nil
}

func pageHome(page int) string {
	return "/?page=" + strconv.Itoa(page)
}

func (h *controller) CreateProduct(c echo.Context) error {
	p, next, err := h.mountMain(c, cast.ToInt(c.FormValue("page")))
	if err != nil {
		return err
	}
	if next != "" {
		return redirect(c, next)
	}

	var in form.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	p.OpenCreate()
	if p.SubmitCreate(c.Request().Context(), in) {
		return redirect(c, pageHome(p.Page))
	}
	return h.renderMain(c, formStatus(p.Create.Errors), p)
}

func (h *controller) UpdateProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	p, next, err := h.mountMain(c, cast.ToInt(c.FormValue("page")))
	if err != nil {
		return err
	}
	if next != "" {
		return redirect(c, next)
	}

	var in form.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	p.OpenUpdate(models.Product{ID: id})
	if p.SubmitUpdate(c.Request().Context(), in) {
		return redirect(c, pageHome(p.Page))
	}
	return h.renderMain(c, formStatus(p.Update.Errors), p)
}

func (h *controller) DeleteProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	p, next, err := h.mountMain(c, cast.ToInt(c.FormValue("page")))
	if err != nil {
		return err
	}
	if next != "" {
		return redirect(c, next)
	}

	d := p.OpenDelete(models.Product{ID: id})
	if p.ConfirmDelete(c.Request().Context()) {
		return redirect(c, pageHome(p.Page))
	}

	_ = p.Load(c.Request().Context())
	if loaded, ok := p.OpenDeleteByID(id); ok {
		loaded.Alert = d.Alert
	}
	return c.Render(http.StatusOK, "main", p)
}
