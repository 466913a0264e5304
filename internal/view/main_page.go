package view

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

// PageCount is the number of page buttons offered under the tables.
const PageCount = 5

// Section is one independently loaded part of the main page.
type Section struct {
	Loaded bool
	Err    string
}

// MainPage holds the profile header, both product tables, the page number
// they share and the three dialogs.
type MainPage struct {
	Page         int
	User         *models.User
	Products     []models.Product
	UserProducts []models.Product

	ProfileState      Section
	ProductsState     Section
	UserProductsState Section

	Create *ProductDialog
	Update *ProductDialog
	Delete *DeleteDialog

	auth     usecase.AuthUsecase
	users    usecase.UserUsecase
	products usecase.ProductUsecase
	tab      *usecase.Tab
	log      *zap.SugaredLogger
}

func NewMainPage(auth usecase.AuthUsecase, users usecase.UserUsecase, products usecase.ProductUsecase, tab *usecase.Tab) *MainPage {
	return &MainPage{
		Page:     1,
		auth:     auth,
		users:    users,
		products: products,
		tab:      tab,
		log:      logger.MustNamed("view.main"),
	}
}

// Mount sends a tab without a session to the login page. It must run before
// Load so no product data is requested for such a tab.
func (p *MainPage) Mount(ctx context.Context) (string, error) {
	sess, err := p.auth.Session(ctx, p.tab)
	if err != nil {
		return "", err
	}
	if !sess.Valid() {
		return PathLogin, nil
	}
	return "", nil
}

func (p *MainPage) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.Page = page
}

func (p *MainPage) Pages() []int {
	pages := make([]int, PageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Load fetches the profile and both tables for the current page. Each
// section fails on its own; the first failure is returned.
func (p *MainPage) Load(ctx context.Context) error {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	record := func(s *Section, err error) {
		mu.Lock()
		defer mu.Unlock()
		s.Loaded = true
		s.Err = ""
		if err != nil {
			s.Err = summary(err)
			p.log.Warnw("load section failed", "tab", p.tab.ID, "page", p.Page, "error", err)
		}
	}

	g.Go(func() error {
		user, err := p.users.Profile(ctx, p.tab)
		p.User = user
		record(&p.ProfileState, err)
		return err
	})
	g.Go(func() error {
		list, err := p.products.Products(ctx, p.tab, p.Page)
		p.Products = list
		record(&p.ProductsState, err)
		return err
	})
	g.Go(func() error {
		list, err := p.products.UserProducts(ctx, p.tab, p.Page)
		p.UserProducts = list
		record(&p.UserProductsState, err)
		return err
	})
	return g.Wait()
}

func (p *MainPage) find(id int) (models.Product, bool) {
	for _, list := range [][]models.Product{p.UserProducts, p.Products} {
		for _, product := range list {
			if product.ID == id {
				return product, true
			}
		}
	}
	return models.Product{}, false
}

func (p *MainPage) OpenCreate() *ProductDialog {
	p.Create = NewCreateDialog()
	return p.Create
}

// OpenUpdate replaces any open update dialog with one filled from product.
func (p *MainPage) OpenUpdate(product models.Product) *ProductDialog {
	p.Update = NewUpdateDialog(product)
	return p.Update
}

// OpenUpdateByID opens the update dialog for a loaded product.
func (p *MainPage) OpenUpdateByID(id int) (*ProductDialog, bool) {
	product, ok := p.find(id)
	if !ok {
		return nil, false
	}
	return p.OpenUpdate(product), true
}

func (p *MainPage) OpenDelete(product models.Product) *DeleteDialog {
	p.Delete = &DeleteDialog{
		Product:  product,
		products: p.products,
		tab:      p.tab,
	}
	return p.Delete
}

func (p *MainPage) OpenDeleteByID(id int) (*DeleteDialog, bool) {
	product, ok := p.find(id)
	if !ok {
		return nil, false
	}
	return p.OpenDelete(product), true
}

func (p *MainPage) CloseCreate() { p.Create = nil }
func (p *MainPage) CloseUpdate() { p.Update = nil }
func (p *MainPage) CloseDelete() { p.Delete = nil }

// SubmitCreate creates a product from the open create dialog, opening one
// when none is. On success the dialog closes.
func (p *MainPage) SubmitCreate(ctx context.Context, in form.ProductInput) bool {
	if p.Create == nil {
		p.OpenCreate()
	}
	ok := p.Create.submit(ctx, in, func(ctx context.Context, payload models.ProductPayload) error {
		_, err := p.products.Create(ctx, p.tab, payload)
		return err
	})
	if !ok {
		p.logDialog(p.Create)
		return false
	}
	p.CloseCreate()
	return true
}

// SubmitUpdate saves the open update dialog. It is a no-op without one.
func (p *MainPage) SubmitUpdate(ctx context.Context, in form.ProductInput) bool {
	if p.Update == nil {
		return false
	}
	id := p.Update.ProductID
	ok := p.Update.submit(ctx, in, func(ctx context.Context, payload models.ProductPayload) error {
		_, err := p.products.Update(ctx, p.tab, id, payload)
		return err
	})
	if !ok {
		p.logDialog(p.Update)
		return false
	}
	p.CloseUpdate()
	return true
}

// ConfirmDelete deletes the product of the open delete dialog. It does
// nothing while the confirm control is disabled.
func (p *MainPage) ConfirmDelete(ctx context.Context) bool {
	d := p.Delete
	if d == nil || d.Disabled() {
		return false
	}
	d.Alert = nil
	if err := p.products.Delete(ctx, p.tab, d.Product.ID); err != nil {
		p.log.Warnw("delete product failed", "tab", p.tab.ID, "product_id", d.Product.ID, "error", err)
		d.Alert = &Alert{Title: "Failed Delete Product", Message: summary(err)}
		return false
	}
	p.CloseDelete()
	return true
}

func (p *MainPage) Logout(ctx context.Context) (string, error) {
	if err := p.auth.Logout(ctx, p.tab); err != nil {
		return "", err
	}
	return PathLogin, nil
}

func (p *MainPage) logDialog(d *ProductDialog) {
	if d.Alert != nil {
		p.log.Warnw("product dialog failed", "tab", p.tab.ID, "mode", d.Mode, "product_id", d.ProductID, "alert", d.Alert.Message)
	}
}
