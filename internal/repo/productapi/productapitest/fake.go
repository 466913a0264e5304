// Package productapitest provides an in-memory productapi.Client for tests.
package productapitest

import (
	"context"
	"sync"

	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-console/internal/session"
)

const (
	Token    = "token-1"
	Email    = "budi@example.com"
	Password = "secret123"
	Owner    = "user-1"
)

// Fake answers like the remote API for a single registered user. Every call
// is recorded; Fail and Hold change how the next calls for an op behave.
type Fake struct {
	mu       sync.Mutex
	user     models.User
	products []models.Product
	nextID   int
	calls    []productapi.Op
	pages    []int
	failures map[productapi.Op]error
	holds    map[productapi.Op]chan struct{}
	started  map[productapi.Op]chan struct{}
}

func New() *Fake {
	return &Fake{
		user:     models.User{Name: "Budi", Email: Email, Gender: models.GenderMale},
		nextID:   1,
		failures: make(map[productapi.Op]error),
		holds:    make(map[productapi.Op]chan struct{}),
		started:  make(map[productapi.Op]chan struct{}),
	}
}

var _ productapi.Client = (*Fake)(nil)

// Seed stores products; owned ones belong to the logged in user.
func (f *Fake) Seed(owned bool, products ...models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range products {
		if p.ID == 0 {
			p.ID = f.nextID
		}
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
		if owned {
			p.UserID = Owner
		}
		f.products = append(f.products, p)
	}
}

// Fail makes every call of op return err until Fail(op, nil).
func (f *Fake) Fail(op productapi.Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// Hold blocks calls of op until release is called. started is closed once
// the first held call arrives.
func (f *Fake) Hold(op productapi.Op) (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	begin := make(chan struct{})
	f.holds[op] = gate
	f.started[op] = begin
	var once sync.Once
	return begin, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.holds, op)
			delete(f.started, op)
			f.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns the ops that reached the fake, in order.
func (f *Fake) Calls() []productapi.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]productapi.Op(nil), f.calls...)
}

func (f *Fake) Count(op productapi.Op) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// Pages returns the page argument of every list call.
func (f *Fake) Pages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

func (f *Fake) Product(id int) (models.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (f *Fake) enter(ctx context.Context, op productapi.Op, sess *session.Session) error {
	f.mu.Lock()
	if sess != nil {
		if _, err := sess.Bearer(); err != nil {
			f.mu.Unlock()
			return &productapi.Error{Op: op, Kind: productapi.KindNoSession, Err: err}
		}
	}
	f.calls = append(f.calls, op)
	gate := f.holds[op]
	begin := f.started[op]
	if begin != nil {
		delete(f.started, op)
	}
	err := f.failures[op]
	f.mu.Unlock()

	if begin != nil {
		close(begin)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return &productapi.Error{Op: op, Kind: productapi.KindNetwork, Err: ctx.Err()}
		}
	}
	return err
}

func (f *Fake) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := f.enter(ctx, productapi.OpLogin, nil); err != nil {
		return nil, err
	}
	if req.Email != Email || req.Password != Password {
		return nil, &productapi.Error{Op: productapi.OpLogin, Kind: productapi.KindAuth, Status: 401, Detail: "invalid credentials"}
	}
	return &models.LoginResponse{Token: Token}, nil
}

func (f *Fake) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := f.enter(ctx, productapi.OpRegister, nil); err != nil {
		return err
	}
	if req.Email == Email {
		return &productapi.Error{Op: productapi.OpRegister, Kind: productapi.KindValidation, Status: 422, Detail: "email already registered"}
	}
	return nil
}

func (f *Fake) Profile(ctx context.Context, sess session.Session) (*models.User, error) {
	if err := f.enter(ctx, productapi.OpProfile, &sess); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.user
	return &user, nil
}

func (f *Fake) ListProducts(ctx context.Context, sess session.Session, page int) ([]models.Product, error) {
	if err := f.enter(ctx, productapi.OpListProducts, &sess); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	return append([]models.Product(nil), f.products...), nil
}

func (f *Fake) ListUserProducts(ctx context.Context, sess session.Session, page int) ([]models.Product, error) {
	if err := f.enter(ctx, productapi.OpListUserProducts, &sess); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	var owned []models.Product
	for _, p := range f.products {
		if p.UserID == Owner {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func (f *Fake) CreateProduct(ctx context.Context, sess session.Session, payload models.ProductPayload) (*models.Product, error) {
	if err := f.enter(ctx, productapi.OpCreateProduct, &sess); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Product{
		ID:       f.nextID,
		Name:     payload.Name,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		UserID:   Owner,
	}
	f.nextID++
	f.products = append(f.products, p)
	return &p, nil
}

func (f *Fake) UpdateProduct(ctx context.Context, sess session.Session, id int, payload models.ProductPayload) (*models.Product, error) {
	if err := f.enter(ctx, productapi.OpUpdateProduct, &sess); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID != id {
			continue
		}
		p.Name, p.Price, p.Quantity = payload.Name, payload.Price, payload.Quantity
		f.products[i] = p
		return &p, nil
	}
	return nil, &productapi.Error{Op: productapi.OpUpdateProduct, Kind: productapi.KindNotFound, Status: 404}
}

func (f *Fake) DeleteProduct(ctx context.Context, sess session.Session, id int) error {
	if err := f.enter(ctx, productapi.OpDeleteProduct, &sess); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &productapi.Error{Op: productapi.OpDeleteProduct, Kind: productapi.KindNotFound, Status: 404}
}
