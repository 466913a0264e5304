package productapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentranbao-ct/product-console/internal/config"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/session"
	"github.com/nguyentranbao-ct/product-console/pkg/util"
)

type Op string

const (
	OpLogin            Op = "login"
	OpRegister         Op = "register"
	OpProfile          Op = "profile"
	OpListProducts     Op = "list_products"
	OpListUserProducts Op = "list_user_products"
	OpCreateProduct    Op = "create_product"
	OpUpdateProduct    Op = "update_product"
	OpDeleteProduct    Op = "delete_product"
)

func (op Op) failure() string {
	switch op {
	case OpLogin:
		return "Login gagal"
	case OpRegister:
		return "Register gagal"
	case OpProfile:
		return "Failed to fetch user"
	case OpListProducts:
		return "Failed to fetch products"
	case OpListUserProducts:
		return "Failed to fetch user products"
	case OpCreateProduct:
		return "Failed to create product"
	case OpUpdateProduct:
		return "Failed to update product"
	case OpDeleteProduct:
		return "Failed to delete product"
	}
	return "Something went wrong"
}

type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Profile(ctx context.Context, sess session.Session) (*models.User, error)
	ListProducts(ctx context.Context, sess session.Session, page int) ([]models.Product, error)
	ListUserProducts(ctx context.Context, sess session.Session, page int) ([]models.Product, error)
	CreateProduct(ctx context.Context, sess session.Session, payload models.ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, sess session.Session, id int, payload models.ProductPayload) (*models.Product, error)
	DeleteProduct(ctx context.Context, sess session.Session, id int) error
}

type client struct {
	http    *resty.Client
	metrics *prometheus.HistogramVec
}

func NewClient(conf *config.Config) (Client, error) {
	metrics, err := util.GetHistogramVec("productapi_request_duration_seconds", "op", "code")
	if err != nil {
		return nil, fmt.Errorf("register productapi metrics: %w", err)
	}
	return &client{
		http:    util.NewRestyClient(conf.API.BaseURL, conf.API.Timeout),
		metrics: metrics,
	}, nil
}

func (c *client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	r := c.http.R().SetBody(req)
	if err := c.do(ctx, OpLogin, r, resty.MethodPost, "/auth/login", &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &Error{Op: OpLogin, Kind: KindDecode, Err: errors.New("response has no token")}
	}
	return &out, nil
}

func (c *client) Register(ctx context.Context, req models.RegisterRequest) error {
	r := c.http.R().SetBody(req)
	return c.do(ctx, OpRegister, r, resty.MethodPost, "/auth/register", nil)
}

func (c *client) Profile(ctx context.Context, sess session.Session) (*models.User, error) {
	r, err := c.authorized(OpProfile, sess)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := c.do(ctx, OpProfile, r, resty.MethodGet, "/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *client) ListProducts(ctx context.Context, sess session.Session, page int) ([]models.Product, error) {
	r, err := c.authorized(OpListProducts, sess)
	if err != nil {
		return nil, err
	}
	r.SetQueryParam("page", strconv.Itoa(page))

	var products []models.Product
	if err := c.do(ctx, OpListProducts, r, resty.MethodGet, "/product/all", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListUserProducts lists the products owned by the session. The endpoint is
// not paginated: page only keeps cache entries per page apart and is not
// sent to the server.
func (c *client) ListUserProducts(ctx context.Context, sess session.Session, page int) ([]models.Product, error) {
	r, err := c.authorized(OpListUserProducts, sess)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := c.do(ctx, OpListUserProducts, r, resty.MethodGet, "/product", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *client) CreateProduct(ctx context.Context, sess session.Session, payload models.ProductPayload) (*models.Product, error) {
	r, err := c.authorized(OpCreateProduct, sess)
	if err != nil {
		return nil, err
	}
	r.SetBody(payload)

	var product *models.Product
	if err := c.do(ctx, OpCreateProduct, r, resty.MethodPost, "/product", &product); err != nil {
		return nil, err
	}
	return product, nil
}

func (c *client) UpdateProduct(ctx context.Context, sess session.Session, id int, payload models.ProductPayload) (*models.Product, error) {
	r, err := c.authorized(OpUpdateProduct, sess)
	if err != nil {
		return nil, err
	}
	r.SetBody(payload).SetPathParam("id", strconv.Itoa(id))

	var product *models.Product
	if err := c.do(ctx, OpUpdateProduct, r, resty.MethodPatch, "/product/{id}", &product); err != nil {
		return nil, err
	}
	return product, nil
}

func (c *client) DeleteProduct(ctx context.Context, sess session.Session, id int) error {
	r, err := c.authorized(OpDeleteProduct, sess)
	if err != nil {
		return err
	}
	r.SetPathParam("id", strconv.Itoa(id))
	return c.do(ctx, OpDeleteProduct, r, resty.MethodDelete, "/product/{id}", nil)
}

// authorized fails before any network call when the session is absent.
func (c *client) authorized(op Op, sess session.Session) (*resty.Request, error) {
	token, err := sess.Bearer()
	if err != nil {
		return nil, noSession(op)
	}
	return c.http.R().SetAuthToken(token), nil
}

// do executes the request and decodes the data field of the envelope into
// out. A nil out discards the body.
func (c *client) do(ctx context.Context, op Op, r *resty.Request, method, path string, out any) error {
	start := time.Now()
	resp, err := r.SetContext(ctx).Execute(method, path)
	if err != nil {
		c.observe(op, "error", start)
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	c.observe(op, strconv.Itoa(resp.StatusCode()), start)

	if !resp.IsSuccess() {
		return statusError(op, resp.StatusCode(), resp.Body())
	}
	if out == nil {
		return nil
	}

	envelope := models.Envelope[json.RawMessage]{}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode(), Err: err}
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode(), Err: err}
	}
	return nil
}

func (c *client) observe(op Op, code string, start time.Time) {
	c.metrics.WithLabelValues(string(op), code).Observe(time.Since(start).Seconds())
}
