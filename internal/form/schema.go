package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/nguyentranbao-ct/product-console/internal/models"
)

var defaultValidator = NewValidator()

// Default is shared by every front; it holds no per-request state.
func Default() *Validator {
	return defaultValidator
}

type LoginInput struct {
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=6,max=100"`
}

func (in LoginInput) Validate() FieldErrors {
	return defaultValidator.Fields(in)
}

func (in LoginInput) Request() models.LoginRequest {
	return models.LoginRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
}

type RegisterInput struct {
	Name     string `form:"name" validate:"required,min=2,max=100"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=6,max=100"`
	Gender   string `form:"gender" validate:"required,oneof=male female"`
}

func (in RegisterInput) Validate() FieldErrors {
	return defaultValidator.Fields(in)
}

func (in RegisterInput) Request() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     in.Name,
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Gender:   models.Gender(in.Gender),
	}
}

// ProductInput holds the raw text of the product form fields.
type ProductInput struct {
	Name     string `form:"name"`
	Price    string `form:"price"`
	Quantity string `form:"quantity"`
}

type productSchema struct {
	Name     string   `form:"name" validate:"required,min=1,max=100"`
	Price    *float64 `form:"price" validate:"required,gt=0"`
	Quantity *int     `form:"quantity" validate:"omitempty,gte=0"`
}

// ProductInputFrom fills the form from an existing product.
func ProductInputFrom(p models.Product) ProductInput {
	in := ProductInput{
		Name:  p.Name,
		Price: strconv.FormatFloat(p.Price, 'f', -1, 64),
	}
	if p.Quantity != nil {
		in.Quantity = strconv.Itoa(*p.Quantity)
	}
	return in
}

// Parse converts the raw form into a payload. Any field error means the
// payload must not be sent.
func (in ProductInput) Parse() (models.ProductPayload, FieldErrors) {
	errs := FieldErrors{}
	schema := productSchema{Name: in.Name}

	if raw := strings.TrimSpace(in.Price); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			errs.add("price", defaultValidator.render(msgPriceNumber))
		} else {
			schema.Price = &price
		}
	}

	if raw := strings.TrimSpace(in.Quantity); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			errs.add("quantity", defaultValidator.render(msgQuantityInteger))
		} else {
			schema.Quantity = &qty
		}
	}

	for field, msg := range defaultValidator.Fields(schema) {
		if field == "price" && errs.Has("price") {
			continue
		}
		errs.add(field, msg)
	}

	if len(errs) > 0 {
		return models.ProductPayload{}, errs
	}

	return models.ProductPayload{
		Name:     schema.Name,
		Price:    *schema.Price,
		Quantity: schema.Quantity,
	}, nil
}
