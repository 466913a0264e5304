package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/product-console/internal/models"
)

func TestLoginInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input LoginInput
		want  FieldErrors
	}{
		{
			name:  "valid",
			input: LoginInput{Email: "budi@example.com", Password: "secret1"},
			want:  nil,
		},
		{
			name:  "email without at sign",
			input: LoginInput{Email: "budi.example.com", Password: "secret1"},
			want:  FieldErrors{"email": "Email tidak valid"},
		},
		{
			name:  "password too short",
			input: LoginInput{Email: "budi@example.com", Password: "12345"},
			want:  FieldErrors{"password": "Minimal 6 karakter"},
		},
		{
			name:  "password too long",
			input: LoginInput{Email: "budi@example.com", Password: strings.Repeat("x", 101)},
			want:  FieldErrors{"password": "Maksimal 100 karakter"},
		},
		{
			name:  "empty",
			input: LoginInput{},
			want:  FieldErrors{"email": "Wajib diisi", "password": "Wajib diisi"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Validate())
		})
	}
}

func TestLoginInputEmailTooLong(t *testing.T) {
	in := LoginInput{Email: strings.Repeat("a", 250) + "@example.com", Password: "secret1"}
	assert.True(t, in.Validate().Has("email"))
}

func TestRegisterInputValidate(t *testing.T) {
	valid := RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret1",
		Gender:   "male",
	}
	assert.Empty(t, valid.Validate())

	short := valid
	short.Name = "B"
	assert.Equal(t, FieldErrors{"name": "Minimal 2 karakter"}, short.Validate())

	badGender := valid
	badGender.Gender = "other"
	errs := badGender.Validate()
	require.True(t, errs.Has("gender"))
	assert.Equal(t, "Pilih salah satu: male female", errs.Get("gender"))

	noGender := valid
	noGender.Gender = ""
	assert.Equal(t, FieldErrors{"gender": "Pilih jenis kelamin"}, noGender.Validate())

	req := valid.Request()
	assert.Equal(t, models.GenderMale, req.Gender)
}

func TestProductInputParse(t *testing.T) {
	qty := 3
	zero := 0

	tests := []struct {
		name    string
		input   ProductInput
		want    models.ProductPayload
		wantErr FieldErrors
	}{
		{
			name:  "valid with quantity",
			input: ProductInput{Name: "Kopi", Price: "12.5", Quantity: "3"},
			want:  models.ProductPayload{Name: "Kopi", Price: 12.5, Quantity: &qty},
		},
		{
			name:  "quantity optional",
			input: ProductInput{Name: "Kopi", Price: "10"},
			want:  models.ProductPayload{Name: "Kopi", Price: 10},
		},
		{
			name:  "zero quantity allowed",
			input: ProductInput{Name: "Kopi", Price: "10", Quantity: "0"},
			want:  models.ProductPayload{Name: "Kopi", Price: 10, Quantity: &zero},
		},
		{
			name:    "negative price",
			input:   ProductInput{Name: "Kopi", Price: "-5"},
			wantErr: FieldErrors{"price": "Price must be positive"},
		},
		{
			name:    "zero price",
			input:   ProductInput{Name: "Kopi", Price: "0"},
			wantErr: FieldErrors{"price": "Price must be positive"},
		},
		{
			name:    "negative quantity",
			input:   ProductInput{Name: "Kopi", Price: "10", Quantity: "-1"},
			wantErr: FieldErrors{"quantity": "Quantity cannot be negative"},
		},
		{
			name:    "fractional quantity",
			input:   ProductInput{Name: "Kopi", Price: "10", Quantity: "1.5"},
			wantErr: FieldErrors{"quantity": "Quantity must be an integer"},
		},
		{
			name:    "price not a number",
			input:   ProductInput{Name: "Kopi", Price: "abc"},
			wantErr: FieldErrors{"price": "Price must be a number"},
		},
		{
			name:    "infinite price",
			input:   ProductInput{Name: "Kopi", Price: "Inf"},
			wantErr: FieldErrors{"price": "Price must be a number"},
		},
		{
			name:    "missing name and price",
			input:   ProductInput{},
			wantErr: FieldErrors{"name": "Name is required", "price": "Price is required"},
		},
		{
			name:    "name too long",
			input:   ProductInput{Name: strings.Repeat("n", 101), Price: "1"},
			wantErr: FieldErrors{"name": "Maksimal 100 karakter"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := tt.input.Parse()
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errs)
				assert.Equal(t, models.ProductPayload{}, got)
				return
			}
			assert.Empty(t, errs)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductInputFrom(t *testing.T) {
	qty := 7
	in := ProductInputFrom(models.Product{ID: 1, Name: "Teh", Price: 4.25, Quantity: &qty, UserID: "u1"})
	assert.Equal(t, ProductInput{Name: "Teh", Price: "4.25", Quantity: "7"}, in)

	in = ProductInputFrom(models.Product{Name: "Teh", Price: 4})
	assert.Equal(t, ProductInput{Name: "Teh", Price: "4"}, in)
}

func TestValidatorAsEchoValidator(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(LoginInput{Email: "a@b.co", Password: "secret1"}))

	err := v.Validate(LoginInput{Email: "a", Password: "secret1"})
	var errs FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "email: Email tidak valid", errs.Error())
}
