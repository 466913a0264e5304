package form

import "github.com/nguyentranbao-ct/product-console/pkg/tmplx"

// Auth forms speak Indonesian, product forms English, as the screens do.
func defaultMessages() *tmplx.Catalog {
	return tmplx.NewCatalog().
		MustAdd("default", "{{.Field}} tidak valid").
		MustAdd("required", "Wajib diisi").
		MustAdd("email", "Email tidak valid").
		MustAdd("min", "Minimal {{.Param}} karakter").
		MustAdd("max", "Maksimal {{.Param}} karakter").
		MustAdd("gender.oneof", "Pilih salah satu: {{.Param}}").
		MustAdd("gender.required", "Pilih jenis kelamin").
		MustAdd("name.required", "Name is required").
		MustAdd("price.required", "Price is required").
		MustAdd("price.gt", "Price must be positive").
		MustAdd("quantity.gte", "Quantity cannot be negative").
		MustAdd(msgPriceNumber, "Price must be a number").
		MustAdd(msgQuantityInteger, "Quantity must be an integer")
}

const (
	msgPriceNumber     = "price.number"
	msgQuantityInteger = "quantity.integer"
)
