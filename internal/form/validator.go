package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nguyentranbao-ct/product-console/pkg/tmplx"
)

// FieldErrors maps a form field name to its first failing message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) Get(field string) string {
	return f[field]
}

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

func (f FieldErrors) add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

type Validator struct {
	validate *validator.Validate
	messages *tmplx.Catalog
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	commonTags := []string{
		"form",
		"json",
		"query",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	return &Validator{
		validate: validate,
		messages: defaultMessages(),
	}
}

// Validate returns nil or FieldErrors, so it can back echo's Validator.
func (v *Validator) Validate(i interface{}) error {
	if errs := v.Fields(i); len(errs) > 0 {
		return errs
	}
	return nil
}

// Fields validates a struct and returns one localized message per field,
// or nil when it is valid.
func (v *Validator) Fields(i interface{}) FieldErrors {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	errs := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.add("_", err.Error())
		return errs
	}

	for _, fe := range verrs {
		errs.add(fe.Field(), v.message(fe))
	}
	return errs
}

func (v *Validator) message(fe validator.FieldError) string {
	data := map[string]any{
		"Field": fe.Field(),
		"Param": fe.Param(),
	}
	msg, err := v.messages.Render(data,
		fe.Field()+"."+fe.Tag(),
		fe.Tag(),
		"default",
	)
	if err != nil {
		return fe.Error()
	}
	return msg
}

func (v *Validator) render(key string) string {
	msg, err := v.messages.Render(nil, key)
	if err != nil {
		return key
	}
	return msg
}
