// Package view holds the page state machines shared by the web and terminal
// fronts. Views never render anything; fronts read their exported state and
// follow the paths they return.
package view

import (
	"errors"

	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
)

const (
	PathMain     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusError      Status = "error"
)

// Alert is a dismissible failure message.
type Alert struct {
	Title   string
	Message string
}

// summary returns the static message for a failed API call.
func summary(err error) string {
	var apiErr *productapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Summary()
	}
	return "Something went wrong"
}
