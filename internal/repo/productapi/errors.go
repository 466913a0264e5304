package productapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/nguyentranbao-ct/product-console/internal/session"
)

type Kind string

const (
	KindNoSession  Kind = "no_session"
	KindNetwork    Kind = "network"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindRequest    Kind = "request"
	KindDecode     Kind = "decode"
)

// Error is the failed variant of every API call. Kind tells callers what
// went wrong; Code and Detail carry whatever the server said.
type Error struct {
	Op     Op
	Kind   Kind
	Status int
	Code   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("productapi: %s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Summary is the generic message shown for the failed operation.
func (e *Error) Summary() string {
	return e.Op.failure()
}

// KindOf returns the kind of an API error, or "" for foreign errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if errors.Is(err, session.ErrNoSession) {
		return KindNoSession
	}
	return ""
}

func noSession(op Op) error {
	return &Error{Op: op, Kind: KindNoSession, Err: session.ErrNoSession}
}

func statusError(op Op, status int, body []byte) error {
	kind := KindRequest
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = KindValidation
	}

	e := &Error{Op: op, Kind: kind, Status: status}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		e.Code = parsed.Get("code").String()
		e.Detail = firstString(parsed, "message", "error", "errors.0.message")
	}
	return e
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
