package session

import (
	"context"
	"errors"
)

var (
	ErrNoSession = errors.New("session: no session")
	ErrEmptyTab  = errors.New("session: tab id is required")
)

// Session is the bearer credential owned by one tab. The zero value is
// NoSession.
type Session struct {
	token string
}

var NoSession = Session{}

func New(token string) Session {
	return Session{token: token}
}

func (s Session) Valid() bool {
	return s.token != ""
}

// Bearer returns the token, or ErrNoSession for the absent variant.
func (s Session) Bearer() (string, error) {
	if !s.Valid() {
		return "", ErrNoSession
	}
	return s.token, nil
}

func (s Session) String() string {
	if !s.Valid() {
		return "session(none)"
	}
	return "session(****)"
}

// Store keeps at most one session per tab.
type Store interface {
	Read(ctx context.Context, tabID string) (Session, error)
	Write(ctx context.Context, tabID, token string) error
	Clear(ctx context.Context, tabID string) error
}

func checkWrite(tabID, token string) error {
	if tabID == "" {
		return ErrEmptyTab
	}
	if token == "" {
		return errors.New("session: token is required")
	}
	return nil
}
