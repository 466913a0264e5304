package usecase

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/product-console/internal/query"
	"github.com/nguyentranbao-ct/product-console/internal/session"
)

// Tab is one browser tab or shell process. Its session and query cache are
// never shared with another tab.
type Tab struct {
	ID       string
	sessions session.Store
	cache    *query.Client
}

func (t *Tab) Session(ctx context.Context) (session.Session, error) {
	sess, err := t.sessions.Read(ctx, t.ID)
	if err != nil {
		return session.NoSession, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

func (t *Tab) Cache() *query.Client {
	return t.cache
}

type TabManager interface {
	Open(tabID string) (*Tab, error)
	Close(tabID string)
}

type tabManager struct {
	sessions session.Store
	registry *query.Registry
}

func NewTabManager(sessions session.Store, registry *query.Registry) TabManager {
	return &tabManager{
		sessions: sessions,
		registry: registry,
	}
}

func (m *tabManager) Open(tabID string) (*Tab, error) {
	if tabID == "" {
		return nil, session.ErrEmptyTab
	}
	return &Tab{
		ID:       tabID,
		sessions: m.sessions,
		cache:    m.registry.Client(tabID),
	}, nil
}

func (m *tabManager) Close(tabID string) {
	m.registry.Drop(tabID)
}
