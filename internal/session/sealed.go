package session

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/product-console/pkg/crypto"
)

// sealedStore encrypts tokens before they reach the wrapped store.
type sealedStore struct {
	next   Store
	cipher crypto.Client
}

func NewSealedStore(next Store, cipher crypto.Client) Store {
	return &sealedStore{
		next:   next,
		cipher: cipher,
	}
}

func (s *sealedStore) Read(ctx context.Context, tabID string) (Session, error) {
	sess, err := s.next.Read(ctx, tabID)
	if err != nil || !sess.Valid() {
		return sess, err
	}
	token, err := s.cipher.Decrypt(sess.token)
	if err != nil {
		return NoSession, fmt.Errorf("unseal session: %w", err)
	}
	return New(token), nil
}

func (s *sealedStore) Write(ctx context.Context, tabID, token string) error {
	if err := checkWrite(tabID, token); err != nil {
		return err
	}
	sealed, err := s.cipher.Encrypt(token)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return s.next.Write(ctx, tabID, sealed)
}

func (s *sealedStore) Clear(ctx context.Context, tabID string) error {
	return s.next.Clear(ctx, tabID)
}
