// Package session owns the client's signed-in state: the bearer token and
// the cached profile. It replaces ambient shared storage with an injected
// store that has explicit read/write/clear operations and a single
// invalidation hook fired when the server rejects the token.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/client/repositories/metadata"
)

const (
	keyToken   = "authToken"
	keyProfile = "profile"
)

// Store persists the session in the metadata repository. Safe for use from
// concurrent exports; the prompt loop itself is single threaded.
type Store struct {
	meta metadata.Repository

	mu           sync.Mutex
	onInvalidate func()
}

func NewStore(meta metadata.Repository) *Store {
	return &Store{meta: meta}
}

// OnInvalidate registers the hook fired when the session is invalidated by
// a 401. Only one hook is kept; registering replaces the previous one.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = fn
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.meta.Set(ctx, keyToken, []byte(token))
}

// User returns the cached profile, or nil when none is stored.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	v, err := s.meta.Get(ctx, keyProfile)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &u, nil
}

func (s *Store) SetUser(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.meta.Set(ctx, keyProfile, data)
}

// SetSession stores the token and the profile in one transaction. A login
// that fails halfway must not leave a stray token behind.
func (s *Store) SetSession(ctx context.Context, token string, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.meta.Tx(ctx, func(ctx context.Context, m metadata.Repository) error {
		if err := m.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return m.Set(ctx, keyProfile, data)
	})
}

// Clear removes the token and profile without firing the hook. Used for an
// explicit logout.
func (s *Store) Clear(ctx context.Context) error {
	return s.meta.Tx(ctx, func(ctx context.Context, m metadata.Repository) error {
		if err := m.Delete(ctx, keyToken); err != nil {
			return err
		}
		return m.Delete(ctx, keyProfile)
	})
}

// Invalidate clears the session and fires the invalidation hook. The REST
// client calls this on a 401 response.
func (s *Store) Invalidate(ctx context.Context) error {
	err := s.Clear(ctx)

	s.mu.Lock()
	fn := s.onInvalidate
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
	return err
}
