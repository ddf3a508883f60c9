// Package services contains the application services behind the CLI
// commands: authentication and profile, QR code lifecycle with the local
// cache, analytics and billing. Services pre-validate against the plan
// gates where it saves a doomed round trip, but the backend stays
// authoritative.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/api"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/client/repositories/artifacts"
	"github.com/dmitrijs2005/qrtrack/internal/client/session"
)

// AuthService handles account creation and the signed-in session.
type AuthService interface {
	Register(ctx context.Context, email, name string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	// Profile returns the account, from the local cache unless refresh is
	// set or nothing is cached yet.
	Profile(ctx context.Context, refresh bool) (*models.User, error)
}

type authService struct {
	client  api.Client
	session *session.Store
	cache   artifacts.Repository
}

func NewAuthService(client api.Client, sess *session.Store, cache artifacts.Repository) AuthService {
	return &authService{client: client, session: sess, cache: cache}
}

func (a *authService) Register(ctx context.Context, email, name string, password []byte) (*models.User, error) {
	resp, err := a.client.Register(ctx, models.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: string(password),
	})
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	if err := a.saveSession(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	resp, err := a.client.Login(ctx, models.Credentials{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	// The cache may hold another account's codes.
	if err := a.cache.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clearing local cache: %w", err)
	}
	if err := a.saveSession(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (a *authService) saveSession(ctx context.Context, resp *models.AuthResponse) error {
	if err := a.session.SetSession(ctx, resp.Token, &resp.User); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Logout clears the session and the cached codes. It never calls the
// server; tokens are stateless on the backend side.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clearing local cache: %w", err)
	}
	return a.session.Clear(ctx)
}

func (a *authService) Profile(ctx context.Context, refresh bool) (*models.User, error) {
	if !refresh {
		cached, err := a.session.User(ctx)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetUser(ctx, user); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return user, nil
}
