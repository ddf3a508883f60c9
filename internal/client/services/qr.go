package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/api"
	"github.com/dmitrijs2005/qrtrack/internal/client/entitlement"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/client/repositories/artifacts"
	"github.com/dmitrijs2005/qrtrack/internal/client/session"
	"github.com/dmitrijs2005/qrtrack/internal/common"
	"github.com/dmitrijs2005/qrtrack/internal/logging"
)

// GenerateResult is a created code plus an optional non-blocking warning
// (usage approaching the plan limit).
type GenerateResult struct {
	Code    *models.QRCode
	Warning string
}

// ListResult is one page of codes. Offline is set when the page was served
// from the local cache because the server was unreachable.
type ListResult struct {
	Page    *models.QRCodePage
	Offline bool
}

// QRService is the QR code lifecycle behind the CLI: generation gated by
// the plan, listing with an offline fallback, edits and deletion kept in
// sync with the local cache.
type QRService interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*GenerateResult, error)
	List(ctx context.Context, page, limit int) (*ListResult, error)
	Get(ctx context.Context, id string) (*models.QRCode, error)
	Update(ctx context.Context, id string, req models.UpdateRequest) (*models.QRCode, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (*models.QRCode, error)
}

type qrService struct {
	client  api.Client
	cache   artifacts.Repository
	session *session.Store
	log     logging.Logger
}

func NewQRService(client api.Client, cache artifacts.Repository, sess *session.Store, log logging.Logger) QRService {
	if log == nil {
		log = logging.Nop{}
	}
	return &qrService{client: client, cache: cache, session: sess, log: log}
}

// Generate pre-validates against the cached profile, submits, caches the
// result and refreshes the profile so later checks see the new counters.
func (s *qrService) Generate(ctx context.Context, req models.GenerateRequest) (*GenerateResult, error) {
	user, err := s.session.User(ctx)
	if err != nil {
		return nil, err
	}

	decision := entitlement.EvaluateFor(user, entitlement.Request{Action: entitlement.ActionCreate})
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", common.ErrorPlanLimit, decision.Reason)
	}

	code, err := s.client.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Upsert(ctx, code); err != nil {
		s.log.Warn(ctx, "caching generated code", "id", code.ID, "error", err)
	}

	result := &GenerateResult{Code: code}
	if fresh, err := s.refreshProfile(ctx); err == nil && fresh != nil && fresh.Usage != nil {
		if entitlement.NearLimit(*fresh.Usage, fresh.Limits) {
			result.Warning = fmt.Sprintf("you have used %d of %d QR codes on the %s plan",
				fresh.Usage.QRCodesCreated, fresh.Limits.MaxQRCodes, fresh.Plan)
		}
	}
	return result, nil
}

// refreshProfile re-fetches the account and updates the session cache.
// Signed-out clients return nil without error.
func (s *qrService) refreshProfile(ctx context.Context) (*models.User, error) {
	token, err := s.session.Token(ctx)
	if err != nil || token == "" {
		return nil, err
	}
	user, err := s.client.Me(ctx)
	if err != nil {
		s.log.Warn(ctx, "refreshing profile", "error", err)
		return nil, err
	}
	if err := s.session.SetUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *qrService) List(ctx context.Context, page, limit int) (*ListResult, error) {
	result, err := s.client.List(ctx, page, limit)
	if err == nil {
		if cacheErr := s.cache.UpsertAll(ctx, result.Data); cacheErr != nil {
			s.log.Warn(ctx, "caching code list", "error", cacheErr)
		}
		return &ListResult{Page: result}, nil
	}

	if !errors.Is(err, api.ErrUnavailable) {
		return nil, err
	}

	cached, cacheErr := s.cache.List(ctx)
	if cacheErr != nil {
		return nil, fmt.Errorf("server unreachable and cache failed: %w", cacheErr)
	}
	s.log.Info(ctx, "server unreachable, serving cached codes", "count", len(cached))
	return &ListResult{
		Offline: true,
		Page: &models.QRCodePage{
			Data: cached,
			Pagination: models.Pagination{
				Current:    1,
				Total:      1,
				Count:      len(cached),
				TotalItems: len(cached),
			},
		},
	}, nil
}

// Get prefers the server copy and falls back to the cache when offline.
func (s *qrService) Get(ctx context.Context, id string) (*models.QRCode, error) {
	code, err := s.client.Get(ctx, id)
	if err == nil {
		if cacheErr := s.cache.Upsert(ctx, code); cacheErr != nil {
			s.log.Warn(ctx, "caching code", "id", id, "error", cacheErr)
		}
		return code, nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return nil, err
	}
	return s.cache.Get(ctx, id)
}

func (s *qrService) Update(ctx context.Context, id string, req models.UpdateRequest) (*models.QRCode, error) {
	code, err := s.client.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cache.Upsert(ctx, code); cacheErr != nil {
		s.log.Warn(ctx, "caching updated code", "id", id, "error", cacheErr)
	}
	return code, nil
}

func (s *qrService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "removing code from cache", "id", id, "error", err)
	}
	if _, err := s.refreshProfile(ctx); err != nil {
		s.log.Warn(ctx, "refreshing usage after delete", "error", err)
	}
	return nil
}

// Toggle flips IsActive. The current state comes from the server so two
// clients toggling concurrently converge on the server's view.
func (s *qrService) Toggle(ctx context.Context, id string) (*models.QRCode, error) {
	code, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := !code.IsActive
	return s.Update(ctx, id, models.UpdateRequest{IsActive: &next})
}
