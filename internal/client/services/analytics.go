package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/api"
	"github.com/dmitrijs2005/qrtrack/internal/client/entitlement"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/client/session"
	"github.com/dmitrijs2005/qrtrack/internal/common"
)

// AnalyticsService exposes the scan dashboards. Both calls are gated on the
// plan's analytics capability before the request goes out.
type AnalyticsService interface {
	Overview(ctx context.Context) (*models.DashboardAnalytics, error)
	ForCode(ctx context.Context, id string) (*models.QRCodeAnalytics, error)
}

type analyticsService struct {
	client  api.Client
	session *session.Store
}

func NewAnalyticsService(client api.Client, sess *session.Store) AnalyticsService {
	return &analyticsService{client: client, session: sess}
}

func (s *analyticsService) gate(ctx context.Context) error {
	user, err := s.session.User(ctx)
	if err != nil {
		return err
	}
	decision := entitlement.EvaluateFor(user, entitlement.Request{Action: entitlement.ActionViewAnalytics})
	if decision.Allowed {
		return nil
	}
	// Signed-out callers lack an account, not a plan tier.
	if user == nil {
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, decision.Reason)
	}
	return fmt.Errorf("%w: %s", common.ErrorPlanLimit, decision.Reason)
}

func (s *analyticsService) Overview(ctx context.Context) (*models.DashboardAnalytics, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	return s.client.Overview(ctx)
}

func (s *analyticsService) ForCode(ctx context.Context, id string) (*models.QRCodeAnalytics, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	return s.client.QRAnalytics(ctx, id)
}
