package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/api"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/client/session"
	"github.com/dmitrijs2005/qrtrack/internal/common"
)

// BillingService lists the purchasable tiers and starts upgrades. Payment
// happens on the provider's hosted page; the client only opens the URL.
type BillingService interface {
	Plans(ctx context.Context) (*models.PlansResponse, error)
	// Upgrade starts a checkout for the target plan and returns the hosted
	// payment URL.
	Upgrade(ctx context.Context, plan models.Plan) (string, error)
}

type billingService struct {
	client  api.Client
	session *session.Store
}

func NewBillingService(client api.Client, sess *session.Store) BillingService {
	return &billingService{client: client, session: sess}
}

func (s *billingService) Plans(ctx context.Context) (*models.PlansResponse, error) {
	return s.client.Plans(ctx)
}

func (s *billingService) Upgrade(ctx context.Context, plan models.Plan) (string, error) {
	if !plan.Valid() {
		return "", fmt.Errorf("%w: unknown plan %q", common.ErrorValidation, plan)
	}

	user, err := s.session.User(ctx)
	if err != nil {
		return "", err
	}
	if user != nil && plan.Rank() <= user.Plan.Rank() {
		return "", fmt.Errorf("%w: %s is not an upgrade from %s", common.ErrorValidation, plan, user.Plan)
	}

	return s.client.CreateCheckoutSession(ctx, plan)
}
