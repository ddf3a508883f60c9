// Package api implements the typed client for the backend REST API. The
// Client interface is what services depend on; tests substitute fakes.
package api

import (
	"context"

	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
)

type Client interface {
	// Auth.
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)

	// QR codes.
	Generate(ctx context.Context, req models.GenerateRequest) (*models.QRCode, error)
	List(ctx context.Context, page, limit int) (*models.QRCodePage, error)
	Get(ctx context.Context, id string) (*models.QRCode, error)
	Update(ctx context.Context, id string, req models.UpdateRequest) (*models.QRCode, error)
	Delete(ctx context.Context, id string) error

	// Download fetches a server-rendered export; the returned string is the
	// response content type. Satisfies export.Downloader.
	Download(ctx context.Context, id string, format export.Format) ([]byte, string, error)

	// Analytics.
	Overview(ctx context.Context) (*models.DashboardAnalytics, error)
	QRAnalytics(ctx context.Context, id string) (*models.QRCodeAnalytics, error)

	// Billing.
	Plans(ctx context.Context) (*models.PlansResponse, error)
	CreateCheckoutSession(ctx context.Context, plan models.Plan) (string, error)
}
