package artifacts

import (
	"context"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
)

// Repository is the local read cache of the user's QR codes, filled from
// server responses and used when the server is unreachable.
type Repository interface {
	Upsert(ctx context.Context, code *models.QRCode) error
	UpsertAll(ctx context.Context, codes []models.QRCode) error
	List(ctx context.Context) ([]models.QRCode, error)
	Get(ctx context.Context, id string) (*models.QRCode, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
