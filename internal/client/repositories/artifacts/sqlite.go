package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/common"
	"github.com/dmitrijs2005/qrtrack/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const upsertQuery = `
	INSERT INTO qr_codes
	  (id, short_id, short_url, original_url, title, description,
	   image_data_url, size, ec_level, foreground_color, background_color,
	   is_active, created_at, total_scans, cached_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	  short_id = excluded.short_id,
	  short_url = excluded.short_url,
	  original_url = excluded.original_url,
	  title = excluded.title,
	  description = excluded.description,
	  image_data_url = excluded.image_data_url,
	  size = excluded.size,
	  ec_level = excluded.ec_level,
	  foreground_color = excluded.foreground_color,
	  background_color = excluded.background_color,
	  is_active = excluded.is_active,
	  created_at = excluded.created_at,
	  total_scans = excluded.total_scans,
	  cached_at = excluded.cached_at
`

func upsertArgs(code *models.QRCode) []any {
	totalScans := 0
	if code.Analytics != nil {
		totalScans = code.Analytics.TotalScans
	}
	return []any{
		code.ID, code.ShortID, code.ShortURL, code.OriginalURL,
		code.Title, code.Description, code.ImageDataURL,
		code.Customization.Size, string(code.Customization.ErrorCorrectionLevel),
		code.Customization.ForegroundColor, code.Customization.BackgroundColor,
		code.IsActive, code.CreatedAt.Format(time.RFC3339),
		totalScans, time.Now().UTC().Format(time.RFC3339),
	}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, code *models.QRCode) error {
	if _, err := r.db.ExecContext(ctx, upsertQuery, upsertArgs(code)...); err != nil {
		return fmt.Errorf("failed to cache qr code %s: %w", code.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertAll(ctx context.Context, codes []models.QRCode) error {
	for i := range codes {
		if err := r.Upsert(ctx, &codes[i]); err != nil {
			return err
		}
	}
	return nil
}

func scanCode(scan func(dest ...any) error) (*models.QRCode, error) {
	var code models.QRCode
	var ecLevel string
	var createdAt string
	var totalScans int

	err := scan(&code.ID, &code.ShortID, &code.ShortURL, &code.OriginalURL,
		&code.Title, &code.Description, &code.ImageDataURL,
		&code.Customization.Size, &ecLevel,
		&code.Customization.ForegroundColor, &code.Customization.BackgroundColor,
		&code.IsActive, &createdAt, &totalScans)
	if err != nil {
		return nil, err
	}
	code.Customization.ErrorCorrectionLevel = models.ErrorCorrectionLevel(ecLevel)

	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		code.CreatedAt = ts
	}
	if totalScans > 0 {
		code.Analytics = &models.AnalyticsSummary{TotalScans: totalScans}
	}
	return &code, nil
}

const selectColumns = `id, short_id, short_url, original_url, title, description,
	image_data_url, size, ec_level, foreground_color, background_color,
	is_active, created_at, total_scans`

func (r *SQLiteRepository) List(ctx context.Context) ([]models.QRCode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM qr_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached qr codes: %w", err)
	}
	defer rows.Close()

	var result []models.QRCode
	for rows.Next() {
		code, err := scanCode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached qr code: %w", err)
		}
		result = append(result, *code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached qr codes: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.QRCode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM qr_codes WHERE id = ?`, id)

	code, err := scanCode(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached qr code %s: %w", id, err)
	}
	return code, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM qr_codes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete cached qr code %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM qr_codes`); err != nil {
		return fmt.Errorf("failed to clear qr code cache: %w", err)
	}
	return nil
}
