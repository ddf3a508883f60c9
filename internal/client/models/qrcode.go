package models

import "time"

// ErrorCorrectionLevel is one of the four ordered QR correction levels.
type ErrorCorrectionLevel string

const (
	ECLow      ErrorCorrectionLevel = "L"
	ECMedium   ErrorCorrectionLevel = "M"
	ECQuartile ErrorCorrectionLevel = "Q"
	ECHigh     ErrorCorrectionLevel = "H"
)

// Customization holds the creation-time rendering options of a QR code.
// Immutable per artifact on this client.
type Customization struct {
	Size                 int                  `json:"size"`
	ErrorCorrectionLevel ErrorCorrectionLevel `json:"errorCorrectionLevel"`
	ForegroundColor      string               `json:"foregroundColor"`
	BackgroundColor      string               `json:"backgroundColor"`
}

// AnalyticsSummary is the per-code aggregate refreshed by re-fetch, never
// mutated locally.
type AnalyticsSummary struct {
	TotalScans  int        `json:"totalScans"`
	LastScanned *time.Time `json:"lastScanned,omitempty"`
}

// QRCode is a generated code record: the encoded image as a data URL plus
// its metadata. The server assigns ID and ShortID; OriginalURL changes only
// by re-generation, while Title, Description and IsActive are editable.
type QRCode struct {
	ID            string            `json:"id"`
	ImageDataURL  string            `json:"qrCodeData"`
	ShortURL      string            `json:"shortUrl"`
	ShortID       string            `json:"shortId"`
	OriginalURL   string            `json:"originalUrl"`
	Title         string            `json:"title,omitempty"`
	Description   string            `json:"description,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	Customization Customization     `json:"customization"`
	Analytics     *AnalyticsSummary `json:"analytics,omitempty"`
	IsActive      bool              `json:"isActive"`
}

// Label returns the short id when present, the server id otherwise.
// Used for display and for export filenames.
func (q *QRCode) Label() string {
	if q.ShortID != "" {
		return q.ShortID
	}
	return q.ID
}

// GenerateRequest is the payload of POST /qr/generate. Zero-valued optional
// fields are omitted so the backend applies its own defaults.
type GenerateRequest struct {
	URL                  string               `json:"url"`
	Title                string               `json:"title,omitempty"`
	Description          string               `json:"description,omitempty"`
	Size                 int                  `json:"size,omitempty"`
	ErrorCorrectionLevel ErrorCorrectionLevel `json:"errorCorrectionLevel,omitempty"`
	ForegroundColor      string               `json:"foregroundColor,omitempty"`
	BackgroundColor      string               `json:"backgroundColor,omitempty"`
}

// UpdateRequest is the payload of PUT /qr/{id}. Only title, description and
// isActive are editable; the target URL is not.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Count      int `json:"count"`
	TotalItems int `json:"totalItems"`
}

// QRCodePage is the response of GET /qr/user/list.
type QRCodePage struct {
	Data       []QRCode   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
