package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/logging"
)

// ErrDownloadFailed marks a failed server-side export (svg/pdf). The caller
// shows a retryable message; no partial file is left behind.
var ErrDownloadFailed = errors.New("download failed")

// Downloader fetches a server-rendered export. Implemented by the REST
// client; the indirection keeps this package free of transport concerns.
type Downloader interface {
	Download(ctx context.Context, id string, format Format) ([]byte, string, error)
}

// Exporter materializes a QR code as a saved file in a requested format.
type Exporter struct {
	saver  Saver
	remote Downloader
	log    logging.Logger
}

func NewExporter(saver Saver, remote Downloader, log logging.Logger) *Exporter {
	if log == nil {
		log = logging.Nop{}
	}
	return &Exporter{saver: saver, remote: remote, log: log}
}

// Export saves code in the given format and returns the written location.
//
// png decodes the artifact's own data URL locally. A malformed data URL
// does not fail the export: the raw string is saved as-is, which some
// consumers can still open, and the problem is logged.
//
// svg and pdf round-trip through the server export endpoint; any non-success
// response surfaces as ErrDownloadFailed.
func (e *Exporter) Export(ctx context.Context, code *models.QRCode, format Format) (string, error) {
	filename := Filename(code.Label(), format)

	if format.Remote() {
		data, mime, err := e.remote.Download(ctx, code.ID, format)
		if err != nil {
			return "", fmt.Errorf("%w: %s %s: %v", ErrDownloadFailed, format, code.ID, err)
		}
		return e.saver.Save(ctx, NewSaveCommand(data, mime, filename))
	}

	return e.savePNG(ctx, code.ImageDataURL, filename)
}

// ExportLarge saves the large/detail png variant of the code.
func (e *Exporter) ExportLarge(ctx context.Context, code *models.QRCode) (string, error) {
	return e.savePNG(ctx, code.ImageDataURL, LargeFilename(code.Label()))
}

func (e *Exporter) savePNG(ctx context.Context, dataURL, filename string) (string, error) {
	mime, data, err := ParseDataURL(dataURL)
	if err != nil {
		// Degraded path: keep the export best-effort instead of failing.
		e.log.Warn(ctx, "data url decode failed, saving raw content", "file", filename, "err", err)
		return e.saver.Save(ctx, NewSaveCommand([]byte(dataURL), defaultMIME, filename))
	}
	return e.saver.Save(ctx, NewSaveCommand(data, mime, filename))
}
