// Package export turns a QR code record into a saved file. The decode and
// filename logic is pure; the side-effecting save step sits behind the
// Saver interface so tests never need a filesystem.
package export

import "errors"

// Format is a download format. The set is closed: png is always derivable
// locally from the artifact's data URL, svg and pdf require a server
// round trip.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat normalizes a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG, FormatPDF:
		return Format(s), nil
	}
	return "", ErrUnknownFormat
}

// Extension returns the file extension written for the format.
//
// pdf maps to ".png": the backend's download endpoint currently serves PNG
// bytes even when pdf is requested, so the extension follows the actual
// content. Revisit when the backend starts rendering real PDFs.
func (f Format) Extension() string {
	switch f {
	case FormatSVG:
		return ".svg"
	default:
		return ".png"
	}
}

// Remote reports whether the format needs the server export endpoint.
func (f Format) Remote() bool {
	return f != FormatPNG
}
