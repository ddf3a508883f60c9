package export

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDataURL_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte{},
		[]byte{0x89, 'P', 'N', 'G'},
		[]byte("some longer payload with text and \x00 bytes \xff"),
	}

	for _, raw := range payloads {
		encoded := base64.StdEncoding.EncodeToString(raw)
		mime, data, err := ParseDataURL("data:image/png;base64," + encoded)
		require.NoError(t, err)
		require.Equal(t, "image/png", mime)
		require.Equal(t, raw, data)

		// Decoding then re-encoding reproduces the payload exactly.
		require.Equal(t, encoded, base64.StdEncoding.EncodeToString(data))
	}
}

func TestParseDataURL_MIMEExtraction(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("x"))

	tests := []struct {
		name string
		url  string
		mime string
	}{
		{"svg mime", "data:image/svg+xml;base64," + payload, "image/svg+xml"},
		{"no mime in header", "data:;base64," + payload, "image/png"},
		{"header without colon", "base64," + payload, "image/png"},
		{"header without semicolon", "data:image/png," + payload, "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, _, err := ParseDataURL(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.mime, mime)
		})
	}
}

func TestParseDataURL_NoComma(t *testing.T) {
	_, _, err := ParseDataURL("data:image/png;base64")
	require.ErrorIs(t, err, ErrNoComma)
}

func TestParseDataURL_BadBase64(t *testing.T) {
	_, _, err := ParseDataURL("data:image/png;base64,@@not-base64@@")
	require.ErrorIs(t, err, ErrBadBase64)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"png", "svg", "pdf"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		require.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("gif")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormat_Extension_PDFMapsToPNG(t *testing.T) {
	// Pinned: the backend serves PNG bytes for pdf, so the extension
	// follows the content.
	require.Equal(t, ".png", FormatPDF.Extension())
	require.Equal(t, ".png", FormatPNG.Extension())
	require.Equal(t, ".svg", FormatSVG.Extension())
}

func TestFilenames(t *testing.T) {
	require.Equal(t, "qr-abc123.png", Filename("abc123", FormatPNG))
	require.Equal(t, "qr-abc123.svg", Filename("abc123", FormatSVG))
	require.Equal(t, "qr-abc123.png", Filename("abc123", FormatPDF))
	require.Equal(t, "qr-code-abc123-large.png", LargeFilename("abc123"))
}
