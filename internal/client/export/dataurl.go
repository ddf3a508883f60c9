package export

import (
	"encoding/base64"
	"errors"
	"strings"
)

const defaultMIME = "image/png"

var (
	ErrNoComma   = errors.New("data url: missing comma separator")
	ErrBadBase64 = errors.New("data url: payload is not valid base64")
)

// ParseDataURL decodes a "data:<mime>;base64,<payload>" string into its
// MIME type and raw bytes. The string is split on the first comma; the MIME
// type is the segment between ':' and ';' in the header, defaulting to
// image/png when absent or malformed.
func ParseDataURL(s string) (string, []byte, error) {
	header, payload, found := strings.Cut(s, ",")
	if !found {
		return "", nil, ErrNoComma
	}

	mime := defaultMIME
	if colon := strings.Index(header, ":"); colon >= 0 {
		rest := header[colon+1:]
		if semi := strings.Index(rest, ";"); semi > 0 {
			mime = rest[:semi]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrBadBase64
	}

	return mime, data, nil
}
