package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/qrtrack/internal/filex"
)

// SaveCommand is a fully resolved save: what bytes to write, under which
// name, with which MIME type. Building one has no side effects.
type SaveCommand struct {
	Filename string
	MIME     string
	Data     []byte
}

// Filename returns the export filename for a code identified by label
// (short id when available): "qr-{label}{ext}".
func Filename(label string, format Format) string {
	return "qr-" + label + format.Extension()
}

// LargeFilename is the large/detail-view variant of the png filename:
// "qr-code-{label}-large.png".
func LargeFilename(label string) string {
	return "qr-code-" + label + "-large" + FormatPNG.Extension()
}

// NewSaveCommand pairs an opaque payload with its target name and type.
func NewSaveCommand(data []byte, mime, filename string) SaveCommand {
	return SaveCommand{Filename: filename, MIME: mime, Data: data}
}

// Saver persists a SaveCommand and returns the resulting location. A Saver
// must hold at most one handle per call and release it on every path, so
// repeated exports in a long-lived session leak nothing.
type Saver interface {
	Save(ctx context.Context, cmd SaveCommand) (string, error)
}

// FileSaver writes exports into a directory on disk.
type FileSaver struct {
	dir string
}

// NewFileSaver ensures dir exists and returns a Saver writing into it.
func NewFileSaver(dir string) (*FileSaver, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("download dir: %w", err)
	}
	return &FileSaver{dir: abs}, nil
}

// Dir returns the absolute download directory.
func (s *FileSaver) Dir() string { return s.dir }

// Save writes the command atomically and returns the written path. The
// temp-file-plus-rename underneath guarantees the single-handle contract.
func (s *FileSaver) Save(ctx context.Context, cmd SaveCommand) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, cmd.Filename)
	if err := filex.WriteAtomic(path, cmd.Data); err != nil {
		return "", err
	}
	return path, nil
}
