package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/entitlement"
	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/common"
)

// denialError keeps authorization and entitlement denials apart: a caller
// without an account gets an unauthorized error, a signed-in caller on an
// insufficient plan gets a plan-limit error.
func denialError(signedIn bool, reason string) error {
	if !signedIn {
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, reason)
	}
	return fmt.Errorf("%w: %s", common.ErrorPlanLimit, reason)
}

// formatFor returns the remembered export format for a code, png when none
// was picked.
func (a *App) formatFor(id string) export.Format {
	if f, ok := a.formats[id]; ok {
		return f
	}
	return export.FormatPNG
}

// Format remembers the export format for one code: "format <id> <fmt>".
// The choice is gated on the plan but remembered regardless of sign-in
// state changes; the gate re-checks at download time.
func (a *App) Format(ctx context.Context, args []string) error {
	id := args[0]
	format, err := export.ParseFormat(args[1])
	if err != nil {
		printlnFn("error:", err)
		printlnFn("Known formats: png, svg, pdf")
		return err
	}

	user, sessErr := a.session.User(ctx)
	if sessErr != nil {
		printlnFn("error:", sessErr)
		return sessErr
	}
	decision := entitlement.EvaluateFor(user, entitlement.Request{
		Action: entitlement.ActionExportFormat,
		Format: format,
	})
	if !decision.Allowed {
		printlnFn("Format not available:", decision.Reason)
		return denialError(user != nil, decision.Reason)
	}

	a.formats[id] = format
	printlnFn(fmt.Sprintf("Downloads of %s will use %s", id, format))
	return nil
}

// Download exports a code: "download <id> [format]". Without an explicit
// format the per-code selection (or png) applies. pdf exports are written
// with a .png extension because the server renders png bytes for them.
func (a *App) Download(ctx context.Context, args []string) error {
	id := args[0]

	format := a.formatFor(id)
	if len(args) > 1 {
		parsed, err := export.ParseFormat(args[1])
		if err != nil {
			printlnFn("error:", err)
			return err
		}
		format = parsed
	}

	user, err := a.session.User(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	decision := entitlement.EvaluateFor(user, entitlement.Request{
		Action: entitlement.ActionExportFormat,
		Format: format,
	})
	if !decision.Allowed {
		printlnFn("Download blocked:", decision.Reason)
		return denialError(user != nil, decision.Reason)
	}

	code, err := a.qr.Get(ctx, id)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	path, err := a.exporter.Export(ctx, code, format)
	if err != nil {
		if errors.Is(err, export.ErrDownloadFailed) {
			printlnFn("Export failed, nothing was written. Try again:", err)
		} else {
			printlnFn("error:", err)
		}
		return err
	}
	printlnFn("Saved to", path)
	return nil
}
