package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
)

// Edit updates title, description or active state: "edit <id>". Empty
// input keeps the current value; the target URL is not editable.
func (a *App) Edit(ctx context.Context, args []string) error {
	code, err := a.qr.Get(ctx, args[0])
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	title, err := GetTextDefault(a.reader, "Title", code.Title, os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	description, err := GetTextDefault(a.reader, "Description", code.Description, os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	active, err := GetYesNo(a.reader, "Active?", code.IsActive, os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	req := models.UpdateRequest{}
	if title != code.Title {
		req.Title = &title
	}
	if description != code.Description {
		req.Description = &description
	}
	if active != code.IsActive {
		req.IsActive = &active
	}
	if req.Title == nil && req.Description == nil && req.IsActive == nil {
		printlnFn("Nothing changed")
		return nil
	}

	updated, err := a.qr.Update(ctx, code.ID, req)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("Updated", updated.Label())
	return nil
}

// Delete removes a code after confirmation: "delete <id>".
func (a *App) Delete(ctx context.Context, args []string) error {
	sure, err := GetYesNo(a.reader, "Delete this QR code? Scans of the printed code will stop working", false, os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if !sure {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.qr.Delete(ctx, args[0]); err != nil {
		printlnFn("error:", err)
		return err
	}
	delete(a.formats, args[0])
	printlnFn("Deleted")
	return nil
}

// Toggle pauses or resumes a code: "toggle <id>". A paused code keeps its
// short URL but stops redirecting.
func (a *App) Toggle(ctx context.Context, args []string) error {
	code, err := a.qr.Toggle(ctx, args[0])
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if code.IsActive {
		printlnFn("Resumed", code.Label())
	} else {
		printlnFn("Paused", code.Label())
	}
	return nil
}
