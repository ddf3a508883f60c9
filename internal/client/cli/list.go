package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
)

const defaultPageSize = 20

// List prints one page of the account's codes: "list [page]".
func (a *App) List(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			printlnFn("Usage: list [page]")
			return fmt.Errorf("invalid page %q", args[0])
		}
		page = n
	}

	result, err := a.qr.List(ctx, page, defaultPageSize)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if result.Offline {
		printlnFn("Server unreachable, showing cached codes:")
	}

	if len(result.Page.Data) == 0 {
		printlnFn("No QR codes yet. Run 'generate' to create one.")
		return nil
	}

	for i := range result.Page.Data {
		printlnFn(a.describeRow(&result.Page.Data[i]))
	}
	p := result.Page.Pagination
	if p.Total > 1 {
		printlnFn(fmt.Sprintf("Page %d of %d (%d codes total)", p.Current, p.Total, p.TotalItems))
	}
	return nil
}

func (a *App) describeRow(code *models.QRCode) string {
	state := "active"
	if !code.IsActive {
		state = "paused"
	}
	scans := ""
	if code.Analytics != nil {
		scans = fmt.Sprintf(", %d scans", code.Analytics.TotalScans)
	}
	title := code.Title
	if title == "" {
		title = code.OriginalURL
	}
	return fmt.Sprintf("%s  %-8s %s (%s%s)", code.ID, code.Label(), title, state, scans)
}

// Show prints one code in full: "show <id>".
func (a *App) Show(ctx context.Context, args []string) error {
	code, err := a.qr.Get(ctx, args[0])
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	printlnFn("ID:        ", code.ID)
	printlnFn("Short ID:  ", code.ShortID)
	printlnFn("Short URL: ", code.ShortURL)
	printlnFn("Target:    ", code.OriginalURL)
	if code.Title != "" {
		printlnFn("Title:     ", code.Title)
	}
	if code.Description != "" {
		printlnFn("About:     ", code.Description)
	}
	printlnFn("Active:    ", code.IsActive)
	printlnFn("Created:   ", code.CreatedAt.Format("2006-01-02 15:04"))
	printlnFn(fmt.Sprintf("Appearance: %dpx, level %s, %s on %s",
		code.Customization.Size, code.Customization.ErrorCorrectionLevel,
		code.Customization.ForegroundColor, code.Customization.BackgroundColor))
	if code.Analytics != nil {
		printlnFn("Scans:     ", code.Analytics.TotalScans)
	}
	printlnFn("Download format:", a.formatFor(code.ID))
	return nil
}
