package cli

import (
	"context"
	"fmt"
)

// Analytics prints the dashboard overview, or one code's detail when an id
// is given: "analytics [id]".
func (a *App) Analytics(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return a.codeAnalytics(ctx, args[0])
	}

	overview, err := a.analytics.Overview(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	o := overview.Overview
	printlnFn(fmt.Sprintf("QR codes: %d (%d active)", o.TotalQRCodes, o.ActiveQRCodes))
	printlnFn(fmt.Sprintf("Scans: %d total, %d this month", o.TotalScans, o.ScansThisMonth))

	if len(overview.TopPerforming) > 0 {
		printlnFn("Top performing:")
		for _, top := range overview.TopPerforming {
			title := top.Title
			if title == "" {
				title = top.ShortID
			}
			printlnFn(fmt.Sprintf("  %-8s %s: %d scans", top.ShortID, title, top.TotalScans))
		}
	}
	return nil
}

func (a *App) codeAnalytics(ctx context.Context, id string) error {
	detail, err := a.analytics.ForCode(ctx, id)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	printlnFn("Total scans:", detail.TotalScans)
	if detail.LastScanned != nil {
		printlnFn("Last scanned:", detail.LastScanned.Format("2006-01-02 15:04"))
	}
	for _, day := range detail.DailyScans {
		printlnFn(fmt.Sprintf("  %s: %d", day.Date, day.Scans))
	}
	for _, dev := range detail.DeviceStats {
		printlnFn(fmt.Sprintf("  %s: %d (%.0f%%)", dev.Device, dev.Count, dev.Percentage))
	}
	return nil
}
