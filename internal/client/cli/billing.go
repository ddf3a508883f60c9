package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
)

// Plans prints the purchasable tiers.
func (a *App) Plans(ctx context.Context) error {
	resp, err := a.billing.Plans(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	for _, plan := range resp.Plans {
		printlnFn(describePlan(&plan))
	}
	return nil
}

func describePlan(p *models.PlanInfo) string {
	price := "free"
	if p.PriceCents > 0 {
		price = fmt.Sprintf("$%d.%02d/%s", p.PriceCents/100, p.PriceCents%100, p.Period)
	}
	codes := "unlimited codes"
	if p.Limits.MaxQRCodes > 0 {
		codes = fmt.Sprintf("%d codes", p.Limits.MaxQRCodes)
	}

	extras := ""
	if p.Limits.CanCustomize {
		extras += ", customization"
	}
	if p.Limits.CanTrackAnalytics {
		extras += ", analytics"
	}
	if p.Limits.CanExportData {
		extras += ", svg/pdf export"
	}
	return fmt.Sprintf("%-10s %-12s %s%s", p.Type, price, codes, extras)
}

// Upgrade starts a checkout for the target plan: "upgrade <plan>". Payment
// finishes in the browser on the returned URL.
func (a *App) Upgrade(ctx context.Context, args []string) error {
	url, err := a.billing.Upgrade(ctx, models.Plan(args[0]))
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	printlnFn("Open this URL to complete the upgrade:")
	printlnFn(" ", url)
	printlnFn("Run 'profile' afterwards to refresh your plan.")
	return nil
}
