package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/qrtrack/internal/client/entitlement"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/common"
)

// Generate runs the interactive generation form: target URL, optional
// title and description, and customization when the plan (or anonymous
// use) allows it. The form state machine keeps retry-after-failure and
// generate-another flows honest.
func (a *App) Generate(ctx context.Context) error {
	if err := a.form.Reset(); err != nil {
		printlnFn("error:", err)
		return err
	}

	req, err := a.collectGenerateRequest(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	if err := a.form.Begin(); err != nil {
		printlnFn("error:", err)
		return err
	}

	result, err := a.qr.Generate(ctx, *req)
	if err != nil {
		_ = a.form.Fail()
		if errors.Is(err, common.ErrorPlanLimit) {
			printlnFn("Generation blocked:", err)
			printlnFn("Run 'plans' to compare tiers or 'upgrade <plan>' to get more codes.")
		} else {
			printlnFn("Generation failed:", err)
		}
		return err
	}
	_ = a.form.Succeed()

	code := result.Code
	printlnFn("Created QR code", code.Label())
	printlnFn("  Short URL:", code.ShortURL)
	printlnFn("  Target:   ", code.OriginalURL)
	if result.Warning != "" {
		printlnFn("Warning:", result.Warning)
	}

	save, err := GetYesNo(a.reader, "Save the png now?", true, os.Stdout)
	if err == nil && save {
		if path, exportErr := a.exporter.Export(ctx, code, a.formatFor(code.ID)); exportErr != nil {
			printlnFn("Save failed:", exportErr)
		} else {
			printlnFn("Saved to", path)
		}
	}
	return nil
}

func (a *App) collectGenerateRequest(ctx context.Context) (*models.GenerateRequest, error) {
	target, err := GetSimpleText(a.reader, "Enter the URL to encode", os.Stdout)
	if err != nil {
		return nil, err
	}
	title, err := GetSimpleText(a.reader, "Title (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}

	req := &models.GenerateRequest{URL: target, Title: title, Description: description}

	user, err := a.session.User(ctx)
	if err != nil {
		return nil, err
	}
	decision := entitlement.EvaluateFor(user, entitlement.Request{Action: entitlement.ActionCustomize})
	if !decision.Allowed {
		printlnFn("Using default appearance:", decision.Reason)
		return req, nil
	}

	customize, err := GetYesNo(a.reader, "Customize appearance?", false, os.Stdout)
	if err != nil || !customize {
		return req, err
	}
	return a.collectCustomization(req)
}

func (a *App) collectCustomization(req *models.GenerateRequest) (*models.GenerateRequest, error) {
	sizeText, err := GetTextDefault(a.reader, "Size in pixels", "256", os.Stdout)
	if err != nil {
		return nil, err
	}
	size, err := strconv.Atoi(sizeText)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid size %q", sizeText)
	}
	req.Size = size

	level, err := GetTextDefault(a.reader, "Error correction (L/M/Q/H)", "M", os.Stdout)
	if err != nil {
		return nil, err
	}
	switch models.ErrorCorrectionLevel(level) {
	case models.ECLow, models.ECMedium, models.ECQuartile, models.ECHigh:
		req.ErrorCorrectionLevel = models.ErrorCorrectionLevel(level)
	default:
		return nil, fmt.Errorf("invalid error correction level %q", level)
	}

	if req.ForegroundColor, err = GetTextDefault(a.reader, "Foreground color", "#000000", os.Stdout); err != nil {
		return nil, err
	}
	if req.BackgroundColor, err = GetTextDefault(a.reader, "Background color", "#FFFFFF", os.Stdout); err != nil {
		return nil, err
	}
	return req, nil
}
