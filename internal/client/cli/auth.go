package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, email, name, password)
	if err != nil {
		printlnFn("Registration failed:", err)
		return err
	}

	a.userEmail = user.Email
	printlnFn(fmt.Sprintf("Welcome, %s! You are on the %s plan (%d QR codes).",
		user.Name, user.Plan, user.Limits.MaxQRCodes))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	a.userEmail = user.Email
	printlnFn("Logged in as", user.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err)
		return err
	}
	a.userEmail = ""
	a.formats = make(map[string]export.Format)
	printlnFn("Logged out")
	return nil
}

// Profile prints the account with fresh usage counters.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.auth.Profile(ctx, true)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.Name, user.Email))
	printlnFn("Plan:", user.Plan)
	if user.Limits.MaxQRCodes > 0 {
		usage := 0
		if user.Usage != nil {
			usage = user.Usage.QRCodesCreated
		}
		printlnFn(fmt.Sprintf("QR codes: %d of %d", usage, user.Limits.MaxQRCodes))
	} else {
		printlnFn("QR codes: unlimited")
	}
	printlnFn(fmt.Sprintf("Customize: %v, analytics: %v, export: %v",
		user.Limits.CanCustomize, user.Limits.CanTrackAnalytics, user.Limits.CanExportData))
	return nil
}
