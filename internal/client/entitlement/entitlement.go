// Package entitlement maps a subscription plan plus usage counters to the
// set of allowed client actions. Evaluation is pure and stateless: the
// backend remains the authority, these checks only guide the UI before a
// request is submitted.
package entitlement

import (
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
)

// Action is a client capability gated by the subscription plan.
type Action string

const (
	ActionCreate        Action = "createArtifact"
	ActionCustomize     Action = "customize"
	ActionViewAnalytics Action = "viewAnalytics"
	ActionExportFormat  Action = "exportFormat"
)

// Request names the action being attempted. Format is consulted only for
// ActionExportFormat.
type Request struct {
	Action Action
	Format export.Format
}

// Decision is the outcome of an evaluation. Reason is set only on denial
// and is suitable for direct display.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// WarnThreshold is the usage ratio at which a non-blocking warning is
// surfaced. It never substitutes for the hard limit check.
const WarnThreshold = 0.8

// Evaluate applies the gating rules in precedence order and returns the
// first matching denial, or an allow.
//
// Rules:
//  1. create is denied once usage has reached the plan's code limit;
//  2. customize is denied without the canCustomize capability;
//  3. viewAnalytics is denied without the canTrackAnalytics capability;
//  4. exporting svg or pdf is denied without the canExportData capability
//     (png stays available to every plan);
//  5. anything else is allowed.
func Evaluate(plan models.Plan, limits models.Limits, usage models.Usage, req Request) Decision {
	switch req.Action {
	case ActionCreate:
		// A non-positive max means the plan is unlimited.
		if limits.MaxQRCodes > 0 && usage.QRCodesCreated >= limits.MaxQRCodes {
			return deny(fmt.Sprintf(
				"plan limit reached: the %s plan allows %d QR codes; upgrade to create more",
				plan, limits.MaxQRCodes))
		}

	case ActionCustomize:
		if !limits.CanCustomize {
			return deny(fmt.Sprintf("customization is not included in the %s plan", plan))
		}

	case ActionViewAnalytics:
		if !limits.CanTrackAnalytics {
			return deny(fmt.Sprintf("analytics tracking is not included in the %s plan; upgrade to view scan data", plan))
		}

	case ActionExportFormat:
		if req.Format != export.FormatPNG && !limits.CanExportData {
			return deny(fmt.Sprintf("%s export is not included in the %s plan; upgrade to download this format", req.Format, plan))
		}
	}

	return allow()
}

// EvaluateFor is Evaluate with the anonymous-visitor rule applied: a client
// without a signed-in user is optimistically granted customize rights (the
// backend arbitrates on submit), while every other gated action requires an
// account.
func EvaluateFor(user *models.User, req Request) Decision {
	if user == nil {
		if req.Action == ActionCustomize || req.Action == ActionCreate {
			return allow()
		}
		if req.Action == ActionExportFormat && req.Format == export.FormatPNG {
			return allow()
		}
		return deny("sign in to use this feature")
	}

	var usage models.Usage
	if user.Usage != nil {
		usage = *user.Usage
	}
	return Evaluate(user.Plan, user.Limits, usage, req)
}

// UsageRatio returns created/max, or 0 when the limit is non-positive
// (unlimited plans report a max of 0 or below).
func UsageRatio(usage models.Usage, limits models.Limits) float64 {
	if limits.MaxQRCodes <= 0 {
		return 0
	}
	return float64(usage.QRCodesCreated) / float64(limits.MaxQRCodes)
}

// NearLimit reports whether usage has crossed the warning threshold. It is
// a UX nicety distinct from the hard denial in Evaluate.
func NearLimit(usage models.Usage, limits models.Limits) bool {
	return UsageRatio(usage, limits) >= WarnThreshold
}
