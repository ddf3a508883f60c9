package models

// Plan is a subscription tier. Tiers form a total order of increasing
// capability; compare with Rank.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanBusiness   Plan = "business"
	PlanEnterprise Plan = "enterprise"
)

// Rank returns the position of the plan in the capability order, with
// free lowest. Unknown plans rank below free so a garbled value never
// unlocks anything.
func (p Plan) Rank() int {
	switch p {
	case PlanFree:
		return 0
	case PlanPro:
		return 1
	case PlanBusiness:
		return 2
	case PlanEnterprise:
		return 3
	default:
		return -1
	}
}

// Valid reports whether p is one of the known tiers.
func (p Plan) Valid() bool {
	return p.Rank() >= 0
}

// Limits is the capability set the backend grants a plan. The client only
// consumes these values; it never invents them.
type Limits struct {
	MaxQRCodes        int  `json:"maxQRCodes"`
	MaxScansPerMonth  int  `json:"maxScansPerMonth"`
	CanCustomize      bool `json:"canCustomize"`
	CanTrackAnalytics bool `json:"canTrackAnalytics"`
	CanExportData     bool `json:"canExportData"`
}

// Usage holds backend-maintained counters the client reads to pre-validate
// requests. The backend's own validation stays authoritative.
type Usage struct {
	QRCodesCreated int    `json:"qrCodesCreated"`
	MonthlyScans   int    `json:"monthlyScans"`
	LastResetDate  string `json:"lastResetDate,omitempty"`
}
