package models

// PlanInfo is one purchasable tier as described by GET /billing/plans.
type PlanInfo struct {
	Type        Plan     `json:"type"`
	Name        string   `json:"name"`
	PriceCents  int      `json:"priceCents"`
	Period      string   `json:"period"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Limits      Limits   `json:"limits"`
}

// PlansResponse is the response of GET /billing/plans. The publishable key
// belongs to the external billing provider; the client only forwards it.
type PlansResponse struct {
	Plans          []PlanInfo `json:"plans"`
	PublishableKey string     `json:"publishableKey"`
}

// CheckoutSession is the response of POST /billing/create-checkout-session.
// Payment itself happens on the external hosted page at URL.
type CheckoutSession struct {
	URL string `json:"url"`
}
