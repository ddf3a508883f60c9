package models

// User is the authenticated account as returned by the backend, including
// the plan-shaped limits and usage counters the entitlement gate consumes.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Plan   Plan   `json:"plan"`
	Limits Limits `json:"limits"`
	Usage  *Usage `json:"usage,omitempty"`
}
