package common

const (
	// AuthorizationHeader carries the bearer token on outbound requests.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader carries a client-generated id for request correlation.
	RequestIDHeader = "X-Request-Id"

	// BearerPrefix is prepended to the token in the Authorization header.
	BearerPrefix = "Bearer "
)
