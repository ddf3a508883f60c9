package models

// Credentials is the payload of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResponse carries the bearer token and the account it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
