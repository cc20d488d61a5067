package response

import "time"

// SuccessResponse is a bare acknowledgement.
type SuccessResponse struct {
	Message string `json:"message" example:"Draw cancelled"`
}

// ErrorResponse is the error envelope of every endpoint.
type ErrorResponse struct {
	// Machine-readable error code
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Human-readable message
	// example: firstName, lastName, email and qrCodeId are required
	Message string `json:"message"`

	// Optional details, e.g. the binding error
	Details string `json:"details,omitempty"`
}

// TokenResponse is returned by a successful admin login. The same token is
// also set as the auth_token cookie.
type TokenResponse struct {
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthStatus tells the admin UI whether the caller holds a live session.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// HealthResponse is served by /health.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
}
