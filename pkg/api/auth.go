package api

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse is returned on successful login. Token mirrors the auth_token
// cookie so clients that cannot rely on cookies can replay it as a bearer header.
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"` // seconds
}

// MeResponse describes the identity bound to the presented session token.
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationError is a single machine-readable validation failure.
type ValidationError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ErrorResponse is the error envelope for every non-2xx JSON response.
type ErrorResponse struct {
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}
