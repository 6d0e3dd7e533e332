package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest represents the request to create a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents an account for API responses (avoids import cycle with db package).
type User struct {
	ID             uuid.UUID       `json:"id"`
	Email          string          `json:"email"`
	Profile        *UserProfile    `json:"profile,omitempty"`
	CachedTimeline json.RawMessage `json:"cached_timeline,omitempty"`
	CachedTaxGuide json.RawMessage `json:"cached_tax_guide,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AuthResponse represents the register/login response with an authentication token.
type AuthResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}

// SaveProfileRequest represents a profile save request.
type SaveProfileRequest struct {
	Profile UserProfile `json:"profile" validate:"required"`
}

// SaveTimelineRequest represents a request to persist a generated timeline.
type SaveTimelineRequest struct {
	UserInput        UserProfile     `json:"user_input" validate:"required"`
	TimelineResponse json.RawMessage `json:"timeline_response" validate:"required"`
}

// CacheTimelineRequest represents a request to cache the latest timeline on the account.
type CacheTimelineRequest struct {
	TimelineResponse json.RawMessage `json:"timeline_response" validate:"required"`
}

// CacheTaxGuideRequest represents a request to cache the latest tax guide on the account.
type CacheTaxGuideRequest struct {
	TaxGuide json.RawMessage `json:"tax_guide" validate:"required"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
