package auth

import (
	"github.com/lavka-market/lavka-backend/pkg/db/models"
)

// RequestMagicLinkInput starts the login flow.
type RequestMagicLinkInput struct {
	Email string
	IP    string
}

// Profile carries the fields needed to create an account on first login.
type Profile struct {
	Name  string
	Phone *string
}

// ConsumeInput finishes the login flow.
type ConsumeInput struct {
	Token     string
	Profile   *Profile
	UserAgent *string
	IP        *string
}

// RefreshInput rotates a refresh token.
type RefreshInput struct {
	RefreshToken string
	UserAgent    *string
	IP           *string
}

// Session is the issued credential pair plus the authenticated user.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}
