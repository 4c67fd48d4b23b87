package auth

import (
	"time"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	Account     domain.Account
}
