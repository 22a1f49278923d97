package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ActorTokenPayload captures the data available when minting an actor token.
type ActorTokenPayload struct {
	RepID   uuid.UUID
	Email   string
	IsAdmin bool
}

// ActorTokenClaims is the typed JWT carried by callers for attribution.
type ActorTokenClaims struct {
	RepID   uuid.UUID `json:"rep_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}
