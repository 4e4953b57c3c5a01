package session

import (
	"time"

	"github.com/uptrace/bun"
)

// AdminUser is a row of the usuarioadmin table. Admins only sign in;
// they are never exposed through the student-facing endpoints.
type AdminUser struct {
	bun.BaseModel `bun:"table:usuarioadmin,alias:u"`

	ID           int       `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash []byte    `bun:"senha,notnull"`
	PasswordSalt []byte    `bun:"salt,notnull"`
	CreatedAt    time.Time `bun:"datacriado,nullzero,notnull,default:current_timestamp"`
}

// SignInRequest is the POST /sessao payload.
type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// TokenResponse carries the issued bearer token and its expiry.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
