package input

import (
	"context"

	"shikkha/internal/domain/entities"
)

// Claims is the identity carried by a validated token.
type Claims struct {
	Email string
	Name  string
	Role  string
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (entities.AdminSession, error)
	ValidateToken(token string) (*Claims, error)
}
