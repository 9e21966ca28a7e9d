package output

import (
	"context"

	"shikkha/internal/domain/entities"
)

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.Admin, error)
	Upsert(ctx context.Context, admin *entities.Admin) error
}
