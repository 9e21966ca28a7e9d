package database

import (
	"context"
	"fmt"
	"strings"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

var _ output.AdminRepository = (*AdminRepository)(nil)

type AdminRepository struct {
	db DB
}

func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail looks an admin up case-insensitively.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	var (
		a  entities.Admin
		id int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, email, name, role, password_hash FROM admins WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&id, &a.Email, &a.Name, &a.Role, &a.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("get admin by email: %w", translateError(err))
	}
	a.ID = uint(id)
	return &a, nil
}

// Upsert inserts the admin or refreshes name, role and password of an
// existing row with the same email.
func (r *AdminRepository) Upsert(ctx context.Context, admin *entities.Admin) error {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO admins (email, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash,
			updated_at = NOW()
		RETURNING id`,
		strings.ToLower(strings.TrimSpace(admin.Email)), admin.Name, admin.Role, admin.PasswordHash,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	admin.ID = uint(id)
	return nil
}
