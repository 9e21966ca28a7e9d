package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/input"
	"shikkha/internal/ports/output"
)

var _ input.AuthUseCase = (*AuthService)(nil)

const tokenIssuer = "shikkha"

// tokenClaims is the JWT payload handed to admin clients.
type tokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	adminRepo  output.AdminRepository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAuthService signs tokens with secret; they expire after ttl.
func NewAuthService(adminRepo output.AdminRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		secret:     []byte(secret),
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (entities.AdminSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return entities.AdminSession{}, domain.ErrEmptyCredentials
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return entities.AdminSession{}, domain.ErrInvalidLogin
		}
		return entities.AdminSession{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return entities.AdminSession{}, domain.ErrInvalidLogin
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return entities.AdminSession{}, err
	}
	return entities.AdminSession{
		Token: token,
		User:  entities.User{Name: admin.Name, Email: admin.Email, Role: admin.Role},
	}, nil
}

// ValidateToken checks signature, issuer and expiry of token.
func (s *AuthService) ValidateToken(token string) (*input.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	return &input.Claims{Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}

// EnsureAdmin creates the bootstrap administrator, or resets its name and
// password when it already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("%w: bootstrap admin needs email and password", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		name = email
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &entities.Admin{Email: email, Name: name, Role: entities.RoleAdmin, PasswordHash: string(hash)}
	if err := s.adminRepo.Upsert(ctx, admin); err != nil {
		return err
	}
	log.Printf("✅ Admin account ready: %s", email)
	return nil
}

func (s *AuthService) issueToken(admin *entities.Admin) (string, error) {
	now := s.now()
	claims := &tokenClaims{
		Name:  admin.Name,
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
