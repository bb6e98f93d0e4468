package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
)

// minPasswordLength applies to new admin accounts.
const minPasswordLength = 10

// AdminService manages admin user accounts. Authentication itself is an
// external capability; this service only owns account records and password
// hashing.
type AdminService struct {
	adminRepo repository.AdminUserRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo repository.AdminUserRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// CreateAdminUserRequest contains the parameters for creating an admin user.
type CreateAdminUserRequest struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// CreateAdminUser validates the request, hashes the password with bcrypt and
// persists the account.
func (s *AdminService) CreateAdminUser(ctx context.Context, req CreateAdminUserRequest) (*domain.AdminUser, error) {
	verr := &ValidationError{}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		verr.add("email", "is required")
	} else if !strings.Contains(email, "@") {
		verr.add("email", "is not a valid email address")
	}
	if strings.TrimSpace(req.Name) == "" {
		verr.add("name", "is required")
	}
	if len(req.Password) < minPasswordLength {
		verr.add("password", "must be at least 10 characters")
	}
	role, ok := domain.ParseAdminRole(req.Role)
	if !ok {
		verr.add("role", "must be one of superadmin, staff")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.adminRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAdminUser retrieves an admin user by id.
func (s *AdminService) GetAdminUser(ctx context.Context, id string) (*domain.AdminUser, error) {
	if id == "" {
		return nil, ErrInvalidAdminUserID
	}
	return s.adminRepo.GetByID(ctx, id)
}

// ListAdminUsers retrieves all admin users.
func (s *AdminService) ListAdminUsers(ctx context.Context) ([]*domain.AdminUser, error) {
	return s.adminRepo.GetAll(ctx)
}

// DeleteAdminUser removes an admin user permanently.
func (s *AdminService) DeleteAdminUser(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidAdminUserID
	}
	return s.adminRepo.Delete(ctx, id)
}

// CheckPassword reports whether the given password matches the stored hash
// for the account with this email. Used by the external auth layer.
func (s *AdminService) CheckPassword(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	user, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, repository.ErrNotFound
	}
	return user, nil
}
