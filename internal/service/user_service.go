package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidRole        = errors.New("invalid role")
)

// UserService implements staff account administration. Every mutation names
// the acting user and is persisted together with its audit record.
type UserService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

func (s *UserService) CreateUser(ctx context.Context, req domain.CreateUserRequest, actor string) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user, s.auditEntry(actor, "create_user", username)); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountInactive
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest, actor string) (*domain.User, error) {
	return s.applyUpdate(ctx, id, req, actor, "update_user")
}

// DeactivateUser disables an account without deleting its audit history.
func (s *UserService) DeactivateUser(ctx context.Context, id, actor string) error {
	inactive := false
	_, err := s.applyUpdate(ctx, id, domain.UpdateUserRequest{Active: &inactive}, actor, "deactivate_user")
	return err
}

func (s *UserService) applyUpdate(ctx context.Context, id string, req domain.UpdateUserRequest, actor, action string) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateUser(ctx, *user, s.auditEntry(actor, action, user.Username)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) auditEntry(actor, action, detail string) domain.ActivityLog {
	return domain.ActivityLog{
		ID:        uuid.NewString(),
		Actor:     actor,
		Action:    action,
		Entity:    "user",
		Detail:    detail,
		CreatedAt: s.now().UTC(),
	}
}

func validRole(role domain.UserRole) bool {
	switch role {
	case domain.RoleAdmin, domain.RolePharmacist, domain.RoleCashier:
		return true
	}
	return false
}
