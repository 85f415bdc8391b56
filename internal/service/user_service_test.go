package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/repository"
)

type stubUserRepo struct {
	byID   map[string]domain.User
	audits []domain.ActivityLog
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[string]domain.User{}}
}

func (r *stubUserRepo) CreateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error {
	r.byID[user.ID] = user
	r.audits = append(r.audits, audit)
	return nil
}

func (r *stubUserRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := r.byID[id]; ok {
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.byID {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	for _, user := range r.byID {
		users = append(users, user)
	}
	return users, nil
}

func (r *stubUserRepo) UpdateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error {
	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[user.ID] = user
	r.audits = append(r.audits, audit)
	return nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewUserService(newStubUserRepo())

	user, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "maria",
		FullName: "Maria Santos",
		Password: "s3cret!",
		Role:     domain.RolePharmacist,
	}, "root")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo())

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "maria",
		Password: "pw",
		Role:     domain.UserRole("superuser"),
	}, "root")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthenticateLifecycle(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Username: "maria",
		Password: "s3cret!",
		Role:     domain.RoleCashier,
	}, "root")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "maria", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "maria", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.DeactivateUser(ctx, created.ID, "root"))
	_, err = svc.Authenticate(ctx, "maria", "s3cret!")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestUpdateUserChangesRoleAndPassword(t *testing.T) {
	svc := NewUserService(newStubUserRepo())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Username: "maria",
		Password: "old-pass",
		Role:     domain.RoleCashier,
	}, "root")
	require.NoError(t, err)

	newRole := domain.RolePharmacist
	newPass := "new-pass"
	updated, err := svc.UpdateUser(ctx, created.ID, domain.UpdateUserRequest{
		Role:     &newRole,
		Password: &newPass,
	}, "root")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePharmacist, updated.Role)

	_, err = svc.Authenticate(ctx, "maria", "new-pass")
	assert.NoError(t, err)
}

func TestUserWritesCarryAuditRecords(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Username: "maria",
		Password: "pw",
		Role:     domain.RoleCashier,
	}, "root")
	require.NoError(t, err)

	// every mutation hands its audit entry to the repository, so the
	// account write and the activity record commit together
	require.Len(t, repo.audits, 1)
	assert.NotEmpty(t, repo.audits[0].ID)
	assert.Equal(t, "root", repo.audits[0].Actor)
	assert.Equal(t, "create_user", repo.audits[0].Action)
	assert.Equal(t, "user", repo.audits[0].Entity)
	assert.Equal(t, "maria", repo.audits[0].Detail)

	name := "Maria Santos"
	_, err = svc.UpdateUser(ctx, created.ID, domain.UpdateUserRequest{FullName: &name}, "root")
	require.NoError(t, err)
	require.Len(t, repo.audits, 2)
	assert.Equal(t, "update_user", repo.audits[1].Action)

	require.NoError(t, svc.DeactivateUser(ctx, created.ID, "root"))
	require.Len(t, repo.audits, 3)
	assert.Equal(t, "deactivate_user", repo.audits[2].Action)
}
