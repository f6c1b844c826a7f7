package auth

import (
	"testing"

	"rezopay/internal/models"
	"rezopay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(*models.User) error { return nil }

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) Update(*models.User) error { return nil }
func (f *fakeUserRepo) Delete(uint) error         { return nil }

func (f *fakeUserRepo) IncrementTokenVersion(userID uint) error {
	if u, ok := f.users[userID]; ok {
		u.TokenVersion++
	}
	return nil
}

func (f *fakeUserRepo) ListByCreator(uint, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) CountByRole(models.Role) (int64, error) { return 0, nil }

func seedUser(t *testing.T, password string, active bool) (*fakeUserRepo, *models.User) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Name:         "Retailer One",
		Email:        "retailer@example.com",
		Password:     string(hashed),
		Role:         models.RoleRetailer,
		IsActive:     active,
		TokenVersion: 1,
	}
	u.ID = 9

	return &fakeUserRepo{users: map[uint]*models.User{9: u}}, u
}

func TestLoginSuccess(t *testing.T) {
	repo, u := seedUser(t, "correct-horse", true)
	svc := NewService(repo)

	user, access, refresh, err := svc.Login(u.Email, "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestLoginWrongPassword(t *testing.T) {
	repo, u := seedUser(t, "correct-horse", true)
	svc := NewService(repo)

	_, _, _, err := svc.Login(u.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo, _ := seedUser(t, "correct-horse", true)
	svc := NewService(repo)

	_, _, _, err := svc.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	repo, u := seedUser(t, "correct-horse", false)
	svc := NewService(repo)

	_, _, _, err := svc.Login(u.Email, "correct-horse")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshAfterLogoutRejected(t *testing.T) {
	repo, u := seedUser(t, "correct-horse", true)
	svc := NewService(repo)

	_, _, refresh, err := svc.Login(u.Email, "correct-horse")
	require.NoError(t, err)

	// Logout bumps the token version, invalidating outstanding tokens.
	require.NoError(t, svc.Logout(u.ID))

	_, _, err = svc.RefreshTokens(refresh)
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	repo, u := seedUser(t, "correct-horse", true)
	svc := NewService(repo)

	_, _, refresh, err := svc.Login(u.Email, "correct-horse")
	require.NoError(t, err)

	access, newRefresh, err := svc.RefreshTokens(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
}
