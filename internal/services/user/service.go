// Package user implements member management for the reseller hierarchy:
// onboarding, activation and removal, all scoped by the onboarding rules
// of the role ladder.
package user

import (
	"errors"
	"fmt"

	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrRoleNotOnboardable = errors.New("role cannot be onboarded by caller")
	ErrSuperAdminExists   = errors.New("a SUPER_ADMIN already exists")
	ErrNotAuthorized      = errors.New("not authorized for this user")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	// Onboard creates a subordinate of actor. The new user's parent link
	// is the actor; the payout chain is built from these links.
	Onboard(actor *models.User, input *models.OnboardUserInput) (*models.User, error)
	SetActive(actor *models.User, userID uint, active bool) (*models.User, error)
	Delete(actor *models.User, userID uint) error
	ListSubordinates(actorID uint, page, limit int) ([]*models.User, int64, error)
}

type service struct {
	users   repositories.UserRepository
	schemes repositories.SchemeRepository
}

func NewService(users repositories.UserRepository, schemes repositories.SchemeRepository) Service {
	return &service{
		users:   users,
		schemes: schemes,
	}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *service) Onboard(actor *models.User, input *models.OnboardUserInput) (*models.User, error) {
	v := validation.New()
	v.Required("name", input.Name)
	v.Email("email", input.Email)
	v.Password("password", input.Password)
	v.Check(input.Role.Valid(), "role", "unknown role")
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.Error())
	}

	// There is exactly one SUPER_ADMIN, seeded at bootstrap.
	if input.Role == models.RoleSuperAdmin {
		count, err := s.users.CountByRole(models.RoleSuperAdmin)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSuperAdminExists
		}
	}

	if !models.CanOnboard(actor.Role, input.Role) {
		return nil, fmt.Errorf("%w: %s cannot onboard %s", ErrRoleNotOnboardable, actor.Role, input.Role)
	}

	if existing, _ := s.users.GetByEmail(input.Email); existing != nil {
		return nil, repositories.ErrEmailTaken
	}

	if input.SchemeID != nil {
		if _, err := s.schemes.GetByID(*input.SchemeID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	actorID := actor.ID
	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Role:      input.Role,
		SchemeID:  input.SchemeID,
		ParentID:  &actorID,
		CreatedBy: &actorID,
		IsActive:  true,
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) SetActive(actor *models.User, userID uint, active bool) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if !s.canManage(actor, user) {
		return nil, ErrNotAuthorized
	}

	user.IsActive = active
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(actor *models.User, userID uint) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if !s.canManage(actor, user) {
		return ErrNotAuthorized
	}

	return s.users.Delete(userID)
}

func (s *service) ListSubordinates(actorID uint, page, limit int) ([]*models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > validation.MaxPageSize {
		limit = validation.MaxPageSize
	}
	return s.users.ListByCreator(actorID, (page-1)*limit, limit)
}

// canManage: only the creator or the SUPER_ADMIN may mutate a user.
func (s *service) canManage(actor, target *models.User) bool {
	if actor.Role == models.RoleSuperAdmin {
		return true
	}
	return target.CreatedBy != nil && *target.CreatedBy == actor.ID
}
