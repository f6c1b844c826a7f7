// Package scheme implements scheme tree management and commission cap
// configuration. Caps set here are what the settlement engine later
// resolves against; the write-side rules keep child schemes from
// loosening what their ancestors allow.
package scheme

import (
	"errors"
	"fmt"

	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/validation"
)

var (
	ErrNotAllowed         = errors.New("not allowed")
	ErrNoSchemeAssigned   = errors.New("caller is not assigned to any scheme")
	ErrRootSchemeDelete   = errors.New("only SUPER_ADMIN can delete root schemes")
	ErrSeniorRole         = errors.New("cannot set commission for a role at or above your own")
	ErrExceedsParentLimit = errors.New("commission cannot exceed parent scheme limit")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service interface {
	Create(actor *models.User, input *models.CreateSchemeInput) (*models.Scheme, error)
	Get(id uint) (*models.Scheme, error)
	List(actor *models.User) ([]*models.Scheme, error)
	Update(actor *models.User, id uint, input *models.UpdateSchemeInput) (*models.Scheme, error)
	Delete(actor *models.User, id uint) error

	// SetCommission upserts the cap record for (scheme, service).
	SetCommission(actor *models.User, input *models.CommissionSetupInput) (*models.SchemeCommission, error)
	ListCommissions(schemeID uint) ([]*models.SchemeCommission, error)

	ListServices() ([]*models.Service, error)
}

type service struct {
	schemes repositories.SchemeRepository
	caps    repositories.CommissionRepository
}

func NewService(schemes repositories.SchemeRepository, caps repositories.CommissionRepository) Service {
	return &service{
		schemes: schemes,
		caps:    caps,
	}
}

func (s *service) Create(actor *models.User, input *models.CreateSchemeInput) (*models.Scheme, error) {
	v := validation.New()
	v.Required("name", input.Name)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.Error())
	}

	if !actor.Role.CanSetCommission() {
		return nil, fmt.Errorf("%w: %s cannot create schemes", ErrNotAllowed, actor.Role)
	}

	// SUPER_ADMIN creates roots; everyone else creates a child of their
	// own scheme. Parent assignment is never free-form, which is what
	// keeps the scheme tree acyclic by construction.
	var parentID *uint
	if actor.Role != models.RoleSuperAdmin {
		if actor.SchemeID == nil {
			return nil, ErrNoSchemeAssigned
		}
		parentID = actor.SchemeID
	}

	if existing, _ := s.schemes.GetByName(input.Name); existing != nil {
		return nil, repositories.ErrSchemeNameTaken
	}

	scheme := &models.Scheme{
		Name:           input.Name,
		ParentSchemeID: parentID,
		CreatedBy:      actor.ID,
		IsActive:       true,
	}
	if err := s.schemes.Create(scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func (s *service) Get(id uint) (*models.Scheme, error) {
	return s.schemes.GetByID(id)
}

func (s *service) List(actor *models.User) ([]*models.Scheme, error) {
	if actor.Role == models.RoleSuperAdmin {
		return s.schemes.ListAll()
	}
	return s.schemes.ListByCreator(actor.ID)
}

func (s *service) Update(actor *models.User, id uint, input *models.UpdateSchemeInput) (*models.Scheme, error) {
	scheme, err := s.schemes.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !actor.Role.CanSetCommission() {
		return nil, fmt.Errorf("%w: %s cannot update schemes", ErrNotAllowed, actor.Role)
	}

	if input.Name != nil {
		scheme.Name = *input.Name
	}
	if input.IsActive != nil {
		scheme.IsActive = *input.IsActive
	}

	if err := s.schemes.Update(scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func (s *service) Delete(actor *models.User, id uint) error {
	scheme, err := s.schemes.GetByID(id)
	if err != nil {
		return err
	}

	if scheme.ParentSchemeID == nil && actor.Role != models.RoleSuperAdmin {
		return ErrRootSchemeDelete
	}

	children, err := s.schemes.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return repositories.ErrSchemeHasChildren
	}

	return s.schemes.Delete(id)
}

func (s *service) SetCommission(actor *models.User, input *models.CommissionSetupInput) (*models.SchemeCommission, error) {
	v := validation.New()
	v.CommissionSetup(input)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.Error())
	}

	if !actor.Role.CanSetCommission() {
		return nil, fmt.Errorf("%w: %s cannot set commissions", ErrNotAllowed, actor.Role)
	}

	// Only schemes the caller created may be configured by them.
	scheme, err := s.schemes.GetByID(input.SchemeID)
	if err != nil {
		return nil, err
	}
	if scheme.CreatedBy != actor.ID && actor.Role != models.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: scheme belongs to another user", ErrNotAllowed)
	}

	if _, err := s.schemes.GetService(input.ServiceID); err != nil {
		return nil, err
	}

	var parentCap *models.SchemeCommission
	if scheme.ParentSchemeID != nil {
		parentCap, err = s.caps.Cap(*scheme.ParentSchemeID, input.ServiceID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.validateAgainstHierarchy(actor, input, parentCap); err != nil {
		return nil, err
	}

	// Upsert: load the existing record when present so set values merge
	// into it, mirroring the cap lifecycle (create once, adjust rates).
	record, err := s.caps.GetBySchemeService(input.SchemeID, input.ServiceID)
	if errors.Is(err, repositories.ErrCapNotFound) {
		record = &models.SchemeCommission{
			SchemeID:  input.SchemeID,
			ServiceID: input.ServiceID,
		}
	} else if err != nil {
		return nil, err
	}

	for role, value := range input.Rates() {
		if value != nil {
			record.SetRateFor(role, value)
		}
	}
	record.Kind = input.Kind
	record.SetByUserID = actor.ID

	if err := s.caps.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) ListCommissions(schemeID uint) ([]*models.SchemeCommission, error) {
	return s.caps.ListByScheme(schemeID)
}

func (s *service) ListServices() ([]*models.Service, error) {
	return s.schemes.ListServices()
}

// validateAgainstHierarchy enforces the two write-side rules: a caller
// may only set roles strictly junior to their own, and a child scheme's
// value may never exceed what the parent scheme allows for that role.
func (s *service) validateAgainstHierarchy(actor *models.User, input *models.CommissionSetupInput, parentCap *models.SchemeCommission) error {
	for _, role := range models.PayableRoles {
		value := input.Rates()[role]
		if value == nil {
			continue
		}

		if !actor.Role.SeniorTo(role) {
			return fmt.Errorf("%w: %s", ErrSeniorRole, role)
		}

		if parentCap != nil {
			if parentValue := parentCap.RateFor(role); parentValue != nil && *value > *parentValue {
				return fmt.Errorf("%w: %s", ErrExceedsParentLimit, role)
			}
		}
	}
	return nil
}
