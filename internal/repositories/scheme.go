package repositories

import (
	"errors"

	"rezopay/internal/models"
)

var (
	ErrSchemeNotFound    = errors.New("scheme not found")
	ErrSchemeNameTaken   = errors.New("scheme name already taken")
	ErrSchemeHasChildren = errors.New("scheme has child schemes")
	ErrServiceNotFound   = errors.New("service not found")
)

// SchemeRepository defines scheme tree access. SchemeByID carries
// directory semantics for the resolver: an unknown identifier yields
// (nil, nil).
type SchemeRepository interface {
	Create(scheme *models.Scheme) error
	GetByID(id uint) (*models.Scheme, error)
	GetByName(name string) (*models.Scheme, error)
	SchemeByID(id uint) (*models.Scheme, error)
	ListAll() ([]*models.Scheme, error)
	ListByCreator(creatorID uint) ([]*models.Scheme, error)
	Update(scheme *models.Scheme) error
	Delete(id uint) error
	CountChildren(id uint) (int64, error)

	GetService(id uint) (*models.Service, error)
	GetServiceByCode(code string) (*models.Service, error)
	ListServices() ([]*models.Service, error)
	CreateService(service *models.Service) error
}
