package repositories

import (
	"errors"
	"fmt"

	"rezopay/internal/models"

	"gorm.io/gorm"
)

type schemeRepository struct {
	db *gorm.DB
}

// NewSchemeRepository creates a new scheme repository instance.
func NewSchemeRepository(db *gorm.DB) SchemeRepository {
	return &schemeRepository{db: db}
}

func (r *schemeRepository) Create(scheme *models.Scheme) error {
	if err := r.db.Create(scheme).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSchemeNameTaken
		}
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *schemeRepository) GetByID(id uint) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := r.db.First(&scheme, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemeNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &scheme, nil
}

func (r *schemeRepository) GetByName(name string) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := r.db.Where("name = ?", name).First(&scheme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemeNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &scheme, nil
}

// SchemeByID implements the resolver's directory contract: unknown
// identifiers resolve to (nil, nil).
func (r *schemeRepository) SchemeByID(id uint) (*models.Scheme, error) {
	scheme, err := r.GetByID(id)
	if errors.Is(err, ErrSchemeNotFound) {
		return nil, nil
	}
	return scheme, err
}

func (r *schemeRepository) ListAll() ([]*models.Scheme, error) {
	var schemes []*models.Scheme
	if err := r.db.Order("id").Find(&schemes).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return schemes, nil
}

func (r *schemeRepository) ListByCreator(creatorID uint) ([]*models.Scheme, error) {
	var schemes []*models.Scheme
	if err := r.db.Where("created_by = ?", creatorID).Order("id").Find(&schemes).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return schemes, nil
}

func (r *schemeRepository) Update(scheme *models.Scheme) error {
	if err := r.db.Save(scheme).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *schemeRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Scheme{}, id).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *schemeRepository) CountChildren(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Scheme{}).Where("parent_scheme_id = ?", id).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return count, nil
}

func (r *schemeRepository) GetService(id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &service, nil
}

func (r *schemeRepository) GetServiceByCode(code string) (*models.Service, error) {
	var service models.Service
	if err := r.db.Where("code = ?", code).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &service, nil
}

func (r *schemeRepository) ListServices() ([]*models.Service, error) {
	var services []*models.Service
	if err := r.db.Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return services, nil
}

func (r *schemeRepository) CreateService(service *models.Service) error {
	if err := r.db.Create(service).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}
