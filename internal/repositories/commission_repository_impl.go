package repositories

import (
	"context"
	"errors"
	"fmt"

	"rezopay/internal/models"
	"rezopay/internal/repositories/cache"

	"gorm.io/gorm"
)

type commissionRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewCommissionRepository creates a new commission cap repository.
func NewCommissionRepository(db *gorm.DB, cacheService *cache.CacheService) CommissionRepository {
	return &commissionRepository{
		db:    db,
		cache: cacheService,
	}
}

func (r *commissionRepository) Cap(schemeID, serviceID uint) (*models.SchemeCommission, error) {
	if r.cache != nil {
		if record, ok := r.cache.GetCap(context.Background(), schemeID, serviceID); ok {
			return record, nil
		}
	}

	record, err := r.GetBySchemeService(schemeID, serviceID)
	if errors.Is(err, ErrCapNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.CacheCap(context.Background(), record)
	}
	return record, nil
}

func (r *commissionRepository) GetBySchemeService(schemeID, serviceID uint) (*models.SchemeCommission, error) {
	var record models.SchemeCommission
	err := r.db.Where("scheme_id = ? AND service_id = ?", schemeID, serviceID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCapNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &record, nil
}

func (r *commissionRepository) Upsert(record *models.SchemeCommission) error {
	if err := r.db.Save(record).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if r.cache != nil {
		_ = r.cache.InvalidateCap(context.Background(), record.SchemeID, record.ServiceID)
	}
	return nil
}

func (r *commissionRepository) ListByScheme(schemeID uint) ([]*models.SchemeCommission, error) {
	var records []*models.SchemeCommission
	if err := r.db.Where("scheme_id = ?", schemeID).Order("service_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return records, nil
}
