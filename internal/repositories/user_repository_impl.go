package repositories

import (
	"context"
	"errors"
	"fmt"

	"rezopay/internal/models"
	"rezopay/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cacheService,
	}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if r.cache != nil {
		if user, ok := r.cache.GetUser(context.Background(), id); ok {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if r.cache != nil {
		_ = r.cache.CacheUser(context.Background(), &user)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &user, nil
}

// UserByID implements the settlement engine's directory contract: unknown
// identifiers resolve to (nil, nil) so the chain walk can treat a missing
// parent as the end of the chain.
func (r *userRepository) UserByID(id uint) (*models.User, error) {
	user, err := r.GetByID(id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if r.cache != nil {
		_ = r.cache.InvalidateUser(context.Background(), user)
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if err := r.db.Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if r.cache != nil {
		_ = r.cache.InvalidateUser(context.Background(), user)
	}
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	err := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if r.cache != nil {
		_ = r.cache.Delete(context.Background(), cache.UserKey(userID))
	}
	return nil
}

func (r *userRepository) ListByCreator(creatorID uint, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.Model(&models.User{}).Where("created_by = ?", creatorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return users, total, nil
}

func (r *userRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return count, nil
}
