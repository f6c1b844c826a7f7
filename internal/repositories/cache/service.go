package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rezopay/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps redis with JSON marshalling and typed helpers for the
// hot lookups of the settlement path: users and commission cap records.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get unmarshals the cached value into dest and reports whether the key
// was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

// Key generation

func UserKey(id uint) string {
	return fmt.Sprintf("user:id:%d", id)
}

func UserEmailKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func CapKey(schemeID, serviceID uint) string {
	return fmt.Sprintf("cap:%d:%d", schemeID, serviceID)
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return nil
	}
	return s.Set(ctx, UserKey(user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, bool) {
	var user models.User
	found, err := s.Get(ctx, UserKey(id), &user)
	if err != nil || !found {
		return nil, false
	}
	return &user, true
}

func (s *CacheService) InvalidateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return nil
	}
	return s.Delete(ctx, UserKey(user.ID), UserEmailKey(user.Email))
}

// Commission cap caching. Caps are read on every settlement and mutated
// only by administrators, which makes them the best cache candidate in
// the system.

func (s *CacheService) CacheCap(ctx context.Context, record *models.SchemeCommission) error {
	if record == nil {
		return nil
	}
	return s.Set(ctx, CapKey(record.SchemeID, record.ServiceID), record)
}

func (s *CacheService) GetCap(ctx context.Context, schemeID, serviceID uint) (*models.SchemeCommission, bool) {
	var record models.SchemeCommission
	found, err := s.Get(ctx, CapKey(schemeID, serviceID), &record)
	if err != nil || !found {
		return nil, false
	}
	return &record, true
}

func (s *CacheService) InvalidateCap(ctx context.Context, schemeID, serviceID uint) error {
	return s.Delete(ctx, CapKey(schemeID, serviceID))
}
