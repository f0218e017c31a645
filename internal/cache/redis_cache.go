package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lsp-search-service/internal/models"

	"github.com/go-redis/redis/v8"
)

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCache создает новый Redis кэш
func NewRedisCache(redisAddr string, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Проверяем подключение к Redis
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ctx:    ctx,
	}, nil
}

// SaveDraftOrder сохраняет черновик в Redis (использует TTL по умолчанию 24 часа)
func (c *RedisCache) SaveDraftOrder(draft models.DraftOrder) error {
	return c.saveDraftOrderWithTTL(draft, 24*time.Hour)
}

// saveDraftOrderWithTTL сохраняет черновик в Redis с указанным TTL
func (c *RedisCache) saveDraftOrderWithTTL(draft models.DraftOrder, ttl time.Duration) error {
	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft order: %w", err)
	}

	key := c.getDraftOrderKey(draft.ID)
	err = c.client.Set(c.ctx, key, draftJSON, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save draft order to Redis: %w", err)
	}

	return nil
}

// GetDraftOrder получает черновик из Redis по идентификатору
func (c *RedisCache) GetDraftOrder(draftID string) (models.DraftOrder, bool, error) {
	key := c.getDraftOrderKey(draftID)
	draftJSON, err := c.client.Get(c.ctx, key).Result()

	if err == redis.Nil {
		return models.DraftOrder{}, false, nil
	}
	if err != nil {
		return models.DraftOrder{}, false, fmt.Errorf("failed to get draft order from Redis: %w", err)
	}

	var draft models.DraftOrder
	err = json.Unmarshal([]byte(draftJSON), &draft)
	if err != nil {
		return models.DraftOrder{}, false, fmt.Errorf("failed to unmarshal draft order: %w", err)
	}

	return draft, true, nil
}

// DraftOrderExists проверяет существование черновика в Redis
func (c *RedisCache) DraftOrderExists(draftID string) (bool, error) {
	key := c.getDraftOrderKey(draftID)
	exists, err := c.client.Exists(c.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check draft order existence: %w", err)
	}

	return exists > 0, nil
}

// RemoveDraftOrder удаляет черновик из Redis по идентификатору
func (c *RedisCache) RemoveDraftOrder(draftID string) error {
	key := c.getDraftOrderKey(draftID)
	err := c.client.Del(c.ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to remove draft order from Redis: %w", err)
	}
	return nil
}

// Clear очищает все ключи черновиков из Redis
func (c *RedisCache) Clear() error {
	pattern := c.getDraftOrderKey("*")
	iter := c.client.Scan(c.ctx, 0, pattern, 0).Iterator()

	for iter.Next(c.ctx) {
		err := c.client.Del(c.ctx, iter.Val()).Err()
		if err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	return nil
}

// GetAllDraftOrders возвращает список всех черновиков из Redis
func (c *RedisCache) GetAllDraftOrders() ([]models.DraftOrder, error) {
	pattern := c.getDraftOrderKey("*")
	keys, err := c.client.Keys(c.ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	var drafts []models.DraftOrder
	for _, key := range keys {
		draftJSON, err := c.client.Get(c.ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get draft order %s: %w", key, err)
		}

		var draft models.DraftOrder
		err = json.Unmarshal([]byte(draftJSON), &draft)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal draft order %s: %w", key, err)
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// Close закрывает соединение с Redis
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// getDraftOrderKey формирует ключ для хранения черновика в Redis
func (c *RedisCache) getDraftOrderKey(draftID string) string {
	return fmt.Sprintf("draft_order:%s", draftID)
}

// Ensure RedisCache implements Cache interface
var _ Cache = (*RedisCache)(nil)
