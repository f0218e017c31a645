package cache

import (
	"context"
	"testing"
	"time"

	"lsp-search-service/internal/datagenerators"
	"lsp-search-service/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isRedisAvailable проверяет доступность Redis
func isRedisAvailable() bool {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       0,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	client.Close()
	return err == nil
}

// setupTestRedisCache создает тестовый Redis кэш
func setupTestRedisCache(t *testing.T) *RedisCache {
	if !isRedisAvailable() {
		t.Skip("Redis is not available")
	}

	cache, err := NewRedisCache("localhost:6379", "", 1) // Используем DB 1 для тестов
	require.NoError(t, err)
	require.NotNil(t, cache)

	err = cache.Clear()
	require.NoError(t, err)

	t.Cleanup(func() {
		if cache != nil {
			cache.Clear()
			cache.Close()
		}
	})

	return cache
}

func TestNewRedisCache(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis is not available")
	}

	cache, err := NewRedisCache("localhost:6379", "", 0)
	assert.NoError(t, err)
	assert.NotNil(t, cache)
	cache.Close()

	_, err = NewRedisCache("invalid:6379", "", 0)
	assert.Error(t, err)
}

func TestRedisCache_SaveAndGetDraftOrder(t *testing.T) {
	cache := setupTestRedisCache(t)

	draft := datagenerators.GenerateDraftOrder()

	err := cache.SaveDraftOrder(draft)
	assert.NoError(t, err)

	retrieved, exists, err := cache.GetDraftOrder(draft.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, draft.ID, retrieved.ID)
	assert.Equal(t, draft.ReadyToShip, retrieved.ReadyToShip)
	assert.Equal(t, draft.RTO, retrieved.RTO)

	require.NotNil(t, retrieved.PickupAddress)
	assert.Equal(t, draft.PickupAddress.City, retrieved.PickupAddress.City)
	assert.Equal(t, draft.PickupAddress.Pincode, retrieved.PickupAddress.Pincode)
	assert.Equal(t, draft.PickupAddress.Email, retrieved.PickupAddress.Email)

	require.NotNil(t, retrieved.PackageDetails)
	assert.Equal(t, draft.PackageDetails.Length, retrieved.PackageDetails.Length)
	require.NotNil(t, retrieved.PackageDetails.Weight)
	assert.Equal(t, draft.PackageDetails.Weight.Value, retrieved.PackageDetails.Weight.Value)

	require.NotNil(t, retrieved.OrderDetails)
	assert.Equal(t, draft.OrderDetails.RetailOrderID, retrieved.OrderDetails.RetailOrderID)
	assert.Equal(t, draft.OrderDetails.Amount, retrieved.OrderDetails.Amount)
}

func TestRedisCache_GetDraftOrder_NonExistent(t *testing.T) {
	cache := setupTestRedisCache(t)

	_, exists, err := cache.GetDraftOrder("non-existent-draft-id")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_DraftOrderExists(t *testing.T) {
	cache := setupTestRedisCache(t)

	draft := datagenerators.GenerateDraftOrder()

	exists, err := cache.DraftOrderExists(draft.ID)
	assert.NoError(t, err)
	assert.False(t, exists)

	err = cache.SaveDraftOrder(draft)
	assert.NoError(t, err)

	exists, err = cache.DraftOrderExists(draft.ID)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisCache_RemoveDraftOrder(t *testing.T) {
	cache := setupTestRedisCache(t)

	draft := datagenerators.GenerateDraftOrder()

	err := cache.SaveDraftOrder(draft)
	assert.NoError(t, err)

	exists, err := cache.DraftOrderExists(draft.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	err = cache.RemoveDraftOrder(draft.ID)
	assert.NoError(t, err)

	exists, err = cache.DraftOrderExists(draft.ID)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Clear(t *testing.T) {
	cache := setupTestRedisCache(t)

	for i := 0; i < 3; i++ {
		draft := datagenerators.GenerateDraftOrder()
		err := cache.SaveDraftOrder(draft)
		assert.NoError(t, err)
	}

	err := cache.Clear()
	assert.NoError(t, err)

	drafts, err := cache.GetAllDraftOrders()
	assert.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestRedisCache_GetAllDraftOrders(t *testing.T) {
	cache := setupTestRedisCache(t)

	expected := make([]models.DraftOrder, 3)
	for i := 0; i < 3; i++ {
		draft := datagenerators.GenerateDraftOrder()
		expected[i] = draft
		err := cache.SaveDraftOrder(draft)
		assert.NoError(t, err)
	}

	retrieved, err := cache.GetAllDraftOrders()
	assert.NoError(t, err)
	assert.Len(t, retrieved, 3)

	draftMap := make(map[string]models.DraftOrder)
	for _, draft := range retrieved {
		draftMap[draft.ID] = draft
	}

	for _, expectedDraft := range expected {
		got, exists := draftMap[expectedDraft.ID]
		assert.True(t, exists, "Draft order %s should exist", expectedDraft.ID)
		assert.Equal(t, expectedDraft.ID, got.ID)
	}
}

func TestRedisCache_SaveDraftOrderWithTTL(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis is not available")
	}

	cache, err := NewRedisCache("localhost:6379", "", 2)
	require.NoError(t, err)
	defer cache.Close()

	cache.Clear()

	draft := datagenerators.GenerateDraftOrder()

	err = cache.saveDraftOrderWithTTL(draft, 1*time.Second)
	assert.NoError(t, err)

	exists, err := cache.DraftOrderExists(draft.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	time.Sleep(2 * time.Second)

	exists, err = cache.DraftOrderExists(draft.ID)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Close(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis is not available")
	}

	cache, err := NewRedisCache("localhost:6379", "", 3)
	require.NoError(t, err)

	draft := datagenerators.GenerateDraftOrder()
	err = cache.SaveDraftOrder(draft)
	assert.NoError(t, err)

	err = cache.Close()
	assert.NoError(t, err)

	_, _, err = cache.GetDraftOrder(draft.ID)
	assert.Error(t, err)
}
