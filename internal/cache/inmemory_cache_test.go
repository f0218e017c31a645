package cache

import (
	"sync"
	"testing"
	"time"

	"lsp-search-service/internal/datagenerators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestInMemoryCache создаёт тестовый кэш с заданной ёмкостью
func setupTestInMemoryCache(t *testing.T, capacity int) *InMemoryCache {
	cache := NewInMemoryCache(capacity, 10*time.Minute)
	require.NotNil(t, cache)
	err := cache.Clear()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestNewInMemoryCache(t *testing.T) {
	cache := NewInMemoryCache(100, 10*time.Minute)
	assert.NotNil(t, cache)
	assert.Equal(t, 100, cache.capacity)
	assert.Equal(t, 10*time.Minute, cache.ttl)
	cache.Close()
}

func TestInMemoryCache_SaveAndGetDraftOrder(t *testing.T) {
	cache := setupTestInMemoryCache(t, 100)

	draft := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft)
	require.NoError(t, err)

	retrieved, exists, err := cache.GetDraftOrder(draft.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, draft, retrieved)
}

func TestInMemoryCache_GetDraftOrder_NonExistent(t *testing.T) {
	cache := setupTestInMemoryCache(t, 100)

	_, exists, err := cache.GetDraftOrder("non-existent-draft-id")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryCache_DraftOrderExists(t *testing.T) {
	cache := setupTestInMemoryCache(t, 100)

	draft := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft)
	require.NoError(t, err)

	exists, err := cache.DraftOrderExists(draft.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = cache.DraftOrderExists("non-existent")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryCache_RemoveDraftOrder(t *testing.T) {
	cache := setupTestInMemoryCache(t, 100)

	draft := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft)
	require.NoError(t, err)

	err = cache.RemoveDraftOrder(draft.ID)
	require.NoError(t, err)

	_, exists, err := cache.GetDraftOrder(draft.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryCache_Clear(t *testing.T) {
	cache := setupTestInMemoryCache(t, 100)

	draft1 := datagenerators.GenerateDraftOrder()
	draft2 := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft1)
	require.NoError(t, err)
	err = cache.SaveDraftOrder(draft2)
	require.NoError(t, err)

	err = cache.Clear()
	require.NoError(t, err)

	drafts, err := cache.GetAllDraftOrders()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestInMemoryCache_LRU_Eviction(t *testing.T) {
	cache := setupTestInMemoryCache(t, 2)

	draft1 := datagenerators.GenerateDraftOrder()
	draft2 := datagenerators.GenerateDraftOrder()
	draft3 := datagenerators.GenerateDraftOrder()

	require.NoError(t, cache.SaveDraftOrder(draft1))
	require.NoError(t, cache.SaveDraftOrder(draft2))

	// Обращаемся к draft1, чтобы draft2 стал самым старым
	_, exists, err := cache.GetDraftOrder(draft1.ID)
	require.NoError(t, err)
	require.True(t, exists)

	// Третья запись вытесняет наименее недавно использованную
	require.NoError(t, cache.SaveDraftOrder(draft3))

	_, exists, err = cache.GetDraftOrder(draft2.ID)
	require.NoError(t, err)
	assert.False(t, exists, "The least recently used entry should be evicted")

	_, exists, err = cache.GetDraftOrder(draft1.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, exists, err = cache.GetDraftOrder(draft3.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInMemoryCache_TTL_Expiry(t *testing.T) {
	cache := NewInMemoryCache(100, 100*time.Millisecond)
	defer cache.Close()

	draft := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft)
	require.NoError(t, err)

	// Проверяем, что запись есть
	_, exists, err := cache.GetDraftOrder(draft.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Ждём истечения TTL
	time.Sleep(150 * time.Millisecond)

	// Теперь запись должна быть удалена
	_, exists, err = cache.GetDraftOrder(draft.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryCache_BackgroundCleanup(t *testing.T) {
	cache := NewInMemoryCache(100, 100*time.Millisecond)
	defer cache.Close()

	draft := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft)
	require.NoError(t, err)

	// Ждём, пока фоновая горутина удалит запись
	time.Sleep(300 * time.Millisecond)

	drafts, err := cache.GetAllDraftOrders()
	require.NoError(t, err)
	assert.Empty(t, drafts, "Фоновая очистка должна удалить просроченные записи")
}

func TestInMemoryCache_Close(t *testing.T) {
	cache := NewInMemoryCache(100, 10*time.Minute)

	draft := datagenerators.GenerateDraftOrder()
	err := cache.SaveDraftOrder(draft)
	require.NoError(t, err)

	err = cache.Close()
	require.NoError(t, err)

	// После Close кэш должен быть пуст
	drafts, err := cache.GetAllDraftOrders()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestInMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := setupTestInMemoryCache(t, 1000)
	draft := datagenerators.GenerateDraftOrder()

	const goroutines = 10
	const operations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operations; j++ {
				// Сохраняем
				err := cache.SaveDraftOrder(draft)
				assert.NoError(t, err)

				// Получаем
				_, _, err = cache.GetDraftOrder(draft.ID)
				assert.NoError(t, err)

				// Проверяем существование
				_, err = cache.DraftOrderExists(draft.ID)
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	// Убедимся, что запись всё ещё на месте
	_, exists, err := cache.GetDraftOrder(draft.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}
