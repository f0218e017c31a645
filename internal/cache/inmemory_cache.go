package cache

import (
	"container/list"
	"sync"
	"time"

	"lsp-search-service/internal/models"
)

// entry — элемент кэша, хранящий черновик, его ключ и время истечения срока жизни.
type entry struct {
	key   string
	value models.DraftOrder
	exp   time.Time
}

// InMemoryCache — потокобезопасный in-memory кэш с поддержкой TTL и LRU-вытеснения.
type InMemoryCache struct {
	mu       sync.RWMutex
	capacity int                      // Максимальное количество записей в кэше.
	ttl      time.Duration            // Время жизни записи (0 — без ограничения).
	cache    map[string]*list.Element // Отображение ключа на элемент двусвязного списка.
	lruList  *list.List               // Двусвязный список: голова — самый свежий, хвост — самый старый.
	stopCh   chan struct{}            // Канал для остановки фоновой горутины очистки.
}

// NewInMemoryCache создаёт новый in-memory кэш с заданным размером и временем жизни записей.
// capacity — максимальное количество записей (ограничение LRU).
// ttl — время жизни записи; если 0, записи не устаревают автоматически.
func NewInMemoryCache(capacity int, ttl time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		capacity: capacity,
		ttl:      ttl,
		cache:    make(map[string]*list.Element, capacity),
		lruList:  list.New(),
		stopCh:   make(chan struct{}),
	}

	// Запускаем фоновую горутину для периодической очистки просроченных записей.
	if ttl > 0 {
		go c.startCleanup()
	}

	return c
}

// startCleanup запускает фоновую горутину, которая периодически удаляет просроченные записи.
func (c *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.stopCh:
			return
		}
	}
}

// cleanupExpired удаляет все просроченные записи из кэша.
func (c *InMemoryCache) cleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var keysToRemove []string

	// Собираем ключи просроченных записей.
	for key, elem := range c.cache {
		if now.After(elem.Value.(*entry).exp) {
			keysToRemove = append(keysToRemove, key)
		}
	}

	// Удаляем просроченные записи из списка и карты.
	for _, key := range keysToRemove {
		elem := c.cache[key]
		c.lruList.Remove(elem)
		delete(c.cache, key)
	}
}

// evictIfNeeded удаляет наименее недавно использованные записи, если превышен лимит ёмкости.
func (c *InMemoryCache) evictIfNeeded() {
	for c.lruList.Len() > c.capacity && c.capacity > 0 {
		oldest := c.lruList.Back()
		if oldest == nil {
			break
		}
		ent := oldest.Value.(*entry)
		delete(c.cache, ent.key)
		c.lruList.Remove(oldest)
	}
}

// SaveDraftOrder сохраняет черновик в кэш с установленным временем жизни.
func (c *InMemoryCache) SaveDraftOrder(draft models.DraftOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp := time.Now().Add(c.ttl)
	newEntry := &entry{
		key:   draft.ID,
		value: draft,
		exp:   exp,
	}

	// Если запись с таким ключом уже существует — удаляем её.
	if elem, exists := c.cache[draft.ID]; exists {
		c.lruList.Remove(elem)
	}

	// Добавляем новую запись в начало списка (помечаем как недавно использованную).
	elem := c.lruList.PushFront(newEntry)
	c.cache[draft.ID] = elem

	// При необходимости удаляем старые записи, чтобы не превысить лимит ёмкости.
	c.evictIfNeeded()

	return nil
}

// GetDraftOrder возвращает черновик по идентификатору, если он существует и не просрочен.
// Возвращает черновик, флаг существования и ошибку (всегда nil в текущей реализации).
func (c *InMemoryCache) GetDraftOrder(draftID string) (models.DraftOrder, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[draftID]
	if !ok {
		return models.DraftOrder{}, false, nil
	}

	ent := elem.Value.(*entry)
	now := time.Now()

	// Если запись просрочена — удаляем её и возвращаем "не найдено".
	if now.After(ent.exp) {
		c.lruList.Remove(elem)
		delete(c.cache, draftID)
		return models.DraftOrder{}, false, nil
	}

	// Обновляем позицию записи в списке (помечаем как недавно использованную).
	c.lruList.MoveToFront(elem)
	return ent.value, true, nil
}

// DraftOrderExists проверяет, существует ли в кэше не просроченный черновик с указанным идентификатором.
func (c *InMemoryCache) DraftOrderExists(draftID string) (bool, error) {
	_, ok, _ := c.GetDraftOrder(draftID)
	return ok, nil
}

// RemoveDraftOrder удаляет черновик из кэша по его идентификатору.
func (c *InMemoryCache) RemoveDraftOrder(draftID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[draftID]; ok {
		c.lruList.Remove(elem)
		delete(c.cache, draftID)
	}
	return nil
}

// Clear полностью очищает кэш.
func (c *InMemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*list.Element, c.capacity)
	c.lruList = list.New()
	return nil
}

// GetAllDraftOrders возвращает все не просроченные черновики из кэша.
func (c *InMemoryCache) GetAllDraftOrders() ([]models.DraftOrder, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	drafts := make([]models.DraftOrder, 0, c.lruList.Len())
	for e := c.lruList.Front(); e != nil; e = e.Next() {
		ent := e.Value.(*entry)
		if now.Before(ent.exp) {
			drafts = append(drafts, ent.value)
		}
	}
	return drafts, nil
}

// Close останавливает фоновую горутину очистки и очищает кэш.
func (c *InMemoryCache) Close() error {
	close(c.stopCh)
	c.Clear()
	return nil
}

// Проверка на соответствие интерфейсу Cache.
var _ Cache = (*InMemoryCache)(nil)
