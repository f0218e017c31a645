package cache

import (
	"sync"

	"lsp-search-service/internal/models"
)

// MockCache мок реализация для тестирования без Redis
type MockCache struct {
	mu     sync.RWMutex
	drafts map[string]models.DraftOrder
}

// NewMock создает новый mock кэш
func NewMock() *MockCache {
	return &MockCache{
		drafts: make(map[string]models.DraftOrder),
	}
}

func (m *MockCache) SaveDraftOrder(draft models.DraftOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draft.ID] = draft
	return nil
}

func (m *MockCache) GetDraftOrder(draftID string) (models.DraftOrder, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	draft, exists := m.drafts[draftID]
	return draft, exists, nil
}

func (m *MockCache) DraftOrderExists(draftID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.drafts[draftID]
	return exists, nil
}

func (m *MockCache) RemoveDraftOrder(draftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, draftID)
	return nil
}

func (m *MockCache) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts = make(map[string]models.DraftOrder)
	return nil
}

func (m *MockCache) GetAllDraftOrders() ([]models.DraftOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	drafts := make([]models.DraftOrder, 0, len(m.drafts))
	for _, draft := range m.drafts {
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (m *MockCache) Close() error {
	return nil
}
