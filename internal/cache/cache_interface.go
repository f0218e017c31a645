package cache

import "lsp-search-service/internal/models"

// Cache определяет контракт для кэша черновиков заказов
type Cache interface {
	SaveDraftOrder(draft models.DraftOrder) error
	GetDraftOrder(draftID string) (models.DraftOrder, bool, error)
	DraftOrderExists(draftID string) (bool, error)
	RemoveDraftOrder(draftID string) error
	Clear() error
	GetAllDraftOrders() ([]models.DraftOrder, error)
	Close() error
}
