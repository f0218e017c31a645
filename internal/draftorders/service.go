package draftorders

import (
	"context"
	"fmt"

	"lsp-search-service/internal/cache"
	"lsp-search-service/internal/models"

	"go.uber.org/zap"
)

// Service — хранилище черновиков с кэшем поверх удалённого Backend API.
// Повторное открытие поиска по тому же черновику не ходит в сеть, пока
// запись жива в кэше.
type Service struct {
	client *Client
	cache  cache.Cache
	logger *zap.Logger
}

// NewService создает сервис черновиков заказов
func NewService(client *Client, appCache cache.Cache, logger *zap.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if appCache == nil {
		return nil, fmt.Errorf("cache cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Service{
		client: client,
		cache:  appCache,
		logger: logger,
	}, nil
}

// GetDraftOrder возвращает черновик из кэша, при промахе — с сервера.
func (s *Service) GetDraftOrder(ctx context.Context, draftID string) (*models.DraftOrder, error) {
	cached, exists, err := s.cache.GetDraftOrder(draftID)
	if err != nil {
		// Кэш недоступен — идём на сервер, но не проваливаем запрос.
		s.logger.Warn("Failed to read draft order from cache",
			zap.String("draft_order_id", draftID),
			zap.Error(err))
	} else if exists {
		s.logger.Debug("Draft order served from cache",
			zap.String("draft_order_id", draftID))
		return &cached, nil
	}

	draft, err := s.client.GetDraftOrder(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SaveDraftOrder(*draft); err != nil {
		s.logger.Warn("Failed to cache draft order",
			zap.String("draft_order_id", draftID),
			zap.Error(err))
	}

	return draft, nil
}

// ListDraftOrders возвращает страницу списка черновиков с сервера.
func (s *Service) ListDraftOrders(ctx context.Context, perPage, pageNo int) ([]models.DraftOrder, error) {
	return s.client.ListDraftOrders(ctx, perPage, pageNo)
}

// CreateDraftOrder создает черновик на сервере и кладёт его в кэш.
func (s *Service) CreateDraftOrder(ctx context.Context, draft models.DraftOrder) (*models.DraftOrder, error) {
	created, err := s.client.CreateDraftOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SaveDraftOrder(*created); err != nil {
		s.logger.Warn("Failed to cache created draft order",
			zap.String("draft_order_id", created.ID),
			zap.Error(err))
	}

	return created, nil
}
