package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lsp-search-service/internal/draftorders"
	"lsp-search-service/internal/marketplace"
	"lsp-search-service/internal/models"
	"lsp-search-service/internal/orchestrator"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Controller struct {
	Orchestrator *orchestrator.Orchestrator
	DraftOrders  *draftorders.Service
	logger       *zap.Logger
}

// Функция для инициализации контроллера
func NewController(orch *orchestrator.Orchestrator, draftOrders *draftorders.Service, logger *zap.Logger) *Controller {
	return &Controller{
		Orchestrator: orch,
		DraftOrders:  draftOrders,
		logger:       logger,
	}
}

// Настройка маршрутизатора
func (c *Controller) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// Настройка CORS
	corsOptions := handlers.AllowedOrigins([]string{"*"})
	corsMethods := handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	corsHeaders := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})

	// middleware для CORS
	r.Use(handlers.CORS(corsOptions, corsMethods, corsHeaders))
	r.Use(c.preflightHandler)
	r.Use(c.loggingMiddleware)

	// Поток поиска
	r.HandleFunc("/search/draft_order/{draft_order_id}", c.HandleLoadDraftOrder).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/search/ad_hoc", c.HandleAdHocDraftOrder).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/search/delivery_type", c.HandleSetDeliveryType).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/search/trigger", c.HandleTriggerSearch).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/search/filter", c.HandleSetDeliveryModeFilter).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/search/sort", c.HandleSetPriceSort).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/search/results", c.HandleGetResults).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/search/book", c.HandleBookQuote).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/search/reset", c.HandleReset).Methods(http.MethodPost, http.MethodOptions)

	// Черновики заказов (прокси к Backend API)
	r.HandleFunc("/draft_orders/create", c.HandleCreateDraftOrder).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/draft_orders/{draft_order_id}", c.HandleGetDraftOrder).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/draft_orders", c.HandleListDraftOrders).Methods(http.MethodGet, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", c.HandleHealthCheck).Methods(http.MethodGet)
	return r
}

// Middleware для обработки предварительных запросов
func (c *Controller) preflightHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Middleware для логирования запросов
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("user_agent", r.UserAgent()))
		next.ServeHTTP(w, r)
	})
}

// HandleHealthCheck обработчик для проверки здоровья сервиса
func (c *Controller) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "lsp-search"})
}

// HandleLoadDraftOrder загружает черновик в оркестратор по идентификатору
func (c *Controller) HandleLoadDraftOrder(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draft_order_id"]

	if draftID == "" {
		c.writeError(w, http.StatusBadRequest, "draft_order_id is required")
		return
	}
	if len(draftID) > 50 {
		c.writeError(w, http.StatusBadRequest, "draft_order_id is too long")
		return
	}

	if err := c.Orchestrator.LoadDraftOrder(r.Context(), draftID); err != nil {
		c.respondTransitionError(w, draftID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleAdHocDraftOrder принимает параметры поиска без черновика на сервере
func (c *Controller) HandleAdHocDraftOrder(w http.ResponseWriter, r *http.Request) {
	var draft models.DraftOrder
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid draft order payload")
		return
	}

	if err := c.Orchestrator.UseDraftOrder(draft); err != nil {
		c.respondTransitionError(w, draft.ID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleSetDeliveryType сохраняет выбранный тип доставки
func (c *Controller) HandleSetDeliveryType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeliveryType models.DeliveryType `json:"delivery_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.Orchestrator.SetDeliveryType(body.DeliveryType); err != nil {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleTriggerSearch запускает поиск по маркетплейсу
func (c *Controller) HandleTriggerSearch(w http.ResponseWriter, r *http.Request) {
	if err := c.Orchestrator.TriggerSearch(r.Context()); err != nil {
		c.respondTransitionError(w, "", err)
		return
	}

	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleSetDeliveryModeFilter переключает фильтр по режиму доставки
func (c *Controller) HandleSetDeliveryModeFilter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeliveryMode models.DeliveryMode `json:"delivery_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.Orchestrator.SetDeliveryModeFilter(body.DeliveryMode); err != nil {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleSetPriceSort переключает сортировку по цене
func (c *Controller) HandleSetPriceSort(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PriceSort models.PriceSort `json:"price_sort"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.Orchestrator.SetPriceSort(body.PriceSort); err != nil {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleGetResults возвращает снимок состояния с агрегированными предложениями
func (c *Controller) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleBookQuote передаёт выбранное предложение в поток подтверждения
func (c *Controller) HandleBookQuote(w http.ResponseWriter, r *http.Request) {
	var quote models.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid quote payload")
		return
	}

	if err := c.Orchestrator.SelectQuote(&quote); err != nil {
		if errors.Is(err, orchestrator.ErrQuoteRequired) {
			c.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Booking initiated with provider '%s'", quote.Name),
	})
}

// HandleReset возвращает оркестратор в исходное состояние
func (c *Controller) HandleReset(w http.ResponseWriter, r *http.Request) {
	c.Orchestrator.Reset()
	c.writeJSON(w, http.StatusOK, c.Orchestrator.Snapshot())
}

// HandleGetDraftOrder возвращает черновик по идентификатору
func (c *Controller) HandleGetDraftOrder(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draft_order_id"]

	if draftID == "" {
		c.writeError(w, http.StatusBadRequest, "draft_order_id is required")
		return
	}

	draft, err := c.DraftOrders.GetDraftOrder(r.Context(), draftID)
	if err != nil {
		var notFound *draftorders.NotFoundError
		if errors.As(err, &notFound) {
			c.writeError(w, http.StatusNotFound, fmt.Sprintf("Draft order with id '%s' not found", draftID))
			return
		}
		c.logger.Error("Failed to get draft order",
			zap.String("draft_order_id", draftID),
			zap.Error(err))
		c.writeError(w, http.StatusBadGateway, "Failed to retrieve draft order")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"data": draft})
}

// HandleListDraftOrders возвращает страницу списка черновиков
func (c *Controller) HandleListDraftOrders(w http.ResponseWriter, r *http.Request) {
	perPage := queryInt(r, "per_page", 10)
	pageNo := queryInt(r, "page_no", 1)

	drafts, err := c.DraftOrders.ListDraftOrders(r.Context(), perPage, pageNo)
	if err != nil {
		c.logger.Error("Failed to list draft orders", zap.Error(err))
		c.writeError(w, http.StatusBadGateway, "Failed to retrieve draft orders")
		return
	}

	if drafts == nil {
		drafts = []models.DraftOrder{}
	}
	c.writeJSON(w, http.StatusOK, map[string]interface{}{"data": drafts})
}

// HandleCreateDraftOrder создает черновик через Backend API
func (c *Controller) HandleCreateDraftOrder(w http.ResponseWriter, r *http.Request) {
	var draft models.DraftOrder
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid draft order payload")
		return
	}

	created, err := c.DraftOrders.CreateDraftOrder(r.Context(), draft)
	if err != nil {
		c.logger.Error("Failed to create draft order", zap.Error(err))
		c.writeError(w, http.StatusBadGateway, "Failed to create draft order")
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{"data": created})
}

// respondTransitionError переводит ошибку перехода оркестратора в HTTP-статус
func (c *Controller) respondTransitionError(w http.ResponseWriter, draftID string, err error) {
	if errors.Is(err, orchestrator.ErrRequestInFlight) {
		c.writeError(w, http.StatusConflict, err.Error())
		return
	}

	var notFound *draftorders.NotFoundError
	if errors.As(err, &notFound) {
		c.writeError(w, http.StatusNotFound, fmt.Sprintf("Draft order with id '%s' not found", draftID))
		return
	}

	var netErr *marketplace.NetworkError
	if errors.As(err, &netErr) {
		c.writeError(w, http.StatusBadGateway, netErr.Message)
		return
	}

	c.writeError(w, http.StatusBadGateway, err.Error())
}

// queryInt читает целочисленный query-параметр со значением по умолчанию
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return def
	}
	return value
}

// Приватные методы для записи JSON и ошибок
func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("Failed to encode JSON response",
			zap.Error(err),
			zap.Any("data", data))
		// Если уже отправили статус, не можем изменить его, только логируем
	}
}

func (c *Controller) writeError(w http.ResponseWriter, status int, message string) {
	c.logger.Warn("HTTP error response",
		zap.Int("status", status),
		zap.String("message", message))
	c.writeJSON(w, status, map[string]string{"error": message})
}
