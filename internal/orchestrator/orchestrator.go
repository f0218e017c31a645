package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lsp-search-service/internal/marketplace"
	"lsp-search-service/internal/models"
	"lsp-search-service/internal/service"

	"go.uber.org/zap"
)

// State — состояние оркестратора поиска.
type State string

const (
	StateIdle              State = "idle"                // Черновик ещё не загружен
	StateLoadingDraftOrder State = "loading_draft_order" // Запрос черновика в полёте
	StateReadyToSearch     State = "ready_to_search"     // Черновик загружен, поиск не запущен
	StateSearching         State = "searching"           // Запрос поиска в полёте
	StateResultsShown      State = "results_shown"       // Предложения получены
)

// Ошибки переходов
var (
	ErrRequestInFlight     = errors.New("another request is in flight")
	ErrInvalidDeliveryType = errors.New("unknown delivery type")
	ErrInvalidDeliveryMode = errors.New("unknown delivery mode filter")
	ErrInvalidPriceSort    = errors.New("unknown price sort direction")
	ErrQuoteRequired       = errors.New("quote is required")
)

// DraftOrderFetcher загружает черновик заказа по идентификатору.
type DraftOrderFetcher interface {
	GetDraftOrder(ctx context.Context, draftID string) (*models.DraftOrder, error)
}

// QuoteSearcher выполняет запрос поиска к маркетплейсу.
type QuoteSearcher interface {
	Search(ctx context.Context, request models.QuoteRequest) ([]models.Quote, error)
}

// BookingInitiator передаёт выбранное предложение в поток подтверждения.
type BookingInitiator interface {
	Initiate(quote *models.Quote, draft models.DraftOrder) error
}

// Orchestrator координирует поток: загрузка черновика → построение запроса →
// поиск по маркетплейсу → агрегация предложений. Живёт всё время существования
// экрана поиска; сбрасывается в Idle только при уходе с экрана (Reset).
//
// Переключение фильтра и сортировки — локальные синхронные операции над
// последним полученным набором предложений; они не запускают сетевых вызовов
// и потому не гоняются с результатами поиска. Одновременно допускается не
// более одного сетевого запроса.
type Orchestrator struct {
	mu sync.Mutex

	draftOrders DraftOrderFetcher
	marketplace QuoteSearcher
	builder     *service.RequestBuilder
	aggregator  *service.QuoteAggregator
	validator   *service.DraftOrderValidator
	booking     BookingInitiator
	logger      *zap.Logger

	state      State
	draftOrder *models.DraftOrder
	quotes     []models.Quote // Последний полученный набор, в порядке сервера

	deliveryModeFilter models.DeliveryMode
	priceSort          models.PriceSort
	deliveryType       models.DeliveryType
	searchTriggered    bool
	lastError          string

	// Счётчик поколений: результат сетевого вызова, завершившегося после
	// Reset, отбрасывается вместо обновления состояния.
	generation uint64
}

// New создает оркестратор поиска
func New(
	draftOrders DraftOrderFetcher,
	quoteSearcher QuoteSearcher,
	builder *service.RequestBuilder,
	aggregator *service.QuoteAggregator,
	booking BookingInitiator,
	logger *zap.Logger,
) (*Orchestrator, error) {
	if draftOrders == nil {
		return nil, fmt.Errorf("draft order fetcher cannot be nil")
	}
	if quoteSearcher == nil {
		return nil, fmt.Errorf("quote searcher cannot be nil")
	}
	if builder == nil {
		return nil, fmt.Errorf("request builder cannot be nil")
	}
	if aggregator == nil {
		return nil, fmt.Errorf("quote aggregator cannot be nil")
	}
	if booking == nil {
		return nil, fmt.Errorf("booking initiator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Orchestrator{
		draftOrders: draftOrders,
		marketplace: quoteSearcher,
		builder:     builder,
		aggregator:  aggregator,
		validator:   service.NewDraftOrderValidator(),
		booking:     booking,
		logger:      logger,
		state:       StateIdle,
	}, nil
}

// LoadDraftOrder загружает черновик заказа и переводит оркестратор в
// ReadyToSearch. При ошибке возвращается в Idle; повторная загрузка —
// новый вызов, автоматических повторов нет.
func (o *Orchestrator) LoadDraftOrder(ctx context.Context, draftID string) error {
	o.mu.Lock()
	if o.inFlight() {
		o.mu.Unlock()
		return ErrRequestInFlight
	}
	o.state = StateLoadingDraftOrder
	o.lastError = ""
	gen := o.generation
	o.mu.Unlock()

	draft, err := o.draftOrders.GetDraftOrder(ctx, draftID)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		// Оркестратор сброшен, пока запрос был в полёте — результат отбрасываем.
		o.logger.Debug("Discarding stale draft order fetch",
			zap.String("draft_order_id", draftID))
		return nil
	}

	if err != nil {
		o.state = StateIdle
		o.lastError = err.Error()
		o.logger.Error("Failed to load draft order",
			zap.String("draft_order_id", draftID),
			zap.Error(err))
		return err
	}

	o.draftOrder = draft
	o.state = StateReadyToSearch
	o.logger.Info("Draft order loaded",
		zap.String("draft_order_id", draft.ID))
	return nil
}

// UseDraftOrder принимает черновик, собранный вызывающей стороной, без
// обращения к серверу — поиск допускается и по ad-hoc параметрам.
func (o *Orchestrator) UseDraftOrder(draft models.DraftOrder) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight() {
		return ErrRequestInFlight
	}

	o.draftOrder = &draft
	o.state = StateReadyToSearch
	o.lastError = ""
	o.logger.Info("Ad-hoc draft order accepted",
		zap.String("draft_order_id", draft.ID))
	return nil
}

// SetDeliveryType сохраняет выбранный тип доставки. Локальная операция,
// сетевых вызовов не запускает.
func (o *Orchestrator) SetDeliveryType(deliveryType models.DeliveryType) error {
	if !models.ValidDeliveryType(deliveryType) {
		return ErrInvalidDeliveryType
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.deliveryType = deliveryType
	return nil
}

// TriggerSearch строит запрос из текущего черновика и выполняет поиск.
// Ровно один поиск в полёте: повторный вызов до завершения возвращает
// ErrRequestInFlight. При ошибке предыдущие результаты не трогаются,
// состояние возвращается в ReadyToSearch и панель результатов скрывается
// (searchTriggered сбрасывается).
func (o *Orchestrator) TriggerSearch(ctx context.Context) error {
	o.mu.Lock()
	if o.inFlight() {
		o.mu.Unlock()
		return ErrRequestInFlight
	}

	var draft models.DraftOrder
	if o.draftOrder != nil {
		draft = *o.draftOrder
	}
	if !o.validator.CanBuildRequest(draft) {
		// Неполный черновик: построитель подставит значения по умолчанию,
		// запрос может оказаться семантически неточным.
		o.logger.Warn("Speculative search on incomplete draft order",
			zap.String("draft_order_id", draft.ID))
	}

	o.state = StateSearching
	o.searchTriggered = true
	o.lastError = ""
	gen := o.generation
	request := o.builder.Build(draft)
	o.mu.Unlock()

	quotes, err := o.marketplace.Search(ctx, request)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		o.logger.Debug("Discarding stale search result",
			zap.String("draft_order_id", draft.ID))
		return nil
	}

	if err != nil {
		o.state = StateReadyToSearch
		o.searchTriggered = false
		o.lastError = errorMessage(err)
		o.logger.Error("Marketplace search failed",
			zap.String("draft_order_id", draft.ID),
			zap.Error(err))
		return err
	}

	// Пустой список — не ошибка: показываем "перевозчики не найдены".
	o.quotes = quotes
	o.state = StateResultsShown
	o.logger.Info("Marketplace search completed",
		zap.String("draft_order_id", draft.ID),
		zap.Int("quote_count", len(quotes)))
	return nil
}

// SetDeliveryModeFilter переключает фильтр по режиму доставки. Повторный выбор
// активного значения снимает фильтр (семантика кнопки-переключателя).
// Сортировку не трогает.
func (o *Orchestrator) SetDeliveryModeFilter(mode models.DeliveryMode) error {
	switch mode {
	case models.DeliveryModeNone, models.DeliveryModeHyperlocal, models.DeliveryModeIntercity:
	default:
		return ErrInvalidDeliveryMode
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.deliveryModeFilter == mode {
		o.deliveryModeFilter = models.DeliveryModeNone
	} else {
		o.deliveryModeFilter = mode
	}
	return nil
}

// SetPriceSort переключает сортировку по цене. Повторный выбор активного
// направления снимает сортировку. Фильтр не трогает.
func (o *Orchestrator) SetPriceSort(priceSort models.PriceSort) error {
	switch priceSort {
	case models.PriceSortNone, models.PriceSortAsc, models.PriceSortDesc:
	default:
		return ErrInvalidPriceSort
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.priceSort == priceSort {
		o.priceSort = models.PriceSortNone
	} else {
		o.priceSort = priceSort
	}
	return nil
}

// Results возвращает предложения с применёнными фильтром и сортировкой.
// Синхронно и без сетевых вызовов: агрегатор применяется к последнему
// полученному набору.
func (o *Orchestrator) Results() []models.Quote {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.aggregator.Apply(o.quotes, o.deliveryModeFilter, o.priceSort)
}

// SelectQuote передаёт выбранное предложение инициатору бронирования.
// Навигационный побочный эффект: состояние ResultsShown не покидается.
func (o *Orchestrator) SelectQuote(quote *models.Quote) error {
	if quote == nil {
		return ErrQuoteRequired
	}

	o.mu.Lock()
	var draft models.DraftOrder
	if o.draftOrder != nil {
		draft = *o.draftOrder
	}
	o.mu.Unlock()

	if err := o.booking.Initiate(quote, draft); err != nil {
		o.logger.Error("Failed to initiate booking",
			zap.String("provider", quote.Name),
			zap.Error(err))
		return err
	}

	o.logger.Info("Booking initiated",
		zap.String("provider", quote.Name),
		zap.String("draft_order_id", draft.ID))
	return nil
}

// Snapshot — представление состояния оркестратора для UI.
type Snapshot struct {
	State              State               `json:"state"`
	DraftOrderID       string              `json:"draft_order_id,omitempty"`
	DeliveryType       models.DeliveryType `json:"selected_delivery_type,omitempty"`
	DeliveryModeFilter models.DeliveryMode `json:"delivery_mode_filter,omitempty"`
	PriceSort          models.PriceSort    `json:"price_sort,omitempty"`
	SearchTriggered    bool                `json:"search_triggered"`
	Error              string              `json:"error,omitempty"`
	Quotes             []models.Quote      `json:"quotes"`
}

// Snapshot возвращает согласованный снимок состояния вместе с
// агрегированными результатами.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		State:              o.state,
		DeliveryType:       o.deliveryType,
		DeliveryModeFilter: o.deliveryModeFilter,
		PriceSort:          o.priceSort,
		SearchTriggered:    o.searchTriggered,
		Error:              o.lastError,
		Quotes:             o.aggregator.Apply(o.quotes, o.deliveryModeFilter, o.priceSort),
	}
	if o.draftOrder != nil {
		snap.DraftOrderID = o.draftOrder.ID
	}
	return snap
}

// State возвращает текущее состояние оркестратора.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Reset возвращает оркестратор в Idle (уход с экрана поиска). Результаты
// запросов, оставшихся в полёте, будут отброшены по приходу.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.state = StateIdle
	o.draftOrder = nil
	o.quotes = nil
	o.deliveryModeFilter = models.DeliveryModeNone
	o.priceSort = models.PriceSortNone
	o.deliveryType = ""
	o.searchTriggered = false
	o.lastError = ""
}

// inFlight сообщает, выполняется ли сейчас сетевой запрос.
// Вызывается только под мьютексом.
func (o *Orchestrator) inFlight() bool {
	return o.state == StateLoadingDraftOrder || o.state == StateSearching
}

// errorMessage извлекает сообщение сервера из сетевой ошибки.
func errorMessage(err error) string {
	var netErr *marketplace.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Message
	}
	return err.Error()
}
