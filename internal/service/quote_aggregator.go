package service

import (
	"sort"
	"strings"

	"lsp-search-service/internal/models"
)

// QuoteAggregator фильтрует и сортирует предложения провайдеров для показа.
// Чистый, синхронный и идемпотентный: повторное применение тех же
// фильтра и сортировки даёт тот же результат.
type QuoteAggregator struct{}

// NewQuoteAggregator создает новый агрегатор предложений
func NewQuoteAggregator() *QuoteAggregator {
	return &QuoteAggregator{}
}

// Apply возвращает отфильтрованную и отсортированную копию списка предложений.
// Фильтр — регистронезависимый поиск подстроки в deliveryMode; пустой фильтр
// пропускает все предложения. Сортировка — устойчивая, по полной стоимости
// (доставка + возврат); без сортировки сохраняется порядок сервера
// (он же ранжирование по релевантности). Фильтр и сортировка независимы.
func (a *QuoteAggregator) Apply(quotes []models.Quote, filter models.DeliveryMode, priceSort models.PriceSort) []models.Quote {
	result := a.filterByDeliveryMode(quotes, filter)

	switch priceSort {
	case models.PriceSortAsc:
		// Устойчивая сортировка: предложения с равной стоимостью сохраняют исходный порядок.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].TotalCharges() < result[j].TotalCharges()
		})
	case models.PriceSortDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].TotalCharges() > result[j].TotalCharges()
		})
	}

	return result
}

// filterByDeliveryMode возвращает копию списка, оставляя предложения,
// чей deliveryMode содержит ключевое слово фильтра без учёта регистра.
func (a *QuoteAggregator) filterByDeliveryMode(quotes []models.Quote, filter models.DeliveryMode) []models.Quote {
	result := make([]models.Quote, 0, len(quotes))

	if filter == models.DeliveryModeNone {
		result = append(result, quotes...)
		return result
	}

	keyword := strings.ToLower(string(filter))
	for _, quote := range quotes {
		if strings.Contains(strings.ToLower(quote.DeliveryMode), keyword) {
			result = append(result, quote)
		}
	}

	return result
}
