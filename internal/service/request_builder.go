package service

import (
	"strconv"

	"lsp-search-service/internal/models"
)

// Константы протокола маркетплейса. Исторические значения: окно работы
// провайдера, запасные GPS-координаты и принудительная единица измерения
// зафиксированы исходной системой, их изменение меняет семантику запроса,
// уходящего на сторонний маркетплейс.
const (
	CoreVersion             = "1.2.0"
	FulfillmentTypeDelivery = "Delivery"
	CurrencyINR             = "INR"

	// Все габариты считаются сантиметрами независимо от сохранённой единицы.
	DimensionUnitCentimeter = "centimeter"
	DefaultWeightUnit       = "kilogram"

	// Окно работы провайдера: фактическое расписание не запрашивается.
	ProviderDays      = "1,2,3,4,5,6,7"
	ProviderTimeStart = "0000"
	ProviderTimeEnd   = "2300"
	ProviderDuration  = "PT45M"

	// Запасные координаты и индекс точки забора.
	DefaultStartGPS      = "12.9423572,77.696726"
	DefaultStartAreaCode = "560103"
	DefaultEndGPS        = "12.9394125,77.68924140000001"
)

// RequestBuilder строит канонический запрос поиска из черновика заказа.
// Черновик может быть заполнен частично: каждое отсутствующее поле
// заменяется значением по умолчанию, построение никогда не завершается ошибкой.
type RequestBuilder struct {
	startGPS      string
	startAreaCode string
	endGPS        string
}

// NewRequestBuilder создаёт построитель с запасными координатами по умолчанию.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		startGPS:      DefaultStartGPS,
		startAreaCode: DefaultStartAreaCode,
		endGPS:        DefaultEndGPS,
	}
}

// NewRequestBuilderWithDefaults создаёт построитель с запасными координатами из конфигурации.
// Пустые значения заменяются протокольными константами.
func NewRequestBuilderWithDefaults(startGPS, startAreaCode, endGPS string) *RequestBuilder {
	b := NewRequestBuilder()
	if startGPS != "" {
		b.startGPS = startGPS
	}
	if startAreaCode != "" {
		b.startAreaCode = startAreaCode
	}
	if endGPS != "" {
		b.endGPS = endGPS
	}
	return b
}

// Build преобразует черновик заказа в запрос поиска. Чистая функция без
// побочных эффектов; отсутствующие поля подставляются по умолчанию, а не
// приводят к ошибке — поиск может запускаться по частично заполненному черновику.
func (b *RequestBuilder) Build(draft models.DraftOrder) models.QuoteRequest {
	return models.QuoteRequest{
		Context: models.RequestContext{
			City:        deliveryCity(draft),
			CoreVersion: CoreVersion,
			AreaCode:    deliveryPincode(draft),
		},
		Message: models.RequestMessage{
			CategoryID:      categoryTypeValue(draft),
			FulfillmentType: FulfillmentTypeDelivery,
			Provider: models.ProviderWindow{
				Time: models.ProviderTime{
					Days: ProviderDays,
					Range: models.TimeRange{
						Start: ProviderTimeStart,
						End:   ProviderTimeEnd,
					},
					Duration: ProviderDuration,
					Schedule: models.Schedule{Holidays: []string{}},
				},
			},
			Fulfillment: models.Fulfillment{
				Start: models.FulfillmentStop{
					GPS:      b.pickupGPS(draft),
					AreaCode: b.pickupAreaCode(draft),
				},
				End: models.FulfillmentStop{
					GPS:      b.deliveryGPS(draft),
					AreaCode: deliveryPincode(draft),
				},
			},
			Payment: models.RequestPayment{
				Type: paymentMethod(draft),
			},
			PayloadDetails:  payloadDetails(draft),
			ProductCategory: categoryValue(draft),
			Value: models.MonetaryValue{
				Value:    amountString(draft),
				Currency: CurrencyINR,
			},
			// Флаг опасного груза собирается в черновике, но протоколом
			// исторически не передаётся.
			DangerousGoods: false,
		},
	}
}

// pickupGPS возвращает GPS точки забора или запасную координату.
func (b *RequestBuilder) pickupGPS(draft models.DraftOrder) string {
	if draft.PickupAddress != nil && draft.PickupAddress.Location != nil && draft.PickupAddress.Location.GPS != "" {
		return draft.PickupAddress.Location.GPS
	}
	return b.startGPS
}

// pickupAreaCode возвращает индекс точки забора или запасной индекс.
func (b *RequestBuilder) pickupAreaCode(draft models.DraftOrder) string {
	if draft.PickupAddress != nil && draft.PickupAddress.Pincode != "" {
		return draft.PickupAddress.Pincode
	}
	return b.startAreaCode
}

// deliveryGPS возвращает GPS точки доставки или запасную координату.
func (b *RequestBuilder) deliveryGPS(draft models.DraftOrder) string {
	if draft.DeliveryAddress != nil && draft.DeliveryAddress.Location != nil && draft.DeliveryAddress.Location.GPS != "" {
		return draft.DeliveryAddress.Location.GPS
	}
	return b.endGPS
}

func deliveryCity(draft models.DraftOrder) string {
	if draft.DeliveryAddress == nil {
		return ""
	}
	return draft.DeliveryAddress.City
}

func deliveryPincode(draft models.DraftOrder) string {
	if draft.DeliveryAddress == nil {
		return ""
	}
	return draft.DeliveryAddress.Pincode
}

func categoryTypeValue(draft models.DraftOrder) string {
	if draft.OrderDetails == nil || draft.OrderDetails.CategoryType == nil {
		return ""
	}
	return draft.OrderDetails.CategoryType.Value
}

func categoryValue(draft models.DraftOrder) string {
	if draft.OrderDetails == nil || draft.OrderDetails.Category == nil {
		return ""
	}
	return draft.OrderDetails.Category.Value
}

func paymentMethod(draft models.DraftOrder) string {
	if draft.OrderDetails == nil {
		return ""
	}
	return draft.OrderDetails.PaymentMethod
}

func amountString(draft models.DraftOrder) string {
	if draft.OrderDetails == nil {
		return "0"
	}
	return strconv.FormatFloat(draft.OrderDetails.Amount, 'f', -1, 64)
}

// payloadDetails собирает вес и габариты. Единица габаритов принудительно
// "centimeter" независимо от сохранённой в черновике.
func payloadDetails(draft models.DraftOrder) models.PayloadDetails {
	var length, breadth, height float64
	weight := models.Dimension{Unit: DefaultWeightUnit, Value: 0}

	if pkg := draft.PackageDetails; pkg != nil {
		length = pkg.Length
		breadth = pkg.Breadth
		height = pkg.Height
		if pkg.Weight != nil {
			weight.Value = pkg.Weight.Value
			if pkg.Weight.Unit != "" {
				weight.Unit = pkg.Weight.Unit
			}
		}
	}

	return models.PayloadDetails{
		Weight: weight,
		Dimensions: models.Box{
			Length:  models.Dimension{Unit: DimensionUnitCentimeter, Value: length},
			Breadth: models.Dimension{Unit: DimensionUnitCentimeter, Value: breadth},
			Height:  models.Dimension{Unit: DimensionUnitCentimeter, Value: height},
		},
	}
}
