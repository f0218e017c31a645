package models

// QuoteRequest — канонический запрос поиска к логистическому маркетплейсу.
// Чистый value object: после построения не изменяется.
type QuoteRequest struct {
	Context RequestContext `json:"context"`
	Message RequestMessage `json:"message"`
}

// RequestContext — контекст запроса (город и версия протокола).
type RequestContext struct {
	City        string `json:"city"`         // Город доставки
	CoreVersion string `json:"core_version"` // Версия протокола маркетплейса
	AreaCode    string `json:"area_code"`    // Индекс адреса доставки
}

// RequestMessage — тело запроса поиска.
type RequestMessage struct {
	CategoryID      string          `json:"category_id"`      // Тип категории из справочника
	FulfillmentType string          `json:"fulfillment_type"` // Всегда "Delivery"
	Provider        ProviderWindow  `json:"provider"`         // Окно работы провайдера
	Fulfillment     Fulfillment     `json:"fulfillment"`      // Точки забора и доставки
	Payment         RequestPayment  `json:"payment"`          // Способ оплаты
	PayloadDetails  PayloadDetails  `json:"payload_details"`  // Вес и габариты посылки
	ProductCategory string          `json:"product_category"` // Категория товара
	Value           MonetaryValue   `json:"value"`            // Стоимость содержимого
	DangerousGoods  bool            `json:"dangerous_goods"`  // Флаг опасного груза
}

// ProviderWindow — расписание работы провайдера.
type ProviderWindow struct {
	Time ProviderTime `json:"time"`
}

// ProviderTime — дни недели, диапазон времени и длительность обработки.
type ProviderTime struct {
	Days     string    `json:"days"`     // Маска дней недели, напр. "1,2,3,4,5,6,7"
	Range    TimeRange `json:"range"`    // Диапазон времени работы
	Duration string    `json:"duration"` // ISO-8601 duration, напр. PT45M
	Schedule Schedule  `json:"schedule"` // Праздничные дни
}

// Schedule — список праздничных дней провайдера.
type Schedule struct {
	Holidays []string `json:"holidays"`
}

// TimeRange — диапазон времени в формате HHMM.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Fulfillment — начальная и конечная точки доставки.
type Fulfillment struct {
	Start FulfillmentStop `json:"start"`
	End   FulfillmentStop `json:"end"`
}

// FulfillmentStop — GPS-координата и индекс одной точки маршрута.
type FulfillmentStop struct {
	GPS      string `json:"gps"`
	AreaCode string `json:"area_code"`
}

// RequestPayment — способ оплаты заказа.
type RequestPayment struct {
	Type string `json:"type"`
}

// PayloadDetails — вес и габариты посылки в формате маркетплейса.
type PayloadDetails struct {
	Weight     Dimension `json:"weight"`
	Dimensions Box       `json:"dimensions"`
}

// Box — три измерения посылки.
type Box struct {
	Length  Dimension `json:"length"`
	Breadth Dimension `json:"breadth"`
	Height  Dimension `json:"height"`
}

// Dimension — число с единицей измерения.
type Dimension struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// MonetaryValue — денежная сумма в строковом представлении с валютой.
type MonetaryValue struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}
