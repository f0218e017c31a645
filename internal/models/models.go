package models

// DraftOrder — черновик заказа, ожидающий выбора перевозчика.
// Заполняется частично: любое вложенное поле может отсутствовать,
// поэтому вложенные структуры — указатели.
type DraftOrder struct {
	ID              string          `json:"id"`              // Идентификатор, выдаётся сервером
	PickupAddress   *Address        `json:"pickupAddress"`   // Адрес отправления
	DeliveryAddress *Address        `json:"deliveryAddress"` // Адрес доставки
	PackageDetails  *PackageDetails `json:"packageDetails"`  // Параметры посылки
	OrderDetails    *OrderDetails   `json:"orderDetails"`    // Детали розничного заказа
	ReadyToShip     bool            `json:"readytoShip"`     // Готов к отгрузке
	RTO             bool            `json:"rto"`             // Возврат отправителю (Return to Origin)
}

// Address — почтовый адрес с контактами и опциональной GPS-координатой.
type Address struct {
	Building string    `json:"building"` // Здание/дом
	Locality string    `json:"locality"` // Район
	City     string    `json:"city"`     // Город
	State    string    `json:"state"`    // Штат/регион
	Pincode  string    `json:"pincode"`  // Почтовый индекс (area code)
	Phone    string    `json:"phone"`    // Контактный телефон
	Email    string    `json:"email"`    // Контактный email
	Location *Location `json:"location"` // GPS-координата, если известна
}

// Location — GPS-координата в формате "lat,lng".
type Location struct {
	GPS string `json:"gps"`
}

// PackageDetails — габариты и вес посылки. Габариты хранятся в сантиметрах.
type PackageDetails struct {
	Length    float64 `json:"length"`    // Длина, см
	Breadth   float64 `json:"breadth"`   // Ширина, см
	Height    float64 `json:"height"`    // Высота, см
	Weight    *Weight `json:"weight"`    // Вес
	Hazardous bool    `json:"hazardous"` // Опасный/хрупкий груз
}

// Weight — значение веса с единицей измерения (по умолчанию килограмм).
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// OrderDetails — детали розничного заказа, привязанного к черновику.
type OrderDetails struct {
	RetailOrderID   string       `json:"retailOrderId"`   // Внешний номер заказа, до 16 символов
	Amount          float64      `json:"amount"`          // Сумма без валюты (по соглашению всегда INR)
	Category        *LookupValue `json:"category"`        // Категория товара
	CategoryType    *LookupValue `json:"categoryType"`    // Тип категории (id для маркетплейса)
	PaymentMethod   string       `json:"paymentMethod"`   // Способ оплаты, напр. POST-FULFILLMENT
	PreparationTime string       `json:"preparationTime"` // Время подготовки, ISO-8601, напр. PT30M
}

// LookupValue — пара значение/метка из справочника.
type LookupValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Quote — предложение одного логистического провайдера по запросу поиска.
type Quote struct {
	Name              string  `json:"name"`              // Название сервиса провайдера
	Domain            string  `json:"domain"`            // Домен провайдера
	Company           string  `json:"company"`           // Название компании
	Distance          string  `json:"distance"`          // Расстояние, свободный текст
	DeliveryType      string  `json:"deliveryType"`      // Тип доставки, напр. "Same Day delivery"
	ExpectedPickup    string  `json:"expectedPickup"`    // Ожидаемый забор, ISO-8601 duration
	EstimatedDelivery string  `json:"estimatedDelivery"` // Ожидаемая доставка, ISO-8601 duration
	DeliveryMode      string  `json:"deliveryMode"`      // Режим доставки: содержит "hyperlocal" или "intercity"
	ShippingCharges   float64 `json:"shippingCharges"`   // Стоимость доставки
	RTOCharges        float64 `json:"rtoCharges"`        // Стоимость возврата
}

// TotalCharges возвращает полную стоимость предложения (доставка + возврат).
// Вычисляется на лету при сортировке, не хранится.
func (q Quote) TotalCharges() float64 {
	return q.ShippingCharges + q.RTOCharges
}

// DeliveryMode — фильтр по режиму доставки. Пустое значение — фильтр не задан.
type DeliveryMode string

const (
	DeliveryModeNone       DeliveryMode = ""
	DeliveryModeHyperlocal DeliveryMode = "hyperlocal"
	DeliveryModeIntercity  DeliveryMode = "intercity"
)

// PriceSort — направление сортировки по полной стоимости. Пустое значение — без сортировки.
type PriceSort string

const (
	PriceSortNone PriceSort = ""
	PriceSortAsc  PriceSort = "asc"
	PriceSortDesc PriceSort = "desc"
)

// DeliveryType — выбранный пользователем тип доставки из фиксированного каталога.
type DeliveryType string

const (
	DeliveryTypeNextDay   DeliveryType = "next_day"
	DeliveryTypeStandard  DeliveryType = "standard"
	DeliveryTypeExpress   DeliveryType = "express"
	DeliveryTypeImmediate DeliveryType = "immediate"
	DeliveryTypeSameDay   DeliveryType = "same_day"
)

// DeliveryTypes — полный каталог допустимых типов доставки.
var DeliveryTypes = []DeliveryType{
	DeliveryTypeNextDay,
	DeliveryTypeStandard,
	DeliveryTypeExpress,
	DeliveryTypeImmediate,
	DeliveryTypeSameDay,
}

// ValidDeliveryType проверяет, что тип доставки входит в каталог.
func ValidDeliveryType(t DeliveryType) bool {
	for _, known := range DeliveryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// BookingRequest — событие передачи выбранного предложения в поток подтверждения.
type BookingRequest struct {
	Quote      Quote      `json:"quote"`
	DraftOrder DraftOrder `json:"draft_order"`
}
