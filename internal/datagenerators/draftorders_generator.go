package datagenerators

import (
	"fmt"
	"time"

	"lsp-search-service/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// GenerateDraftOrder — генерирует полностью заполненный валидный черновик заказа
func GenerateDraftOrder() models.DraftOrder {
	gofakeit.Seed(time.Now().UnixNano()) // случайность при каждом запуске

	categories := []models.LookupValue{
		{Value: "Grocery", Label: "Grocery"},
		{Value: "F&B", Label: "Food & Beverages"},
		{Value: "Fashion", Label: "Fashion"},
		{Value: "Electronics", Label: "Electronics"},
		{Value: "Pharma", Label: "Pharma"},
	}
	categoryTypes := []models.LookupValue{
		{Value: "Standard Delivery", Label: "Standard Delivery"},
		{Value: "Express Delivery", Label: "Express Delivery"},
		{Value: "Immediate Delivery", Label: "Immediate Delivery"},
		{Value: "Same Day Delivery", Label: "Same Day Delivery"},
		{Value: "Next Day Delivery", Label: "Next Day Delivery"},
	}
	preparationTimes := []string{"PT15M", "PT30M", "PT45M", "PT60M"}

	draft := models.DraftOrder{
		ID:              gofakeit.UUID(),
		PickupAddress:   generateAddress(),
		DeliveryAddress: generateAddress(),
		ReadyToShip:     gofakeit.Bool(),
		RTO:             gofakeit.Bool(),
	}

	draft.PackageDetails = &models.PackageDetails{
		Length:  float64(gofakeit.Number(5, 120)),
		Breadth: float64(gofakeit.Number(5, 80)),
		Height:  float64(gofakeit.Number(2, 60)),
		Weight: &models.Weight{
			Value: float64(gofakeit.Number(1, 2500)) / 100,
			Unit:  "kilogram",
		},
		Hazardous: false,
	}

	draft.OrderDetails = &models.OrderDetails{
		RetailOrderID:   gofakeit.LetterN(6) + gofakeit.DigitN(6),
		Amount:          float64(gofakeit.Number(100, 1000000)) / 100,
		Category:        pickLookup(categories),
		CategoryType:    pickLookup(categoryTypes),
		PaymentMethod:   gofakeit.RandomString([]string{"POST-FULFILLMENT", "ON-ORDER"}),
		PreparationTime: gofakeit.RandomString(preparationTimes),
	}

	return draft
}

// generateAddress — генерирует адрес с контактами и GPS-координатой
func generateAddress() *models.Address {
	return &models.Address{
		Building: gofakeit.Address().Street,
		Locality: gofakeit.Street(),
		City:     gofakeit.City(),
		State:    gofakeit.State(),
		Pincode:  gofakeit.DigitN(6),
		Phone:    gofakeit.Phone(),
		Email:    gofakeit.Email(),
		Location: &models.Location{
			GPS: fmt.Sprintf("%.7f,%.7f", gofakeit.Latitude(), gofakeit.Longitude()),
		},
	}
}

func pickLookup(values []models.LookupValue) *models.LookupValue {
	chosen := values[gofakeit.Number(0, len(values)-1)]
	return &chosen
}

// --- ГЕНЕРАТОРЫ НЕПОЛНЫХ И НЕВАЛИДНЫХ ДАННЫХ ---

// GenerateDraftOrder_MissingPickupAddress — черновик без адреса отправления:
// построитель запроса обязан подставить запасные координаты
func GenerateDraftOrder_MissingPickupAddress() models.DraftOrder {
	draft := GenerateDraftOrder()
	draft.PickupAddress = nil
	return draft
}

// GenerateDraftOrder_Bare — черновик только с идентификатором:
// все поля запроса должны получиться из значений по умолчанию
func GenerateDraftOrder_Bare() models.DraftOrder {
	return models.DraftOrder{ID: gofakeit.UUID()}
}

// GenerateDraftOrder_NegativeAmount — черновик с отрицательной суммой заказа
func GenerateDraftOrder_NegativeAmount() models.DraftOrder {
	draft := GenerateDraftOrder()
	draft.OrderDetails.Amount = -float64(gofakeit.Number(1, 10000)) / 100
	return draft
}

// GenerateDraftOrder_InvalidEmail — черновик с некорректным email получателя
func GenerateDraftOrder_InvalidEmail() models.DraftOrder {
	draft := GenerateDraftOrder()
	draft.DeliveryAddress.Email = "not-an-email"
	return draft
}

// GenerateDraftOrder_LongRetailOrderID — внешний номер заказа длиннее 16 символов
func GenerateDraftOrder_LongRetailOrderID() models.DraftOrder {
	draft := GenerateDraftOrder()
	draft.OrderDetails.RetailOrderID = gofakeit.LetterN(24)
	return draft
}
