package datagenerators

import (
	"fmt"
	"time"

	"lsp-search-service/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Режимы доставки, которые возвращают реальные провайдеры: ключевое слово
// классификации встроено в свободный текст
var deliveryModes = []string{
	"Hyperlocal - P2P",
	"Hyperlocal",
	"Intercity",
	"Intercity - Air",
}

var deliveryTypes = []string{
	"Same Day delivery",
	"Next Day delivery",
	"Standard delivery",
	"Express delivery",
	"Immediate delivery",
}

// GenerateQuote — генерирует предложение одного провайдера
func GenerateQuote() models.Quote {
	gofakeit.Seed(time.Now().UnixNano())

	return models.Quote{
		Name:              gofakeit.Company() + " Logistics",
		Domain:            gofakeit.DomainName(),
		Company:           gofakeit.Company(),
		Distance:          fmt.Sprintf("%.1f km", float64(gofakeit.Number(10, 4500))/10),
		DeliveryType:      gofakeit.RandomString(deliveryTypes),
		ExpectedPickup:    gofakeit.RandomString([]string{"PT15M", "PT30M", "PT45M", "PT1H"}),
		EstimatedDelivery: gofakeit.RandomString([]string{"PT2H", "PT4H", "PT12H", "P1D", "P2D"}),
		DeliveryMode:      gofakeit.RandomString(deliveryModes),
		ShippingCharges:   float64(gofakeit.Number(1000, 50000)) / 100,
		RTOCharges:        float64(gofakeit.Number(0, 20000)) / 100,
	}
}

// GenerateQuotes — генерирует список предложений провайдеров
func GenerateQuotes(count int) []models.Quote {
	quotes := make([]models.Quote, count)
	for i := 0; i < count; i++ {
		quotes[i] = GenerateQuote()
	}
	return quotes
}

// GenerateMalformedJSON_ReturnsBytes — возвращает заведомо нечитаемый JSON
func GenerateMalformedJSON_ReturnsBytes() []byte {
	return []byte(`{"quote": "unterminated`)
}
