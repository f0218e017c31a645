package service

import (
	"regexp"
	"strings"

	"lsp-search-service/internal/models"
)

// emailRegex — строгая проверка email (без поддержки unicode)
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// retailOrderIDRegex — внешний номер заказа: до 16 алфавитно-цифровых символов
var retailOrderIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{1,16}$`)

// DraftOrderValidator предоставляет методы для валидации черновиков заказов
type DraftOrderValidator struct{}

// NewDraftOrderValidator создает новый валидатор черновиков
func NewDraftOrderValidator() *DraftOrderValidator {
	return &DraftOrderValidator{}
}

// CanBuildRequest проверяет, что оба адреса присутствуют. Построитель запроса
// всё равно подставит значения по умолчанию — этот флаг нужен, чтобы
// предупредить о спекулятивном поиске по неполному черновику.
func (v *DraftOrderValidator) CanBuildRequest(draft models.DraftOrder) bool {
	return draft.PickupAddress != nil && draft.DeliveryAddress != nil
}

// ValidateDraftOrder проверяет валидность полностью заполненного черновика
func (v *DraftOrderValidator) ValidateDraftOrder(draft models.DraftOrder) bool {
	return v.validateAddress(draft.PickupAddress) &&
		v.validateAddress(draft.DeliveryAddress) &&
		v.validatePackage(draft.PackageDetails) &&
		v.validateOrderDetails(draft.OrderDetails)
}

// validateAddress проверяет обязательные поля адреса
func (v *DraftOrderValidator) validateAddress(addr *models.Address) bool {
	if addr == nil {
		return false
	}
	return addr.City != "" &&
		addr.Pincode != "" &&
		addr.Phone != "" &&
		v.isValidEmail(addr.Email)
}

// isValidEmail проверяет, что email не пустой и соответствует формату
func (v *DraftOrderValidator) isValidEmail(email string) bool {
	return email != "" && emailRegex.MatchString(strings.ToLower(email))
}

// validatePackage проверяет валидность параметров посылки
func (v *DraftOrderValidator) validatePackage(pkg *models.PackageDetails) bool {
	if pkg == nil {
		return false
	}
	return pkg.Length > 0 &&
		pkg.Breadth > 0 &&
		pkg.Height > 0 &&
		pkg.Weight != nil &&
		pkg.Weight.Value > 0
}

// validateOrderDetails проверяет валидность деталей розничного заказа
func (v *DraftOrderValidator) validateOrderDetails(details *models.OrderDetails) bool {
	if details == nil {
		return false
	}
	return v.ValidateRetailOrderID(details.RetailOrderID) &&
		details.Amount >= 0 &&
		details.Category != nil && details.Category.Value != "" &&
		details.CategoryType != nil && details.CategoryType.Value != "" &&
		details.PaymentMethod != ""
}

// ValidateRetailOrderID проверяет внешний номер заказа (до 16 алфавитно-цифровых символов)
func (v *DraftOrderValidator) ValidateRetailOrderID(retailOrderID string) bool {
	return retailOrderIDRegex.MatchString(retailOrderID)
}

// ValidateQuote проверяет валидность предложения провайдера
func (v *DraftOrderValidator) ValidateQuote(quote models.Quote) bool {
	return quote.Name != "" &&
		quote.ShippingCharges >= 0 &&
		quote.RTOCharges >= 0
}
