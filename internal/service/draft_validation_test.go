package service

import (
	"testing"

	"lsp-search-service/internal/datagenerators"
	"lsp-search-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDraftOrderValidator_CanBuildRequest(t *testing.T) {
	validator := NewDraftOrderValidator()

	assert.True(t, validator.CanBuildRequest(datagenerators.GenerateDraftOrder()))
	assert.False(t, validator.CanBuildRequest(datagenerators.GenerateDraftOrder_MissingPickupAddress()))
	assert.False(t, validator.CanBuildRequest(datagenerators.GenerateDraftOrder_Bare()))
}

func TestDraftOrderValidator_ValidateDraftOrder(t *testing.T) {
	validator := NewDraftOrderValidator()

	tests := []struct {
		name  string
		draft models.DraftOrder
		want  bool
	}{
		{"ValidDraft", datagenerators.GenerateDraftOrder(), true},
		{"MissingPickupAddress", datagenerators.GenerateDraftOrder_MissingPickupAddress(), false},
		{"BareDraft", datagenerators.GenerateDraftOrder_Bare(), false},
		{"NegativeAmount", datagenerators.GenerateDraftOrder_NegativeAmount(), false},
		{"InvalidEmail", datagenerators.GenerateDraftOrder_InvalidEmail(), false},
		{"LongRetailOrderID", datagenerators.GenerateDraftOrder_LongRetailOrderID(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.ValidateDraftOrder(tt.draft))
		})
	}
}

func TestDraftOrderValidator_ValidateRetailOrderID(t *testing.T) {
	validator := NewDraftOrderValidator()

	tests := []struct {
		name    string
		orderID string
		want    bool
	}{
		{"Valid", "ORDER12345", true},
		{"MaxLength", "abcdefgh12345678", true},
		{"Empty", "", false},
		{"TooLong", "abcdefgh123456789", false},
		{"SpecialCharacters", "ORDER-123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.ValidateRetailOrderID(tt.orderID))
		})
	}
}

func TestDraftOrderValidator_ValidateQuote(t *testing.T) {
	validator := NewDraftOrderValidator()

	valid := datagenerators.GenerateQuote()
	assert.True(t, validator.ValidateQuote(valid))

	noName := valid
	noName.Name = ""
	assert.False(t, validator.ValidateQuote(noName))

	negativeCharges := valid
	negativeCharges.ShippingCharges = -1
	assert.False(t, validator.ValidateQuote(negativeCharges))
}
