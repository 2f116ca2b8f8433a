package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() Item {
	return Item{
		Name:          "Nail",
		MinPrice:      "1.50",
		PurchasePrice: "1",
		SellingPrice:  "2",
		Unit:          UnitPiece,
		Group:         "Hardware",
	}
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name   string
		modify func(item *Item)
		field  string
	}{
		{name: "missing name", modify: func(i *Item) { i.Name = "" }, field: "Name"},
		{name: "missing min price", modify: func(i *Item) { i.MinPrice = "" }, field: "MinPrice"},
		{name: "non-numeric selling price", modify: func(i *Item) { i.SellingPrice = "cheap" }, field: "SellingPrice"},
		{name: "unknown unit", modify: func(i *Item) { i.Unit = "pcs" }, field: "Unit"},
		{name: "missing group", modify: func(i *Item) { i.Group = "" }, field: "Group"},
	}

	assert.NoError(t, ValidateItem(validItem()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.modify(&item)

			err := ValidateItem(item)
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.field)
		})
	}
}

func TestValidateCustomer(t *testing.T) {
	assert.NoError(t, ValidateCustomer(CustomerFields{CustomerName: "Ann", Phone: "555", Address: "Main st"}))

	err := ValidateCustomer(CustomerFields{CustomerName: "Ann", Payment: -1})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"Phone", "Address", "Payment"}, vErr.Fields)
}
