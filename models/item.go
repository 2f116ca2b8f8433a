package models

import (
	"fmt"
	"strings"
)

// Collection names on the remote data store
const (
	ItemsCollection  = "items"
	OrdersCollection = "orders"
)

// Unit is the unit of measure an item is sold in
type Unit string

const (
	UnitPiece      Unit = "шт"
	UnitKilogram   Unit = "кг"
	UnitCentimeter Unit = "см"
	UnitMeter      Unit = "м"
)

// Units lists every accepted unit in display order
var Units = []Unit{UnitPiece, UnitKilogram, UnitCentimeter, UnitMeter}

// Valid reports whether u is one of the known units
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// PriceBasis names the item price that is copied into an order line
type PriceBasis string

const (
	PriceBasisMin      PriceBasis = "minPrice"
	PriceBasisPurchase PriceBasis = "purchasePrice"
	PriceBasisSelling  PriceBasis = "sellingPrice"
)

// ParsePriceBasis accepts the JSON field name of one of the item prices
func ParsePriceBasis(s string) (PriceBasis, error) {
	switch basis := PriceBasis(strings.TrimSpace(s)); basis {
	case PriceBasisMin, PriceBasisPurchase, PriceBasisSelling:
		return basis, nil
	default:
		return "", fmt.Errorf("unknown price field %q", s)
	}
}

// Item represents a catalog entry (product) in the data store
type Item struct {
	ID            uint   `gorm:"primaryKey" json:"id,omitempty"`
	Name          string `gorm:"not null" json:"name" validate:"required"`
	MinPrice      Price  `gorm:"not null" json:"minPrice" validate:"required,numeric"`
	PurchasePrice Price  `gorm:"not null" json:"purchasePrice" validate:"required,numeric"`
	SellingPrice  Price  `gorm:"not null" json:"sellingPrice" validate:"required,numeric"`
	Unit          Unit   `gorm:"not null" json:"unit" validate:"required,unit"`
	Group         string `gorm:"column:item_group;index" json:"group" validate:"required"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// PriceFor returns the price selected by basis
func (i Item) PriceFor(basis PriceBasis) Price {
	switch basis {
	case PriceBasisPurchase:
		return i.PurchasePrice
	case PriceBasisSelling:
		return i.SellingPrice
	default:
		return i.MinPrice
	}
}
