package models

// OrderLineItem is a snapshot of an item taken when it was added to an order.
// Name and price are copies; they are not re-read from the catalog.
type OrderLineItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Price  `json:"price"`
}

// Total is price × quantity, or 0 when the price is not a number
func (l OrderLineItem) Total() float64 {
	price, ok := l.Price.Float()
	if !ok {
		return 0
	}
	return price * float64(l.Quantity)
}

// Order represents a customer purchase made of line item snapshots
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id,omitempty"`
	CustomerName string          `gorm:"not null" json:"customerName"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Payment      float64         `json:"payment"`                                // amount received
	Items        []OrderLineItem `gorm:"type:text;serializer:json" json:"items"` // stored as a JSON column
	TotalAmount  float64         `json:"totalAmount"`                            // total as submitted, never recomputed by the store
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// DisplayTotal recomputes the total from the stored line items.
// It can differ from TotalAmount after a roster edit.
func (o Order) DisplayTotal() float64 {
	return SumLines(o.Items)
}

// PaidInFull compares the payment against the stored TotalAmount, not the
// recomputed display total.
func (o Order) PaidInFull() bool {
	return o.Payment == o.TotalAmount
}

// SumLines is Σ price × quantity over lines
func SumLines(lines []OrderLineItem) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Total()
	}
	return total
}

// CloneLines copies a line slice so callers can edit it without aliasing
func CloneLines(lines []OrderLineItem) []OrderLineItem {
	if lines == nil {
		return []OrderLineItem{}
	}
	out := make([]OrderLineItem, len(lines))
	copy(out, lines)
	return out
}

// FindLine returns the index of the line for itemID in lines, or -1
func FindLine(lines []OrderLineItem, itemID uint) int {
	for i, line := range lines {
		if line.ID == itemID {
			return i
		}
	}
	return -1
}

// CustomerFields are the form fields of an order
type CustomerFields struct {
	CustomerName string  `json:"customerName" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	Payment      float64 `json:"payment" validate:"gte=0"`
}

// CustomerFields extracts the form fields of o
func (o Order) CustomerFields() CustomerFields {
	return CustomerFields{
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Payment:      o.Payment,
	}
}

// OrderView is an order as shown in a list panel
type OrderView struct {
	Order
	DisplayTotal float64 `json:"displayTotal"`
	PaidInFull   bool    `json:"paidInFull"`
}

// NewOrderView builds the panel representation of o
func NewOrderView(o Order) OrderView {
	return OrderView{
		Order:        o,
		DisplayTotal: o.DisplayTotal(),
		PaidInFull:   o.PaidInFull(),
	}
}
