package services

import (
	"context"
	"errors"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrLineNotFound    = errors.New("line item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrNoDraft         = errors.New("no order is being edited")
)

// User-facing notice texts
const (
	msgLoadItemsFailed   = "Failed to load items."
	msgLoadOrdersFailed  = "Failed to load orders."
	msgItemAdded         = "Item added successfully."
	msgItemUpdated       = "Item updated successfully."
	msgItemSaveFailed    = "Failed to save item."
	msgItemDeleted       = "Item deleted successfully."
	msgItemDeleteFailed  = "Failed to delete item."
	msgOrderAdded        = "Order added successfully."
	msgOrderAddFailed    = "Failed to add order."
	msgOrderUpdated      = "Order updated successfully."
	msgOrderUpdateFailed = "Failed to update order."
	msgOrderDeleted      = "Order deleted successfully."
	msgOrderDeleteFailed = "Failed to delete order."
)

// detach keeps a request running after the caller goes away.
// Issued store calls are never aborted; the client timeout still applies.
func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
