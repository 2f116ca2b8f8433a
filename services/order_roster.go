package services

import (
	"context"
	"sync"

	"github.com/kendall-kelly/inventory-admin-api/models"
	"go.uber.org/zap"
)

// CustomerPatch carries the customer fields changed in the roster editor.
// Nil fields are left as they are.
type CustomerPatch struct {
	CustomerName *string `json:"customerName"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

// OrderDraft is the roster's full-order editor
type OrderDraft struct {
	Order        models.Order `json:"order"`
	DisplayTotal float64      `json:"displayTotal"`
}

// OrderRoster owns the persisted order list and the full-order editor
type OrderRoster struct {
	client   ResourceClient
	notifier Notifier
	logger   *zap.Logger

	mu     sync.RWMutex
	orders []models.Order
	draft  *models.Order
}

var orderRosterInstance *OrderRoster

// NewOrderRoster creates a roster with an empty order list
func NewOrderRoster(client ResourceClient, notifier Notifier, logger *zap.Logger) *OrderRoster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderRoster{
		client:   client,
		notifier: notifier,
		logger:   logger.Named("roster"),
		orders:   []models.Order{},
	}
}

// InitOrderRoster initializes the shared order roster
func InitOrderRoster(client ResourceClient, notifier Notifier, logger *zap.Logger) *OrderRoster {
	orderRosterInstance = NewOrderRoster(client, notifier, logger)
	return orderRosterInstance
}

// GetOrderRoster returns the initialized order roster
func GetOrderRoster() *OrderRoster {
	return orderRosterInstance
}

// SetOrderRoster sets the order roster instance (primarily for testing)
func SetOrderRoster(r *OrderRoster) {
	orderRosterInstance = r
}

// LoadAll replaces the local list with the store's current orders
func (r *OrderRoster) LoadAll(ctx context.Context) error {
	var orders []models.Order
	if err := r.client.List(detach(ctx), models.OrdersCollection, &orders); err != nil {
		r.notifier.Error(msgLoadOrdersFailed, err)
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	r.mu.Lock()
	r.orders = orders
	r.mu.Unlock()
	return nil
}

// Orders returns the list with display-time totals
func (r *OrderRoster) Orders() []models.OrderView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return orderViews(r.orders)
}

// Order returns the loaded order with id
func (r *OrderRoster) Order(id uint) (models.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.ID == id {
			return order, true
		}
	}
	return models.Order{}, false
}

// DisplayTotal recomputes an order's total from its stored lines
func DisplayTotal(order models.Order) float64 {
	return order.DisplayTotal()
}

// BeginEdit opens the editor on a copy of the loaded order with id
func (r *OrderRoster) BeginEdit(id uint) (OrderDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == id {
			draft := order
			draft.Items = models.CloneLines(order.Items)
			r.draft = &draft
			return r.draftLocked(), nil
		}
	}
	return OrderDraft{}, ErrOrderNotFound
}

// Draft returns the order being edited
func (r *OrderRoster) Draft() (OrderDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.draft == nil {
		return OrderDraft{}, ErrNoDraft
	}
	return r.draftLocked(), nil
}

// SetCustomer changes the customer fields of the draft
func (r *OrderRoster) SetCustomer(patch CustomerPatch) (OrderDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.draft == nil {
		return OrderDraft{}, ErrNoDraft
	}
	if patch.CustomerName != nil {
		r.draft.CustomerName = *patch.CustomerName
	}
	if patch.Phone != nil {
		r.draft.Phone = *patch.Phone
	}
	if patch.Address != nil {
		r.draft.Address = *patch.Address
	}
	return r.draftLocked(), nil
}

// SetLinePrice rewrites the price of one draft line; the price is kept as text
func (r *OrderRoster) SetLinePrice(itemID uint, price float64) (OrderDraft, error) {
	if price < 0 {
		return OrderDraft{}, ErrInvalidPrice
	}
	return r.editLine(itemID, func(line *models.OrderLineItem) {
		line.Price = models.NewPrice(price)
	})
}

// SetLineQuantity rewrites the quantity of one draft line
func (r *OrderRoster) SetLineQuantity(itemID uint, qty int) (OrderDraft, error) {
	if qty < 1 {
		return OrderDraft{}, ErrInvalidQuantity
	}
	return r.editLine(itemID, func(line *models.OrderLineItem) {
		line.Quantity = qty
	})
}

// CancelEdit discards the draft
func (r *OrderRoster) CancelEdit() {
	r.mu.Lock()
	r.draft = nil
	r.mu.Unlock()
}

// Save sends the whole draft as a partial update and, on success, puts the
// draft itself into the local list. totalAmount is sent unchanged; it is not
// recomputed from the edited lines.
func (r *OrderRoster) Save(ctx context.Context) (models.Order, error) {
	r.mu.RLock()
	if r.draft == nil {
		r.mu.RUnlock()
		return models.Order{}, ErrNoDraft
	}
	updated := *r.draft
	updated.Items = models.CloneLines(r.draft.Items)
	r.mu.RUnlock()

	if err := r.client.Update(detach(ctx), models.OrdersCollection, updated.ID, updated, nil); err != nil {
		r.notifier.Error(msgOrderUpdateFailed, err)
		return models.Order{}, err
	}

	r.mu.Lock()
	for i := range r.orders {
		if r.orders[i].ID == updated.ID {
			r.orders[i] = updated
		}
	}
	r.draft = nil
	r.mu.Unlock()

	r.notifier.Success(msgOrderUpdated)
	return updated, nil
}

// Remove deletes the order with id and drops it from the local list
func (r *OrderRoster) Remove(ctx context.Context, id uint) error {
	if err := r.client.Delete(detach(ctx), models.OrdersCollection, id); err != nil {
		r.notifier.Error(msgOrderDeleteFailed, err)
		return err
	}

	r.mu.Lock()
	r.orders = removeOrder(r.orders, id)
	if r.draft != nil && r.draft.ID == id {
		r.draft = nil
	}
	r.mu.Unlock()

	r.notifier.Success(msgOrderDeleted)
	return nil
}

func (r *OrderRoster) editLine(itemID uint, edit func(line *models.OrderLineItem)) (OrderDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.draft == nil {
		return OrderDraft{}, ErrNoDraft
	}
	idx := models.FindLine(r.draft.Items, itemID)
	if idx < 0 {
		return r.draftLocked(), ErrLineNotFound
	}
	edit(&r.draft.Items[idx])
	return r.draftLocked(), nil
}

func (r *OrderRoster) draftLocked() OrderDraft {
	order := *r.draft
	order.Items = models.CloneLines(r.draft.Items)
	return OrderDraft{Order: order, DisplayTotal: order.DisplayTotal()}
}
