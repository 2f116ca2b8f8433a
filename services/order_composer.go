package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kendall-kelly/inventory-admin-api/models"
	"go.uber.org/zap"
)

// ComposerState is a snapshot of the order composition view
type ComposerState struct {
	Visible   bool                   `json:"visible"`
	EditingID *uint                  `json:"editingId"` // nil while composing a new order
	Lines     []models.OrderLineItem `json:"lines"`
	Total     float64                `json:"total"`
	Form      models.CustomerFields  `json:"form"`
}

// OrderComposer builds new orders and rewrites existing ones.
// It keeps its own catalog snapshot and order list, separate from the
// catalog and roster views.
type OrderComposer struct {
	client   ResourceClient
	notifier Notifier
	logger   *zap.Logger
	basis    models.PriceBasis

	mu         sync.RWMutex
	catalog    []models.Item
	orders     []models.Order
	lines      []models.OrderLineItem
	total      float64
	editTarget *models.Order
	visible    bool
	form       models.CustomerFields
}

var orderComposerInstance *OrderComposer

// NewOrderComposer creates a composer; basis picks the item price copied into new lines
func NewOrderComposer(client ResourceClient, notifier Notifier, logger *zap.Logger, basis models.PriceBasis) *OrderComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if basis == "" {
		basis = models.PriceBasisMin
	}
	return &OrderComposer{
		client:   client,
		notifier: notifier,
		logger:   logger.Named("composer"),
		basis:    basis,
		catalog:  []models.Item{},
		orders:   []models.Order{},
		lines:    []models.OrderLineItem{},
	}
}

// InitOrderComposer initializes the shared order composer
func InitOrderComposer(client ResourceClient, notifier Notifier, logger *zap.Logger, basis models.PriceBasis) *OrderComposer {
	orderComposerInstance = NewOrderComposer(client, notifier, logger, basis)
	return orderComposerInstance
}

// GetOrderComposer returns the initialized order composer
func GetOrderComposer() *OrderComposer {
	return orderComposerInstance
}

// SetOrderComposer sets the order composer instance (primarily for testing)
func SetOrderComposer(c *OrderComposer) {
	orderComposerInstance = c
}

// Load fetches the catalog and the order list. Each failure is reported on its own.
func (c *OrderComposer) Load(ctx context.Context) error {
	ctx = detach(ctx)

	var errs []error
	var items []models.Item
	if err := c.client.List(ctx, models.ItemsCollection, &items); err != nil {
		c.notifier.Error(msgLoadItemsFailed, err)
		errs = append(errs, err)
	} else {
		if items == nil {
			items = []models.Item{}
		}
		c.mu.Lock()
		c.catalog = items
		c.mu.Unlock()
	}

	var orders []models.Order
	if err := c.client.List(ctx, models.OrdersCollection, &orders); err != nil {
		c.notifier.Error(msgLoadOrdersFailed, err)
		errs = append(errs, err)
	} else {
		if orders == nil {
			orders = []models.Order{}
		}
		c.mu.Lock()
		c.orders = orders
		c.mu.Unlock()
	}

	return errors.Join(errs...)
}

// State returns a snapshot of the composer
func (c *OrderComposer) State() ComposerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

// Toggle shows or hides the composer surface and returns the new visibility
func (c *OrderComposer) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = !c.visible
	return c.visible
}

// SearchProducts matches catalog items by name, ignoring case
func (c *OrderComposer) SearchProducts(query string) []models.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	needle := strings.ToLower(query)
	out := []models.Item{}
	for _, item := range c.catalog {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// AddProducts appends every catalog item in ids that is not selected yet, with
// quantity 1 and a copy of its catalog price. Unknown ids are ignored.
func (c *OrderComposer) AddProducts(ids []uint) ComposerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	for _, item := range c.catalog {
		if _, ok := wanted[item.ID]; !ok {
			continue
		}
		if models.FindLine(c.lines, item.ID) >= 0 {
			continue
		}
		c.lines = append(c.lines, models.OrderLineItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: 1,
			Price:    item.PriceFor(c.basis),
		})
	}
	c.total = models.SumLines(c.lines)
	return c.stateLocked()
}

// SetQuantity replaces the quantity of the line for itemID
func (c *OrderComposer) SetQuantity(itemID uint, qty int) (ComposerState, error) {
	if qty < 1 {
		return c.State(), ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := models.FindLine(c.lines, itemID)
	if idx < 0 {
		return c.stateLocked(), ErrLineNotFound
	}
	c.lines[idx].Quantity = qty
	c.total = models.SumLines(c.lines)
	return c.stateLocked(), nil
}

// RemoveProduct drops the line for itemID. Removing the last line is allowed.
func (c *OrderComposer) RemoveProduct(itemID uint) ComposerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]models.OrderLineItem, 0, len(c.lines))
	for _, line := range c.lines {
		if line.ID != itemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	c.total = models.SumLines(c.lines)
	return c.stateLocked()
}

// BeginEdit loads an existing order into the composer and reveals it.
// The total starts at the order's stored totalAmount.
func (c *OrderComposer) BeginEdit(orderID uint) (ComposerState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, order := range c.orders {
		if order.ID == orderID {
			target := order
			c.editTarget = &target
			c.form = order.CustomerFields()
			c.lines = models.CloneLines(order.Items)
			c.total = order.TotalAmount
			c.visible = true
			return c.stateLocked(), nil
		}
	}
	return c.stateLocked(), ErrOrderNotFound
}

// Submit creates a new order, or updates the one being edited, from the
// current selection. The composer is reset only when the store accepts it.
func (c *OrderComposer) Submit(ctx context.Context, customer models.CustomerFields) (models.Order, error) {
	if err := models.ValidateCustomer(customer); err != nil {
		return models.Order{}, err
	}

	c.mu.RLock()
	payload := models.Order{
		CustomerName: customer.CustomerName,
		Phone:        customer.Phone,
		Address:      customer.Address,
		Payment:      customer.Payment,
		Items:        models.CloneLines(c.lines),
		TotalAmount:  c.total,
	}
	var targetID uint
	if c.editTarget != nil {
		targetID = c.editTarget.ID
	}
	c.mu.RUnlock()

	ctx = detach(ctx)
	var saved models.Order
	if targetID != 0 {
		if err := c.client.Update(ctx, models.OrdersCollection, targetID, payload, &saved); err != nil {
			c.notifier.Error(msgOrderUpdateFailed, err)
			return models.Order{}, err
		}
	} else {
		if err := c.client.Create(ctx, models.OrdersCollection, payload, &saved); err != nil {
			c.notifier.Error(msgOrderAddFailed, err)
			return models.Order{}, err
		}
	}

	c.mu.Lock()
	if targetID != 0 {
		for i := range c.orders {
			if c.orders[i].ID == targetID {
				c.orders[i] = saved
			}
		}
	} else {
		c.orders = append(c.orders, saved)
	}
	c.editTarget = nil
	c.lines = []models.OrderLineItem{}
	c.total = 0
	c.form = models.CustomerFields{}
	c.mu.Unlock()

	if targetID != 0 {
		c.notifier.Success(msgOrderUpdated)
	} else {
		c.notifier.Success(msgOrderAdded)
	}
	c.logger.Info("order submitted", zap.Uint("order_id", saved.ID), zap.Bool("update", targetID != 0))
	return saved, nil
}

// DeleteOrder removes an order from the store and from the local list
func (c *OrderComposer) DeleteOrder(ctx context.Context, orderID uint) error {
	if err := c.client.Delete(detach(ctx), models.OrdersCollection, orderID); err != nil {
		c.notifier.Error(msgOrderDeleteFailed, err)
		return err
	}

	c.mu.Lock()
	c.orders = removeOrder(c.orders, orderID)
	c.mu.Unlock()

	c.notifier.Success(msgOrderDeleted)
	return nil
}

// Orders returns the order list as display panels
func (c *OrderComposer) Orders() []models.OrderView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return orderViews(c.orders)
}

func (c *OrderComposer) stateLocked() ComposerState {
	state := ComposerState{
		Visible: c.visible,
		Lines:   models.CloneLines(c.lines),
		Total:   c.total,
		Form:    c.form,
	}
	if c.editTarget != nil {
		id := c.editTarget.ID
		state.EditingID = &id
	}
	return state
}

func removeOrder(orders []models.Order, id uint) []models.Order {
	kept := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.ID != id {
			kept = append(kept, order)
		}
	}
	return kept
}

func orderViews(orders []models.Order) []models.OrderView {
	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, models.NewOrderView(order))
	}
	return views
}
