package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type eventPublisher interface {
	Publish(key string, payload interface{}) error
}

// Service reads order history and applies administrator status changes.
type Service struct {
	repo     orderRepo
	products productGetter
	events   eventPublisher
	logger   *log.Logger
}

// New creates a Service. events may be nil to disable publishing.
func New(repo orderrepo.Repository, products productGetter, events eventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, products: products, events: events, logger: logger}
}

// CreateItem is one line of a direct order creation.
type CreateItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"product_name"`
	Price     float64 `json:"product_price"`
	Quantity  int     `json:"quantity"`
}

// CreateInput records an order directly from a payload, outside checkout.
type CreateInput struct {
	UserID        string
	TransactionID string
	TotalAmount   float64
	Items         []CreateItem
}

// Create records an order with line-item snapshots.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if len(in.Items) == 0 || in.TotalAmount <= 0 {
		return nil, domain.Invalid("Missing items or total.")
	}

	items := make([]orderrepo.SnapshotItem, 0, len(in.Items))
	for _, item := range in.Items {
		snap := orderrepo.SnapshotItem{
			Name:       item.Name,
			PriceCents: domain.Cents(item.Price),
			Quantity:   item.Quantity,
		}
		if snap.Name == "" {
			snap.Name = "Unknown"
		}
		if snap.Quantity < 1 {
			snap.Quantity = 1
		}
		if item.ProductID != "" {
			if product, err := s.products.GetByID(ctx, item.ProductID); err == nil {
				id := product.ID
				snap.ProductID = &id
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		items = append(items, snap)
	}

	return s.repo.Create(ctx, orderrepo.CreateOrderInput{
		UserID:        in.UserID,
		TransactionID: in.TransactionID,
		TotalCents:    domain.Cents(in.TotalAmount),
		Items:         items,
	})
}

// History returns the user's orders, newest first, with line items.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// All returns every order with username and item count.
func (s *Service) All(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// OrderStatusChangedEvent is published after an administrator status change.
type OrderStatusChangedEvent struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// UpdateStatus applies an administrator status change. The status must be in
// the closed set; this is a label change, not a guarded state machine.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.Invalid("Invalid order status.")
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Order not found")
		}
		return err
	}

	if s.events != nil {
		ev := OrderStatusChangedEvent{OrderID: orderID, Status: status}
		if err := s.events.Publish("order.status_changed", ev); err != nil {
			s.logger.Printf("order: publish order.status_changed order=%s error=%v", orderID, err)
		}
	}
	return nil
}
