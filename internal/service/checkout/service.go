package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	paymentrepo "storefront/internal/repository/payment"
)

type paymentRepo interface {
	CreateWithOrder(ctx context.Context, in paymentrepo.CreateWithOrderInput) (*paymentrepo.CreateWithOrderResult, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type eventPublisher interface {
	Publish(key string, payload interface{}) error
}

// Service converts client-asserted transactions into durable payment and
// order records.
type Service struct {
	payments paymentRepo
	products productGetter
	events   eventPublisher
	logger   *log.Logger
}

// New creates a Service. events may be nil to disable publishing.
func New(payments paymentrepo.Repository, products productGetter, events eventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{payments: payments, products: products, events: events, logger: logger}
}

// SubmitItem is one normalized line from the checkout payload.
type SubmitItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// SubmitInput is a normalized checkout submission.
type SubmitInput struct {
	UserID        string
	TransactionID string
	TotalAmount   float64
	Items         []SubmitItem
}

// SubmitResult carries the ids minted at checkout.
type SubmitResult struct {
	PaymentID string
	OrderID   string
	Status    string
}

// OrderCreatedEvent is published after a successful checkout.
type OrderCreatedEvent struct {
	OrderID       string  `json:"order_id"`
	PaymentID     string  `json:"payment_id"`
	UserID        string  `json:"user_id"`
	TransactionID string  `json:"transaction_id"`
	TotalAmount   float64 `json:"total_amount"`
}

// Submit validates the submission and atomically records the payment, the
// order, and both line-item snapshots. Validations run in order; the first
// failure wins.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	transactionID := strings.TrimSpace(in.TransactionID)
	if transactionID == "" {
		return nil, domain.Invalid("Transaction ID is required.")
	}
	if in.TotalAmount <= 0 {
		return nil, domain.Invalid("Invalid total amount.")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("No items in order.")
	}

	// Fast-path duplicate check; the unique constraint inside CreateWithOrder
	// remains the authoritative guard when two submissions race.
	exists, err := s.payments.ExistsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("This Transaction ID has already been submitted.")
	}

	items := make([]paymentrepo.SnapshotItem, 0, len(in.Items))
	for _, item := range in.Items {
		snap := paymentrepo.SnapshotItem{
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
		// A missing or deleted product is tolerated: the snapshot proceeds
		// with a nil product reference.
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

	res, err := s.payments.CreateWithOrder(ctx, paymentrepo.CreateWithOrderInput{
		UserID:        in.UserID,
		TransactionID: transactionID,
		TotalCents:    domain.Cents(in.TotalAmount),
		Items:         items,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("This Transaction ID has already been submitted.")
		}
		return nil, err
	}

	s.publishOrderCreated(OrderCreatedEvent{
		OrderID:       res.OrderID,
		PaymentID:     res.PaymentID,
		UserID:        in.UserID,
		TransactionID: transactionID,
		TotalAmount:   in.TotalAmount,
	})

	return &SubmitResult{PaymentID: res.PaymentID, OrderID: res.OrderID, Status: res.Status}, nil
}

// History returns the user's payments, newest first, with line items.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

// All returns every payment with the submitting username.
func (s *Service) All(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.ListAll(ctx)
}

// UpdateStatus moves a payment to a new status from the closed set.
func (s *Service) UpdateStatus(ctx context.Context, paymentID, status string) error {
	if !domain.ValidPaymentStatus(status) {
		return domain.Invalid("Invalid payment status.")
	}
	if err := s.payments.UpdateStatus(ctx, paymentID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Payment not found")
		}
		return err
	}
	return nil
}

// publishOrderCreated is fire-and-forget: a broker outage must not fail a
// checkout that already committed.
func (s *Service) publishOrderCreated(ev OrderCreatedEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish("order.created", ev); err != nil {
		s.logger.Printf("checkout: publish order.created order=%s error=%v", ev.OrderID, err)
	}
}
