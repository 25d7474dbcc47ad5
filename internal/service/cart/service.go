package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"

	"github.com/google/uuid"
)

// Identity names the cart owner for a request: an authenticated user id, or
// the anonymous session id carried by the guest's cookie. Both may be empty
// for a first-time guest.
type Identity struct {
	UserID    string
	SessionID string
}

type cartRepo interface {
	Create(ctx context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetByAnonymous(ctx context.Context, anonymousID string) (*domain.Cart, error)
	GetItem(ctx context.Context, itemID string) (*domain.CartItem, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context, cartID string) error
	ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error)
	ItemCount(ctx context.Context, cartID string) (int, error)
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service resolves carts and maintains their line items.
type Service struct {
	repo     cartRepo
	products productGetter
}

func New(repo cartrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// Resolve returns the single cart the identity is allowed to mutate,
// creating it when absent. An authenticated identity always maps to its own
// cart; a guest session id only matches an ownerless cart.
func (s *Service) Resolve(ctx context.Context, ident Identity) (*domain.Cart, error) {
	if ident.UserID != "" {
		cart, err := s.repo.GetByUser(ctx, ident.UserID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		userID := ident.UserID
		return s.repo.Create(ctx, cartrepo.CreateCartInput{UserID: &userID})
	}

	if ident.SessionID != "" {
		cart, err := s.repo.GetByAnonymous(ctx, ident.SessionID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	anonID := uuid.NewString()
	return s.repo.Create(ctx, cartrepo.CreateCartInput{AnonymousID: &anonID})
}

// AddItem adds the product to the cart, incrementing the existing line when
// one exists. Returns the product (for the response message) and the new
// aggregate item count.
func (s *Service) AddItem(ctx context.Context, cart *domain.Cart, productID string, quantity int) (*domain.Product, int, error) {
	if quantity < 1 {
		return nil, 0, domain.Invalid("Quantity must be at least 1.")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.NotFound("Product not found")
		}
		return nil, 0, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, product.ID, quantity); err != nil {
		return nil, 0, err
	}
	count, err := s.repo.ItemCount(ctx, cart.ID)
	if err != nil {
		return nil, 0, err
	}
	return product, count, nil
}

// View is the cart rendered for display.
type View struct {
	Items           []domain.CartLine
	GrandTotalCents int64
	Count           int
}

// View lists the cart's lines with live product data and totals.
func (s *Service) View(ctx context.Context, cart *domain.Cart) (*View, error) {
	lines, err := s.repo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	view := &View{Items: lines}
	for _, line := range lines {
		view.GrandTotalCents += line.PriceCents * int64(line.Quantity)
		view.Count += line.Quantity
	}
	return view, nil
}

// UpdateItem sets the quantity of a line the cart owns and returns the new
// aggregate item count.
func (s *Service) UpdateItem(ctx context.Context, cart *domain.Cart, itemID string, quantity int) (int, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.NotFound("Item not found")
		}
		return 0, err
	}
	if item.CartID != cart.ID {
		return 0, domain.Forbidden("Item does not belong to your cart.")
	}
	if quantity < 1 {
		return 0, domain.Invalid("Quantity must be at least 1.")
	}
	if err := s.repo.SetItemQuantity(ctx, itemID, quantity); err != nil {
		return 0, err
	}
	return s.repo.ItemCount(ctx, cart.ID)
}

// RemoveItem deletes a line the cart owns and returns the new item count.
func (s *Service) RemoveItem(ctx context.Context, cart *domain.Cart, itemID string) (int, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.NotFound("Item not found")
		}
		return 0, err
	}
	if item.CartID != cart.ID {
		return 0, domain.Forbidden("Item does not belong to your cart.")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return 0, err
	}
	return s.repo.ItemCount(ctx, cart.ID)
}

// Clear removes every line from the cart. Clearing an empty cart succeeds.
func (s *Service) Clear(ctx context.Context, cart *domain.Cart) error {
	return s.repo.Clear(ctx, cart.ID)
}

// MergeLine is one entry from a guest's pre-login cart.
type MergeLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Merge folds guest lines into the cart, add-or-incrementing each. Lines
// with a missing quantity or an unknown product are skipped silently; a
// partial merge is acceptable. Returns the number of merged lines.
func (s *Service) Merge(ctx context.Context, cart *domain.Cart, lines []MergeLine) (int, error) {
	merged := 0
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return merged, err
		}
		if err := s.repo.AddItem(ctx, cart.ID, product.ID, line.Quantity); err != nil {
			return merged, err
		}
		merged++
	}
	return merged, nil
}
