package cart

import (
	"context"

	"storefront/internal/domain"
)

// CreateCartInput names the owner of a new cart. Exactly one of the two
// fields must be set.
type CreateCartInput struct {
	UserID      *string
	AnonymousID *string
}

type Repository interface {
	Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// GetByAnonymous only matches ownerless carts; a cart claimed by a user is
	// no longer reachable through its anonymous id.
	GetByAnonymous(ctx context.Context, anonymousID string) (*domain.Cart, error)
	GetItem(ctx context.Context, itemID string) (*domain.CartItem, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context, cartID string) error
	ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error)
	// ItemCount returns the sum of all line quantities in the cart.
	ItemCount(ctx context.Context, cartID string) (int, error)
}
