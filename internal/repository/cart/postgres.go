package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cartColumns = `id::text, user_id::text, anonymous_id::text, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id, anonymous_id)
VALUES ($1, $2)
RETURNING ` + cartColumns
	return scanCart(r.pool.QueryRow(ctx, q, in.UserID, in.AnonymousID))
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `SELECT ` + cartColumns + ` FROM carts WHERE user_id = $1`
	cart, err := scanCart(r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		return nil, notFoundOnMiss(err)
	}
	return cart, nil
}

func (r *postgresRepo) GetByAnonymous(ctx context.Context, anonymousID string) (*domain.Cart, error) {
	const q = `SELECT ` + cartColumns + ` FROM carts WHERE anonymous_id = $1 AND user_id IS NULL`
	cart, err := scanCart(r.pool.QueryRow(ctx, q, anonymousID))
	if err != nil {
		return nil, notFoundOnMiss(err)
	}
	return cart, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, itemID string) (*domain.CartItem, error) {
	const q = `
SELECT id::text, cart_id::text, product_id::text, quantity, created_at
FROM cart_items
WHERE id = $1
`
	var item domain.CartItem
	err := r.pool.QueryRow(ctx, q, itemID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return nil, notFoundOnMiss(err)
	}
	return &item, nil
}

// AddItem inserts the (cart, product) line or increments its quantity. The
// unique constraint on (cart_id, product_id) makes racing adds converge on a
// single row.
func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	if _, err := tx.Exec(ctx, q, cartID, productID, quantity); err != nil {
		return err
	}
	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) SetItemQuantity(ctx context.Context, itemID string, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, itemID, quantity)
	if err != nil {
		return notFoundOnMiss(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteItem(ctx context.Context, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return notFoundOnMiss(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func (r *postgresRepo) ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	const q = `
SELECT ci.id::text, ci.product_id::text, p.title, p.price_cents, ci.quantity
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ItemID, &line.ProductID, &line.ProductTitle, &line.PriceCents, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) ItemCount(ctx context.Context, cartID string) (int, error) {
	const q = `SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE cart_id = $1`
	var count int
	if err := r.pool.QueryRow(ctx, q, cartID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanCart(row pgx.Row) (*domain.Cart, error) {
	var cart domain.Cart
	if err := row.Scan(&cart.ID, &cart.UserID, &cart.AnonymousID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}
	return &cart, nil
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}

// notFoundOnMiss folds "no rows" and malformed-uuid lookups into ErrNotFound.
// Cookie and path values reach these queries unvalidated.
func notFoundOnMiss(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return domain.ErrNotFound
	}
	return err
}
