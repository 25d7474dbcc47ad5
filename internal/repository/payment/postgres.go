package payment

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateWithOrder(ctx context.Context, in CreateWithOrderInput) (*CreateWithOrderResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var res CreateWithOrderResult
	err = tx.QueryRow(ctx, `
INSERT INTO payments (user_id, transaction_id, total_cents, status)
VALUES ($1, $2, $3, 'pending')
RETURNING id::text, status
`, in.UserID, in.TransactionID, in.TotalCents).Scan(&res.PaymentID, &res.Status)
	if err != nil {
		// The unique constraint on transaction_id is the authoritative
		// duplicate-submission guard; the service-level existence check is
		// only a fast path.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		r.logger.Printf("payment repo: insert payment tx=%s error=%v", in.TransactionID, err)
		return nil, err
	}

	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, transaction_id, total_cents, status)
VALUES ($1, $2, $3, 'pending')
RETURNING id::text
`, in.UserID, in.TransactionID, in.TotalCents).Scan(&res.OrderID)
	if err != nil {
		r.logger.Printf("payment repo: insert order tx=%s error=%v", in.TransactionID, err)
		return nil, err
	}

	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO payment_items (payment_id, product_id, product_name, product_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
`, res.PaymentID, item.ProductID, item.Name, item.PriceCents, item.Quantity); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, product_name, product_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
`, res.OrderID, item.ProductID, item.Name, item.PriceCents, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("payment repo: recorded payment=%s order=%s tx=%s", res.PaymentID, res.OrderID, in.TransactionID)
	return &res, nil
}

func (r *postgresRepo) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM payments WHERE transaction_id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, transactionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	const q = `
SELECT id::text, user_id::text, transaction_id, total_cents, status, created_at
FROM payments
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	var ids []string
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.TransactionID, &p.TotalCents, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return payments, nil
	}

	items, err := r.itemsByPayment(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		payments[i].Items = items[payments[i].ID]
	}
	return payments, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Payment, error) {
	const q = `
SELECT p.id::text, p.user_id::text, u.username, p.transaction_id, p.total_cents, p.status, p.created_at
FROM payments p
JOIN users u ON u.id = p.user_id
ORDER BY p.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.TransactionID, &p.TotalCents, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE payments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) itemsByPayment(ctx context.Context, paymentIDs []string) (map[string][]domain.PaymentItem, error) {
	const q = `
SELECT id::text, payment_id::text, product_id::text, product_name, product_price_cents, quantity
FROM payment_items
WHERE payment_id = ANY($1::uuid[])
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, paymentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.PaymentItem)
	for rows.Next() {
		var item domain.PaymentItem
		if err := rows.Scan(&item.ID, &item.PaymentID, &item.ProductID, &item.Name, &item.PriceCents, &item.Quantity); err != nil {
			return nil, err
		}
		out[item.PaymentID] = append(out[item.PaymentID], item)
	}
	return out, rows.Err()
}
