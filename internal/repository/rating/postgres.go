package rating

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.ProductRating, error) {
	const q = `
SELECT pr.id::text, pr.product_id::text, pr.user_id::text, u.username, pr.score, pr.review, pr.created_at, pr.updated_at
FROM product_ratings pr
JOIN users u ON u.id = pr.user_id
WHERE pr.product_id = $1
ORDER BY pr.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, notFoundOnBadID(err)
	}
	defer rows.Close()

	var ratings []domain.ProductRating
	for rows.Next() {
		var pr domain.ProductRating
		if err := rows.Scan(&pr.ID, &pr.ProductID, &pr.UserID, &pr.Username, &pr.Score, &pr.Review, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, pr)
	}
	return ratings, rows.Err()
}

func (r *postgresRepo) GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.ProductRating, error) {
	const q = `
SELECT id::text, product_id::text, user_id::text, score, review, created_at, updated_at
FROM product_ratings
WHERE product_id = $1 AND user_id = $2
`
	var pr domain.ProductRating
	err := r.pool.QueryRow(ctx, q, productID, userID).Scan(&pr.ID, &pr.ProductID, &pr.UserID, &pr.Score, &pr.Review, &pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, notFoundOnBadID(err)
	}
	return &pr, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, productID, userID string, score int, review string) (float64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO product_ratings (product_id, user_id, score, review)
VALUES ($1, $2, $3, $4)
ON CONFLICT (product_id, user_id)
DO UPDATE SET score = EXCLUDED.score, review = EXCLUDED.review, updated_at = now()
`
	if _, err := tx.Exec(ctx, q, productID, userID, score, review); err != nil {
		return 0, err
	}

	avg, err := recomputeAverage(ctx, tx, productID)
	if err != nil {
		return 0, err
	}
	return avg, tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, productID, userID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM product_ratings WHERE product_id = $1 AND user_id = $2`, productID, userID)
	if err != nil {
		return notFoundOnBadID(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := recomputeAverage(ctx, tx, productID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// recomputeAverage re-scans all scores for the product and persists the mean
// rounded to one decimal, 0 when no ratings remain.
func recomputeAverage(ctx context.Context, tx pgx.Tx, productID string) (float64, error) {
	const q = `
UPDATE products
SET rating = COALESCE((
	SELECT ROUND(AVG(score)::numeric, 1)
	FROM product_ratings
	WHERE product_id = $1
), 0)
WHERE id = $1
RETURNING rating
`
	var avg float64
	if err := tx.QueryRow(ctx, q, productID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func notFoundOnBadID(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return domain.ErrNotFound
	}
	return err
}
