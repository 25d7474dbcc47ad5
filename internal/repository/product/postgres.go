package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, title, description, price_cents, category, image_url, rating, created_at`

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

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" && !strings.EqualFold(f.Category, "All") {
		conds = append(conds, "category ILIKE "+arg(f.Category))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if f.MinCents != nil {
		conds = append(conds, "price_cents >= "+arg(*f.MinCents))
	}
	if f.MaxCents != nil {
		conds = append(conds, "price_cents <= "+arg(*f.MaxCents))
	}

	q := "SELECT " + productColumns + " FROM products"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	switch f.Ordering {
	case "price_asc":
		q += " ORDER BY price_cents ASC"
	case "price_desc":
		q += " ORDER BY price_cents DESC"
	case "name_asc":
		q += " ORDER BY title ASC"
	case "rating":
		q += " ORDER BY rating DESC"
	default:
		q += " ORDER BY created_at DESC"
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &p.ImageURL, &p.Rating, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &p.ImageURL, &p.Rating, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const imgQuery = `SELECT url FROM product_images WHERE product_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, imgQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		p.Images = append(p.Images, url)
	}
	return &p, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, in UpsertProductInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO products (title, description, price_cents, category, image_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + productColumns
	var p domain.Product
	if err := tx.QueryRow(ctx, q, in.Title, in.Description, in.PriceCents, in.Category, in.ImageURL).Scan(
		&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &p.ImageURL, &p.Rating, &p.CreatedAt,
	); err != nil {
		r.logger.Printf("product repo: create title=%q error=%v", in.Title, err)
		return nil, err
	}

	if err := replaceImages(ctx, tx, p.ID, in.Images); err != nil {
		return nil, err
	}
	p.Images = in.Images
	return &p, tx.Commit(ctx)
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpsertProductInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE products
SET title = $2, description = $3, price_cents = $4, category = $5, image_url = $6
WHERE id = $1
RETURNING ` + productColumns
	var p domain.Product
	if err := tx.QueryRow(ctx, q, id, in.Title, in.Description, in.PriceCents, in.Category, in.ImageURL).Scan(
		&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &p.ImageURL, &p.Rating, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}

	if err := replaceImages(ctx, tx, id, in.Images); err != nil {
		return nil, err
	}
	p.Images = in.Images
	return &p, tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isInvalidUUID reports a malformed uuid literal; unvalidated path params
// reach these queries directly.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func replaceImages(ctx context.Context, tx pgx.Tx, productID string, urls []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `INSERT INTO product_images (product_id, url) VALUES ($1, $2)`, productID, url); err != nil {
			return err
		}
	}
	return nil
}
