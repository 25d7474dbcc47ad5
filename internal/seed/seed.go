package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Title       string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
}

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin", "admin@storefront.local", "admin123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Title:       "Wireless Headphones",
			Description: "Over-ear headphones with noise cancellation",
			PriceCents:  12999,
			Category:    "Electronics",
			ImageURL:    "https://picsum.photos/seed/headphones/600",
		},
		{
			Title:       "Silver Pendant Necklace",
			Description: "Sterling silver pendant on an 18 inch chain",
			PriceCents:  4950,
			Category:    "Jewelry",
			ImageURL:    "https://picsum.photos/seed/necklace/600",
		},
		{
			Title:       "Classic Oxford Shirt",
			Description: "Slim-fit cotton oxford in light blue",
			PriceCents:  3999,
			Category:    "Men's Clothing",
			ImageURL:    "https://picsum.photos/seed/oxford/600",
		},
		{
			Title:       "Summer Wrap Dress",
			Description: "Floral wrap dress in breathable viscose",
			PriceCents:  5499,
			Category:    "Women's Clothing",
			ImageURL:    "https://picsum.photos/seed/dress/600",
		},
		{
			Title:       "Single Malt Whisky 12yr",
			Description: "Speyside single malt, 12 years, 700ml",
			PriceCents:  6500,
			Category:    "Liquor",
			ImageURL:    "https://picsum.photos/seed/whisky/600",
		},
		{
			Title:       "Smart Watch (Clearance)",
			Description: "Previous-generation smart watch, boxed",
			PriceCents:  7900,
			Category:    "Sale",
			ImageURL:    "https://picsum.photos/seed/watch/600",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Title, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, username, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, email, password_hash, is_admin)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (username) DO UPDATE SET is_admin = TRUE
`
	_, err = pool.Exec(ctx, q, username, email, string(hashed))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (title, description, price_cents, category, image_url)
SELECT $1, $2, $3, $4, $5
WHERE NOT EXISTS (SELECT 1 FROM products WHERE title = $1)
`
	_, err := pool.Exec(ctx, q, p.Title, p.Description, p.PriceCents, p.Category, p.ImageURL)
	return err
}
