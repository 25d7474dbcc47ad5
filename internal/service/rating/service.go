package rating

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	ratingrepo "storefront/internal/repository/rating"
)

type ratingRepo interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.ProductRating, error)
	GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.ProductRating, error)
	Upsert(ctx context.Context, productID, userID string, score int, review string) (float64, error)
	Delete(ctx context.Context, productID, userID string) error
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type purchaseChecker interface {
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}

// Service manages product ratings and keeps the denormalized product average
// consistent with the rating set.
type Service struct {
	repo     ratingRepo
	products productGetter
	orders   purchaseChecker
}

func New(repo ratingrepo.Repository, products productGetter, orders purchaseChecker) *Service {
	return &Service{repo: repo, products: products, orders: orders}
}

// Summary is the public rating view for a product.
type Summary struct {
	Average float64
	Count   int
	Ratings []domain.ProductRating
}

// ProductRatings returns all ratings and the stored average for a product.
func (s *Service) ProductRatings(ctx context.Context, productID string) (*Summary, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found")
		}
		return nil, err
	}
	ratings, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &Summary{Average: product.Rating, Count: len(ratings), Ratings: ratings}, nil
}

// MyRating is the requesting user's rating plus their eligibility to rate.
type MyRating struct {
	HasPurchased bool
	Rating       *domain.ProductRating
}

// Mine returns the user's own rating for the product, if any, and whether
// they have a qualifying purchase.
func (s *Service) Mine(ctx context.Context, productID, userID string) (*MyRating, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found")
		}
		return nil, err
	}
	purchased, err := s.orders.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	out := &MyRating{HasPurchased: purchased}
	rating, err := s.repo.GetByProductAndUser(ctx, productID, userID)
	if err == nil {
		out.Rating = rating
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return out, nil
}

// SubmitResult reports the write outcome and the recomputed average.
type SubmitResult struct {
	Created    bool
	Score      int
	Review     string
	NewAverage float64
}

// Submit creates or replaces the user's rating. Only buyers can rate; the
// eligibility check runs on every submission.
func (s *Service) Submit(ctx context.Context, productID, userID string, score int, review string) (*SubmitResult, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found")
		}
		return nil, err
	}

	purchased, err := s.orders.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, domain.Forbidden("You can only rate products you have purchased.")
	}

	if score < 1 || score > 5 {
		return nil, domain.Invalid("Score must be between 1 and 5.")
	}
	review = strings.TrimSpace(review)

	created := false
	if _, err := s.repo.GetByProductAndUser(ctx, productID, userID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		created = true
	}

	avg, err := s.repo.Upsert(ctx, productID, userID, score, review)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Created: created, Score: score, Review: review, NewAverage: avg}, nil
}

// Delete removes the user's rating and recomputes the product average.
func (s *Service) Delete(ctx context.Context, productID, userID string) error {
	if err := s.repo.Delete(ctx, productID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("No rating found.")
		}
		return err
	}
	return nil
}
