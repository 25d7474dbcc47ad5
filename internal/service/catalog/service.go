package catalog

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Service exposes catalog reads to everyone and writes to administrators.
// The cart/checkout core only reads from it.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListInput mirrors the catalog listing query parameters.
type ListInput struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Ordering string
}

func (s *Service) List(ctx context.Context, in ListInput) ([]domain.Product, error) {
	f := productrepo.Filter{
		Category: strings.TrimSpace(in.Category),
		Search:   strings.TrimSpace(in.Search),
		Ordering: in.Ordering,
	}
	if in.MinPrice != nil {
		min := domain.Cents(*in.MinPrice)
		f.MinCents = &min
	}
	if in.MaxPrice != nil {
		max := domain.Cents(*in.MaxPrice)
		f.MaxCents = &max
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// UpsertInput carries the admin-editable product fields.
type UpsertInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image"`
	Images      []string `json:"images"`
}

func (s *Service) Create(ctx context.Context, in UpsertInput) (*domain.Product, error) {
	repoInput, err := validate(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *repoInput)
}

func (s *Service) Update(ctx context.Context, id string, in UpsertInput) (*domain.Product, error) {
	repoInput, err := validate(in)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.Update(ctx, id, *repoInput)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Product not found")
		}
		return err
	}
	return nil
}

func validate(in UpsertInput) (*productrepo.UpsertProductInput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("Title is required.")
	}
	if in.Price <= 0 {
		return nil, domain.Invalid("Invalid price.")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "Electronics"
	}
	if !domain.ValidCategory(category) {
		return nil, domain.Invalid("Invalid category.")
	}
	return &productrepo.UpsertProductInput{
		Title:       title,
		Description: in.Description,
		PriceCents:  domain.Cents(in.Price),
		Category:    category,
		ImageURL:    in.ImageURL,
		Images:      in.Images,
	}, nil
}
