package order

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type fakeProducts struct {
	products map[string]domain.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type fakeOrderRepo struct {
	created  []orderrepo.CreateOrderInput
	statuses map[string]string
}

func (f *fakeOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	f.created = append(f.created, in)
	return &domain.Order{ID: "order-1", UserID: in.UserID, Status: domain.OrderPending}, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	if _, ok := f.statuses[id]; !ok {
		return domain.ErrNotFound
	}
	f.statuses[id] = status
	return nil
}

type recordingPublisher struct {
	keys []string
}

func (r *recordingPublisher) Publish(key string, _ interface{}) error {
	r.keys = append(r.keys, key)
	return nil
}

func newTestService(repo *fakeOrderRepo, events eventPublisher) *Service {
	return &Service{
		repo: repo,
		products: &fakeProducts{products: map[string]domain.Product{
			"prod-1": {ID: "prod-1", Title: "Headphones", PriceCents: 12999},
		}},
		events: events,
		logger: log.New(io.Discard, "", 0),
	}
}

func TestCreate_MissingItemsOrTotal(t *testing.T) {
	svc := newTestService(&fakeOrderRepo{}, nil)
	ctx := context.Background()

	cases := []CreateInput{
		{UserID: "user-1", TransactionID: "TXN-1", TotalAmount: 10},
		{UserID: "user-1", TransactionID: "TXN-1", Items: []CreateItem{{ProductID: "prod-1", Quantity: 1}}},
	}
	for i, in := range cases {
		_, err := svc.Create(ctx, in)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("case %d: expected invalid argument, got %v", i, err)
		}
		if err.Error() != "Missing items or total." {
			t.Fatalf("case %d: unexpected message %q", i, err.Error())
		}
	}
}

func TestCreate_SnapshotsItems(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, nil)

	order, err := svc.Create(context.Background(), CreateInput{
		UserID:        "user-1",
		TransactionID: "TXN-1",
		TotalAmount:   139.98,
		Items: []CreateItem{
			{ProductID: "prod-1", Name: "Headphones", Price: 129.99, Quantity: 1},
			{ProductID: "gone", Name: "", Price: 9.99, Quantity: 0},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID != "order-1" {
		t.Fatalf("unexpected order: %+v", order)
	}

	items := repo.created[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(items))
	}
	if items[0].ProductID == nil || *items[0].ProductID != "prod-1" {
		t.Fatalf("expected resolved product reference")
	}
	if items[1].ProductID != nil || items[1].Name != "Unknown" || items[1].Quantity != 1 {
		t.Fatalf("unexpected fallback snapshot: %+v", items[1])
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeOrderRepo{statuses: map[string]string{"order-1": domain.OrderPending}}, nil)

	err := svc.UpdateStatus(context.Background(), "order-1", "completed")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if err.Error() != "Invalid order status." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	svc := newTestService(&fakeOrderRepo{statuses: map[string]string{}}, nil)

	err := svc.UpdateStatus(context.Background(), "missing", domain.OrderShipped)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatus_AppliesAndPublishes(t *testing.T) {
	repo := &fakeOrderRepo{statuses: map[string]string{"order-1": domain.OrderPending}}
	events := &recordingPublisher{}
	svc := newTestService(repo, events)

	if err := svc.UpdateStatus(context.Background(), "order-1", domain.OrderShipped); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.statuses["order-1"] != domain.OrderShipped {
		t.Fatalf("status not applied: %q", repo.statuses["order-1"])
	}
	if len(events.keys) != 1 || events.keys[0] != "order.status_changed" {
		t.Fatalf("expected order.status_changed event, got %v", events.keys)
	}
}
