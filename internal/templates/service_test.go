package templates

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created    *Template
	updatedSet bson.M
	createErr  error
	updateErr  error
	deleteOK   bool
	byID       map[string]Template
	salesIncs  map[string]int
}

func (f *fakeRepo) Create(ctx context.Context, item Template) error {
	f.created = &item
	return f.createErr
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Template, error) {
	f.updatedSet = set
	if f.updateErr != nil {
		return Template{}, f.updateErr
	}
	return Template{ID: id}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Template, error) {
	if item, ok := f.byID[id]; ok {
		return item, nil
	}
	return Template{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Template, error) {
	return nil, nil
}

func (f *fakeRepo) CountPublic(ctx context.Context, filter PublicListFilter) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) GetPublishedBySlug(ctx context.Context, slug string) (Template, error) {
	return Template{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) ListAdmin(ctx context.Context, filter AdminListFilter, limit, offset int64) ([]Template, error) {
	return nil, nil
}

func (f *fakeRepo) CountAdmin(ctx context.Context, filter AdminListFilter) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) IncrementSales(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return mongo.ErrNoDocuments
	}
	if f.salesIncs == nil {
		f.salesIncs = make(map[string]int)
	}
	f.salesIncs[id]++
	return nil
}

func (f *fakeRepo) SetStripeRefs(ctx context.Context, id, productID, priceID string) (Template, error) {
	item, ok := f.byID[id]
	if !ok {
		return Template{}, mongo.ErrNoDocuments
	}
	item.StripeProductID = productID
	item.StripePriceID = priceID
	f.byID[id] = item
	return item, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func price(v float64) *float64 { return &v }

func TestCreateDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:            "Apartment Finder Pro",
		Description:      "desc",
		ShortDescription: "short",
		FeaturedImage:    "/uploads/t.jpg",
		Price:            price(79.99),
		Platform:         PlatformWordpress,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Slug != "apartment-finder-pro" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}
	if created.Category != CategoryBusiness {
		t.Fatalf("expected default category business, got %q", created.Category)
	}
	if !created.IsPublished {
		t.Fatalf("expected templates to default to published")
	}
	if created.SalesCount != 0 {
		t.Fatalf("expected zero sales, got %d", created.SalesCount)
	}
	if created.Price != 79.99 {
		t.Fatalf("unexpected price %v", created.Price)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := &fakeRepo{
		createErr: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
	}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		Title:    "Taken",
		Price:    price(10),
		Platform: PlatformWebflow,
	})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpdateNeverTouchesSlugOrSales(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	title := "Renamed Template"
	salePrice := 49.99
	if _, err := svc.Update(context.Background(), "t1", UpdateRequest{Title: &title, SalePrice: &salePrice}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	for _, forbidden := range []string{"slug", "salesCount", "stripeProductId", "stripePriceId"} {
		if _, ok := repo.updatedSet[forbidden]; ok {
			t.Fatalf("%s must never appear in update set", forbidden)
		}
	}
	if repo.updatedSet["salePrice"] != 49.99 {
		t.Fatalf("expected salePrice in set, got %v", repo.updatedSet["salePrice"])
	}
}

func TestListPublicRejectsUnknownPlatform(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, _, err := svc.ListPublic(context.Background(), PublicListFilter{Platform: "dreamweaver"}, 1, 12)
	if !errors.Is(err, ErrInvalidPlatform) {
		t.Fatalf("expected ErrInvalidPlatform, got %v", err)
	}
}

func TestListPublicRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, _, err := svc.ListPublic(context.Background(), PublicListFilter{Category: "misc"}, 1, 12)
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
