package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created    *Project
	updatedSet bson.M
	createErr  error
	updateErr  error
	deleteOK   bool
	getErr     error
	listLimit  int64
	listOffset int64
	items      []Project
	total      int64
}

func (f *fakeRepo) Create(ctx context.Context, item Project) error {
	f.created = &item
	return f.createErr
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Project, error) {
	f.updatedSet = set
	if f.updateErr != nil {
		return Project{}, f.updateErr
	}
	return Project{ID: id}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeRepo) ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Project, error) {
	f.listLimit = limit
	f.listOffset = offset
	return f.items, nil
}

func (f *fakeRepo) CountPublic(ctx context.Context, filter PublicListFilter) (int64, error) {
	return f.total, nil
}

func (f *fakeRepo) GetPublishedBySlug(ctx context.Context, slug string) (Project, error) {
	if f.getErr != nil {
		return Project{}, f.getErr
	}
	return Project{Slug: slug}, nil
}

func (f *fakeRepo) ListAdmin(ctx context.Context, filter AdminListFilter, limit, offset int64) ([]Project, error) {
	f.listLimit = limit
	f.listOffset = offset
	return f.items, nil
}

func (f *fakeRepo) CountAdmin(ctx context.Context, filter AdminListFilter) (int64, error) {
	return f.total, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateDerivesSlugAndDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:            "Rock & Roll Bakery Site!",
		Description:      "desc",
		ShortDescription: "short",
		FeaturedImage:    "/uploads/x.jpg",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Slug != "rock-and-roll-bakery-site" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}
	if created.Category != CategoryWebsite {
		t.Fatalf("expected default category website, got %q", created.Category)
	}
	if !created.IsPublished {
		t.Fatalf("expected projects to default to published")
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateSymbolOnlyTitle(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.Create(context.Background(), CreateRequest{Title: "!!!"})
	if !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := &fakeRepo{
		createErr: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
	}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{Title: "Taken Title"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpdateNeverTouchesSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	title := "Completely New Title"
	if _, err := svc.Update(context.Background(), "p1", UpdateRequest{Title: &title}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if _, ok := repo.updatedSet["title"]; !ok {
		t.Fatalf("expected title in update set")
	}
	if _, ok := repo.updatedSet["slug"]; ok {
		t.Fatalf("slug must never appear in update set")
	}
}

func TestUpdateOnlySendsProvidedFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	published := false
	if _, err := svc.Update(context.Background(), "p1", UpdateRequest{IsPublished: &published}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got := repo.updatedSet["isPublished"]; got != false {
		t.Fatalf("expected isPublished=false in set, got %v", got)
	}
	if _, ok := repo.updatedSet["title"]; ok {
		t.Fatalf("absent fields must not be written")
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := &fakeRepo{updateErr: mongo.ErrNoDocuments}
	svc := newTestService(repo)

	title := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{deleteOK: false})

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPublicRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, _, err := svc.ListPublic(context.Background(), PublicListFilter{Category: "blogspam"}, 1, 12)
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestListPublicOffset(t *testing.T) {
	repo := &fakeRepo{total: 50}
	svc := newTestService(repo)

	_, total, err := svc.ListPublic(context.Background(), PublicListFilter{}, 3, 10)
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if repo.listOffset != 20 || repo.listLimit != 10 {
		t.Fatalf("expected offset 20 limit 10, got %d/%d", repo.listOffset, repo.listLimit)
	}
	if total != 50 {
		t.Fatalf("expected total 50, got %d", total)
	}
}

func TestGetPublishedBySlugNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{getErr: mongo.ErrNoDocuments})

	_, err := svc.GetPublishedBySlug(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
