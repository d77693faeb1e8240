package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created    *Post
	updatedSet bson.M
	updateErr  error
	byID       map[string]Post
	bySlug     map[string]Post
	views      map[string]int64
}

func (f *fakeRepo) Create(ctx context.Context, post Post) error {
	f.created = &post
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Post, error) {
	f.updatedSet = set
	if f.updateErr != nil {
		return Post{}, f.updateErr
	}
	return Post{ID: id}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Post, error) {
	if post, ok := f.byID[id]; ok {
		return post, nil
	}
	return Post{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Post, error) {
	return nil, nil
}

func (f *fakeRepo) CountPublic(ctx context.Context, filter PublicListFilter) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) GetPublishedBySlugAndCountView(ctx context.Context, slug string) (Post, error) {
	post, ok := f.bySlug[slug]
	if !ok || !post.IsPublished {
		return Post{}, mongo.ErrNoDocuments
	}
	if f.views == nil {
		f.views = make(map[string]int64)
	}
	f.views[slug]++
	post.Views += f.views[slug]
	return post, nil
}

func (f *fakeRepo) ListAdmin(ctx context.Context, limit, offset int64) ([]Post, error) {
	return nil, nil
}

func (f *fakeRepo) CountAdmin(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return []string{"seo"}, nil
}

func (f *fakeRepo) DistinctTags(ctx context.Context) ([]string, error) {
	return []string{"go"}, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateDefaultsToDraft(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	post, err := svc.Create(context.Background(), CreateRequest{
		Title:   "Why Core Web Vitals Matter",
		Content: "body",
		Excerpt: "short",
	}, "author-1")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.IsPublished {
		t.Fatalf("expected posts to default to draft")
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft must not carry publishedAt")
	}
	if post.AuthorID != "author-1" {
		t.Fatalf("expected author from claims, got %q", post.AuthorID)
	}
	if post.AuthorName != defaultAuthorName {
		t.Fatalf("expected default author name, got %q", post.AuthorName)
	}
	if post.Views != 0 {
		t.Fatalf("expected zero views, got %d", post.Views)
	}
}

func TestCreatePublishedStampsPublishedAt(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	published := true
	post, err := svc.Create(context.Background(), CreateRequest{
		Title:       "Launch Post",
		Content:     "body",
		Excerpt:     "short",
		IsPublished: &published,
	}, "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatalf("expected publishedAt on publish-at-create")
	}
}

func TestUpdateFirstPublishStampsPublishedAt(t *testing.T) {
	repo := &fakeRepo{byID: map[string]Post{"p1": {ID: "p1"}}}
	svc := newTestService(repo)

	published := true
	if _, err := svc.Update(context.Background(), "p1", UpdateRequest{IsPublished: &published}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if _, ok := repo.updatedSet["publishedAt"]; !ok {
		t.Fatalf("expected publishedAt stamped on first publish")
	}
}

func TestUpdateRepublishKeepsOriginalPublishedAt(t *testing.T) {
	was := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{byID: map[string]Post{"p1": {ID: "p1", PublishedAt: &was}}}
	svc := newTestService(repo)

	published := true
	if _, err := svc.Update(context.Background(), "p1", UpdateRequest{IsPublished: &published}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if _, ok := repo.updatedSet["publishedAt"]; ok {
		t.Fatalf("publishedAt must not be reset on republish")
	}
}

func TestUpdateUnpublishNeverClearsPublishedAt(t *testing.T) {
	was := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{byID: map[string]Post{"p1": {ID: "p1", PublishedAt: &was, IsPublished: true}}}
	svc := newTestService(repo)

	published := false
	if _, err := svc.Update(context.Background(), "p1", UpdateRequest{IsPublished: &published}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if _, ok := repo.updatedSet["publishedAt"]; ok {
		t.Fatalf("unpublish must not touch publishedAt")
	}
	if repo.updatedSet["isPublished"] != false {
		t.Fatalf("expected isPublished=false in set")
	}
}

func TestGetPublishedBySlugCountsViews(t *testing.T) {
	repo := &fakeRepo{bySlug: map[string]Post{"hello": {ID: "p1", Slug: "hello", IsPublished: true}}}
	svc := newTestService(repo)

	if _, err := svc.GetPublishedBySlug(context.Background(), "hello"); err != nil {
		t.Fatalf("GetPublishedBySlug error: %v", err)
	}
	if _, err := svc.GetPublishedBySlug(context.Background(), "hello"); err != nil {
		t.Fatalf("GetPublishedBySlug error: %v", err)
	}
	if repo.views["hello"] != 2 {
		t.Fatalf("expected 2 views counted, got %d", repo.views["hello"])
	}
}

func TestGetUnpublishedSlugLooksAbsent(t *testing.T) {
	repo := &fakeRepo{bySlug: map[string]Post{"draft": {ID: "p1", Slug: "draft", IsPublished: false}}}
	svc := newTestService(repo)

	_, draftErr := svc.GetPublishedBySlug(context.Background(), "draft")
	_, missingErr := svc.GetPublishedBySlug(context.Background(), "never-existed")

	if !errors.Is(draftErr, ErrNotFound) || !errors.Is(missingErr, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for both, got %v and %v", draftErr, missingErr)
	}
	if repo.views["draft"] != 0 {
		t.Fatalf("draft fetch must not count views")
	}
}
