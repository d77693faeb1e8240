package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"sfm-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound        = errors.New("post not found")
	ErrSlugExists      = errors.New("slug already exists")
	ErrInvalidSlug     = errors.New("invalid slug")
	ErrInvalidCategory = errors.New("invalid category")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, authorID string) (Post, error) {
	slug := utils.Slugify(req.Title)
	if slug == "" {
		return Post{}, ErrInvalidSlug
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryWebDevelopment
	}
	authorName := strings.TrimSpace(req.AuthorName)
	if authorName == "" {
		authorName = defaultAuthorName
	}

	// Posts start as drafts unless the request publishes them outright.
	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	now := time.Now().In(s.location)
	post := Post{
		ID:            primitive.NewObjectID().Hex(),
		Title:         strings.TrimSpace(req.Title),
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		AuthorID:      authorID,
		AuthorName:    authorName,
		Category:      category,
		Tags:          req.Tags,
		SEO:           req.SEO,
		IsPublished:   isPublished,
		Views:         0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if isPublished {
		post.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Post{}, ErrSlugExists
		}
		return Post{}, err
	}
	return post, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Post, error) {
	id = strings.TrimSpace(id)
	now := time.Now().In(s.location)

	set := bson.M{"updatedAt": now}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Excerpt != nil {
		set["excerpt"] = strings.TrimSpace(*req.Excerpt)
	}
	if req.FeaturedImage != nil {
		set["featuredImage"] = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.AuthorName != nil {
		set["authorName"] = strings.TrimSpace(*req.AuthorName)
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.SEO != nil {
		set["seo"] = req.SEO
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished

		// publishedAt is stamped on the first transition to published and
		// never reset, even if the post is later unpublished.
		if *req.IsPublished {
			existing, err := s.repo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return Post{}, ErrNotFound
				}
				return Post{}, err
			}
			if existing.PublishedAt == nil {
				set["publishedAt"] = now
			}
		}
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListPublic(ctx context.Context, filter PublicListFilter, page, limit int64) ([]Post, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Tag = strings.TrimSpace(filter.Tag)
	if filter.Category != "" && !IsValidCategory(filter.Category) {
		return nil, 0, ErrInvalidCategory
	}

	items, err := s.repo.ListPublic(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountPublic(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetPublishedBySlug counts a view as a side effect of every successful
// fetch. An unpublished post is reported exactly like a missing one.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Post, error) {
	post, err := s.repo.GetPublishedBySlugAndCountView(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return post, nil
}

func (s *Service) ListAdmin(ctx context.Context, page, limit int64) ([]Post, int64, error) {
	items, err := s.repo.ListAdmin(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAdmin(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}

func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.repo.DistinctTags(ctx)
}
