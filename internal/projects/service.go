package projects

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
	ErrNotFound        = errors.New("project not found")
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

func (s *Service) Create(ctx context.Context, req CreateRequest) (Project, error) {
	slug := utils.Slugify(req.Title)
	if slug == "" {
		return Project{}, ErrInvalidSlug
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryWebsite
	}

	// Projects go live immediately unless the request says otherwise.
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}
	featured := false
	if req.Featured != nil {
		featured = *req.Featured
	}
	order := 0
	if req.Order != nil {
		order = *req.Order
	}

	now := time.Now().In(s.location)
	item := Project{
		ID:               primitive.NewObjectID().Hex(),
		Title:            strings.TrimSpace(req.Title),
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: strings.TrimSpace(req.ShortDescription),
		FeaturedImage:    strings.TrimSpace(req.FeaturedImage),
		Images:           req.Images,
		LiveURL:          strings.TrimSpace(req.LiveURL),
		Technologies:     req.Technologies,
		Category:         category,
		Client:           strings.TrimSpace(req.Client),
		CompletedDate:    strings.TrimSpace(req.CompletedDate),
		Featured:         featured,
		Order:            order,
		SEO:              req.SEO,
		IsPublished:      isPublished,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Project{}, ErrSlugExists
		}
		return Project{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Project, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ShortDescription != nil {
		set["shortDescription"] = strings.TrimSpace(*req.ShortDescription)
	}
	if req.FeaturedImage != nil {
		set["featuredImage"] = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.Images != nil {
		set["images"] = req.Images
	}
	if req.LiveURL != nil {
		set["liveUrl"] = strings.TrimSpace(*req.LiveURL)
	}
	if req.Technologies != nil {
		set["technologies"] = req.Technologies
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Client != nil {
		set["client"] = strings.TrimSpace(*req.Client)
	}
	if req.CompletedDate != nil {
		set["completedDate"] = strings.TrimSpace(*req.CompletedDate)
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}
	if req.SEO != nil {
		set["seo"] = req.SEO
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
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

func (s *Service) ListPublic(ctx context.Context, filter PublicListFilter, page, limit int64) ([]Project, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
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

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Project, error) {
	item, err := s.repo.GetPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, filter AdminListFilter, page, limit int64) ([]Project, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	items, err := s.repo.ListAdmin(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAdmin(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
