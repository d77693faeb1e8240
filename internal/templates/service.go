package templates

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
	ErrNotFound        = errors.New("template not found")
	ErrSlugExists      = errors.New("slug already exists")
	ErrInvalidSlug     = errors.New("invalid slug")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPlatform = errors.New("invalid platform")
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

func (s *Service) Create(ctx context.Context, req CreateRequest) (Template, error) {
	slug := utils.Slugify(req.Title)
	if slug == "" {
		return Template{}, ErrInvalidSlug
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryBusiness
	}

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
	salePrice := 0.0
	if req.SalePrice != nil {
		salePrice = *req.SalePrice
	}

	now := time.Now().In(s.location)
	item := Template{
		ID:               primitive.NewObjectID().Hex(),
		Title:            strings.TrimSpace(req.Title),
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: strings.TrimSpace(req.ShortDescription),
		FeaturedImage:    strings.TrimSpace(req.FeaturedImage),
		Images:           req.Images,
		PreviewURL:       strings.TrimSpace(req.PreviewURL),
		Price:            *req.Price,
		SalePrice:        salePrice,
		Category:         category,
		Platform:         strings.TrimSpace(req.Platform),
		Features:         req.Features,
		DownloadURL:      strings.TrimSpace(req.DownloadURL),
		Featured:         featured,
		Order:            order,
		SEO:              req.SEO,
		IsPublished:      isPublished,
		SalesCount:       0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Template{}, ErrSlugExists
		}
		return Template{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Template, error) {
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
	if req.PreviewURL != nil {
		set["previewUrl"] = strings.TrimSpace(*req.PreviewURL)
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.SalePrice != nil {
		set["salePrice"] = *req.SalePrice
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Platform != nil {
		set["platform"] = strings.TrimSpace(*req.Platform)
	}
	if req.Features != nil {
		set["features"] = req.Features
	}
	if req.DownloadURL != nil {
		set["downloadUrl"] = strings.TrimSpace(*req.DownloadURL)
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
			return Template{}, ErrNotFound
		}
		return Template{}, err
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

func (s *Service) GetByID(ctx context.Context, id string) (Template, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return item, nil
}

func (s *Service) ListPublic(ctx context.Context, filter PublicListFilter, page, limit int64) ([]Template, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Platform = strings.TrimSpace(filter.Platform)
	if filter.Category != "" && !IsValidCategory(filter.Category) {
		return nil, 0, ErrInvalidCategory
	}
	if filter.Platform != "" && !IsValidPlatform(filter.Platform) {
		return nil, 0, ErrInvalidPlatform
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

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Template, error) {
	item, err := s.repo.GetPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, filter AdminListFilter, page, limit int64) ([]Template, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Platform = strings.TrimSpace(filter.Platform)
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
