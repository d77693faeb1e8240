package contacts

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("contact not found")
	ErrInvalidStatus = errors.New("invalid status")
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

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Contact, error) {
	projectType := strings.TrimSpace(req.ProjectType)
	if projectType == "" {
		projectType = ProjectTypeNewWebsite
	}
	budget := strings.TrimSpace(req.Budget)
	if budget == "" {
		budget = BudgetNotSure
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = SourceWebsite
	}

	now := time.Now().In(s.location)
	contact := Contact{
		ID:            primitive.NewObjectID().Hex(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Company:       strings.TrimSpace(req.Company),
		ProjectType:   projectType,
		Budget:        budget,
		Timeline:      strings.TrimSpace(req.Timeline),
		Message:       strings.TrimSpace(req.Message),
		PreferredDate: strings.TrimSpace(req.PreferredDate),
		PreferredTime: strings.TrimSpace(req.PreferredTime),
		Source:        source,
		Status:        StatusNew,
		IsRead:        false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Contact, int64, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	items, err := s.repo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID marks the contact as read as a side effect.
func (s *Service) GetByID(ctx context.Context, id string) (Contact, error) {
	contact, err := s.repo.GetAndMarkRead(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, id string, req AdminUpdateRequest) (Contact, error) {
	now := time.Now().In(s.location)

	set := bson.M{"updatedAt": now}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Notes != nil {
		set["notes"] = strings.TrimSpace(*req.Notes)
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
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

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
