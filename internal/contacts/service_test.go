package contacts

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created    *Contact
	updatedSet bson.M
	updateErr  error
	deleteOK   bool
	byID       map[string]Contact
	markReads  map[string]int
	listFilter ListFilter
}

func (f *fakeRepo) Create(ctx context.Context, contact Contact) error {
	f.created = &contact
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Contact, error) {
	f.listFilter = filter
	return nil, nil
}

func (f *fakeRepo) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) GetAndMarkRead(ctx context.Context, id string) (Contact, error) {
	contact, ok := f.byID[id]
	if !ok {
		return Contact{}, mongo.ErrNoDocuments
	}
	if f.markReads == nil {
		f.markReads = make(map[string]int)
	}
	f.markReads[id]++
	contact.IsRead = true
	f.byID[id] = contact
	return contact, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Contact, error) {
	f.updatedSet = set
	if f.updateErr != nil {
		return Contact{}, f.updateErr
	}
	return Contact{ID: id}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeRepo) Stats(ctx context.Context) (Stats, error) {
	return Stats{}, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestSubmitDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	contact, err := svc.Submit(context.Background(), SubmitRequest{
		Name:    "Jamie Lee",
		Email:   "Jamie@Example.COM",
		Message: "Need a new site",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if contact.Status != StatusNew {
		t.Fatalf("expected status new, got %q", contact.Status)
	}
	if contact.ProjectType != ProjectTypeNewWebsite {
		t.Fatalf("expected default project type, got %q", contact.ProjectType)
	}
	if contact.Budget != BudgetNotSure {
		t.Fatalf("expected default budget, got %q", contact.Budget)
	}
	if contact.Source != SourceWebsite {
		t.Fatalf("expected default source, got %q", contact.Source)
	}
	if contact.IsRead {
		t.Fatalf("new contact must start unread")
	}
	if contact.Email != "jamie@example.com" {
		t.Fatalf("expected lowercased email, got %q", contact.Email)
	}
}

func TestGetByIDMarksReadIdempotently(t *testing.T) {
	repo := &fakeRepo{byID: map[string]Contact{"c1": {ID: "c1"}}}
	svc := newTestService(repo)

	first, err := svc.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !first.IsRead {
		t.Fatalf("expected contact flipped to read")
	}

	second, err := svc.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !second.IsRead {
		t.Fatalf("expected contact to stay read")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, _, err := svc.List(context.Background(), ListFilter{Status: "spam"}, 1, 20)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestListPassesStatusFilter(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	if _, _, err := svc.List(context.Background(), ListFilter{Status: StatusQualified}, 1, 20); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.listFilter.Status != StatusQualified {
		t.Fatalf("expected status filter passed through, got %q", repo.listFilter.Status)
	}
}

func TestUpdateOnlySendsProvidedFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	status := StatusContacted
	if _, err := svc.Update(context.Background(), "c1", AdminUpdateRequest{Status: &status}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if repo.updatedSet["status"] != StatusContacted {
		t.Fatalf("expected status in set, got %v", repo.updatedSet["status"])
	}
	if _, ok := repo.updatedSet["notes"]; ok {
		t.Fatalf("absent notes must not be written")
	}
	if _, ok := repo.updatedSet["isRead"]; ok {
		t.Fatalf("status updates must not touch isRead")
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{deleteOK: false})

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
