package projects

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Project) error
	Update(ctx context.Context, id string, set bson.M) (Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Project, error)
	CountPublic(ctx context.Context, filter PublicListFilter) (int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (Project, error)
	ListAdmin(ctx context.Context, filter AdminListFilter, limit, offset int64) ([]Project, error)
	CountAdmin(ctx context.Context, filter AdminListFilter) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

var sortOrder = bson.D{
	{Key: "order", Value: -1},
	{Key: "createdAt", Value: -1},
}

func (r *MongoRepository) Create(ctx context.Context, item Project) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Project, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Project
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Project{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Project, error) {
	return r.list(ctx, publicQuery(filter), limit, offset)
}

func (r *MongoRepository) CountPublic(ctx context.Context, filter PublicListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, publicQuery(filter))
}

func (r *MongoRepository) GetPublishedBySlug(ctx context.Context, slug string) (Project, error) {
	var item Project
	if err := r.col.FindOne(ctx, bson.M{"slug": slug, "isPublished": true}).Decode(&item); err != nil {
		return Project{}, err
	}
	return item, nil
}

func (r *MongoRepository) ListAdmin(ctx context.Context, filter AdminListFilter, limit, offset int64) ([]Project, error) {
	return r.list(ctx, adminQuery(filter), limit, offset)
}

func (r *MongoRepository) CountAdmin(ctx context.Context, filter AdminListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, adminQuery(filter))
}

func (r *MongoRepository) list(ctx context.Context, query bson.M, limit, offset int64) ([]Project, error) {
	opts := options.Find().
		SetSort(sortOrder).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Project, 0)
	for cursor.Next(ctx) {
		var item Project
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func publicQuery(filter PublicListFilter) bson.M {
	query := bson.M{"isPublished": true}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured {
		query["featured"] = true
	}
	return query
}

func adminQuery(filter AdminListFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	return query
}
