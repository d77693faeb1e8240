package templates

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Template) error
	Update(ctx context.Context, id string, set bson.M) (Template, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (Template, error)
	ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Template, error)
	CountPublic(ctx context.Context, filter PublicListFilter) (int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (Template, error)
	ListAdmin(ctx context.Context, filter AdminListFilter, limit, offset int64) ([]Template, error)
	CountAdmin(ctx context.Context, filter AdminListFilter) (int64, error)
	IncrementSales(ctx context.Context, id string) error
	SetStripeRefs(ctx context.Context, id, productID, priceID string) (Template, error)
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

func (r *MongoRepository) Create(ctx context.Context, item Template) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Template, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Template
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Template{}, err
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

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Template, error) {
	var item Template
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Template{}, err
	}
	return item, nil
}

func (r *MongoRepository) ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Template, error) {
	return r.list(ctx, publicQuery(filter), limit, offset)
}

func (r *MongoRepository) CountPublic(ctx context.Context, filter PublicListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, publicQuery(filter))
}

func (r *MongoRepository) GetPublishedBySlug(ctx context.Context, slug string) (Template, error) {
	var item Template
	if err := r.col.FindOne(ctx, bson.M{"slug": slug, "isPublished": true}).Decode(&item); err != nil {
		return Template{}, err
	}
	return item, nil
}

func (r *MongoRepository) ListAdmin(ctx context.Context, filter AdminListFilter, limit, offset int64) ([]Template, error) {
	return r.list(ctx, adminQuery(filter), limit, offset)
}

func (r *MongoRepository) CountAdmin(ctx context.Context, filter AdminListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, adminQuery(filter))
}

// IncrementSales bumps the counter atomically; concurrent webhook deliveries
// for different purchases cannot lose updates.
func (r *MongoRepository) IncrementSales(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"salesCount": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository) SetStripeRefs(ctx context.Context, id, productID, priceID string) (Template, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set": bson.M{
			"stripeProductId": productID,
			"stripePriceId":   priceID,
		},
	}

	var updated Template
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Template{}, err
	}
	return updated, nil
}

func (r *MongoRepository) list(ctx context.Context, query bson.M, limit, offset int64) ([]Template, error) {
	opts := options.Find().
		SetSort(sortOrder).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Template, 0)
	for cursor.Next(ctx) {
		var item Template
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
	if filter.Platform != "" {
		query["platform"] = filter.Platform
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
	if filter.Platform != "" {
		query["platform"] = filter.Platform
	}
	return query
}
