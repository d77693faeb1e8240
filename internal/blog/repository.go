package blog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, post Post) error
	Update(ctx context.Context, id string, set bson.M) (Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (Post, error)
	ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Post, error)
	CountPublic(ctx context.Context, filter PublicListFilter) (int64, error)
	GetPublishedBySlugAndCountView(ctx context.Context, slug string) (Post, error)
	ListAdmin(ctx context.Context, limit, offset int64) ([]Post, error)
	CountAdmin(ctx context.Context) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctTags(ctx context.Context) ([]string, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, post Post) error {
	_, err := r.col.InsertOne(ctx, post)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Post
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Post{}, err
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

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Post, error) {
	var post Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (r *MongoRepository) ListPublic(ctx context.Context, filter PublicListFilter, limit, offset int64) ([]Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, publicQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeAll(ctx, cursor)
}

func (r *MongoRepository) CountPublic(ctx context.Context, filter PublicListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, publicQuery(filter))
}

// GetPublishedBySlugAndCountView bumps the view counter with an atomic $inc
// in the same operation that fetches the post, so concurrent readers of a
// popular post never lose counts. The returned document already includes the
// new total.
func (r *MongoRepository) GetPublishedBySlugAndCountView(ctx context.Context, slug string) (Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{"views": 1}}

	var post Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug, "isPublished": true}, update, opts).Decode(&post)
	if err != nil {
		return Post{}, err
	}
	return post, nil
}

func (r *MongoRepository) ListAdmin(ctx context.Context, limit, offset int64) ([]Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeAll(ctx, cursor)
}

func (r *MongoRepository) CountAdmin(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *MongoRepository) DistinctTags(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "tags")
}

func (r *MongoRepository) distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := r.col.Distinct(ctx, field, bson.M{"isPublished": true})
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values, nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]Post, error) {
	items := make([]Post, 0)
	for cursor.Next(ctx) {
		var post Post
		if err := cursor.Decode(&post); err != nil {
			return nil, err
		}
		items = append(items, post)
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
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	return query
}
