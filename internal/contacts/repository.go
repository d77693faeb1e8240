package contacts

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, contact Contact) error
	List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Contact, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	GetAndMarkRead(ctx context.Context, id string) (Contact, error)
	Update(ctx context.Context, id string, set bson.M) (Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, contact Contact) error {
	_, err := r.col.InsertOne(ctx, contact)
	return err
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Contact, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, listQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Contact, 0)
	for cursor.Next(ctx) {
		var contact Contact
		if err := cursor.Decode(&contact); err != nil {
			return nil, err
		}
		items = append(items, contact)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, listQuery(filter))
}

// GetAndMarkRead flips isRead in the same operation that fetches the
// contact. The write is an unconditional $set, so re-reading an already
// read contact is a no-op.
func (r *MongoRepository) GetAndMarkRead(ctx context.Context, id string) (Contact, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"isRead": true}}

	var contact Contact
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Contact, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Contact
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Contact{}, err
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

func (r *MongoRepository) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByStatus: make(map[string]int64)}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return Stats{}, err
	}
	stats.Total = total

	unread, err := r.col.CountDocuments(ctx, bson.M{"isRead": false})
	if err != nil {
		return Stats{}, err
	}
	stats.UnreadCount = unread

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return Stats{}, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return Stats{}, err
		}
		stats.ByStatus[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return Stats{}, err
	}

	stats.NewCount = stats.ByStatus[StatusNew]
	return stats, nil
}

func listQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}
