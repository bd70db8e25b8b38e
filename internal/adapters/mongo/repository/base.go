package repository

import (
	"context"
	"errors"

	"github.com/rafaelleal24/product-service/internal/adapters/mongo/document"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository is a key-value view over a collection: documents are
// addressed by their string _id and written whole.
type BaseRepository[T document.Document] struct {
	collection *mongo.Collection
}

func NewBaseRepository[T document.Document](db *mongo.Database, collectionName string) *BaseRepository[T] {
	return &BaseRepository[T]{
		collection: db.Collection(collectionName),
	}
}

// FindByKey returns nil, nil when no document has the key.
func (r *BaseRepository[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	var entity T
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, serviceerrors.NewStorageError(r.collection.Name()+": get failed", err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) FindByKeys(ctx context.Context, keys []string) ([]T, error) {
	if len(keys) == 0 {
		return []T{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": keys}}, r.collection.Name()+": batch get failed")
}

// Scan reads the whole collection. The result is a snapshot in natural
// order.
func (r *BaseRepository[T]) Scan(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{}, r.collection.Name()+": scan failed")
}

// Put writes the document at its key, replacing whatever was there.
func (r *BaseRepository[T]) Put(ctx context.Context, entity *T) error {
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": (*entity).GetID()},
		entity,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return serviceerrors.NewStorageError(r.collection.Name()+": put failed", err)
	}

	return nil
}

func (r *BaseRepository[T]) find(ctx context.Context, filter bson.M, message string) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, serviceerrors.NewStorageError(message, err)
	}
	defer cursor.Close(ctx)

	entities := []T{}
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, serviceerrors.NewStorageError(message, err)
	}

	return entities, nil
}
