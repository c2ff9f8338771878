// Package mongo implements the application repository on MongoDB,
// the platform's canonical document database.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zee-2005/safara-sub000/internal/store/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "applications"

type Repository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a client and prepares the applications collection, including
// the contact-lookup index used by idempotent registration.
func Connect(ctx context.Context, uri, database string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	coll := client.Database(database).Collection(collectionName)

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "mobile", Value: 1}, {Key: "email", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return &Repository{client: client, coll: coll}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *Repository) Create(ctx context.Context, app *core.Application) error {
	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return core.ErrConflict
		}
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*core.Application, error) {
	var app core.Application
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return &app, nil
}

func (r *Repository) FindActiveByContact(ctx context.Context, mobile, email string) (*core.Application, error) {
	filter := bson.M{
		"mobile": mobile,
		"email":  email,
		"status": bson.M{"$ne": string(core.StatusRejected)},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var app core.Application
	err := r.coll.FindOne(ctx, filter, opts).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find active: %w", err)
	}
	return &app, nil
}

func (r *Repository) Update(ctx context.Context, app *core.Application) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": app.ID}, app)
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
