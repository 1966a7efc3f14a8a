package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jsonvault/jsonvault/internal/apidoc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens the document-store connection and verifies it with a ping.
// The timeout bounds both dialing and server selection so a bad store URL
// fails fast instead of stalling startup. Caller should call
// client.Disconnect(ctx) when done.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoRepo implements a MongoDB-backed repository for api documents.
// The unique index on "slug" is what makes Create a check-then-set: a racing
// second insert fails with a duplicate-key error instead of overwriting.
type MongoRepo struct {
	col   *mongo.Collection
	probe *mongo.Collection
}

// NewMongoRepo builds the repository and ensures the unique slug index.
// Index creation failure is fatal for the caller: without the index, Create
// degrades to an unconditional insert and duplicate slugs become possible.
func NewMongoRepo(ctx context.Context, db *mongo.Database) (*MongoRepo, error) {
	col := db.Collection("apidocs")
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idxModel); err != nil {
		return nil, fmt.Errorf("create unique slug index: %w", err)
	}
	return &MongoRepo{col: col, probe: db.Collection("healthchecks")}, nil
}

func (m *MongoRepo) Create(ctx context.Context, doc *apidoc.ApiDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	_, err := m.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

func (m *MongoRepo) Get(ctx context.Context, slug string) (*apidoc.ApiDocument, error) {
	var d apidoc.ApiDocument
	err := m.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*apidoc.ApiDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*apidoc.ApiDocument{}
	for cur.Next(ctx) {
		var d apidoc.ApiDocument
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Update(ctx context.Context, slug string, jsonData string) error {
	set := bson.M{"jsonData": jsonData, "updatedAt": time.Now().UTC()}
	res, err := m.col.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, slug string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping upserts a probe document and reads it back. The probe lives in its own
// collection so health checks never show up in listings.
func (m *MongoRepo) Ping(ctx context.Context) error {
	_, err := m.probe.UpdateOne(ctx,
		bson.M{"_id": "probe"},
		bson.M{"$set": bson.M{"ts": time.Now().UTC()}},
		options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	return m.probe.FindOne(ctx, bson.M{"_id": "probe"}).Err()
}
