package store

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/deepdiver/funnelreport/internal/models"
)

// Mongo is the document store the raw population persists in between
// pulls. Each ingest run replaces the whole collection, mirroring how
// the report snapshot is refreshed wholesale rather than merged.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	log    *slog.Logger
}

func NewMongo(ctx context.Context, uri, database, collection string, log *slog.Logger) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(collection),
		log:    log,
	}, nil
}

// ReplaceAll deletes every document and inserts the given rows. Returns
// the number of rows inserted.
func (m *Mongo) ReplaceAll(ctx context.Context, rows []models.RawRecord) (int, error) {
	del, err := m.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete existing rows: %w", err)
	}
	m.log.Info("cleared collection", slog.String("collection", m.coll.Name()), slog.Int64("deleted", del.DeletedCount))

	if len(rows) == 0 {
		return 0, nil
	}
	docs := make([]any, len(rows))
	for i, r := range rows {
		docs[i] = bson.M(r)
	}
	res, err := m.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert rows: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// FetchAll retrieves every stored row, stripping the document id.
func (m *Mongo) FetchAll(ctx context.Context) ([]models.RawRecord, error) {
	cur, err := m.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find rows: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.RawRecord
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		delete(doc, "_id")
		out = append(out, models.RawRecord(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
