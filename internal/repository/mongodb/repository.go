package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atsdairy/dashboard/internal/domain/models"
)

const (
	snapshotCollection = "daily_snapshots"
	kvCollection       = "kv_state"
	kvSchemaVersion    = 1
)

// Repository defines the interface for snapshot storage.
type Repository interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// MongoDBRepository archives daily snapshots and doubles as a Mongo-backed
// key-value store for the persistence shim.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveDailySnapshot archives a daily snapshot.
func (r *MongoDBRepository) SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	collection := r.client.Database(r.dbName).Collection(snapshotCollection)
	_, err := collection.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert daily snapshot: %w", err)
	}
	return nil
}

// kvDocument is the stored shape for one key-value entry. The JSON body is
// kept as text so the document round-trips exactly what the shim serialized.
type kvDocument struct {
	Key     string `bson:"_id"`
	Version int    `bson:"version"`
	Body    string `bson:"body"`
}

// Save upserts the JSON-serialized value under key.
func (r *MongoDBRepository) Save(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for key %s: %w", key, err)
	}

	collection := r.client.Database(r.dbName).Collection(kvCollection)
	doc := kvDocument{Key: key, Version: kvSchemaVersion, Body: string(body)}
	_, err = collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert key %s: %w", key, err)
	}
	return nil
}

// Load decodes the value stored under key into out. Absent keys and bodies
// that no longer decode report found=false so callers use their default.
func (r *MongoDBRepository) Load(ctx context.Context, key string, out any) (bool, error) {
	collection := r.client.Database(r.dbName).Collection(kvCollection)

	var doc kvDocument
	err := collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find key %s: %w", key, err)
	}

	if doc.Version != kvSchemaVersion {
		return false, nil
	}
	if err := json.Unmarshal([]byte(doc.Body), out); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete removes the key; deleting an absent key is not an error.
func (r *MongoDBRepository) Delete(ctx context.Context, key string) error {
	collection := r.client.Database(r.dbName).Collection(kvCollection)
	if _, err := collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
