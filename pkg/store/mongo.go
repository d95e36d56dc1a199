package store

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flowlens/flowlens/pkg/errors"
	"github.com/flowlens/flowlens/pkg/workflow"
)

// MongoStore persists workflow records in a MongoDB collection. Used
// when flowlens serve is started with an archive URI.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored document shape. The parsed workflow is kept
// as its JSON encoding: the schema-free configuration values do not
// survive BSON interface decoding, and the JSON form is what the API
// serves back anyway.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name,omitempty"`
	Hash      string    `bson:"hash"`
	CreatedAt time.Time `bson:"created_at"`
	Workflow  []byte    `bson:"workflow_json"`
}

// NewMongoStore connects to MongoDB at uri and uses the workflows
// collection of the flowlens database. The connection is verified with
// a ping before returning.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database("flowlens").Collection("workflows"),
	}
	return s, nil
}

// Put archives a record, upserting on ID.
func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec.Workflow)
	if err != nil {
		return err
	}
	doc := mongoRecord{
		ID:        rec.ID,
		Name:      rec.Name,
		Hash:      rec.Hash,
		CreatedAt: rec.CreatedAt,
		Workflow:  data,
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

// Get returns the record with the given ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	return s.findOne(ctx, bson.M{"_id": id}, "workflow %s not found", id)
}

// FindByHash returns the record with the given content hash.
func (s *MongoStore) FindByHash(ctx context.Context, hash string) (*Record, error) {
	return s.findOne(ctx, bson.M{"hash": hash}, "no workflow with hash %s", hash)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, notFoundFormat string, arg string) (*Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, notFoundFormat, arg)
	}
	if err != nil {
		return nil, err
	}

	var w workflow.Workflow
	if err := json.Unmarshal(doc.Workflow, &w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode archived workflow %s", doc.ID)
	}

	return &Record{
		ID:        doc.ID,
		Name:      doc.Name,
		Hash:      doc.Hash,
		CreatedAt: doc.CreatedAt,
		Workflow:  &w,
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
