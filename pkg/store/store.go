// Package store archives parsed workflows for later retrieval.
//
// The HTTP API assigns each uploaded workflow an ID and persists the
// parsed record through a [Store]. MemoryStore backs single-process
// deployments and tests; MongoStore persists records across restarts
// when an archive URI is configured.
package store

import (
	"context"
	"time"

	"github.com/flowlens/flowlens/pkg/workflow"
)

// Record is one archived workflow.
type Record struct {
	// ID is the server-assigned identifier.
	ID string `bson:"_id" json:"id"`

	// Name is the workflow name from its metadata, if any.
	Name string `bson:"name,omitempty" json:"name,omitempty"`

	// Hash is the content hash of the uploaded file. Re-uploading the
	// same bytes returns the existing record instead of a new one.
	Hash string `bson:"hash" json:"hash"`

	// CreatedAt is when the record was archived.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	// Workflow is the parsed document.
	Workflow *workflow.Workflow `bson:"workflow" json:"workflow"`
}

// Store persists workflow records.
type Store interface {
	// Put archives a record, overwriting any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// FindByHash returns the record with the given content hash, or a
	// NOT_FOUND error. Used for upload deduplication.
	FindByHash(ctx context.Context, hash string) (*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
