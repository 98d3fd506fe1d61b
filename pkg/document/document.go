// Package document persists grid designs: the settings a sheet was
// computed from plus the ordered text blocks placed on it. Documents
// round-trip through JSON and are stored either as files for the CLI or
// in MongoDB behind the server.
package document

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/reflow"
)

// ErrNotFound is returned when a document does not exist in a store.
var ErrNotFound = errors.New(errors.ErrCodeDocumentNotFound, "Document not found")

// Document is a saved grid design.
type Document struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
	Settings  grid.Settings  `json:"settings" bson:"settings"`
	Blocks    []reflow.Block `json:"blocks" bson:"blocks"`
}

// New creates a document with a fresh ID and timestamps.
func New(name string, settings grid.Settings) (*Document, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Settings:  settings,
	}, nil
}

// Touch updates the modification timestamp.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Validate checks document-level constraints: a valid name and unique,
// well-formed block keys. Grid settings are validated when the sheet is
// computed, not here.
func (d *Document) Validate() error {
	if err := errors.ValidateDocumentName(d.Name); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Blocks))
	for _, b := range d.Blocks {
		if err := errors.ValidateBlockKey(b.Key); err != nil {
			return err
		}
		if seen[b.Key] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate block key: %q", b.Key)
		}
		seen[b.Key] = true
	}
	return nil
}

// Block returns the block with the given key, or nil.
func (d *Document) Block(key string) *reflow.Block {
	for i := range d.Blocks {
		if d.Blocks[i].Key == key {
			return &d.Blocks[i]
		}
	}
	return nil
}

// Order returns the block keys in document order, as the reflow planner
// consumes them.
func (d *Document) Order() []string {
	keys := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		keys[i] = b.Key
	}
	return keys
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by ID. Returns ErrNotFound if it does not
	// exist.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents, most recently updated first.
	List(ctx context.Context) ([]*Document, error)

	// Put stores a document, replacing any existing one with the same ID.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Returns ErrNotFound if it does not
	// exist.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
