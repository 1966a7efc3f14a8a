package repository

import (
	"context"
	"errors"

	"github.com/jsonvault/jsonvault/internal/apidoc"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Repository is the document-store gateway for ApiDocuments. All write
// operations are atomic per document; Create is a conditional insert so that
// at most one concurrent creator for a slug wins.
type Repository interface {
	// Create persists doc and stamps both timestamps. Returns
	// ErrAlreadyExists when the slug is taken.
	Create(ctx context.Context, doc *apidoc.ApiDocument) error
	// Get returns the document for slug or ErrNotFound.
	Get(ctx context.Context, slug string) (*apidoc.ApiDocument, error)
	// List returns all documents ordered by creation time, newest first.
	List(ctx context.Context) ([]*apidoc.ApiDocument, error)
	// Update replaces jsonData and bumps updatedAt, leaving createdAt
	// untouched. Returns ErrNotFound when the slug is absent.
	Update(ctx context.Context, slug string, jsonData string) error
	// Delete removes the document or returns ErrNotFound.
	Delete(ctx context.Context, slug string) error
	// Ping confirms store connectivity with a write/read round-trip.
	Ping(ctx context.Context) error
}
