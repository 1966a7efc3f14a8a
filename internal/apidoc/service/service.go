package service

import (
	"context"

	"github.com/jsonvault/jsonvault/internal/apidoc"
	"github.com/jsonvault/jsonvault/internal/apidoc/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service defines the document operations used by the handler layer.
// Implementations pass the repository sentinels (repository.ErrNotFound,
// repository.ErrAlreadyExists) through unchanged.
type Service interface {
	Create(ctx context.Context, doc *apidoc.ApiDocument) error
	Get(ctx context.Context, slug string) (*apidoc.ApiDocument, error)
	List(ctx context.Context) ([]*apidoc.ApiDocument, error)
	Update(ctx context.Context, slug string, jsonData string) error
	Delete(ctx context.Context, slug string) error
	Ping(ctx context.Context) error
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return &storeService{repo: repository.NewMemoryRepo()}
}

// NewMongoService returns a Service backed by a MongoDB database.
// Caller is responsible for creating the client and passing the database in.
// Fails when the unique slug index cannot be ensured.
func NewMongoService(ctx context.Context, db *mongo.Database) (Service, error) {
	repo, err := repository.NewMongoRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	return &storeService{repo: repo}, nil
}

type storeService struct {
	repo repository.Repository
}

func (s *storeService) Create(ctx context.Context, doc *apidoc.ApiDocument) error {
	return s.repo.Create(ctx, doc)
}

func (s *storeService) Get(ctx context.Context, slug string) (*apidoc.ApiDocument, error) {
	return s.repo.Get(ctx, slug)
}

func (s *storeService) List(ctx context.Context) ([]*apidoc.ApiDocument, error) {
	return s.repo.List(ctx)
}

func (s *storeService) Update(ctx context.Context, slug string, jsonData string) error {
	return s.repo.Update(ctx, slug, jsonData)
}

func (s *storeService) Delete(ctx context.Context, slug string) error {
	return s.repo.Delete(ctx, slug)
}

func (s *storeService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
