package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoRepo must surface index-creation failure instead of handing back a
// repository whose Create would silently skip the uniqueness check.
func TestNewMongoRepoIndexFailure(t *testing.T) {
	ctx := context.Background()

	// port 1 refuses connections; the short selection timeout bounds the test
	opts := options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200 * time.Millisecond).
		SetConnectTimeout(200 * time.Millisecond)
	client, err := mongo.Connect(ctx, opts)
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	repo, err := NewMongoRepo(ctx, client.Database("jsonvault_test"))
	require.Error(t, err)
	require.Nil(t, repo)
	require.Contains(t, err.Error(), "slug index")
}

func TestConnectFailsFastOnBadStore(t *testing.T) {
	_, err := Connect(context.Background(), "mongodb://127.0.0.1:1", 300*time.Millisecond)
	require.Error(t, err)
}
