package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "Failed to start mongo container")
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := ConnectMongoDB(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	database := client.Database("newsroom_test")
	require.NoError(t, EnsureIndexes(ctx, database))
	return database
}

func TestMongoRepositories(t *testing.T) {
	database := setupMongo(t)

	t.Run("users", func(t *testing.T) { testUserRepository(t, NewUserRepository(database)) })
	t.Run("articles", func(t *testing.T) { testArticleRepository(t, NewArticleRepository(database)) })
	t.Run("settings", func(t *testing.T) { testSettingsRepository(t, NewSettingsRepository(database)) })
	t.Run("contacts", func(t *testing.T) { testContactRepository(t, NewContactRepository(database)) })
}
