package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFirestoreProvider(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	// Use a random database for isolation
	randDB := fmt.Sprintf("test-db-%d", time.Now().UnixNano())
	f := &FirestoreProvider{
		projectID: "test-project-id",
		database:  randDB,
	}

	ctx := context.Background()
	require.NoError(t, f.Init(ctx))
	defer f.Close()

	t.Run("Validate", func(t *testing.T) {
		require.NoError(t, f.Validate())
	})

	testDatabase(t, f)

	t.Run("ListSkipsUnreadable", func(t *testing.T) {
		at := time.Date(2001, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, f.InsertSimulation(ctx, testSimulation("readable", at)))
		_, err := f.client.Collection(simulationsCollection).Doc("corrupt").Set(ctx, map[string]any{
			"json":      "{not json",
			"createdAt": at.Add(time.Minute),
		})
		require.NoError(t, err)

		sims, err := f.ListSimulations(ctx, at.Add(-time.Hour), at.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, sims, 1)
		require.Equal(t, "readable", sims[0].ID)
	})
}
