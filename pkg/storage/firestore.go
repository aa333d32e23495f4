package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/types"
)

const simulationsCollection = "simulations"

// FirestoreProvider implements Database using Google Cloud Firestore. Each
// simulation is a document keyed by its ID holding the JSON blob and the
// creation time.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// an empty project ID is detected from the environment
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func (f *FirestoreProvider) simulationDoc(id string) (*firestore.DocumentRef, error) {
	if id == "" {
		return nil, fmt.Errorf("simulation id cannot be empty")
	}
	return f.client.Collection(simulationsCollection).Doc(id), nil
}

// InsertSimulation creates the simulation document.
func (f *FirestoreProvider) InsertSimulation(ctx context.Context, sim types.Simulation) error {
	doc, err := f.simulationDoc(sim.ID)
	if err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation: %w", err)
	}
	_, err = doc.Create(ctx, map[string]interface{}{
		"json":      string(jsonBytes),
		"createdAt": sim.CreatedAt,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %s", types.ErrSimulationExists, sim.ID)
		}
		return fmt.Errorf("failed to insert simulation: %w", err)
	}
	return nil
}

// GetSimulation fetches a single simulation by ID.
func (f *FirestoreProvider) GetSimulation(ctx context.Context, id string) (types.Simulation, error) {
	doc, err := f.simulationDoc(id)
	if err != nil {
		return types.Simulation{}, err
	}
	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Simulation{}, fmt.Errorf("%w: %s", types.ErrSimulationNotFound, id)
		}
		return types.Simulation{}, fmt.Errorf("failed to fetch simulation doc: %w", err)
	}
	return decodeSimulation(ctx, snap)
}

// ListSimulations queries the simulations created in [start, end).
func (f *FirestoreProvider) ListSimulations(ctx context.Context, start, end time.Time) ([]types.Simulation, error) {
	iter := f.client.Collection(simulationsCollection).
		Where("createdAt", ">=", start).
		Where("createdAt", "<", end).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var sims []types.Simulation
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate simulations: %w", err)
		}
		sim, err := decodeSimulation(ctx, snap)
		if err != nil {
			log.Ctx(ctx).ErrorContext(
				ctx,
				"skipping unreadable simulation in listing",
				slog.String("id", snap.Ref.ID),
				slog.Any("error", err),
			)
			continue
		}
		sims = append(sims, sim)
	}
	return sims, nil
}

func decodeSimulation(ctx context.Context, snap *firestore.DocumentSnapshot) (types.Simulation, error) {
	val, err := snap.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "simulation doc missing json", slog.String("id", snap.Ref.ID))
		return types.Simulation{}, fmt.Errorf("simulation document missing 'json' field: %w", err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "simulation doc json not string", slog.String("id", snap.Ref.ID))
		return types.Simulation{}, fmt.Errorf("simulation 'json' field is not a string")
	}
	var sim types.Simulation
	if err := json.Unmarshal([]byte(jsonStr), &sim); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal simulation json", slog.String("id", snap.Ref.ID), slog.Any("err", err))
		return types.Simulation{}, fmt.Errorf("failed to unmarshal simulation json: %w", err)
	}
	return sim, nil
}
