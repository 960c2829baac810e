package seeder

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Ramsey-B/alloy/db"
	"github.com/Ramsey-B/alloy/internal/testutil"
	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/dataset"
	"github.com/Ramsey-B/alloy/pkg/repositories"
)

// Runs the embedded dataset against a real PostgreSQL. Set
// ALLOY_PG_INTEGRATION=1 with a reachable Docker daemon to enable.
func TestSeedPostgres(t *testing.T) {
	if testing.Short() || os.Getenv("ALLOY_PG_INTEGRATION") == "" {
		t.Skip("set ALLOY_PG_INTEGRATION to run against PostgreSQL")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "alloy",
				"POSTGRES_PASSWORD": "alloy",
				"POSTGRES_DB":       "alloy",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	logger := testutil.Logger()
	store, err := database.Open(ctx, database.Config{
		Driver:   database.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		UserName: "alloy",
		Password: "alloy",
		Name:     "alloy",
		SSLMode:  "disable",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, database.NewMigrationService(logger, &database.MigrationConfig{Embedded: db.Migrations}).Migrate(store))

	materials := repositories.NewMaterialRepository(store, logger)
	s := NewSeeder(store, materials, dataset.Embedded(), logger).WithBatchSizes(BatchSizes{
		Materials:           2,
		Conditions:          2,
		ConditionProperties: 3,
		Curves:              2,
		CurvePoints:         4,
	})

	result, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Materials)
	assert.Equal(t, 3, result.DefaultConditions)

	again, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	m, err := materials.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, m.DefaultConditionID)
	assert.Equal(t, int64(10), *m.DefaultConditionID)

	found, err := materials.SearchByName(ctx, "Alum", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	def, err := repositories.NewConditionRepository(store, logger).GetDefaultForMaterial(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(21), def.ID)

	points, err := repositories.NewCurvePointRepository(store, logger).ListByCurveID(ctx, 100)
	require.NoError(t, err)
	for i, p := range points {
		assert.Equal(t, i, p.Idx)
	}
}
