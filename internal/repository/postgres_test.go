package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleberrangel/project-estimator-api/internal/database"
	"github.com/cleberrangel/project-estimator-api/internal/migration"
)

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// TestStateRepository_Postgres roda contra um PostgreSQL real; pula sem servidor
func TestStateRepository_Postgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Host:     getEnvOrDefault("TEST_DB_HOST", "127.0.0.1"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "5432"),
		User:     getEnvOrDefault("TEST_DB_USER", "postgres"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "postgres"),
		SSLMode:  "disable",
	})
	if err != nil {
		t.Skipf("Skipping test: could not connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	require.NoError(t, migration.NewMigrator(db, database.DialectPostgres).Run(ctx))

	repo := NewStateRepository(db, database.DialectPostgres)
	key := fmt.Sprintf("test_%d", time.Now().UnixNano())
	defer db.ExecContext(context.Background(), "DELETE FROM app_state WHERE state_key = $1", key)

	require.NoError(t, repo.Set(ctx, key, `"a"`))
	require.NoError(t, repo.Set(ctx, key, `"b"`))

	value, found, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"b"`, value)

	log := NewExportLogRepository(db, database.DialectPostgres)
	require.NoError(t, log.Record(ctx, ExportRecord{Kind: "kpi", Title: key, FileName: key + ".xlsx", RowCount: 3}))
	recent, err := log.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, key, recent[0].Title)
}
