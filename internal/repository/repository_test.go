package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleberrangel/project-estimator-api/internal/database"
	"github.com/cleberrangel/project-estimator-api/internal/migration"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewMigrator(db, database.DialectSQLite).Run(ctx))
	return db
}

func TestStateRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(openTestDB(t), database.DialectSQLite)

	_, found, err := repo.Get(ctx, "devKPI_tasks")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "devKPI_tasks", `[]`))
	require.NoError(t, repo.Set(ctx, "devKPI_tasks", `[{"id":"a"}]`))
	require.NoError(t, repo.Set(ctx, "currentPage", `"kpis"`))

	value, found, err := repo.Get(ctx, "devKPI_tasks")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"a"}]`, value)

	value, found, err = repo.Get(ctx, "currentPage")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"kpis"`, value)

	assert.NoError(t, repo.Ping(ctx))
}

func TestExportLogRepository_RecentOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewExportLogRepository(openTestDB(t), database.DialectSQLite)

	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, ExportRecord{
		Kind: "estimate", Title: "Project Estimate", FileName: "project-estimate-2024-06-03.xlsx", RowCount: 3, CreatedAt: base,
	}))
	require.NoError(t, repo.Record(ctx, ExportRecord{
		Kind: "kpi", Title: "Weekly Development Report", FileName: "weekly-development-report-2024-06-03.xlsx", RowCount: 5, CreatedAt: base.Add(time.Hour),
	}))

	records, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "kpi", records[0].Kind)
	assert.Equal(t, 5, records[0].RowCount)
	assert.Equal(t, "estimate", records[1].Kind)

	limited, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
