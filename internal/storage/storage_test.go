package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleberrangel/project-estimator-api/internal/config"
)

type sample struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// failingStore simula um armazenamento indisponível
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("indisponível")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("indisponível")
}

func storesUnderTest(t *testing.T) map[string]Store {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
		"cached": NewCachedStore(NewMemoryStore(), time.Minute),
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(store)
			in := sample{Title: "Landing", Items: []string{"hero", "footer"}}
			require.NoError(t, a.Save(ctx, KeyEstimateItems, in))

			var out sample
			require.True(t, a.Load(ctx, KeyEstimateItems, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestAdapter_MissingKeyKeepsDefault(t *testing.T) {
	a := NewAdapter(NewMemoryStore())

	out := sample{Title: "padrão"}
	assert.False(t, a.Load(context.Background(), KeyEstimateTitle, &out))
	assert.Equal(t, "padrão", out.Title)
}

func TestAdapter_CorruptedValueKeepsDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyKPITasks, "{não é json"))

	a := NewAdapter(store)
	out := []string{"default"}
	assert.False(t, a.Load(ctx, KeyKPITasks, &out))
	assert.Equal(t, []string{"default"}, out)
}

func TestAdapter_StoreErrors(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(failingStore{})

	title := "Weekly Development Report"
	assert.False(t, a.Load(ctx, KeyKPITitle, &title))
	assert.Equal(t, "Weekly Development Report", title)
	assert.Error(t, a.Save(ctx, KeyKPITitle, title))
}

func TestFileStore_SanitizesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set(ctx, "../escape", `"x"`))
	_, err = os.Stat(filepath.Join(dir, "___escape.json"))
	assert.NoError(t, err)

	v, found, err := fs.Get(ctx, "../escape")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"x"`, v)

	// nenhum temporário sobra após a gravação
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	assert.Empty(t, matches)
	assert.NoError(t, fs.Ping(ctx))
}

func TestCachedStore_WriteThrough(t *testing.T) {
	ctx := context.Background()
	next := NewMemoryStore()
	cached := NewCachedStore(next, time.Minute)
	defer cached.Close()

	_, found, err := cached.Get(ctx, KeyCurrentPage)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cached.Set(ctx, KeyCurrentPage, `"kpis"`))

	// o valor chega ao store subjacente
	v, found, err := next.Get(ctx, KeyCurrentPage)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"kpis"`, v)

	v, found, err = cached.Get(ctx, KeyCurrentPage)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"kpis"`, v)
	assert.GreaterOrEqual(t, cached.Stats().HitCount, int64(1))
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	cases := []*config.Config{
		{StorageDriver: config.DriverMemory},
		{StorageDriver: config.DriverFile, DataDir: t.TempDir()},
		{StorageDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "state.db"), StateCacheTTL: time.Minute},
	}

	for _, cfg := range cases {
		t.Run(cfg.StorageDriver, func(t *testing.T) {
			b, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer b.Close()

			require.NoError(t, b.Adapter.Save(ctx, KeyKPIWeekStart, "2024-06-03"))
			var week string
			require.True(t, b.Adapter.Load(ctx, KeyKPIWeekStart, &week))
			assert.Equal(t, "2024-06-03", week)
			assert.NoError(t, b.Adapter.Ping(ctx))

			if cfg.StorageDriver == config.DriverSQLite {
				assert.NotNil(t, b.ExportLog)
				assert.NotNil(t, b.DB)
			} else {
				assert.Nil(t, b.ExportLog)
			}
		})
	}
}

func TestOpen_SQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StorageDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "state.db")}

	b, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, b.Adapter.Save(ctx, KeyEstimateTitle, "Site Institucional"))
	require.NoError(t, b.Close())

	b, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer b.Close()

	var title string
	require.True(t, b.Adapter.Load(ctx, KeyEstimateTitle, &title))
	assert.Equal(t, "Site Institucional", title)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageDriver: "redis"})
	assert.Error(t, err)
}
