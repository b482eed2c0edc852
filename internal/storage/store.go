package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/metrics"
)

// Chaves persistidas (espelho do estado de cada módulo)
const (
	KeyCurrentPage   = "currentPage"
	KeyEstimateTitle = "projectEstimator_title"
	KeyEstimateItems = "projectEstimator_items"
	KeyKPITitle      = "devKPI_reportTitle"
	KeyKPIWeekStart  = "devKPI_weekStart"
	KeyKPITasks      = "devKPI_tasks"
)

// Store é um armazenamento chave/valor de strings
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger é implementado por stores que dependem de um recurso externo
type Pinger interface {
	Ping(ctx context.Context) error
}

// Adapter serializa o estado dos módulos em JSON sobre um Store
type Adapter struct {
	store Store
}

// NewAdapter cria um novo adaptador de persistência
func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Load decodifica o valor de key em dst.
// Retorna false quando não há valor salvo ou quando a leitura/decodificação falha;
// nesses casos dst não é alterado e o chamador usa o valor padrão.
func (a *Adapter) Load(ctx context.Context, key string, dst interface{}) bool {
	log := logger.Get(ctx)

	raw, found, err := a.store.Get(ctx, key)
	if err != nil {
		metrics.Get().IncrementStorageLoad(false)
		log.Warn().Err(err).Str("key", key).Msg("Falha ao ler estado salvo, usando padrão")
		return false
	}
	if !found {
		metrics.Get().IncrementStorageLoad(false)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		metrics.Get().IncrementStorageLoad(false)
		log.Debug().Err(err).Str("key", key).Msg("Estado salvo inválido, usando padrão")
		return false
	}

	metrics.Get().IncrementStorageLoad(true)
	return true
}

// Save serializa v em JSON e grava em key
func (a *Adapter) Save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		metrics.Get().IncrementStorageSave(false)
		return fmt.Errorf("serializar %s: %w", key, err)
	}

	if err := a.store.Set(ctx, key, string(data)); err != nil {
		metrics.Get().IncrementStorageSave(false)
		return fmt.Errorf("salvar %s: %w", key, err)
	}

	metrics.Get().IncrementStorageSave(true)
	return nil
}

// Ping verifica o store quando ele depende de um recurso externo
func (a *Adapter) Ping(ctx context.Context) error {
	if p, ok := a.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
