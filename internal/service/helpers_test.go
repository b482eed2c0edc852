package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cleberrangel/project-estimator-api/internal/storage"
)

// dia de referência: quarta-feira, semana de 2024-06-03 a 2024-06-09
const testToday = FixedClock("2024-06-05")

type stateEvent struct {
	module string
	action string
}

// recordingNotifier guarda as notificações recebidas
type recordingNotifier struct {
	mu     sync.Mutex
	events []stateEvent
}

func (n *recordingNotifier) NotifyStateChanged(module, action string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, stateEvent{module: module, action: action})
}

func (n *recordingNotifier) last() stateEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return stateEvent{}
	}
	return n.events[len(n.events)-1]
}

func newTestAdapter() (*storage.Adapter, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return storage.NewAdapter(store), store
}

func newTestEstimate(t *testing.T) (*EstimateService, *storage.Adapter, *recordingNotifier) {
	t.Helper()
	adapter, _ := newTestAdapter()
	n := &recordingNotifier{}
	return NewEstimateService(context.Background(), adapter, n, testToday), adapter, n
}

func newTestKPI(t *testing.T) (*KPIService, *storage.Adapter, *recordingNotifier) {
	t.Helper()
	adapter, _ := newTestAdapter()
	n := &recordingNotifier{}
	return NewKPIService(context.Background(), adapter, n, testToday), adapter, n
}

// flakyStore falha o Set das chaves em failKeys
type flakyStore struct {
	*storage.MemoryStore
	mu       sync.Mutex
	failKeys map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: storage.NewMemoryStore(), failKeys: map[string]bool{}}
}

func (s *flakyStore) failOn(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKeys = map[string]bool{}
	for _, k := range keys {
		s.failKeys[k] = true
	}
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	fail := s.failKeys[key]
	s.mu.Unlock()
	if fail {
		return errors.New("disco cheio")
	}
	return s.MemoryStore.Set(ctx, key, value)
}
