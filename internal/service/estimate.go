package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/metrics"
	"github.com/cleberrangel/project-estimator-api/internal/model"
	"github.com/cleberrangel/project-estimator-api/internal/storage"
)

// DefaultEstimateTitle é o título usado na primeira execução e após reset
const DefaultEstimateTitle = "Project Estimate"

// EstimateService mantém a estimativa de horas e a persiste a cada alteração
type EstimateService struct {
	mu       sync.Mutex
	store    *storage.Adapter
	notifier Notifier
	clock    Clock

	title string
	items []model.EstimateLineItem
}

// NewEstimateService cria o serviço e restaura o estado salvo (ou o padrão)
func NewEstimateService(ctx context.Context, store *storage.Adapter, notifier Notifier, clock Clock) *EstimateService {
	if clock == nil {
		clock = SystemClock{}
	}

	s := &EstimateService{
		store:    store,
		notifier: notifierOrNop(notifier),
		clock:    clock,
	}
	s.load(ctx)
	return s
}

func (s *EstimateService) load(ctx context.Context) {
	s.title = DefaultEstimateTitle
	s.store.Load(ctx, storage.KeyEstimateTitle, &s.title)

	var items []model.EstimateLineItem
	if !s.store.Load(ctx, storage.KeyEstimateItems, &items) || len(items) == 0 {
		s.items = []model.EstimateLineItem{newLineItem()}
		return
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = newID()
		}
		items[i].DesktopMin = coerceHours(items[i].DesktopMin)
		items[i].DesktopMax = coerceHours(items[i].DesktopMax)
		items[i].MobileMin = coerceHours(items[i].MobileMin)
		items[i].MobileMax = coerceHours(items[i].MobileMax)
	}
	s.items = items

	logger.Get(ctx).Debug().Int("items", len(items)).Msg("Estimativa restaurada")
}

func newLineItem() model.EstimateLineItem {
	return model.EstimateLineItem{ID: newID()}
}

// AddItem adiciona um item zerado ao final da lista
func (s *EstimateService) AddItem(ctx context.Context) (model.EstimateLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	item := newLineItem()
	s.items = append(s.items, item)

	if err := s.commit(ctx, prev, ActionAdded, storage.KeyEstimateItems); err != nil {
		return model.EstimateLineItem{}, err
	}
	return item, nil
}

// RemoveItem remove o item id. Não remove o último item restante nem ids desconhecidos.
func (s *EstimateService) RemoveItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	if len(s.items) <= 1 {
		return false, nil
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)

	if err := s.commit(ctx, prev, ActionRemoved, storage.KeyEstimateItems); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateItem altera um campo do item id; id desconhecido não altera nada
func (s *EstimateService) UpdateItem(ctx context.Context, id, field string, value interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	apply, err := estimateFieldSetter(field, value)
	if err != nil {
		return false, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	apply(&s.items[idx])

	if err := s.commit(ctx, prev, ActionUpdated, storage.KeyEstimateItems); err != nil {
		return false, err
	}
	return true, nil
}

func estimateFieldSetter(field string, value interface{}) (func(*model.EstimateLineItem), error) {
	switch field {
	case model.EstimateFieldName:
		name := coerceString(value)
		return func(it *model.EstimateLineItem) { it.Name = name }, nil
	case model.EstimateFieldDesktopMin:
		h := coerceHours(value)
		return func(it *model.EstimateLineItem) { it.DesktopMin = h }, nil
	case model.EstimateFieldDesktopMax:
		h := coerceHours(value)
		return func(it *model.EstimateLineItem) { it.DesktopMax = h }, nil
	case model.EstimateFieldMobileMin:
		h := coerceHours(value)
		return func(it *model.EstimateLineItem) { it.MobileMin = h }, nil
	case model.EstimateFieldMobileMax:
		h := coerceHours(value)
		return func(it *model.EstimateLineItem) { it.MobileMax = h }, nil
	case model.EstimateFieldID:
		return nil, fmt.Errorf("%w: %s", model.ErrReadOnlyField, field)
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownField, field)
	}
}

// SetTitle altera o título da estimativa
func (s *EstimateService) SetTitle(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	s.title = title
	return s.commit(ctx, prev, ActionTitle, storage.KeyEstimateTitle)
}

// Reset volta para um único item zerado e o título padrão
func (s *EstimateService) Reset(ctx context.Context, confirm bool) error {
	if !confirm {
		return model.ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	s.title = DefaultEstimateTitle
	s.items = []model.EstimateLineItem{newLineItem()}
	return s.commit(ctx, prev, ActionReset, storage.KeyEstimateTitle, storage.KeyEstimateItems)
}

// Document retorna uma cópia do estado com os totais recalculados
func (s *EstimateService) Document() model.EstimateDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.EstimateLineItem, len(s.items))
	copy(items, s.items)

	return model.EstimateDocument{
		Title:  s.title,
		Items:  items,
		Totals: ComputeTotals(items),
	}
}

// ComputeTotals soma cada coluna e combina desktop + mobile
func ComputeTotals(items []model.EstimateLineItem) model.EstimateTotals {
	var t model.EstimateTotals
	for _, it := range items {
		t.DesktopMin += it.DesktopMin
		t.DesktopMax += it.DesktopMax
		t.MobileMin += it.MobileMin
		t.MobileMax += it.MobileMax
	}
	t.TotalMin = t.DesktopMin + t.MobileMin
	t.TotalMax = t.DesktopMax + t.MobileMax
	return t
}

// Export gera a planilha da estimativa com a data de hoje no nome
func (s *EstimateService) Export(exporter *SpreadsheetExporter) (*ExportResult, error) {
	doc := s.Document()
	return exporter.Export(BuildEstimateSheet(doc), s.clock.Today())
}

func (s *EstimateService) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// estimateState é uma cópia do estado usada para desfazer uma alteração não salva
type estimateState struct {
	title string
	items []model.EstimateLineItem
}

// snapshot copia o estado atual. Chamar com s.mu travado.
func (s *EstimateService) snapshot() estimateState {
	items := make([]model.EstimateLineItem, len(s.items))
	copy(items, s.items)
	return estimateState{title: s.title, items: items}
}

func (s *EstimateService) value(key string) interface{} {
	switch key {
	case storage.KeyEstimateTitle:
		return s.title
	case storage.KeyEstimateItems:
		return s.items
	}
	return nil
}

// commit persiste as chaves alteradas e avisa os ouvintes. Chamar com s.mu travado.
// Se algum Save falhar o estado volta para prev e as chaves já gravadas são regravadas.
func (s *EstimateService) commit(ctx context.Context, prev estimateState, action string, keys ...string) error {
	for i, key := range keys {
		if err := s.store.Save(ctx, key, s.value(key)); err != nil {
			logger.Get(ctx).Error().Err(err).Str("key", key).Msg("Erro ao salvar estimativa")
			s.title, s.items = prev.title, prev.items
			for _, saved := range keys[:i] {
				_ = s.store.Save(ctx, saved, s.value(saved))
			}
			return err
		}
	}

	metrics.Get().IncrementMutation(metrics.ModuleEstimate)
	s.notifier.NotifyStateChanged(ModuleEstimate, action)
	return nil
}
