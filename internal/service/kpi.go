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

// DefaultKPITitle é o título do relatório na primeira execução e após reset
const DefaultKPITitle = "Weekly Development Report"

// KPIService mantém as tarefas da semana e o cursor semanal
type KPIService struct {
	mu       sync.Mutex
	store    *storage.Adapter
	notifier Notifier
	clock    Clock

	title     string
	weekStart string
	tasks     []model.DevelopmentTask
}

// NewKPIService cria o serviço e restaura o estado salvo (ou o padrão)
func NewKPIService(ctx context.Context, store *storage.Adapter, notifier Notifier, clock Clock) *KPIService {
	if clock == nil {
		clock = SystemClock{}
	}

	s := &KPIService{
		store:    store,
		notifier: notifierOrNop(notifier),
		clock:    clock,
	}
	s.load(ctx)
	return s
}

func (s *KPIService) load(ctx context.Context) {
	log := logger.Get(ctx)

	// título salvo vazio também usa o padrão
	if !s.store.Load(ctx, storage.KeyKPITitle, &s.title) || s.title == "" {
		s.title = DefaultKPITitle
	}

	var saved string
	if s.store.Load(ctx, storage.KeyKPIWeekStart, &saved) {
		if monday, err := MondayOf(saved); err == nil {
			s.weekStart = monday
		} else {
			log.Debug().Str("week_start", saved).Msg("Semana salva inválida, usando a atual")
		}
	}
	if s.weekStart == "" {
		s.weekStart = s.currentMonday()
	}

	s.tasks = []model.DevelopmentTask{}
	var tasks []model.DevelopmentTask
	if s.store.Load(ctx, storage.KeyKPITasks, &tasks) && tasks != nil {
		for i := range tasks {
			if tasks[i].ID == "" {
				tasks[i].ID = newID()
			}
			tasks[i].HoursLogged = coerceHours(tasks[i].HoursLogged)
		}
		s.tasks = tasks
	}
}

func (s *KPIService) currentMonday() string {
	monday, err := MondayOf(s.clock.Today())
	if err != nil {
		monday, _ = MondayOf(SystemClock{}.Today())
	}
	return monday
}

// week retorna a janela atual. Chamar com s.mu travado.
func (s *KPIService) week() model.WeekWindow {
	w, _ := NewWeekWindow(s.weekStart)
	return w
}

// AddTask adiciona uma tarefa vazia com prazo no domingo da semana selecionada
func (s *KPIService) AddTask(ctx context.Context) (model.DevelopmentTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	task := model.DevelopmentTask{
		ID:      newID(),
		DueDate: s.week().End,
	}
	s.tasks = append(s.tasks, task)

	if err := s.commit(ctx, prev, ActionAdded, storage.KeyKPITasks); err != nil {
		return model.DevelopmentTask{}, err
	}
	return task, nil
}

// RemoveTask remove a tarefa id; a lista pode ficar vazia
func (s *KPIService) RemoveTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)

	if err := s.commit(ctx, prev, ActionRemoved, storage.KeyKPITasks); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateTask altera um campo da tarefa id e recalcula isOnTime quando necessário.
// Desmarcar a conclusão mantém o isOnTime gravado.
func (s *KPIService) UpdateTask(ctx context.Context, id, field string, value interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	apply, err := s.taskFieldSetter(field, value)
	if err != nil {
		return false, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	apply(&s.tasks[idx])

	if err := s.commit(ctx, prev, ActionUpdated, storage.KeyKPITasks); err != nil {
		return false, err
	}
	return true, nil
}

func (s *KPIService) taskFieldSetter(field string, value interface{}) (func(*model.DevelopmentTask), error) {
	switch field {
	case model.TaskFieldName:
		name := coerceString(value)
		return func(t *model.DevelopmentTask) { t.TaskName = name }, nil

	case model.TaskFieldHoursLogged:
		h := coerceHours(value)
		return func(t *model.DevelopmentTask) { t.HoursLogged = h }, nil

	case model.TaskFieldDueDate, model.TaskFieldCompletedDate:
		date, err := coerceDate(value)
		if err != nil {
			return nil, err
		}
		return func(t *model.DevelopmentTask) {
			if field == model.TaskFieldDueDate {
				t.DueDate = date
			} else {
				t.CompletedDate = date
			}
			if t.IsCompleted {
				t.IsOnTime = isOnTime(t.CompletedDate, t.DueDate)
			}
		}, nil

	case model.TaskFieldIsCompleted:
		completed := coerceBool(value)
		today := s.clock.Today()
		return func(t *model.DevelopmentTask) {
			t.IsCompleted = completed
			if !completed {
				return
			}
			if t.CompletedDate == "" {
				t.CompletedDate = today
			}
			t.IsOnTime = isOnTime(t.CompletedDate, t.DueDate)
		}, nil

	case model.TaskFieldIsOnTime, model.TaskFieldID:
		return nil, fmt.Errorf("%w: %s", model.ErrReadOnlyField, field)

	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownField, field)
	}
}

// isOnTime compara datas ISO como strings (mesma ordem do calendário)
func isOnTime(completedDate, dueDate string) bool {
	return completedDate <= dueDate
}

// SetTitle altera o título do relatório
func (s *KPIService) SetTitle(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	s.title = title
	return s.commit(ctx, prev, ActionTitle, storage.KeyKPITitle)
}

// NavigateWeek move o cursor semanal: previous, next ou current
func (s *KPIService) NavigateWeek(ctx context.Context, direction string) (model.WeekWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var start string
	var err error

	switch direction {
	case model.WeekPrevious:
		start, err = ShiftWeek(s.weekStart, -1)
	case model.WeekNext:
		start, err = ShiftWeek(s.weekStart, 1)
	case model.WeekCurrent:
		start = s.currentMonday()
	default:
		return model.WeekWindow{}, fmt.Errorf("%w: %q", model.ErrInvalidDirection, direction)
	}
	if err != nil {
		return model.WeekWindow{}, err
	}

	return s.moveTo(ctx, start)
}

// SelectDate seleciona a semana que contém date
func (s *KPIService) SelectDate(ctx context.Context, date string) (model.WeekWindow, error) {
	monday, err := MondayOf(date)
	if err != nil {
		return model.WeekWindow{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveTo(ctx, monday)
}

func (s *KPIService) moveTo(ctx context.Context, start string) (model.WeekWindow, error) {
	prev := s.snapshot()
	s.weekStart = start
	if err := s.commit(ctx, prev, ActionWeek, storage.KeyKPIWeekStart); err != nil {
		return model.WeekWindow{}, err
	}
	return s.week(), nil
}

// Reset limpa as tarefas e volta ao título padrão; a semana selecionada é mantida
func (s *KPIService) Reset(ctx context.Context, confirm bool) error {
	if !confirm {
		return model.ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()

	s.tasks = []model.DevelopmentTask{}
	s.title = DefaultKPITitle
	return s.commit(ctx, prev, ActionReset, storage.KeyKPITasks, storage.KeyKPITitle)
}

// Report retorna uma cópia do relatório com os KPIs recalculados
func (s *KPIService) Report() model.KPIReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]model.DevelopmentTask, len(s.tasks))
	copy(tasks, s.tasks)

	return model.KPIReport{
		Title:   s.title,
		Week:    s.week(),
		Tasks:   tasks,
		Summary: ComputeKPIs(tasks),
	}
}

// ComputeKPIs agrega horas, concluídas e percentual no prazo.
// Tarefas não concluídas nunca contam como no prazo.
func ComputeKPIs(tasks []model.DevelopmentTask) model.KPISummary {
	summary := model.KPISummary{TotalTasks: len(tasks)}

	onTime := 0
	for _, t := range tasks {
		summary.TotalHours += t.HoursLogged
		if !t.IsCompleted {
			continue
		}
		summary.CompletedTasks++
		if t.IsOnTime {
			onTime++
		}
	}

	if summary.CompletedTasks > 0 {
		summary.OnTimePercentage = float64(onTime) / float64(summary.CompletedTasks) * 100
	}
	return summary
}

// Export gera a planilha do relatório com o início da semana no nome
func (s *KPIService) Export(exporter *SpreadsheetExporter) (*ExportResult, error) {
	report := s.Report()
	return exporter.Export(BuildKPISheet(report), report.Week.Start)
}

func (s *KPIService) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// kpiState é uma cópia do estado usada para desfazer uma alteração não salva
type kpiState struct {
	title     string
	weekStart string
	tasks     []model.DevelopmentTask
}

// snapshot copia o estado atual. Chamar com s.mu travado.
func (s *KPIService) snapshot() kpiState {
	tasks := make([]model.DevelopmentTask, len(s.tasks))
	copy(tasks, s.tasks)
	return kpiState{title: s.title, weekStart: s.weekStart, tasks: tasks}
}

func (s *KPIService) value(key string) interface{} {
	switch key {
	case storage.KeyKPITitle:
		return s.title
	case storage.KeyKPIWeekStart:
		return s.weekStart
	case storage.KeyKPITasks:
		return s.tasks
	}
	return nil
}

// commit persiste as chaves alteradas e avisa os ouvintes. Chamar com s.mu travado.
// Se algum Save falhar o estado volta para prev e as chaves já gravadas são regravadas.
func (s *KPIService) commit(ctx context.Context, prev kpiState, action string, keys ...string) error {
	for i, key := range keys {
		if err := s.store.Save(ctx, key, s.value(key)); err != nil {
			logger.Get(ctx).Error().Err(err).Str("key", key).Msg("Erro ao salvar relatório")
			s.title, s.weekStart, s.tasks = prev.title, prev.weekStart, prev.tasks
			for _, saved := range keys[:i] {
				_ = s.store.Save(ctx, saved, s.value(saved))
			}
			return err
		}
	}

	metrics.Get().IncrementMutation(metrics.ModuleKPI)
	s.notifier.NotifyStateChanged(ModuleKPI, action)
	return nil
}
