package service

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleberrangel/project-estimator-api/internal/model"
	"github.com/cleberrangel/project-estimator-api/internal/storage"
)

func TestKPI_DefaultState(t *testing.T) {
	s, _, _ := newTestKPI(t)

	r := s.Report()
	assert.Equal(t, DefaultKPITitle, r.Title)
	assert.Equal(t, model.WeekWindow{Start: "2024-06-03", End: "2024-06-09"}, r.Week)
	assert.NotNil(t, r.Tasks)
	assert.Empty(t, r.Tasks)
	assert.Equal(t, model.KPISummary{}, r.Summary)
}

func TestKPI_AddTaskDefaults(t *testing.T) {
	s, _, n := newTestKPI(t)

	task, err := s.AddTask(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "", task.TaskName)
	assert.Equal(t, 0.0, task.HoursLogged)
	assert.Equal(t, "2024-06-09", task.DueDate)
	assert.False(t, task.IsCompleted)
	assert.False(t, task.IsOnTime)
	assert.Equal(t, stateEvent{module: ModuleKPI, action: ActionAdded}, n.last())
}

func TestKPI_CompletionRules(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestKPI(t)

	task, err := s.AddTask(ctx)
	require.NoError(t, err)

	// concluir sem data usa hoje (2024-06-05 <= 2024-06-09)
	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldIsCompleted, true)
	require.NoError(t, err)
	got := s.Report().Tasks[0]
	assert.Equal(t, "2024-06-05", got.CompletedDate)
	assert.True(t, got.IsOnTime)

	// mudar o prazo enquanto concluída recalcula
	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldDueDate, "2024-06-04")
	require.NoError(t, err)
	assert.False(t, s.Report().Tasks[0].IsOnTime)

	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldCompletedDate, "2024-06-04")
	require.NoError(t, err)
	assert.True(t, s.Report().Tasks[0].IsOnTime)

	// desmarcar mantém o isOnTime gravado mas não conta no resumo
	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldIsCompleted, false)
	require.NoError(t, err)
	r := s.Report()
	assert.False(t, r.Tasks[0].IsCompleted)
	assert.True(t, r.Tasks[0].IsOnTime)
	assert.Equal(t, 0, r.Summary.CompletedTasks)
	assert.Equal(t, 0.0, r.Summary.OnTimePercentage)

	// mudar datas com a tarefa aberta não recalcula
	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldCompletedDate, "2024-06-20")
	require.NoError(t, err)
	assert.True(t, s.Report().Tasks[0].IsOnTime)

	// concluir de novo mantém a data já informada
	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldIsCompleted, "true")
	require.NoError(t, err)
	got = s.Report().Tasks[0]
	assert.Equal(t, "2024-06-20", got.CompletedDate)
	assert.False(t, got.IsOnTime)
}

func TestKPI_UpdateTaskErrors(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestKPI(t)
	task, _ := s.AddTask(ctx)

	_, err := s.UpdateTask(ctx, task.ID, model.TaskFieldIsOnTime, true)
	assert.True(t, errors.Is(err, model.ErrReadOnlyField))

	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldID, "x")
	assert.True(t, errors.Is(err, model.ErrReadOnlyField))

	_, err = s.UpdateTask(ctx, task.ID, "priority", 1)
	assert.True(t, errors.Is(err, model.ErrUnknownField))

	_, err = s.UpdateTask(ctx, task.ID, model.TaskFieldDueDate, "06/09/2024")
	assert.True(t, errors.Is(err, model.ErrInvalidDate))

	updated, err := s.UpdateTask(ctx, "missing", model.TaskFieldName, "x")
	require.NoError(t, err)
	assert.False(t, updated)

	// limpar a data é permitido
	updated, err = s.UpdateTask(ctx, task.ID, model.TaskFieldDueDate, "")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, "", s.Report().Tasks[0].DueDate)
}

func TestKPI_RemoveTaskAllowsEmptyList(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestKPI(t)
	task, _ := s.AddTask(ctx)

	removed, err := s.RemoveTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.Report().Tasks)

	removed, err = s.RemoveTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestKPI_NavigateWeek(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestKPI(t)

	w, err := s.NavigateWeek(ctx, model.WeekNext)
	require.NoError(t, err)
	assert.Equal(t, model.WeekWindow{Start: "2024-06-10", End: "2024-06-16"}, w)

	w, err = s.NavigateWeek(ctx, model.WeekPrevious)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", w.Start)

	w, err = s.NavigateWeek(ctx, model.WeekPrevious)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-27", w.Start)

	w, err = s.NavigateWeek(ctx, model.WeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", w.Start)

	_, err = s.NavigateWeek(ctx, "sideways")
	assert.True(t, errors.Is(err, model.ErrInvalidDirection))

	// nova tarefa usa o domingo da semana selecionada
	_, err = s.NavigateWeek(ctx, model.WeekNext)
	require.NoError(t, err)
	task, _ := s.AddTask(ctx)
	assert.Equal(t, "2024-06-16", task.DueDate)
}

func TestKPI_SelectDate(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestKPI(t)

	for _, date := range []string{"2024-06-05", "2024-06-06", "2024-06-07", "2024-06-08", "2024-06-09"} {
		w, err := s.SelectDate(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-03", w.Start, "date %s", date)
	}

	_, err := s.SelectDate(ctx, "not-a-date")
	assert.True(t, errors.Is(err, model.ErrInvalidDate))
	assert.Equal(t, "2024-06-03", s.Report().Week.Start)
}

func TestKPI_ResetKeepsWeek(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestKPI(t)

	require.NoError(t, s.SetTitle(ctx, "Sprint 12"))
	_, _ = s.AddTask(ctx)
	_, _ = s.NavigateWeek(ctx, model.WeekNext)

	assert.ErrorIs(t, s.Reset(ctx, false), model.ErrConfirmationRequired)
	require.NoError(t, s.Reset(ctx, true))

	r := s.Report()
	assert.Equal(t, DefaultKPITitle, r.Title)
	assert.Empty(t, r.Tasks)
	assert.Equal(t, "2024-06-10", r.Week.Start)
}

func TestKPI_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, adapter, _ := newTestKPI(t)

	require.NoError(t, s.SetTitle(ctx, "Sprint 12"))
	task, _ := s.AddTask(ctx)
	_, _ = s.UpdateTask(ctx, task.ID, model.TaskFieldName, "Login page")
	_, _ = s.UpdateTask(ctx, task.ID, model.TaskFieldHoursLogged, "6.5")
	_, _ = s.UpdateTask(ctx, task.ID, model.TaskFieldIsCompleted, true)
	_, _ = s.NavigateWeek(ctx, model.WeekPrevious)

	restored := NewKPIService(ctx, adapter, nil, FixedClock("2025-01-01"))
	assert.Equal(t, s.Report(), restored.Report())
}

func TestKPI_CorruptedStateFallsBack(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyKPITasks, "not json"))
	require.NoError(t, store.Set(ctx, storage.KeyKPIWeekStart, `"yesterday"`))

	s := NewKPIService(ctx, storage.NewAdapter(store), nil, testToday)
	r := s.Report()
	assert.Empty(t, r.Tasks)
	assert.Equal(t, "2024-06-03", r.Week.Start)
}

func TestKPI_StoredWeekIsNormalized(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyKPIWeekStart, `"2024-06-09"`))

	s := NewKPIService(ctx, storage.NewAdapter(store), nil, testToday)
	assert.Equal(t, "2024-06-03", s.Report().Week.Start)
}

func TestComputeKPIs(t *testing.T) {
	assert.Equal(t, model.KPISummary{}, ComputeKPIs(nil))

	tasks := []model.DevelopmentTask{
		{HoursLogged: 2, IsCompleted: true, IsOnTime: true},
		{HoursLogged: 3.5, IsCompleted: true, IsOnTime: false},
		{HoursLogged: 1, IsCompleted: false, IsOnTime: true},
		{HoursLogged: 0.5, IsCompleted: true, IsOnTime: true},
	}
	got := ComputeKPIs(tasks)
	assert.Equal(t, 7.0, got.TotalHours)
	assert.Equal(t, 3, got.CompletedTasks)
	assert.Equal(t, 4, got.TotalTasks)
	assert.InDelta(t, 66.666, got.OnTimePercentage, 0.01)
}

func TestOnTimeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	properties.Property("completing a task sets isOnTime to completed <= due", prop.ForAll(
		func(due, completed string) bool {
			ctx := context.Background()
			s := NewKPIService(ctx, storage.NewAdapter(storage.NewMemoryStore()), nil, testToday)
			task, _ := s.AddTask(ctx)
			_, _ = s.UpdateTask(ctx, task.ID, model.TaskFieldDueDate, due)
			_, _ = s.UpdateTask(ctx, task.ID, model.TaskFieldCompletedDate, completed)
			_, _ = s.UpdateTask(ctx, task.ID, model.TaskFieldIsCompleted, true)

			dueT, _ := ParseISODate(due)
			compT, _ := ParseISODate(completed)
			return s.Report().Tasks[0].IsOnTime == !compT.After(dueT)
		},
		genISODate(), genISODate(),
	))

	properties.Property("on-time percentage stays within 0..100", prop.ForAll(
		func(flags []bool) bool {
			tasks := make([]model.DevelopmentTask, len(flags))
			for i, f := range flags {
				tasks[i] = model.DevelopmentTask{IsCompleted: i%2 == 0, IsOnTime: f}
			}
			pct := ComputeKPIs(tasks).OnTimePercentage
			return pct >= 0 && pct <= 100
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
