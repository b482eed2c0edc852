package model

// DevelopmentTask representa uma tarefa semanal do relatório de KPIs.
// IsOnTime só tem significado quando IsCompleted é true.
type DevelopmentTask struct {
	ID            string  `json:"id"`
	TaskName      string  `json:"taskName"`
	HoursLogged   float64 `json:"hoursLogged"`
	DueDate       string  `json:"dueDate"`
	CompletedDate string  `json:"completedDate"`
	IsCompleted   bool    `json:"isCompleted"`
	IsOnTime      bool    `json:"isOnTime"`
}

// WeekWindow é a semana selecionada (segunda a domingo, datas ISO)
type WeekWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// KPISummary contém os agregados derivados das tarefas (nunca persistido)
type KPISummary struct {
	TotalHours       float64 `json:"totalHours"`
	CompletedTasks   int     `json:"completedTasks"`
	TotalTasks       int     `json:"totalTasks"`
	OnTimePercentage float64 `json:"onTimePercentage"`
}

// KPIReport é a visão completa do relatório semanal
type KPIReport struct {
	Title   string            `json:"title"`
	Week    WeekWindow        `json:"week"`
	Tasks   []DevelopmentTask `json:"tasks"`
	Summary KPISummary        `json:"summary"`
}

// Campos de uma tarefa
const (
	TaskFieldID            = "id"
	TaskFieldName          = "taskName"
	TaskFieldHoursLogged   = "hoursLogged"
	TaskFieldDueDate       = "dueDate"
	TaskFieldCompletedDate = "completedDate"
	TaskFieldIsCompleted   = "isCompleted"
	TaskFieldIsOnTime      = "isOnTime"
)

// Direções de navegação semanal
const (
	WeekPrevious = "previous"
	WeekNext     = "next"
	WeekCurrent  = "current"
)

// Page identifica a página ativa da aplicação
type Page string

const (
	PageEstimator Page = "estimator"
	PageKPIs      Page = "kpis"
)

// Valid indica se a página é conhecida
func (p Page) Valid() bool {
	return p == PageEstimator || p == PageKPIs
}
