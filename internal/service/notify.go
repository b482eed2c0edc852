package service

import "github.com/google/uuid"

// Notifier recebe um aviso após cada alteração persistida de estado
type Notifier interface {
	NotifyStateChanged(module, action string)
}

// Ações notificadas
const (
	ActionAdded    = "added"
	ActionRemoved  = "removed"
	ActionUpdated  = "updated"
	ActionTitle    = "title_changed"
	ActionReset    = "reset"
	ActionWeek     = "week_changed"
	ActionPage     = "page_changed"
	ModuleEstimate = "estimate"
	ModuleKPI      = "kpi"
	ModuleApp      = "app"
)

type nopNotifier struct{}

func (nopNotifier) NotifyStateChanged(string, string) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// newID gera identificadores sem colisão mesmo em inserções seguidas
func newID() string {
	return uuid.NewString()
}
