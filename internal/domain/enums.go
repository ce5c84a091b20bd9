package domain

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
	TaskOverdue    TaskStatus = "overdue"
)

// ValidTaskStatuses is the canonical set of accepted status strings.
var ValidTaskStatuses = map[string]bool{
	"todo": true, "in_progress": true, "done": true,
	"blocked": true, "overdue": true,
}

// NormalizeStatus maps an arbitrary status string onto the closed enum.
// Unknown or empty values fall back to todo so a record from the store
// with a status this client does not know still renders.
func NormalizeStatus(s string) TaskStatus {
	if ValidTaskStatuses[s] {
		return TaskStatus(s)
	}
	return TaskTodo
}

// ValidTaskCategories is the canonical set of lab task category strings.
var ValidTaskCategories = map[string]bool{
	"analysis": true, "calibration": true, "maintenance": true,
	"sampling": true, "reporting": true, "general": true,
}
