package entities

type Task struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Priority    string `json:"priority"` // High|Medium|Low
	Status      string `json:"status"`   // Pending|In Progress|Completed
	DueDate     string `json:"due_date"`
	AssignedTo  string `json:"assigned_to"`
	Description string `json:"description"`
	CreatedDate string `json:"created_date"`
}

const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

var TaskPriorities = []string{"High", "Medium", "Low"}

var TaskStatuses = []string{TaskPending, TaskInProgress, TaskCompleted}

func (t Task) RecordID() int   { return t.ID }
func (t Task) Created() string { return t.CreatedDate }
