package rulegraph

import "fmt"

// Task is a lifecycle moment that scopes which declared rules are eligible
// for an operation on the registry.
type Task string

const (
	// TaskCreate applies when a record is created.
	TaskCreate Task = "create"

	// TaskUpdate applies when a record is updated.
	TaskUpdate Task = "update"

	// TaskDelete applies when a record is deleted.
	TaskDelete Task = "delete"

	// TaskConsume applies when a record is consumed by another record.
	TaskConsume Task = "consume"

	// TaskValidate applies on explicit validation requests.
	TaskValidate Task = "validate"

	// TaskPublish applies when a record is published.
	TaskPublish Task = "publish"

	// TaskOther applies to lifecycle moments outside the named set.
	TaskOther Task = "other"
)

// IsValid returns true if the task is one of the closed lifecycle moments.
func (t Task) IsValid() bool {
	switch t {
	case TaskCreate, TaskUpdate, TaskDelete, TaskConsume,
		TaskValidate, TaskPublish, TaskOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the task.
func (t Task) String() string { return string(t) }

// ParseTask parses a string into a Task value.
// Returns an error if the string is not a known lifecycle task.
func ParseTask(s string) (Task, error) {
	task := Task(s)
	if !task.IsValid() {
		return "", fmt.Errorf("invalid rule task: %s", s)
	}
	return task, nil
}

// AllTasks returns every lifecycle task.
func AllTasks() []Task {
	return []Task{
		TaskCreate,
		TaskUpdate,
		TaskDelete,
		TaskConsume,
		TaskValidate,
		TaskPublish,
		TaskOther,
	}
}
