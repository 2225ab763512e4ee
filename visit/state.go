package visit

// State tracks a node's progress within one traversal. States are transient:
// they live in a walker's cache for a single top-level Walk call and are
// never persisted.
type State int

const (
	// Unvisited means the node has not been reached in this traversal.
	Unvisited State = iota

	// InProgress means the node is on the current call stack. Reaching an
	// InProgress node again is a reference cycle in the entity data.
	InProgress

	// Done means the node's result has been computed and cached.
	Done
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case InProgress:
		return "in_progress"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}
