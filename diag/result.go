package diag

// Result is a hierarchical container of validation messages.
//
// Each Result holds the messages produced for one node, bucketed by severity,
// plus one child Result per referenced node that was visited from it. The
// tree shape mirrors the traversal that produced it, so callers can render
// every issue in context.
//
// A Result is not safe for concurrent use. Trees are built on a single call
// stack and handed to the caller; they must not be shared across goroutines
// while still being mutated.
type Result struct {
	messages map[Severity][]Message
	children []*Result
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{
		messages: make(map[Severity][]Message),
	}
}

// AddMessage appends a message with the given text, subject and severity.
// Invalid severities are recorded as-is; they rank below info and never
// affect IsValid.
func (r *Result) AddMessage(text, subjectID, subjectKind string, severity Severity) {
	r.messages[severity] = append(r.messages[severity], Message{
		Text:        text,
		SubjectID:   subjectID,
		SubjectKind: subjectKind,
		Severity:    severity,
	})
}

// AddChild appends a sub-result, preserving traversal order.
// Nil children are ignored.
func (r *Result) AddChild(child *Result) {
	if child == nil {
		return
	}
	r.children = append(r.children, child)
}

// Children returns the ordered child results.
func (r *Result) Children() []*Result {
	return r.children
}

// Messages returns the messages recorded locally at the given severity,
// excluding children.
func (r *Result) Messages(severity Severity) []Message {
	return r.messages[severity]
}

// AllMessages returns every message in the transitive tree in traversal
// order: the local messages (ascending severity) followed by each child's.
func (r *Result) AllMessages() []Message {
	var out []Message
	for _, sev := range AllSeverities() {
		out = append(out, r.messages[sev]...)
	}
	for _, child := range r.children {
		out = append(out, child.AllMessages()...)
	}
	return out
}

// IsValid reports whether the transitive tree contains no error-level
// messages. A Result with only info and warning content is valid.
func (r *Result) IsValid() bool {
	if len(r.messages[SeverityError]) > 0 {
		return false
	}
	for _, child := range r.children {
		if !child.IsValid() {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the transitive tree contains no messages at all.
func (r *Result) IsEmpty() bool {
	for _, msgs := range r.messages {
		if len(msgs) > 0 {
			return false
		}
	}
	for _, child := range r.children {
		if !child.IsEmpty() {
			return false
		}
	}
	return true
}

// Count returns the number of messages in the transitive tree whose severity
// is at or above min.
func (r *Result) Count(min Severity) int {
	n := 0
	for sev, msgs := range r.messages {
		if sev.AtLeast(min) {
			n += len(msgs)
		}
	}
	for _, child := range r.children {
		n += child.Count(min)
	}
	return n
}

// CountAt returns the number of messages in the transitive tree whose
// severity is at or above min and exactly at or above floor severity sev.
// It is a convenience for policy decisions that care about one level only.
func (r *Result) CountAt(sev Severity, min Severity) int {
	n := 0
	if sev.AtLeast(min) {
		n += len(r.messages[sev])
	}
	for _, child := range r.children {
		n += child.CountAt(sev, min)
	}
	return n
}
