package diag

import "fmt"

// Message is a single validation diagnostic attached to a node.
type Message struct {
	// Text is the human-readable description of the issue.
	Text string `json:"text"`

	// SubjectID identifies the node the message is about. Empty when the
	// message has no specific subject.
	SubjectID string `json:"subject_id,omitempty"`

	// SubjectKind is the node kind of the subject, if any.
	SubjectKind string `json:"subject_kind,omitempty"`

	// Severity is the message's severity level.
	Severity Severity `json:"severity"`
}

// String renders the message in "severity: text (subject)" form.
func (m Message) String() string {
	if m.SubjectID == "" {
		return fmt.Sprintf("%s: %s", m.Severity, m.Text)
	}
	return fmt.Sprintf("%s: %s (%s %s)", m.Severity, m.Text, m.SubjectKind, m.SubjectID)
}
