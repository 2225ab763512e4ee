package diag

import "encoding/json"

// resultJSON is the wire form of a Result for report persistence.
type resultJSON struct {
	Messages map[Severity][]Message `json:"messages,omitempty"`
	Children []*Result              `json:"children,omitempty"`
}

// MarshalJSON serializes the result tree, omitting empty severity buckets.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Children: r.children}
	for sev, msgs := range r.messages {
		if len(msgs) == 0 {
			continue
		}
		if out.Messages == nil {
			out.Messages = make(map[Severity][]Message)
		}
		out.Messages[sev] = msgs
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a result tree serialized by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.messages = in.Messages
	if r.messages == nil {
		r.messages = make(map[Severity][]Message)
	}
	r.children = in.Children
	return nil
}
