package diag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_AddMessage(t *testing.T) {
	r := NewResult()
	r.AddMessage("name is empty", "dt-1", "data_type", SeverityError)
	r.AddMessage("unusual casing", "dt-1", "data_type", SeverityWarning)

	assert.Len(t, r.Messages(SeverityError), 1)
	assert.Len(t, r.Messages(SeverityWarning), 1)
	assert.Empty(t, r.Messages(SeverityInfo))

	msg := r.Messages(SeverityError)[0]
	assert.Equal(t, "name is empty", msg.Text)
	assert.Equal(t, "dt-1", msg.SubjectID)
	assert.Equal(t, SeverityError, msg.Severity)
}

func TestResult_AddChild_IgnoresNil(t *testing.T) {
	r := NewResult()
	r.AddChild(nil)
	assert.Empty(t, r.Children())

	child := NewResult()
	r.AddChild(child)
	require.Len(t, r.Children(), 1)
	assert.Same(t, child, r.Children()[0])
}

func TestResult_IsValid_Transitive(t *testing.T) {
	root := NewResult()
	root.AddMessage("heads up", "dt-1", "data_type", SeverityWarning)
	assert.True(t, root.IsValid(), "warnings alone should not invalidate")

	inner := NewResult()
	leaf := NewResult()
	leaf.AddMessage("broken", "attr-1", "attribute", SeverityError)
	inner.AddChild(leaf)
	root.AddChild(inner)

	assert.False(t, root.IsValid(), "error two levels down must invalidate the root")
	assert.True(t, inner.IsValid() == false)
}

func TestResult_IsEmpty_Transitive(t *testing.T) {
	root := NewResult()
	inner := NewResult()
	root.AddChild(inner)
	assert.True(t, root.IsEmpty())

	inner.AddMessage("note", "dt-1", "data_type", SeverityInfo)
	assert.False(t, root.IsEmpty())
}

func TestResult_Count(t *testing.T) {
	root := NewResult()
	root.AddMessage("note", "dt-1", "data_type", SeverityInfo)
	root.AddMessage("heads up", "dt-1", "data_type", SeverityWarning)

	child := NewResult()
	child.AddMessage("broken", "attr-1", "attribute", SeverityError)
	child.AddMessage("also heads up", "attr-1", "attribute", SeverityWarning)
	root.AddChild(child)

	assert.Equal(t, 4, root.Count(SeverityInfo))
	assert.Equal(t, 3, root.Count(SeverityWarning))
	assert.Equal(t, 1, root.Count(SeverityError))
}

func TestResult_CountAt(t *testing.T) {
	root := NewResult()
	root.AddMessage("note", "dt-1", "data_type", SeverityInfo)
	root.AddMessage("broken", "dt-1", "data_type", SeverityError)

	child := NewResult()
	child.AddMessage("also broken", "attr-1", "attribute", SeverityError)
	root.AddChild(child)

	// Errors qualify against a warning threshold; infos never do.
	assert.Equal(t, 2, root.CountAt(SeverityError, SeverityWarning))
	assert.Equal(t, 0, root.CountAt(SeverityInfo, SeverityWarning))
	assert.Equal(t, 1, root.CountAt(SeverityInfo, SeverityInfo))
}

func TestResult_AllMessages(t *testing.T) {
	root := NewResult()
	root.AddMessage("a", "dt-1", "data_type", SeverityInfo)
	child := NewResult()
	child.AddMessage("b", "attr-1", "attribute", SeverityError)
	root.AddChild(child)

	// AllMessages is transitive: local messages first, then each child's.
	all := root.AllMessages()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Text)
	assert.Equal(t, "b", all[1].Text)
	assert.Len(t, child.AllMessages(), 1)
}

func TestResult_JSONRoundTrip(t *testing.T) {
	root := NewResult()
	root.AddMessage("broken", "dt-1", "data_type", SeverityError)
	child := NewResult()
	child.AddMessage("note", "attr-1", "attribute", SeverityInfo)
	root.AddChild(child)

	data, err := json.Marshal(root)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 2, decoded.Count(SeverityInfo))
	assert.Equal(t, 1, decoded.Count(SeverityError))
	require.Len(t, decoded.Children(), 1)
	assert.False(t, decoded.IsValid())
}
