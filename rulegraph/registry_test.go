package rulegraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/sdk/model"
)

func TestScanner_Add(t *testing.T) {
	s := NewScanner()
	require.NoError(t, s.Add(
		Declaration{ID: "syntax", TargetKinds: []model.Kind{model.KindDataType}},
		Declaration{ID: "inheritance", TargetKinds: []model.Kind{model.KindDataType}},
	))

	err := s.Add(Declaration{ID: "syntax", TargetKinds: []model.Kind{model.KindAttribute}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRule))
}

func TestScanner_FreezeRejectsFurtherAdds(t *testing.T) {
	s := NewScanner()
	require.NoError(t, s.Add(Declaration{ID: "syntax", TargetKinds: []model.Kind{model.KindDataType}}))

	snapshot := s.Freeze()
	assert.Equal(t, 1, snapshot.Len())

	err := s.Add(Declaration{ID: "late", TargetKinds: []model.Kind{model.KindDataType}})
	assert.True(t, errors.Is(err, ErrFrozen))
}

func TestSnapshot_Get(t *testing.T) {
	snapshot, err := NewSnapshot(
		Declaration{ID: "syntax", TargetKinds: []model.Kind{model.KindDataType}},
	)
	require.NoError(t, err)

	decl, ok := snapshot.Get("syntax")
	require.True(t, ok)
	assert.Equal(t, "syntax", decl.ID)

	_, ok = snapshot.Get("missing")
	assert.False(t, ok)
}

func TestSnapshot_All_SortedByID(t *testing.T) {
	snapshot, err := NewSnapshot(
		Declaration{ID: "zeta", TargetKinds: []model.Kind{model.KindDataType}},
		Declaration{ID: "alpha", TargetKinds: []model.Kind{model.KindDataType}},
	)
	require.NoError(t, err)

	all := snapshot.All()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].ID)
	assert.Equal(t, "zeta", all[1].ID)
}

func TestSnapshot_Scopes(t *testing.T) {
	snapshot, err := NewSnapshot(
		Declaration{
			ID:          "r1",
			Tasks:       []Task{TaskValidate, TaskPublish},
			TargetKinds: []model.Kind{model.KindDataType},
		},
		Declaration{
			ID:          "r2",
			Tasks:       []Task{TaskValidate},
			TargetKinds: []model.Kind{model.KindDataType, model.KindAttribute},
		},
	)
	require.NoError(t, err)

	scopes := snapshot.Scopes()
	assert.Equal(t, []Scope{
		{Task: TaskPublish, Kind: model.KindDataType},
		{Task: TaskValidate, Kind: model.KindAttribute},
		{Task: TaskValidate, Kind: model.KindDataType},
	}, scopes)
}

func TestSnapshot_DeclarationsFor(t *testing.T) {
	snapshot, err := NewSnapshot(
		Declaration{ID: "b", Tasks: []Task{TaskValidate}, TargetKinds: []model.Kind{model.KindDataType}},
		Declaration{ID: "a", Tasks: []Task{TaskValidate}, TargetKinds: []model.Kind{model.KindDataType}},
		Declaration{ID: "c", Tasks: []Task{TaskPublish}, TargetKinds: []model.Kind{model.KindDataType}},
	)
	require.NoError(t, err)

	decls := snapshot.DeclarationsFor(TaskValidate, model.KindDataType)
	require.Len(t, decls, 2)
	assert.Equal(t, "a", decls[0].ID)
	assert.Equal(t, "b", decls[1].ID)

	assert.Empty(t, snapshot.DeclarationsFor(TaskDelete, model.KindDataType))
}
