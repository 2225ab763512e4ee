package rulegraph

import (
	"fmt"
	"sort"

	"github.com/typeforge/sdk/model"
)

// Scanner accumulates rule declarations during the scan phase. The protocol
// is scan-then-freeze: Add is append-only, Freeze produces the immutable
// Snapshot, and the scanner refuses further mutation afterwards. The caller
// is responsible for confining the scan phase to one goroutine.
type Scanner struct {
	decls  []Declaration
	byID   map[string]int
	frozen bool
}

// NewScanner creates an empty declaration scanner.
func NewScanner() *Scanner {
	return &Scanner{byID: make(map[string]int)}
}

// Add appends a declaration to the scan set. Duplicate rule ids and frozen
// scanners are rejected; deeper structural validation happens at compile
// time so one bad declaration does not hide the rest of the scan.
func (s *Scanner) Add(decls ...Declaration) error {
	if s.frozen {
		return ErrFrozen
	}
	for _, d := range decls {
		if d.ID != "" {
			if _, exists := s.byID[d.ID]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateRule, d.ID)
			}
			s.byID[d.ID] = len(s.decls)
		}
		s.decls = append(s.decls, d)
	}
	return nil
}

// Freeze ends the scan phase and returns the immutable snapshot. The scanner
// cannot be reused afterwards.
func (s *Scanner) Freeze() *Snapshot {
	s.frozen = true
	decls := make([]Declaration, len(s.decls))
	copy(decls, s.decls)
	byID := make(map[string]int, len(s.byID))
	for id, i := range s.byID {
		byID[id] = i
	}
	return &Snapshot{decls: decls, byID: byID}
}

// Snapshot is the frozen, read-only set of rule declarations visible to one
// build. Snapshots are never mutated and are safe to share across
// goroutines.
type Snapshot struct {
	decls []Declaration
	byID  map[string]int
}

// NewSnapshot scans the given declarations and freezes them in one step.
func NewSnapshot(decls ...Declaration) (*Snapshot, error) {
	s := NewScanner()
	if err := s.Add(decls...); err != nil {
		return nil, err
	}
	return s.Freeze(), nil
}

// Len returns the number of declarations in the snapshot.
func (s *Snapshot) Len() int { return len(s.decls) }

// All returns a copy of every declaration, ordered by rule id.
func (s *Snapshot) All() []Declaration {
	out := make([]Declaration, len(s.decls))
	copy(out, s.decls)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the declaration with the given rule id.
func (s *Snapshot) Get(id string) (Declaration, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Declaration{}, false
	}
	return s.decls[i], true
}

// Scopes returns every (task, kind) scope any declaration is indexed into,
// in deterministic order. A declaration with N tasks and M target kinds
// contributes to N×M scopes.
func (s *Snapshot) Scopes() []Scope {
	seen := make(map[Scope]bool)
	var scopes []Scope
	for _, d := range s.decls {
		for _, t := range d.EffectiveTasks() {
			for _, k := range d.TargetKinds {
				sc := Scope{Task: t, Kind: k}
				if !seen[sc] {
					seen[sc] = true
					scopes = append(scopes, sc)
				}
			}
		}
	}
	sort.Slice(scopes, func(i, j int) bool {
		if scopes[i].Task != scopes[j].Task {
			return scopes[i].Task < scopes[j].Task
		}
		return scopes[i].Kind < scopes[j].Kind
	})
	return scopes
}

// DeclarationsFor returns the declarations in scope for (task, kind),
// ordered by rule id.
func (s *Snapshot) DeclarationsFor(task Task, kind model.Kind) []Declaration {
	var out []Declaration
	for _, d := range s.decls {
		if d.AppliesTo(task, kind) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
