package model

import (
	"testing"

	"github.com/typeforge/sdk/diag"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want bool
	}{
		{"valid data type", KindDataType, true},
		{"valid type profile", KindTypeProfile, true},
		{"valid attribute", KindAttribute, true},
		{"valid operation", KindOperation, true},
		{"valid operation step", KindOperationStep, true},
		{"valid attribute mapping", KindAttributeMapping, true},
		{"invalid empty", Kind(""), false},
		{"invalid unknown", Kind("widget"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{"parses data type", "data_type", KindDataType, false},
		{"parses attribute mapping", "attribute_mapping", KindAttributeMapping, false},
		{"rejects unknown", "widget", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllKinds(t *testing.T) {
	all := AllKinds()
	if len(all) != 6 {
		t.Fatalf("AllKinds() returned %d kinds, want 6", len(all))
	}
	for _, k := range all {
		if !k.IsValid() {
			t.Errorf("AllKinds() contains invalid kind %q", k)
		}
	}
}

// kindRecorder records which Visit method each Accept call dispatched to.
type kindRecorder struct {
	visited []Kind
}

func (r *kindRecorder) record(k Kind) *diag.Result {
	r.visited = append(r.visited, k)
	return diag.NewResult()
}

func (r *kindRecorder) VisitDataType(*DataType) *diag.Result    { return r.record(KindDataType) }
func (r *kindRecorder) VisitTypeProfile(*TypeProfile) *diag.Result {
	return r.record(KindTypeProfile)
}
func (r *kindRecorder) VisitAttribute(*Attribute) *diag.Result { return r.record(KindAttribute) }
func (r *kindRecorder) VisitOperation(*Operation) *diag.Result { return r.record(KindOperation) }
func (r *kindRecorder) VisitOperationStep(*OperationStep) *diag.Result {
	return r.record(KindOperationStep)
}
func (r *kindRecorder) VisitAttributeMapping(*AttributeMapping) *diag.Result {
	return r.record(KindAttributeMapping)
}

func TestAccept_DispatchesByKind(t *testing.T) {
	str := NewDataType("dt-string", "String", PrimitiveString)
	nodes := []Node{
		str,
		NewTypeProfile("tp-1", "Profile", str),
		NewAttribute("attr-1", "code", str),
		NewOperation("op-1", "publish"),
		NewOperationStep("step-1", "map"),
		NewAttributeMapping("map-1", "code-to-code", nil, nil),
	}

	rec := &kindRecorder{}
	for _, n := range nodes {
		n.Accept(rec)
	}

	want := []Kind{
		KindDataType, KindTypeProfile, KindAttribute,
		KindOperation, KindOperationStep, KindAttributeMapping,
	}
	if len(rec.visited) != len(want) {
		t.Fatalf("dispatched %d visits, want %d", len(rec.visited), len(want))
	}
	for i, k := range want {
		if rec.visited[i] != k {
			t.Errorf("visit %d dispatched to %v, want %v", i, rec.visited[i], k)
		}
		if nodes[i].NodeKind() != k {
			t.Errorf("node %d NodeKind() = %v, want %v", i, nodes[i].NodeKind(), k)
		}
	}
}
