package diag

import "testing"

func TestSeverity_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     bool
	}{
		{"valid info", SeverityInfo, true},
		{"valid warning", SeverityWarning, true},
		{"valid error", SeverityError, true},
		{"invalid empty", Severity(""), false},
		{"invalid unknown", Severity("fatal"), false},
		{"invalid case", Severity("ERROR"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_Rank(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     int
	}{
		{"info ranks lowest", SeverityInfo, 1},
		{"warning ranks middle", SeverityWarning, 2},
		{"error ranks highest", SeverityError, 3},
		{"unknown ranks zero", Severity("fatal"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.Rank(); got != tt.want {
				t.Errorf("Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		min      Severity
		want     bool
	}{
		{"error at least warning", SeverityError, SeverityWarning, true},
		{"error at least error", SeverityError, SeverityError, true},
		{"warning at least error", SeverityWarning, SeverityError, false},
		{"info at least info", SeverityInfo, SeverityInfo, true},
		{"info at least warning", SeverityInfo, SeverityWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.AtLeast(tt.min); got != tt.want {
				t.Errorf("AtLeast(%v) = %v, want %v", tt.min, got, tt.want)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Severity
		wantErr bool
	}{
		{"parses info", "info", SeverityInfo, false},
		{"parses warning", "warning", SeverityWarning, false},
		{"parses error", "error", SeverityError, false},
		{"rejects unknown", "fatal", "", true},
		{"rejects empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompareSeverity(t *testing.T) {
	tests := []struct {
		name string
		a, b Severity
		want int
	}{
		{"error above warning", SeverityError, SeverityWarning, 1},
		{"warning below error", SeverityWarning, SeverityError, -1},
		{"info equals info", SeverityInfo, SeverityInfo, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareSeverity(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareSeverity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAllSeverities(t *testing.T) {
	all := AllSeverities()
	if len(all) != 3 {
		t.Fatalf("AllSeverities() returned %d severities, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Rank() >= all[i].Rank() {
			t.Errorf("AllSeverities() not ascending at %d: %v >= %v", i, all[i-1], all[i])
		}
	}
}
