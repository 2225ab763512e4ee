package rulegraph

import "testing"

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"valid create", TaskCreate, true},
		{"valid update", TaskUpdate, true},
		{"valid delete", TaskDelete, true},
		{"valid consume", TaskConsume, true},
		{"valid validate", TaskValidate, true},
		{"valid publish", TaskPublish, true},
		{"valid other", TaskOther, true},
		{"invalid empty", Task(""), false},
		{"invalid unknown", Task("archive"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTask(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Task
		wantErr bool
	}{
		{"parses validate", "validate", TaskValidate, false},
		{"parses publish", "publish", TaskPublish, false},
		{"rejects unknown", "archive", "", true},
		{"rejects empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTask(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTask(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTask(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllTasks(t *testing.T) {
	all := AllTasks()
	if len(all) != 7 {
		t.Fatalf("AllTasks() returned %d tasks, want 7", len(all))
	}
	for _, task := range all {
		if !task.IsValid() {
			t.Errorf("AllTasks() contains invalid task %q", task)
		}
	}
}
