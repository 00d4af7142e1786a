package main

import (
	"strings"
	"testing"
)

func TestShowCommand(t *testing.T) {
	tests := []struct {
		name         string
		seed         map[string]string
		args         []string
		wantErr      bool
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "today with log",
			seed:         map[string]string{"2025-03-17": "standup\r\nreviewed deploy plan"},
			args:         []string{"show"},
			wantContains: []string{"2025-03-17 Monday", "standup\nreviewed deploy plan", "Last saved: 2025-03-17 10:30:00"},
			wantMissing:  []string{"\r\n"},
		},
		{
			name:         "yesterday keyword",
			seed:         map[string]string{"2025-03-16": "weekend notes"},
			args:         []string{"show", "yesterday"},
			wantContains: []string{"2025-03-16 Sunday", "weekend notes"},
		},
		{
			name:         "days ago",
			seed:         map[string]string{"2025-03-14": "friday"},
			args:         []string{"show", "3d"},
			wantContains: []string{"2025-03-14 Friday", "friday"},
		},
		{
			name:         "no log",
			args:         []string{"show", "2025-03-01"},
			wantContains: []string{"2025-03-01 Saturday", "No log for this day", "easywork edit 2025-03-01"},
			wantMissing:  []string{"Last saved"},
		},
		{
			name:    "invalid date",
			args:    []string{"show", "2025-02-30"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			for date, content := range tt.seed {
				env.seed(t, date, content)
			}

			out, _, err := execute(t, env, "", tt.args...)
			if tt.wantErr {
				wantExitCode(t, err, 1)
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, missing := range tt.wantMissing {
				if strings.Contains(out, missing) {
					t.Errorf("output should not contain %q:\n%s", missing, out)
				}
			}
		})
	}
}

func TestShowCommand_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "2025-03-17", "line1\r\nline2")

	out, _, err := execute(t, env, "", "show", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	result := decodeJSON(t, out)
	if result["date"] != "2025-03-17" {
		t.Errorf("date = %v", result["date"])
	}
	if result["weekday"] != "Monday" {
		t.Errorf("weekday = %v", result["weekday"])
	}
	if result["content"] != "line1\nline2" {
		t.Errorf("content = %q, want LF line endings", result["content"])
	}
	if result["saved"] != true {
		t.Errorf("saved = %v", result["saved"])
	}
	if _, ok := result["last_modified"]; !ok {
		t.Error("last_modified missing for a saved log")
	}
}

func TestShowCommand_JSON_NoLog(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, env, "", "show", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	result := decodeJSON(t, out)
	if result["saved"] != false {
		t.Errorf("saved = %v, want false", result["saved"])
	}
	if _, ok := result["last_modified"]; ok {
		t.Error("last_modified should be omitted for an unsaved log")
	}
}

func TestShowCommand_JSON_InvalidDate(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, env, "", "show", "not-a-date", "--json")
	wantExitCode(t, err, 1)

	result := decodeJSON(t, out)
	if !strings.Contains(result["error"].(string), "invalid date") {
		t.Errorf("error = %v", result["error"])
	}
}
