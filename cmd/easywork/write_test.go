package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCommand(t *testing.T) {
	tests := []struct {
		name     string
		seed     map[string]string
		stdin    string
		args     []string
		wantCode int
		date     string
		want     string
	}{
		{
			name: "new log from args",
			args: []string{"write", "reviewed", "deploy", "plan"},
			date: "2025-03-17",
			want: "reviewed deploy plan",
		},
		{
			name: "date flag",
			args: []string{"write", "--date", "yesterday", "weekend"},
			date: "2025-03-16",
			want: "weekend",
		},
		{
			name:  "stdin normalized to CRLF",
			stdin: "line1\nline2\n",
			args:  []string{"write"},
			date:  "2025-03-17",
			want:  "line1\r\nline2",
		},
		{
			name:  "explicit stdin",
			stdin: "piped",
			args:  []string{"write", "--file", "-"},
			date:  "2025-03-17",
			want:  "piped",
		},
		{
			name: "append",
			seed: map[string]string{"2025-03-17": "standup"},
			args: []string{"write", "--append", "code review"},
			date: "2025-03-17",
			want: "standup\r\ncode review",
		},
		{
			name: "force replaces",
			seed: map[string]string{"2025-03-17": "old"},
			args: []string{"write", "--force", "new"},
			date: "2025-03-17",
			want: "new",
		},
		{
			name:     "existing log without force",
			seed:     map[string]string{"2025-03-17": "old"},
			args:     []string{"write", "new"},
			wantCode: 3,
			date:     "2025-03-17",
			want:     "old",
		},
		{
			name:     "nothing to write",
			args:     []string{"write"},
			wantCode: 1,
			date:     "2025-03-17",
			want:     "",
		},
		{
			name:     "whitespace only",
			stdin:    "  \n\t\n",
			args:     []string{"write"},
			wantCode: 1,
			date:     "2025-03-17",
			want:     "",
		},
		{
			name:     "invalid date",
			args:     []string{"write", "--date", "2025-13-01", "x"},
			wantCode: 1,
			date:     "2025-03-17",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			for date, content := range tt.seed {
				env.seed(t, date, content)
			}

			_, _, err := execute(t, env, tt.stdin, tt.args...)
			if tt.wantCode != 0 {
				wantExitCode(t, err, tt.wantCode)
			} else if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if got := env.content(t, tt.date); got != tt.want {
				t.Errorf("stored content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteCommand_FromFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("from file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, env, "", "write", "--file", path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := env.content(t, "2025-03-17"); got != "from file" {
		t.Errorf("stored content = %q", got)
	}
}

func TestWriteCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing file",
			args:     []string{"write", "--file", "/nonexistent/notes.txt"},
			wantCode: 1,
			wantErr:  "failed to read",
		},
		{
			name:     "args and file",
			args:     []string{"write", "--file", "notes.txt", "text"},
			wantCode: 1,
			wantErr:  "cannot use both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, stderr, err := execute(t, env, "", tt.args...)
			wantExitCode(t, err, tt.wantCode)
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestWriteCommand_AppendAndForceExclusive(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := execute(t, env, "", "write", "--append", "--force", "x")
	if err == nil {
		t.Fatal("expected error for --append with --force")
	}
}

func TestWriteCommand_ConflictJSON(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "2025-03-17", "old")

	out, _, err := execute(t, env, "", "write", "--json", "new")
	wantExitCode(t, err, 3)

	result := decodeJSON(t, out)
	if code, _ := result["code"].(float64); code != 3 {
		t.Errorf("code = %v, want 3", result["code"])
	}
	if !strings.Contains(result["error"].(string), "--append or --force") {
		t.Errorf("error = %v", result["error"])
	}
}

func TestWriteCommand_SuccessOutput(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, env, "", "write", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Saved log for 2025-03-17 Monday") {
		t.Errorf("output = %q", out)
	}

	out, _, err = execute(t, env, "", "write", "--append", "--json", "again")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	result := decodeJSON(t, out)
	log, ok := result["log"].(map[string]any)
	if !ok {
		t.Fatalf("log missing: %v", result)
	}
	if log["content"] != "hello\nagain" {
		t.Errorf("log content = %q", log["content"])
	}
}

func TestWriteCommand_SaveFailure(t *testing.T) {
	env := newTestEnv(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	env.store = newStoreAt(blocker)

	_, _, err := execute(t, env, "", "write", "x")
	wantExitCode(t, err, 2)
}
