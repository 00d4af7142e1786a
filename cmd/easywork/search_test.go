package main

import (
	"strings"
	"testing"
)

func TestSearchCommand(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "2025-03-03", "standup\r\nreviewed deploy plan")
	env.seed(t, "2025-03-04", "fixed deploy script")
	env.seed(t, "2025-02-10", "deploy in february")

	out, _, err := execute(t, env, "", "search", "deploy")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		`March 2025: "deploy"`,
		"2025-03-03  2     reviewed deploy plan",
		"2025-03-04  1     fixed deploy script",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "february") {
		t.Errorf("output includes another month:\n%s", out)
	}
}

func TestSearchCommand_MonthAndLimit(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "2025-02-10", "deploy one")
	env.seed(t, "2025-02-11", "deploy two")
	env.seed(t, "2025-02-12", "deploy three")

	out, _, err := execute(t, env, "", "search", "deploy", "--month", "last", "--limit", "2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "February 2025") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Showing 2 of 3 matches") {
		t.Errorf("output missing the limit note:\n%s", out)
	}
}

func TestSearchCommand_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "2025-03-03", "standup\r\nreviewed deploy plan")

	out, _, err := execute(t, env, "", "search", "deploy", "plan", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	result := decodeJSON(t, out)
	if result["query"] != "deploy plan" || result["month"] != "2025-03" || result["total"] != float64(1) {
		t.Errorf("result = %v", result)
	}
	matches, _ := result["matches"].([]any)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	match, _ := matches[0].(map[string]any)
	if match["date"] != "2025-03-03" || match["line"] != float64(2) || match["text"] != "reviewed deploy plan" {
		t.Errorf("match = %v", match)
	}
}

func TestSearchCommand_NoMatches(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "2025-03-03", "standup")

	out, _, err := execute(t, env, "", "search", "qqqzzz")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `No matches for "qqqzzz" in March 2025`) {
		t.Errorf("output = %q", out)
	}
}

func TestSearchCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative limit", args: []string{"search", "x", "--limit", "-1"}},
		{name: "bad month", args: []string{"search", "x", "--month", "2025-00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, _, err := execute(t, env, "", tt.args...)
			wantExitCode(t, err, 1)
		})
	}
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	env := newTestEnv(t)
	if _, _, err := execute(t, env, "", "search"); err == nil {
		t.Fatal("expected error without a query")
	}
}
