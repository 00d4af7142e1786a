package main

import (
	"strings"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	t.Setenv("EASYWORK_CONFIG_HOME", t.TempDir())
	env := newTestEnv(t)
	env.seed(t, "2025-03-17", "today")
	env.seed(t, "2025-03-02", "earlier")
	env.seed(t, "2025-02-02", "other month")

	out, _, err := execute(t, env, "", "status")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"Data dir: " + env.store.Dir(),
		"not found, using defaults",
		"easywork.log (warn)",
		"Autosave: every 1s",
		"Today: 2025-03-17 logged ✓",
		"This month: 2025-03 2 of 31 days logged",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCommand_JSON(t *testing.T) {
	t.Setenv("EASYWORK_CONFIG_HOME", t.TempDir())
	env := newTestEnv(t)
	env.cfg.Source = "/etc/easywork.yaml"
	env.cfg.Editor = "vim"

	out, _, err := execute(t, env, "", "status", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	result := decodeJSON(t, out)
	checks := map[string]any{
		"data_dir":          env.store.Dir(),
		"config_file":       "/etc/easywork.yaml",
		"config_loaded":     true,
		"editor":            "vim",
		"today":             "2025-03-17",
		"today_logged":      false,
		"month":             "2025-03",
		"month_logged":      float64(0),
		"days_in_month":     float64(31),
		"autosave_interval": "1s",
	}
	for key, want := range checks {
		if result[key] != want {
			t.Errorf("%s = %v, want %v", key, result[key], want)
		}
	}
}

func TestStatusCommand_RejectsArgs(t *testing.T) {
	env := newTestEnv(t)
	if _, _, err := execute(t, env, "", "status", "extra"); err == nil {
		t.Fatal("expected error for extra argument")
	}
}
