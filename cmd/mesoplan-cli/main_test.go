package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meltforce/mesoplan/internal/models"
)

func profile(days ...string) string {
	train := map[string]bool{}
	for _, d := range days {
		train[d] = true
	}
	var b strings.Builder
	b.WriteString("profile:\n  experience_level: intermediate\n  fitness_goal: hypertrophy\nschedule:\n")
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		b.WriteString("  - {day: " + d + ", can_train: ")
		if train[d] {
			b.WriteString("true}\n")
		} else {
			b.WriteString("false}\n")
		}
	}
	return b.String()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = nil
	err := app.RunContext(context.Background(), append([]string{"mesoplan-cli"}, args...))
	return out.String(), err
}

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestPlanCommandStdout verifies offline planning of several profiles in
// argument order.
func TestPlanCommandStdout(t *testing.T) {
	dir := t.TempDir()
	a := writeProfile(t, dir, "a.yaml", profile("monday", "wednesday", "friday"))
	b := writeProfile(t, dir, "b.yaml", profile("monday", "tuesday", "wednesday", "thursday", "friday", "saturday"))

	out, err := run(t, "plan", "--weeks", "3", a, b)
	if err != nil {
		t.Fatal(err)
	}

	dec := json.NewDecoder(strings.NewReader(out))
	var splits []models.SplitType
	for dec.More() {
		var m models.Mesocycle
		if err := dec.Decode(&m); err != nil {
			t.Fatal(err)
		}
		if len(m.Weeks) != 3 {
			t.Errorf("weeks = %d, want 3", len(m.Weeks))
		}
		splits = append(splits, m.Split)
	}
	want := []models.SplitType{models.SplitUpperLowerFull, models.SplitPPL}
	if len(splits) != 2 || splits[0] != want[0] || splits[1] != want[1] {
		t.Errorf("splits = %v, want %v", splits, want)
	}
}

// TestPlanCommandFiles verifies xlsx output files are written per profile.
func TestPlanCommandFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeProfile(t, dir, "alice.yaml", profile("monday", "tuesday", "thursday", "friday"))
	out := filepath.Join(dir, "out")

	if _, err := run(t, "plan", "--format", "xlsx", "--out", out, a); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(out, "alice.xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output is not an xlsx archive")
	}
}

// TestPlanCommandErrors verifies argument and file validation.
func TestPlanCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeProfile(t, dir, "bad.yaml", "profile:\n  fitness_goal: strength\nschedule: []\n")

	tests := []struct {
		name string
		args []string
	}{
		{"no files", []string{"plan"}},
		{"xlsx to stdout", []string{"plan", "--format", "xlsx", bad}},
		{"unknown format", []string{"plan", "--format", "pdf", bad}},
		{"bad schedule", []string{"plan", bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestSplitsCommand verifies a single split lookup.
func TestSplitsCommand(t *testing.T) {
	out, err := run(t, "splits", "--days", "5", "--experience", "advanced")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Split models.SplitType `json:"split"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Split != models.SplitBodyPart {
		t.Errorf("split = %v, want BodyPart", got.Split)
	}
}

// TestRemoteCommandsNeedServer verifies server-backed commands fail fast without --server.
func TestRemoteCommandsNeedServer(t *testing.T) {
	t.Setenv("MESOPLAN_SERVER", "")
	for _, cmd := range []string{"feedback", "mcp"} {
		if _, err := run(t, cmd); err == nil {
			t.Errorf("%s: expected error", cmd)
		}
	}
}
