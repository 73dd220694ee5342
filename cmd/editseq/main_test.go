package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

const editLog = `{"username":"alice","type":"text","text":"abcdefg"}
{"username":"alice","type":"operation","operation":[{"move":2},{"insert":"FOO"},{"move":1},{"delete":2}]}
{"username":"bob","type":"operation","operation":[{"move":1},{"insert":"BAR"}]}
`

func TestParseFlags(t *testing.T) {
	tests := []struct {
		description string
		args        []string
		expected    Flags
	}{
		{description: "defaults", args: nil, expected: Flags{}},
		{description: "all flags",
			args:     []string{"-file", "edits.jsonl", "-text", "abc", "-debug", "-print-steps"},
			expected: Flags{File: "edits.jsonl", Text: "abc", Debug: true, PrintSteps: true, TextSet: true}},
		{description: "empty text",
			args:     []string{"-text", ""},
			expected: Flags{TextSet: true}},
	}

	for _, tc := range tests {
		got, err := parseFlags(tc.args)
		if err != nil {
			t.Errorf("(%s) error: %v\n", tc.description, err)
			continue
		}

		if !cmp.Equal(got, tc.expected) {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	if _, err := parseFlags([]string{"-server", "localhost"}); err == nil {
		t.Errorf("expected an error for an unknown flag")
	}
}

func TestSetupLogger(t *testing.T) {
	var logBuf, debugBuf bytes.Buffer

	l := logrus.New()
	setupLogger(l, &logBuf, &debugBuf, true)

	l.Debug("verbose")
	l.Warn("careful")

	if !strings.Contains(debugBuf.String(), "verbose") || strings.Contains(debugBuf.String(), "careful") {
		t.Errorf("unexpected debug log: %q\n", debugBuf.String())
	}
	if !strings.Contains(logBuf.String(), "careful") || strings.Contains(logBuf.String(), "verbose") {
		t.Errorf("unexpected log: %q\n", logBuf.String())
	}
}

// quietRun disables colors and silences the package logger until the test ends.
func quietRun(t *testing.T) {
	t.Helper()

	noColor, out := color.NoColor, logger.Out
	t.Cleanup(func() {
		color.NoColor = noColor
		logger.SetOutput(out)
	})

	color.NoColor = true
	logger.SetOutput(&bytes.Buffer{})
}

func TestRun(t *testing.T) {
	quietRun(t)

	tests := []struct {
		description string
		flags       Flags
		expected    string
	}{
		// Every step of the second operation is shifted by -3, so BAR is clamped to the start.
		{description: "text from the log", flags: Flags{}, expected: "BARabFcdefg\n"},
		{description: "text from the flag", flags: Flags{Text: "0123456", TextSet: true}, expected: "BAR01F23456\n"},
		{description: "print steps", flags: Flags{Text: "x", TextSet: true, PrintSteps: true},
			expected: "  0 {move:2}\n  1 {insert:\"FOO\"}\n  2 {move:1}\n  3 {delete:2}\n  4 {move:-2}\n  5 {move:-3 insert:\"BAR\"}\nBARxFO\n"},
	}

	for _, tc := range tests {
		var out bytes.Buffer

		err := run(tc.flags, strings.NewReader(editLog), &out)
		if err != nil {
			t.Errorf("(%s) error: %v\n", tc.description, err)
			continue
		}

		if got := out.String(); got != tc.expected {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
	}
}

func TestRun_NoOperation(t *testing.T) {
	quietRun(t)
	var out bytes.Buffer

	err := run(Flags{}, strings.NewReader(`{"type":"text","text":"abc"}`), &out)
	if err == nil {
		t.Errorf("expected an error")
	}
}

func TestEnsureLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", ".editseq")

	if err := ensureLogDir(dir); err != nil {
		t.Fatalf("error: %v\n", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected %s to be a directory, err: %v\n", dir, err)
	}

	// An existing directory is fine.
	if err := ensureLogDir(dir); err != nil {
		t.Errorf("error: %v\n", err)
	}

	file := filepath.Join(t.TempDir(), "editseq")
	if err := os.WriteFile(file, nil, 0600); err != nil {
		t.Fatalf("error: %v\n", err)
	}
	if err := ensureLogDir(file); err == nil {
		t.Errorf("expected an error for a regular file")
	}
}
