package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" INFO ":  zerolog.InfoLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"trace":   zerolog.TraceLevel,
		"warn":    zerolog.WarnLevel,
		"":        zerolog.WarnLevel,
		"verbose": zerolog.WarnLevel,
	}
	for input, want := range tests {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestInitWritesModuleField(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	buf := &bytes.Buffer{}
	Init(Options{Level: "debug", Stderr: buf})

	NixInfo.Debug().Msg("collecting snapshot")

	out := buf.String()
	if !strings.Contains(out, "collecting snapshot") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "nixinfo") {
		t.Fatalf("expected module field in output, got %q", out)
	}
}

func TestInitRespectsLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	buf := &bytes.Buffer{}
	Init(Options{Level: "error", Stderr: buf})

	CLI.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info message should be filtered at error level, got %q", buf.String())
	}
}

func TestInitReplacesLogFile(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		Init(Options{Level: "off", Stderr: &bytes.Buffer{}})
	})

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	Init(Options{Level: "info", File: first})
	opened := rotator
	if opened == nil {
		t.Fatal("expected a rotating writer for the log file")
	}
	Health.Info().Msg("first run")

	Init(Options{Level: "info", File: second})
	if rotator == opened {
		t.Fatal("expected a new rotating writer")
	}
	Health.Info().Msg("second run")

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first log: %v", err)
	}
	if strings.Contains(string(data), "second run") {
		t.Fatalf("second run leaked into first log: %s", data)
	}

	Init(Options{Level: "info", Stderr: &bytes.Buffer{}})
	if rotator != nil {
		t.Fatal("console logging should close the rotating writer")
	}
}
