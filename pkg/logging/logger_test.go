package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"hinditts/pkg/config"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "server.log")
	requestLog := filepath.Join(tempDir, "nested", "requests.log")

	// A previous run's log must be rotated
	if err := os.WriteFile(serverLog, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.LogConfig{
		Server: config.LogSettings{
			Path:  serverLog,
			Level: "DEBUG",
		},
		Requests: config.LogSettings{
			Path:  requestLog,
			Level: "INFO",
		},
	}

	prev := slog.Default()
	defer slog.SetDefault(prev)

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Debug("server debug line")
	RequestLogger.Info("request line", "path", "/api/health")
	cleanup()

	old, err := os.ReadFile(serverLog + ".old")
	if err != nil || string(old) != "previous run\n" {
		t.Errorf("rotation: content=%q err=%v", old, err)
	}

	server, _ := os.ReadFile(serverLog)
	if !strings.Contains(string(server), "server debug line") {
		t.Errorf("server log missing debug line: %q", server)
	}
	if strings.Contains(string(server), "request line") {
		t.Error("request line leaked into server log")
	}

	requests, _ := os.ReadFile(requestLog)
	if !strings.Contains(string(requests), "path=/api/health") {
		t.Errorf("request log missing entry: %q", requests)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupHandler_ConsoleCappedAtInfo(t *testing.T) {
	var console bytes.Buffer
	h, f, err := setupHandler(filepath.Join(t.TempDir(), "s.log"), "DEBUG", &console)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	logger := slog.New(h)
	logger.Debug("hidden from console")
	logger.Info("shown on console")

	if strings.Contains(console.String(), "hidden from console") {
		t.Error("debug line reached the console")
	}
	if !strings.Contains(console.String(), "shown on console") {
		t.Error("info line missing from console")
	}
}

func TestTraceHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&traceHandler{Handler: slog.NewTextHandler(&buf, nil)})

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.With("component", "api").InfoContext(ctx, "with span")
	logger.InfoContext(context.Background(), "without span")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "trace_id=0102030405060708090a0b0c0d0e0f10") ||
		!strings.Contains(lines[0], "span_id=0102030405060708") {
		t.Errorf("span ids missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "trace_id") {
		t.Errorf("unexpected trace id: %q", lines[1])
	}
}
