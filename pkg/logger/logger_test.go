package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("server failed", "port", "8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q", buf.String())
	}
	if entry["level"] != "CRITICAL" {
		t.Fatalf("expected CRITICAL level, got %v", entry["level"])
	}
	if entry["port"] != "8080" {
		t.Fatalf("expected port attr, got %v", entry["port"])
	}
}

func TestBusinessAndInternalErrors(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("income.create: account not found", errors.New("account not found"))
	log.InternalError("income.create: store failed", errors.New("conn reset"))
	log.InternalError("income.create: ignored", nil)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "level=ERROR") {
		t.Fatalf("expected WARN and ERROR lines, got %q", out)
	}
	if strings.Contains(out, "ignored") {
		t.Fatalf("expected nil error to be skipped, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{value: "", env: "development", want: slog.LevelDebug},
		{value: "", env: "production", want: slog.LevelInfo},
		{value: "WARN", env: "production", want: slog.LevelWarn},
		{value: "fatal", env: "production", want: LevelCritical},
		{value: "bogus", env: "production", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.value, tt.env); got != tt.want {
			t.Fatalf("parseLevel(%q, %q): expected %v, got %v", tt.value, tt.env, tt.want, got)
		}
	}
}

func TestContextLogger(t *testing.T) {
	fallback := NewNop()
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback logger")
	}

	var buf bytes.Buffer
	scoped := New(&buf, slog.LevelInfo, "text").With("request_id", "abc")
	ctx := IntoContext(context.Background(), scoped)
	FromContext(ctx, fallback).Info("hello")

	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Fatalf("expected scoped attrs, got %q", buf.String())
	}
}

func TestWithComponentAndErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json").WithComponent(ComponentFinance)

	log.InternalError("income.create: store failed", errors.New("conn reset"), FieldUserID, "u1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q", buf.String())
	}
	if entry[FieldComponent] != ComponentFinance {
		t.Fatalf("expected component attr, got %v", entry[FieldComponent])
	}
	if entry[FieldError] != "conn reset" || entry[FieldUserID] != "u1" {
		t.Fatalf("unexpected attrs %v", entry)
	}
	if entry["level"] != "ERROR" {
		t.Fatalf("expected ERROR, got %v", entry["level"])
	}
}
