package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func newJSON(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Service() != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.Service())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := newJSON(t, "invalid-level")
	l.Info("hello")
	if buf.Len() == 0 {
		t.Fatal("expected info to be written with fallback level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	if l := NewFromEnv("env-svc"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
	l.Warn("shown")
	if m := decodeLine(t, buf); m["message"] != "shown" || m["level"] != "warn" {
		t.Errorf("unexpected line %v", m)
	}
}

func TestWithComponentAndFields(t *testing.T) {
	l, buf := newJSON(t, "debug")
	l.WithComponent("rx").Debug("publisher created", Fields(FieldKind, "subject", FieldID, 7))

	m := decodeLine(t, buf)
	if m[FieldComponent] != "rx" {
		t.Errorf("expected component rx, got %v", m[FieldComponent])
	}
	if m[FieldKind] != "subject" {
		t.Errorf("expected kind subject, got %v", m[FieldKind])
	}
	if m[FieldID] != float64(7) {
		t.Errorf("expected id 7, got %v", m[FieldID])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service test-svc, got %v", m["service"])
	}
}

func TestWithError(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, buf); m[FieldError] != "boom" {
		t.Errorf("expected error field, got %v", m[FieldError])
	}
}

func TestWithFields(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.WithFields(map[string]interface{}{"key": "value"}).Info("x")
	if m := decodeLine(t, buf); m["key"] != "value" {
		t.Errorf("expected key field, got %v", m["key"])
	}
}

func TestEnabled(t *testing.T) {
	l, _ := newJSON(t, "warn")
	if l.Enabled(-1) {
		t.Error("trace should be disabled at warn")
	}
	if !l.Enabled(3) {
		t.Error("error should be enabled at warn")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "svc", &buf)
	l.Info("ready")
	if !strings.Contains(buf.String(), "[INF]") || !strings.Contains(buf.String(), "ready") {
		t.Errorf("unexpected console output %q", buf.String())
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	Init(Config{Level: "error", Format: "json"})
	if GetGlobalLogger() == prev {
		t.Fatal("expected Init to replace the global logger")
	}

	custom := NewDefault("custom")
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	// should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)
	defer Unregister("my-component")

	if Get("my-component") != l {
		t.Error("expected Get to return the registered logger")
	}
	if Get("unregistered-component") == nil {
		t.Fatal("expected a derived logger for unregistered component")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "save", "id", 42}, map[string]interface{}{"op": "save", "id": 42}},
		{"odd number of args", []interface{}{"op", "save", "trailing"}, map[string]interface{}{"op": "save"}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Fatalf("expected %d fields, got %v", len(tc.expected), result)
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestMergeHelpers(t *testing.T) {
	fields := MergeWithError(map[string]interface{}{"op": "save"}, errors.New("test error"))
	if fields[FieldError] != "test error" || fields["op"] != "save" {
		t.Errorf("unexpected fields %v", fields)
	}
	if got := MergeWithError(nil, nil); len(got) != 0 {
		t.Errorf("nil error should add nothing, got %v", got)
	}
	if got := MergeWithDuration(nil, 200*time.Millisecond); got[FieldDuration] != int64(200) {
		t.Errorf("expected duration 200, got %v", got[FieldDuration])
	}
}
