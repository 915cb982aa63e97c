package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type fakeMaterial struct{ name string }

func (m *fakeMaterial) String() string { return m.name }

func newJSON(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newJSON(t, "debug")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("lookup", "ref", "1:3")
			entry := decode(t, buf)
			if entry["level"] != tt.level || entry["msg"] != "lookup" || entry["ref"] != "1:3" {
				t.Errorf("entry = %v", entry)
			}
		})
	}
}

func TestLogger_LevelFilteringAndSetLevel(t *testing.T) {
	l, buf := newJSON(t, "warn")

	l.Debug("debug")
	l.Info("info")
	if buf.Len() > 0 {
		t.Fatalf("debug/info logged at warn level: %s", buf.String())
	}
	l.Warn("warn")
	if buf.Len() == 0 {
		t.Fatal("warn not logged")
	}

	buf.Reset()
	SetLevel("debug")
	l.Debug("now visible")
	if buf.Len() == 0 {
		t.Error("debug not logged after SetLevel(debug)")
	}
	if GetLevel() != "debug" {
		t.Errorf("GetLevel() = %q, want debug", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{"debug", "debug", true},
		{"DEBUG", "debug", true},
		{"info", "info", true},
		{"warn", "warn", true},
		{"warning", "warn", true},
		{"ERROR", "error", true},
		{"verbose", "info", false},
		{"", "info", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			if got := GetLevel(); got != tt.want {
				t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", tt.input, got, tt.want)
			}
			if ValidLevel(tt.input) != tt.valid {
				t.Errorf("ValidLevel(%q) = %v", tt.input, !tt.valid)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.With("component", "palette").Info("grew")
	if entry := decode(t, buf); entry["component"] != "palette" {
		t.Errorf("component = %v, want palette", entry["component"])
	}
}

func TestLogger_RendersStringers(t *testing.T) {
	l, buf := newJSON(t, "info")
	var missing *fakeMaterial
	l.Info("resolved",
		"material", &fakeMaterial{name: "STONE:GRANITE"},
		"none", missing,
		"err", errors.New("boom"),
		"count", 3)

	entry := decode(t, buf)
	if entry["material"] != "STONE:GRANITE" {
		t.Errorf("material = %v, want STONE:GRANITE", entry["material"])
	}
	if entry["none"] != "<nil>" {
		t.Errorf("none = %v, want <nil>", entry["none"])
	}
	if entry["err"] != "boom" {
		t.Errorf("err = %v, want boom", entry["err"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("started", "component", "server")
	out := buf.String()
	if !strings.Contains(out, "msg=started") || !strings.Contains(out, "component=server") {
		t.Errorf("text output = %q", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	if DefaultConfig().Format != "json" || DefaultConfig().Output == nil {
		t.Errorf("DefaultConfig() = %+v", DefaultConfig())
	}

	prev := Default()
	defer SetDefault(prev)

	l, buf := newJSON(t, "debug")
	SetDefault(l)
	if Default() != l {
		t.Fatal("Default() did not return the logger passed to SetDefault")
	}
	Default().Debug("message")
	if buf.Len() == 0 {
		t.Error("Default().Debug() produced no output")
	}
}

func TestNew_Options(t *testing.T) {
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("New(format xml) error = nil")
	}

	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Output: &buf, Attrs: []any{"service", "diorite-server"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("ready")
	if entry := decode(t, &buf); entry["service"] != "diorite-server" {
		t.Errorf("service = %v, want diorite-server", entry["service"])
	}
}

func TestBadgerLogger(t *testing.T) {
	l, buf := newJSON(t, "debug")
	b := NewBadgerLogger(l)

	b.Warningf("value log %d rewritten\n", 7)
	entry := decode(t, buf)
	if entry["msg"] != "value log 7 rewritten" || entry["level"] != "WARN" || entry["component"] != "badger" {
		t.Errorf("entry = %v", entry)
	}

	buf.Reset()
	b.Debugf("compaction")
	if decode(t, buf)["level"] != "DEBUG" {
		t.Error("Debugf did not log at debug level")
	}

	if NewBadgerLogger(nil) == nil {
		t.Error("NewBadgerLogger(nil) = nil")
	}
}
