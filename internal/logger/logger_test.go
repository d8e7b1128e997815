package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/oggyb/muzz-discovery/internal/config"
)

// initBuffer points the global logger at a buffer for the duration of the test.
func initBuffer(t *testing.T, c Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	c.Output = &buf
	Init(&c)
	t.Cleanup(func() { Init(&Config{Level: "info", Format: FormatText}) })
	return &buf
}

func TestLogger_TextFormat(t *testing.T) {
	buf := initBuffer(t, Config{Level: "debug", Format: FormatText, Component: "discovery"})
	Info("queue refilled", "viewer", 42)

	out := buf.String()
	if !strings.Contains(out, "queue refilled") {
		t.Errorf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=discovery") {
		t.Errorf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "viewer=42") {
		t.Errorf("expected structured field, got: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	buf := initBuffer(t, Config{Level: "info", Format: FormatJSON, Component: "swipe"})
	Info("match created", "user_a", 1, "user_b", 2)

	out := buf.String()
	for _, want := range []string{`"msg":"match created"`, `"component":"swipe"`, `"user_a":1`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in JSON, got: %s", want, out)
		}
	}
}

func TestLogger_JSONDurationsInMillis(t *testing.T) {
	buf := initBuffer(t, Config{Level: "info", Format: FormatJSON})
	Info("rpc completed", "duration", 1500*time.Microsecond)

	if out := buf.String(); !strings.Contains(out, `"duration_ms":1.5`) {
		t.Errorf("expected duration in ms, got: %s", out)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	buf := initBuffer(t, Config{Level: "error", Format: FormatText})
	Info("should not appear")
	Error("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("info log should not appear, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("error log should appear, got: %s", out)
	}
}

func TestLogger_InitFromConfig(t *testing.T) {
	c := &config.Config{}
	c.Log.Level = "debug"
	c.Log.Format = "JSON"
	c.Log.Component = "cfg_test"
	InitFromConfig(c)
	t.Cleanup(func() { Init(&Config{Level: "info", Format: FormatText}) })

	mu.RLock()
	got := cfg
	mu.RUnlock()
	if got.Format != FormatJSON || got.Component != "cfg_test" || got.Level != "debug" {
		t.Errorf("unexpected config: %+v", got)
	}
}

func TestLogger_ForRequest(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "info", Format: FormatText, Output: &buf})

	ctx, l := ForRequest(context.Background(), base, "abc", "/muzz.swipe.SwipeService/Swipe")
	l.Info("rpc completed")
	FromContext(ctx).Info("scoped")

	out := buf.String()
	if strings.Count(out, "request_id=abc") != 2 {
		t.Errorf("expected request id on both lines, got: %s", out)
	}
	if !strings.Contains(out, "method=/muzz.swipe.SwipeService/Swipe") {
		t.Errorf("expected method field, got: %s", out)
	}
}

func TestLogger_FromContextFallsBack(t *testing.T) {
	buf := initBuffer(t, Config{Level: "info", Format: FormatText})
	FromContext(context.Background()).Info("global")

	if !strings.Contains(buf.String(), "global") {
		t.Errorf("expected fallback to global logger, got: %s", buf.String())
	}
}
