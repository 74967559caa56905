package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger

	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger

	return buf.String()
}

// captureLogOutputWithInit captures output by reinitializing the logger
// to write to a buffer. This tests the actual InitLogger ReplaceAttr logic.
func captureLogOutputWithInit(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerWriter(&buf, level, format)

	f()

	InitLogger(LevelInfo, FormatJSON)
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{
			name:   "Debug level JSON format",
			level:  LevelDebug,
			format: FormatJSON,
		},
		{
			name:   "Info level JSON format",
			level:  LevelInfo,
			format: FormatJSON,
		},
		{
			name:   "Warn level JSON format",
			level:  LevelWarn,
			format: FormatJSON,
		},
		{
			name:   "Error level JSON format",
			level:  LevelError,
			format: FormatJSON,
		},
		{
			name:   "Info level Text format",
			level:  LevelInfo,
			format: FormatText,
		},
		{
			name:   "Default level (invalid value)",
			level:  Level(999),
			format: FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if defaultLogger == nil {
				t.Error("Expected logger to be initialized, got nil")
			}
		})
	}
	InitLogger(LevelInfo, FormatJSON)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"Text", FormatText, false},
		{"yaml", FormatJSON, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitLoggerLevelFiltering(t *testing.T) {
	output := captureLogOutputWithInit(LevelWarn, FormatJSON, func() {
		DebugContext(context.Background(), "hidden debug")
		InfoContext(context.Background(), "hidden info")
		WarnContext(context.Background(), "visible warn")
	})

	if strings.Contains(output, "hidden") {
		t.Errorf("Expected debug/info to be filtered, got %q", output)
	}
	if !strings.Contains(output, "visible warn") {
		t.Errorf("Expected warn message in output, got %q", output)
	}
}

func TestInitLoggerTimestampFormat(t *testing.T) {
	output := captureLogOutputWithInit(LevelInfo, FormatJSON, func() {
		InfoContext(context.Background(), "stamped")
	})

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, output)
	}
	ts, ok := record["time"].(string)
	if !ok {
		t.Fatalf("time field missing in %v", record)
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time %q is not RFC3339: %v", ts, err)
	}
}

func TestInitLoggerTextFormat(t *testing.T) {
	output := captureLogOutputWithInit(LevelInfo, FormatText, func() {
		InfoContext(context.Background(), "text message", "key", "value")
	})

	if !strings.Contains(output, "key=value") {
		t.Errorf("Expected text handler output, got %q", output)
	}
}

func TestWithInput(t *testing.T) {
	ctx := WithInput(context.Background(), "Genesis 1:1")
	if got := GetInput(ctx); got != "Genesis 1:1" {
		t.Errorf("GetInput() = %q, want %q", got, "Genesis 1:1")
	}
}

func TestGetInput(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{
			name:     "Context with input",
			ctx:      context.WithValue(context.Background(), InputKey, "refs.xml"),
			expected: "refs.xml",
		},
		{
			name:     "Context without input",
			ctx:      context.Background(),
			expected: "",
		},
		{
			name:     "Context with wrong type value",
			ctx:      context.WithValue(context.Background(), InputKey, 12345),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetInput(tt.ctx); got != tt.expected {
				t.Errorf("GetInput() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestContextLoggingFunctions(t *testing.T) {
	ctx := WithInput(context.Background(), "refs.xml")

	tests := []struct {
		name string
		fn   func()
	}{
		{"DebugContext", func() { DebugContext(ctx, "debug message") }},
		{"InfoContext", func() { InfoContext(ctx, "info message") }},
		{"WarnContext", func() { WarnContext(ctx, "warning message") }},
		{"ErrorContext", func() { ErrorContext(ctx, "error message") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			if !strings.Contains(output, "refs.xml") {
				t.Errorf("Expected output to contain input, got %q", output)
			}
		})
	}
}

func TestReferenceParsed(t *testing.T) {
	output := captureLogOutput(func() {
		ReferenceParsed("gen 1:1", "Genesis 1:1", "culture", "en")
	})

	for _, want := range []string{"reference_parsed", "gen 1:1", "Genesis 1:1", "culture"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}

func TestReferenceRejected(t *testing.T) {
	output := captureLogOutput(func() {
		ReferenceRejected("ABC 1", errors.New("unknown book name"))
	})

	for _, want := range []string{"reference_rejected", "ABC 1", "unknown book name", "WARN"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}

func TestLocaleLoaded(t *testing.T) {
	output := captureLogOutput(func() {
		LocaleLoaded("es", 66)
	})

	if !strings.Contains(output, "locale_loaded") || !strings.Contains(output, `"books":66`) {
		t.Errorf("unexpected output %q", output)
	}
}

func TestDocumentIndexed(t *testing.T) {
	output := captureLogOutput(func() {
		DocumentIndexed("af1349b9", "notes.xml", 12, "rejected", 1)
	})

	for _, want := range []string{"document_indexed", "af1349b9", "notes.xml", `"citations":12`, `"rejected":1`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}
