package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		envLevel string
		want     LogLevel
	}{
		{"Debug level", "DEBUG", DEBUG},
		{"Info level", "INFO", INFO},
		{"Warn level", "WARN", WARN},
		{"Error level", "ERROR", ERROR},
		{"Empty defaults to Info", "", INFO},
		{"Invalid defaults to Info", "INVALID", INFO},
		{"Case insensitive", "debug", DEBUG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("LOG_LEVEL", tt.envLevel)
			defer os.Unsetenv("LOG_LEVEL")

			if got := getLogLevel(); got != tt.want {
				t.Errorf("getLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func captureOutput(t *testing.T, level string, f func()) string {
	t.Helper()

	os.Setenv("LOG_LEVEL", level)
	defer os.Unsetenv("LOG_LEVEL")

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	f()
	return buf.String()
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		setLevel  string
		logFunc   func(string, string, ...interface{})
		message   string
		shouldLog bool
		wantLevel string
	}{
		{"Debug logs when Debug", "DEBUG", Debug, "debug message", true, "debug"},
		{"Debug doesn't log when Info", "INFO", Debug, "debug message", false, ""},
		{"Info logs when Info", "INFO", Info, "info message", true, "info"},
		{"Warn logs when Warn", "WARN", Warn, "warn message", true, "warn"},
		{"Info doesn't log when Error", "ERROR", Info, "info message", false, ""},
		{"Error always logs", "ERROR", Error, "error message", true, "error"},
		{"Error logs when Debug", "DEBUG", Error, "error message", true, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := strings.TrimSpace(captureOutput(t, tt.setLevel, func() {
				tt.logFunc("TEST", tt.message)
			}))

			hasOutput := output != ""
			if hasOutput != tt.shouldLog {
				t.Fatalf("Expected log output: %v, got output: %q", tt.shouldLog, output)
			}
			if !tt.shouldLog {
				return
			}

			var entry map[string]interface{}
			if err := json.Unmarshal([]byte(output), &entry); err != nil {
				t.Fatalf("Failed to decode log line %q: %v", output, err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", entry["level"], tt.wantLevel)
			}
			if entry["namespace"] != "TEST" {
				t.Errorf("namespace = %v, want TEST", entry["namespace"])
			}
			if entry["message"] != tt.message {
				t.Errorf("message = %v, want %v", entry["message"], tt.message)
			}
		})
	}
}

func TestFormattedMessage(t *testing.T) {
	output := captureOutput(t, "INFO", func() {
		Info(APP, "Count: %d", 42)
	})

	if !strings.Contains(output, `"message":"Count: 42"`) {
		t.Errorf("Info() output = %q, want formatted message", output)
	}
}

func TestFatal(t *testing.T) {
	output := captureOutput(t, "ERROR", func() {
		Fatal("TEST", "fatal error")
	})

	if !strings.Contains(output, `"level":"fatal"`) || !strings.Contains(output, "fatal error") {
		t.Errorf("Fatal() output = %q, want fatal level entry", output)
	}
}

func TestFieldsRespectsLevel(t *testing.T) {
	output := captureOutput(t, "WARN", func() {
		l := Fields(HANDLER)
		l.Info().Str("path", "/chat").Msg("hidden")
		l.Warn().Str("path", "/upload").Msg("shown")
	})

	if strings.Contains(output, "hidden") {
		t.Errorf("Fields() logged below configured level: %q", output)
	}
	if !strings.Contains(output, `"path":"/upload"`) || !strings.Contains(output, `"namespace":"HANDLER"`) {
		t.Errorf("Fields() output = %q, want structured warn entry", output)
	}
}
