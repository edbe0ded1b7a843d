package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level     string
		expected  zapcore.Level
		expectErr bool
	}{
		{level: "", expected: zapcore.InfoLevel},
		{level: "debug", expected: zapcore.DebugLevel},
		{level: "warning", expected: zapcore.WarnLevel},
		{level: "error", expected: zapcore.ErrorLevel},
		{level: "verbose", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := ParseLevel(tt.level)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseLevel(%q) expected error", tt.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) error = %v", tt.level, err)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.level, level, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		override  string
		expectErr bool
		enabled   zapcore.Level
	}{
		{name: "defaults", cfg: Config{}, enabled: zapcore.InfoLevel},
		{name: "console debug", cfg: Config{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel},
		{name: "override wins", cfg: Config{Level: "error"}, override: "debug", enabled: zapcore.DebugLevel},
		{name: "bad format", cfg: Config{Format: "xml"}, expectErr: true},
		{name: "bad override", cfg: Config{}, override: "loud", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.expectErr {
				if err == nil {
					t.Errorf("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("expected level %v to be enabled", tt.enabled)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "forecast.log")
	logger, err := New(Config{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message: %s", data)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	logger := zap.NewExample()
	if OrNop(logger) != logger {
		t.Error("OrNop() replaced a configured logger")
	}
}
