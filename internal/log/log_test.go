package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInit_FileLogging(t *testing.T) {
	tmpDir := t.TempDir()

	if err := Init(Options{DebugDir: tmpDir, Stderr: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("test message", "key", "value")
	Close()

	today := time.Now().Format("2006-01-02")
	content, err := os.ReadFile(filepath.Join(tmpDir, today+".jsonl"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "test message") {
		t.Errorf("expected log file to contain 'test message', got: %s", content)
	}
}

func TestInit_NoDebugDir(t *testing.T) {
	var stderr bytes.Buffer
	if err := Init(Options{Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	if dailyWriter != nil {
		t.Error("no debug file should be opened without DebugDir")
	}

	Warn("warn message")
	if !strings.Contains(stderr.String(), "warn message") {
		t.Error("warn should appear on stderr")
	}
}

func TestInit_StderrLevels(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{DebugDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	output := stderr.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug should not appear on stderr in non-verbose mode")
	}
	if strings.Contains(output, "info message") {
		t.Error("info should not appear on stderr in non-verbose mode")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn should appear on stderr")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error should appear on stderr")
	}
}

func TestInit_Verbose(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{Verbose: true, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Debug("debug message")
	Info("info message")

	output := stderr.String()
	if !strings.Contains(output, "debug message") {
		t.Error("debug should appear on stderr in verbose mode")
	}
	if !strings.Contains(output, "info message") {
		t.Error("info should appear on stderr in verbose mode")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{JSONFormat: true, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	With("source", "stdin").Warn("decode failed")

	var rec map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &rec); err != nil {
		t.Fatalf("stderr is not a JSON record: %v\n%s", err, stderr.String())
	}
	if rec["msg"] != "decode failed" {
		t.Errorf("msg = %v, want %q", rec["msg"], "decode failed")
	}
	if rec["source"] != "stdin" {
		t.Errorf("source = %v, want %q", rec["source"], "stdin")
	}
}

func TestInit_RetentionCleanup(t *testing.T) {
	tmpDir := t.TempDir()
	oldFile := filepath.Join(tmpDir, time.Now().AddDate(0, 0, -20).Format("2006-01-02")+".jsonl")
	if err := os.WriteFile(oldFile, []byte("old log\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Init(Options{DebugDir: tmpDir, RetentionDays: 14, Stderr: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("expected old log file to be removed by retention cleanup")
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("captured", "n", 3)

	if !strings.Contains(buf.String(), "captured") || !strings.Contains(buf.String(), "n=3") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
