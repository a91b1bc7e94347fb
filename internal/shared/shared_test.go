package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Errorf("GenerateID() returned the same id twice: %s", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateID() = %q is not a uuid: %v", a, err)
	}
}

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("analyzed", "revenge", 3)

		out := buf.String()
		if !strings.Contains(out, "analyzed") || !strings.Contains(out, "component=test") {
			t.Errorf("unexpected log output: %q", out)
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("info should be filtered at warn level, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "lvx.log")
		logger, f, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("first")
		f.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "first") {
			t.Errorf("log file missing entry: %q", data)
		}
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]any{"title": "Beta(鬼) & <Remix>"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := "{\n  \"title\": \"Beta(鬼) & <Remix>\"\n}\n"
	if buf.String() != want {
		t.Errorf("WriteJSON() = %q, want %q", buf.String(), want)
	}
}

func TestBrowserCommand(t *testing.T) {
	tc := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "http://127.0.0.1:3000")
			if err != nil {
				t.Fatalf("browserCommand() error = %v", err)
			}
			if cmd.Args[0] != tt.want {
				t.Errorf("browserCommand() = %v, want %s", cmd.Args, tt.want)
			}
			if cmd.Args[len(cmd.Args)-1] != "http://127.0.0.1:3000" {
				t.Errorf("url should be the last argument: %v", cmd.Args)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		if _, err := browserCommand("plan9", "http://x"); !errors.Is(err, ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
	})
}

func TestDatabase(t *testing.T) {
	t.Run("file database creates parent dirs", func(t *testing.T) {
		cfg := DatabaseConfig{Path: filepath.Join(t.TempDir(), "nested", "lvx.db"), MaxOpenConns: 2, MaxIdleConns: 1}
		db, err := OpenDatabase(cfg)
		if err != nil {
			t.Fatalf("OpenDatabase() error = %v", err)
		}
		defer db.Close()

		if got := db.Stats().MaxOpenConnections; got != 2 {
			t.Errorf("MaxOpenConnections = %d, want 2", got)
		}
		if _, err := os.Stat(cfg.Path); err != nil {
			t.Errorf("database file should exist: %v", err)
		}
	})

	t.Run("memory database uses one connection", func(t *testing.T) {
		db, err := OpenDatabase(DatabaseConfig{Path: MemoryDatabase, MaxOpenConns: 10})
		if err != nil {
			t.Fatalf("OpenDatabase() error = %v", err)
		}
		defer db.Close()

		if got := db.Stats().MaxOpenConnections; got != 1 {
			t.Errorf("MaxOpenConnections = %d, want 1", got)
		}
	})
}
