package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDotEnvWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=info\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	changes := make(chan map[string]string, 4)
	w, err := NewDotEnvWatcher(path, func(values map[string]string) {
		changes <- values
	}, nil)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.env"), []byte("LOG_LEVEL=error\n"), 0o600); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case values := <-changes:
		if values["LOG_LEVEL"] != "debug" {
			t.Errorf("expected debug, got %q", values["LOG_LEVEL"])
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload after writing the file")
	}
}

func TestNewDotEnvWatcher_MissingDirectory(t *testing.T) {
	_, err := NewDotEnvWatcher(filepath.Join(t.TempDir(), "missing", ".env"), func(map[string]string) {}, nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
