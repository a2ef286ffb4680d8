package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func watchFile(t *testing.T, path string) <-chan Config {
	t.Helper()

	changes := make(chan Config, 4)
	w, err := Watch(path, func(c Config) { changes <- c }, zerolog.Nop())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return changes
}

func waitChange(t *testing.T, changes <-chan Config) Config {
	t.Helper()

	select {
	case cfg := <-changes:
		return cfg
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within 3s")
		return Config{}
	}
}

func expectQuiet(t *testing.T, changes <-chan Config, d time.Duration) {
	t.Helper()

	select {
	case cfg := <-changes:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(d):
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\nlevel = \"info\"\n")
	changes := watchFile(t, path)

	writeFile(t, path, "[log]\nlevel = \"debug\"\n")

	if cfg := waitChange(t, changes); cfg.Log.Level != "debug" {
		t.Fatalf("reloaded Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestWatchReloadsOnCreate(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	changes := watchFile(t, path)

	writeFile(t, path, "[editor]\ncommand = \"vim\"\n")

	if cfg := waitChange(t, changes); cfg.Editor.Command != "vim" {
		t.Fatalf("reloaded Editor.Command = %q, want %q", cfg.Editor.Command, "vim")
	}
}

func TestWatchKeepsPreviousOnBadReload(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\nlevel = \"info\"\n")
	changes := watchFile(t, path)

	writeFile(t, path, "log = [broken\n")
	expectQuiet(t, changes, 500*time.Millisecond)

	writeFile(t, path, "[log]\nlevel = \"warn\"\n")
	if cfg := waitChange(t, changes); cfg.Log.Level != "warn" {
		t.Fatalf("reloaded Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[log]\nlevel = \"info\"\n")
	changes := watchFile(t, path)

	writeFile(t, filepath.Join(dir, "other.toml"), "[log]\nlevel = \"trace\"\n")
	expectQuiet(t, changes, 500*time.Millisecond)
}
