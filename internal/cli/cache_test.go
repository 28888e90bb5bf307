package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "gridpath")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, "gridpath") {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("gridpath", "config.toml")) {
		t.Errorf("configPath() = %q", path)
	}
	if !strings.HasPrefix(path, xdg) {
		t.Errorf("configPath() = %q, want under %q", path, xdg)
	}
}

func TestCacheClearAndPath(t *testing.T) {
	env := newTestEnv(t)
	in := env.generate(t, 3)

	if _, err := env.run(t, "search", in); err != nil {
		t.Fatalf("search: %v", err)
	}
	dir := filepath.Join(env.cacheHome, "gridpath")
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("search did not populate the file cache")
	}

	out, err := env.run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}

	if _, err := env.run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}
