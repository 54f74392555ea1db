package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"suggest", "styles", "budget", "plan", "canvas", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "roomcraft") {
		t.Error("help output should mention roomcraft")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(os.Stderr, LogInfo)

	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/tmp/xdg-cache/roomcraft" {
		t.Errorf("cacheDir() = %q, want /tmp/xdg-cache/roomcraft", dir)
	}
}

func TestCacheDirHomeFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/tmp/home/.cache/roomcraft" {
		t.Errorf("cacheDir() = %q, want /tmp/home/.cache/roomcraft", dir)
	}
}
