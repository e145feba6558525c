package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestGenerateRejectsUnknownModel(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "episode.mkv")
	if err := os.WriteFile(mediaPath, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nwork_dir = \""+dir+"\"\ncache_dir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, []string{"--config", configPath, "generate", mediaPath, "--model", "enormous"})
	if err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Fatalf("err = %v, want unknown model", err)
	}
}

func TestWatchRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nwork_dir = \""+dir+"\"\ncache_dir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, []string{"--config", configPath, "watch"})
	if err == nil || !strings.Contains(err.Error(), "watch_dir") {
		t.Fatalf("err = %v, want watch_dir hint", err)
	}
}
