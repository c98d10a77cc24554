package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
}

func TestConfigShowRedactsToken(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, "http://127.0.0.1:1", env.stateDir, "secret-token")

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "secret-token") {
		t.Fatalf("token leaked:\n%s", out)
	}
	requireContains(t, out, "<redacted>")
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, "not a url", env.stateDir, "")
	if _, _, err := runCLI(t, []string{"history"}, env.configPath, ""); err == nil {
		t.Fatal("expected invalid base_url to fail")
	}
}
