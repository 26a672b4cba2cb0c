package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_MissingOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "present")
	dir := t.TempDir()

	_, err := execRoot(t, []string{"run", "--dir", dir})
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected OPENAI_API_KEY error, got: %v", err)
	}

	assertNoArtifacts(t, dir)
}

func TestRun_MissingYouTubeKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "present")
	t.Setenv("YOUTUBE_API_KEY", "")
	dir := t.TempDir()

	_, err := execRoot(t, []string{"run", "--dir", dir})
	if err == nil || !strings.Contains(err.Error(), "YOUTUBE_API_KEY") {
		t.Fatalf("expected YOUTUBE_API_KEY error, got: %v", err)
	}

	assertNoArtifacts(t, dir)
}

func TestRun_DotEnvSuppliesCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	dir := t.TempDir()
	env := "OPENAI_API_KEY=from-dotenv\nYOUTUBE_API_KEY=from-dotenv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	// Credentials resolve, so the failure moves past validation into the
	// capture stage (no real API behind the key).
	_, err := execRoot(t, []string{"run", "--dir", dir})
	if err == nil {
		t.Fatal("expected run to fail without a reachable API")
	}
	if strings.Contains(err.Error(), "OPENAI_API_KEY") || strings.Contains(err.Error(), "YOUTUBE_API_KEY") {
		t.Fatalf("credential validation should have passed with .env values, got: %v", err)
	}
}

// assertNoArtifacts verifies a failed run left no report or captures behind.
func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, "weather_report.json")); !os.IsNotExist(err) {
		t.Error("failed run must not write a report")
	}
	if _, err := os.Stat(filepath.Join(dir, "captures")); !os.IsNotExist(err) {
		t.Error("failed run must not create captures")
	}
}
