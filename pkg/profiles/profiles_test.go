package profiles

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadProfilesYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  - id: prod
    name: Production stashbox
    base_url: https://files.stashbox.example/
    endpoint_path: /objects/
    timeout_seconds: 30
    default: true
    headers:
      User-Agent: stashctl
      Empty: "  "
  - id: staging
    name: Staging stashbox
    base_url: https://staging.stashbox.example
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	reg, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 profiles, got %d", got)
	}

	p, ok := reg.ByID("prod")
	if !ok {
		t.Fatalf("expected profile id prod to be loaded")
	}
	if p.BaseURL != "https://files.stashbox.example" {
		t.Fatalf("unexpected base_url: %s", p.BaseURL)
	}
	if p.EndpointPath != "objects" {
		t.Fatalf("unexpected endpoint_path: %s", p.EndpointPath)
	}
	if p.Timeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", p.Timeout())
	}
	if p.Headers["User-Agent"] != "stashctl" {
		t.Fatalf("unexpected headers: %#v", p.Headers)
	}
	if _, found := p.Headers["Empty"]; found {
		t.Fatalf("blank header value should be dropped: %#v", p.Headers)
	}

	staging, ok := reg.ByID("staging")
	if !ok {
		t.Fatalf("expected profile id staging to be loaded")
	}
	if staging.Timeout() != 0 {
		t.Fatalf("unset timeout should report zero, got %v", staging.Timeout())
	}
}

func TestLoadProfilesJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.json")
	content := `{"profiles":[{"id":"local","name":"Local","base_url":"http://localhost:9000"}]}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	reg, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, ok := reg.ByID("local"); !ok {
		t.Fatalf("expected profile id local to be loaded")
	}
}

func TestLoadProfilesDuplicateID(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  - id: twin
    name: First
    base_url: https://one.example
  - id: twin
    name: Second
    base_url: https://two.example
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatalf("expected duplicate profile error, got nil")
	}
}

func TestLoadProfilesRejectsTwoDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  - id: one
    name: One
    base_url: https://one.example
    default: true
  - id: two
    name: Two
    base_url: https://two.example
    default: true
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatalf("expected error for two default profiles, got nil")
	}
}

func TestLoadProfilesMissingBaseURL(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  - id: broken
    name: Broken
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatalf("expected validation error for missing base_url, got nil")
	}
}

func TestDefaultFallsBackToFirstProfile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  - id: first
    name: First
    base_url: https://first.example
  - id: second
    name: Second
    base_url: https://second.example
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	reg, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	p, ok := reg.Default()
	if !ok || p.ID != "first" {
		t.Fatalf("expected first profile as default, got %#v ok=%v", p, ok)
	}
}

func TestDefaultHonorsFlag(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  - id: first
    name: First
    base_url: https://first.example
  - id: second
    name: Second
    base_url: https://second.example
    default: true
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	reg, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	p, ok := reg.Default()
	if !ok || p.ID != "second" {
		t.Fatalf("expected flagged profile as default, got %#v ok=%v", p, ok)
	}
}
