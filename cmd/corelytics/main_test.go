package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "env: test\nmodels:\n  - id: mock-1\n    engine:\n      type: mock\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestValidateEmbedded(t *testing.T) {
	out, err := run(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "embedded taxonomy is valid") || !strings.Contains(out, "domains:         3") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("children:\n  - id: a\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, "validate", path)
	if err == nil {
		t.Fatalf("expected error, output:\n%s", out)
	}
	if !strings.Contains(out, "✗") {
		t.Fatalf("expected failure marker:\n%s", out)
	}
}

func TestTreeMarksLeafCategories(t *testing.T) {
	out, err := run(t, "tree")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !strings.Contains(out, "    payouts (Delayed Payout) [no scenarios]") {
		t.Fatalf("leaf category not marked:\n%s", out)
	}
}

func TestBriefCommand(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t), "brief",
		"--domain", "sales", "--recipient", "marketplace", "--category", "policy", "--scenario", "clarify")
	if err != nil {
		t.Fatalf("brief: %v\n%s", err, out)
	}
	for _, want := range []string{"=== ROLE ===", "=== STRUCTURE ===", "archetype: Clarification Seeking"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBriefRequiresCategory(t *testing.T) {
	if _, err := run(t, "brief", "--domain", "sales", "--recipient", "marketplace"); err == nil {
		t.Fatalf("expected missing flag error")
	}
}

func TestGenerateWithMock(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t), "generate",
		"--domain", "sales", "--recipient", "marketplace", "--category", "payouts", "--json")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"email": "Subject:`) || !strings.Contains(out, `"model": "mock-1"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGenerateAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"email":"Subject: Remote","metadata":{"model":"remote-1","intent_path":"Sales → Marketplace Support → Delayed Payout"}}`))
	}))
	defer srv.Close()

	out, err := run(t, "generate", "--server", srv.URL,
		"--domain", "sales", "--recipient", "marketplace", "--category", "payouts")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "model: remote-1") || !strings.Contains(out, "Subject: Remote") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
