package logger

import "testing"

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"api_key", "sk-live",
		"email_text", "Dear team, ...",
		"audit_dsn", "postgres://u:p@h/db",
		"model", "mock-1",
	})
	want := map[string]interface{}{
		"api_key":    "[REDACTED]",
		"email_text": "[REDACTED]",
		"audit_dsn":  "[REDACTED]",
		"model":      "mock-1",
	}
	if len(out) != 8 {
		t.Fatalf("len=%d", len(out))
	}
	for i := 0; i < len(out); i += 2 {
		k := out[i].(string)
		if out[i+1] != want[k] {
			t.Fatalf("%s=%v want %v", k, out[i+1], want[k])
		}
	}
}

func TestSanitizeKVsHashesClientIP(t *testing.T) {
	out := sanitizeKVs([]interface{}{"client_ip", "10.0.0.1"})
	got, _ := out[1].(string)
	if len(got) != len("hash:")+12 || got[:5] != "hash:" {
		t.Fatalf("unexpected hash %q", got)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"model", "m", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "test", "development", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "k", "v")
	}
	NewNop().Info("discarded")
}
