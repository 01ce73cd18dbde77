package brief

import (
	"errors"
	"strings"
	"testing"

	"github.com/prince-Sf/Corelytics/internal/selection"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

func sampleInput(t *testing.T) Input {
	t.Helper()
	p, err := selection.FromIDs("sales", "marketplace", "policy", "clarify")
	if err != nil {
		t.Fatalf("FromIDs: %v", err)
	}
	return Input{
		Path:   p,
		Labels: Labels{Domain: "Sales", Recipient: "Marketplace Support", Category: "Seller Policy", Scenario: "Clarify a policy change"},
		Metadata: taxonomy.Resolved{
			IntentFocus: "policy clarification",
			ToneHint:    "Direct and courteous.",
			Pressure:    taxonomy.PressureHigh,
			ContextHint: "A listing rule changed last week.",
		},
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	in := sampleInput(t)
	a, err := Compile(in)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i := 0; i < 5; i++ {
		b, err := Compile(in)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if a.Text != b.Text || a.Fingerprint != b.Fingerprint {
			t.Fatalf("compile output changed between runs")
		}
	}
	if len(a.Fingerprint) != 64 {
		t.Fatalf("fingerprint should be hex sha256, got %q", a.Fingerprint)
	}
}

func TestCompileSectionOrderAndContent(t *testing.T) {
	b, err := Compile(sampleInput(t))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	order := []string{SectionRole, SectionIntent, SectionArchetype, SectionTone, SectionUrgency, SectionConstraints, SectionContext, SectionStructure}
	last := -1
	for _, name := range order {
		idx := strings.Index(b.Text, "=== "+name+" ===")
		if idx < 0 || idx <= last {
			t.Fatalf("section %s missing or out of order", name)
		}
		last = idx
	}
	for _, want := range []string{
		"policy clarification",
		"Direct and courteous.",
		"A listing rule changed last week.",
		"Recipient role: Marketplace Support",
		"Situation: Seller Policy: Clarify a policy change",
		"I hope this message finds you well",
		"There is time sensitivity.",
	} {
		if !strings.Contains(b.Text, want) {
			t.Fatalf("brief missing %q:\n%s", want, b.Text)
		}
	}
	if b.Archetype != ArchetypeClarification {
		t.Fatalf("archetype=%q", b.Archetype)
	}
}

func TestCompileChangesWithMetadata(t *testing.T) {
	in := sampleInput(t)
	a, _ := Compile(in)
	in.Metadata.Pressure = taxonomy.PressureLow
	b, _ := Compile(in)
	if a.Fingerprint == b.Fingerprint {
		t.Fatalf("different pressure must change the brief")
	}
	if !strings.Contains(b.Text, "There is no urgency.") {
		t.Fatalf("low pressure directive missing")
	}
}

func TestCompileIncompleteSelection(t *testing.T) {
	in := sampleInput(t)
	in.Labels.Category = ""
	_, err := Compile(in)
	if !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection, got %v", err)
	}
	if !strings.Contains(err.Error(), "category") {
		t.Fatalf("error should name the missing level: %v", err)
	}
	if _, err := Compile(Input{}); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("empty input should be incomplete, got %v", err)
	}
}

func TestCompileRequiresResolvablePath(t *testing.T) {
	short, err := selection.FromIDs("sales", "marketplace", "", "")
	if err != nil {
		t.Fatalf("FromIDs: %v", err)
	}
	for name, p := range map[string]selection.Path{
		"empty":       {},
		"no category": short,
	} {
		t.Run(name, func(t *testing.T) {
			in := sampleInput(t)
			in.Path = p
			if _, err := Compile(in); !errors.Is(err, ErrIncompleteSelection) {
				t.Fatalf("expected ErrIncompleteSelection with full labels, got %v", err)
			}
		})
	}
}

func TestInferArchetype(t *testing.T) {
	cases := []struct {
		name      string
		focus     string
		category  string
		domain    string
		recipient string
		want      Archetype
	}{
		{"apology wins over request", "apology and request for patience", "Deadline", "work", "manager", ArchetypeApology},
		{"clarify", "", "Clarify terms", "work", "manager", ArchetypeClarification},
		{"complaint", "complaint about heating", "Repair", "home", "landlord", ArchetypeProblem},
		{"issue", "an issue with the payout", "Payout", "sales", "marketplace", ArchetypeProblem},
		{"update", "weekly update", "Project", "work", "manager", ArchetypeStatusUpdate},
		{"investment", "seed investment", "Funding", "startup", "investor", ArchetypePitch},
		{"meeting", "book a meeting", "Intro", "sales", "prospect", ArchetypeScheduling},
		{"falls back to pair", "say thanks", "Thanks", "investment", "angel", ArchetypePitch},
		{"default", "say thanks", "Thanks", "work", "colleague", ArchetypeProfessional},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := selection.FromIDs(tc.domain, tc.recipient, "c", "")
			if err != nil {
				t.Fatalf("FromIDs: %v", err)
			}
			in := Input{
				Path:     p,
				Labels:   Labels{Domain: tc.domain, Recipient: tc.recipient, Category: tc.category},
				Metadata: taxonomy.Resolved{IntentFocus: tc.focus},
			}
			if got := inferArchetype(in); got != tc.want {
				t.Fatalf("archetype=%q want %q", got, tc.want)
			}
		})
	}
}

func TestGuidanceDefaults(t *testing.T) {
	if Archetype("Unknown").Guidance() != ArchetypeProfessional.Guidance() {
		t.Fatalf("unknown archetype should use the professional guidance")
	}
}

func TestSystemPrompt(t *testing.T) {
	sp := SystemPrompt()
	if !strings.Contains(sp, "experienced professional communicator") {
		t.Fatalf("system prompt missing role:\n%s", sp)
	}
	if SystemPrompt() != sp {
		t.Fatalf("system prompt must be stable")
	}
}
