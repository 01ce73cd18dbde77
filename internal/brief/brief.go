// Package brief compiles a resolved selection into the behavioral brief sent
// to a text generation provider. Compilation is pure: the same input always
// yields byte-identical output.
package brief

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/prince-Sf/Corelytics/internal/platform/promptstyle"
	"github.com/prince-Sf/Corelytics/internal/selection"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

var ErrIncompleteSelection = errors.New("incomplete selection: domain, recipient and category are required")

// Section names in render order.
const (
	SectionRole        = "ROLE"
	SectionIntent      = "SUBJECT INTENT"
	SectionArchetype   = "ARCHETYPE"
	SectionTone        = "TONE"
	SectionUrgency     = "URGENCY"
	SectionConstraints = "CONSTRAINTS"
	SectionContext     = "CONTEXT"
	SectionStructure   = "STRUCTURE"
)

// Labels are the display labels along the selected path. Scenario is empty
// when no scenario was chosen.
type Labels struct {
	Domain    string `json:"domain"`
	Recipient string `json:"recipient"`
	Category  string `json:"category"`
	Scenario  string `json:"scenario,omitempty"`
}

// Situation is the narrowest selected label.
func (l Labels) Situation() string {
	if l.Scenario != "" {
		return l.Scenario
	}
	return l.Category
}

type Input struct {
	Path     selection.Path
	Labels   Labels
	Metadata taxonomy.Resolved
}

type Section struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type Brief struct {
	Text        string    `json:"text"`
	Archetype   Archetype `json:"archetype"`
	Sections    []Section `json:"sections"`
	Fingerprint string    `json:"fingerprint"`
}

// Compile renders the brief for in. The path must be resolvable and carry
// labels for every selected level.
func Compile(in Input) (Brief, error) {
	if !in.Path.IsResolvable() {
		return Brief{}, fmt.Errorf("%w: path %q", ErrIncompleteSelection, in.Path.String())
	}
	if err := in.Labels.validate(); err != nil {
		return Brief{}, err
	}
	archetype := inferArchetype(in)
	sections := []Section{
		{SectionRole, roleBlock(in.Labels)},
		{SectionIntent, intentBlock(in.Metadata.IntentFocus)},
		{SectionArchetype, string(archetype) + "\n" + archetype.Guidance()},
		{SectionTone, in.Metadata.ToneHint},
		{SectionUrgency, urgencyDirective(in.Metadata.Pressure)},
		{SectionConstraints, constraintsBlock},
		{SectionContext, in.Metadata.ContextHint},
		{SectionStructure, structureBlock},
	}
	text := render(sections)
	sum := sha256.Sum256([]byte(text))
	return Brief{
		Text:        text,
		Archetype:   archetype,
		Sections:    sections,
		Fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

func (l Labels) validate() error {
	var missing []string
	if strings.TrimSpace(l.Domain) == "" {
		missing = append(missing, "domain")
	}
	if strings.TrimSpace(l.Recipient) == "" {
		missing = append(missing, "recipient")
	}
	if strings.TrimSpace(l.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w (missing %s)", ErrIncompleteSelection, strings.Join(missing, ", "))
	}
	return nil
}

func render(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("=== ")
		b.WriteString(s.Name)
		b.WriteString(" ===\n")
		b.WriteString(strings.TrimSpace(s.Body))
	}
	return b.String()
}

func roleBlock(l Labels) string {
	situation := l.Category
	if l.Scenario != "" {
		situation = l.Category + ": " + l.Scenario
	}
	return strings.Join([]string{
		"You are writing a real email as a real person in a real situation.",
		"You are not an AI, you are not filling in a template, and this is not a textbook example.",
		"",
		"Recipient role: " + l.Recipient,
		"Professional context: " + l.Domain,
		"Situation: " + situation,
	}, "\n")
}

func intentBlock(focus string) string {
	return focus + "\n" +
		"Every paragraph must move this purpose forward. Name it concretely in the first two sentences."
}

func urgencyDirective(p taxonomy.Pressure) string {
	switch p {
	case taxonomy.PressureHigh:
		return "There is time sensitivity. State the deadline or consequence plainly and ask for a specific response. Be firm but respectful, never panicked."
	case taxonomy.PressureLow:
		return "There is no urgency. Keep the tone courteous, flexible and unpressured; leave the timing to the recipient."
	default:
		return "Normal professional urgency. Make the next step clear without pushing."
	}
}

const constraintsBlock = `Specificity requirement:
- Include at least one concrete detail tied to the core purpose (a timeframe, an example, a constraint, or an action already taken).
- Avoid vague phrases like "recently", "exciting opportunity", "some concerns".
- Replace general claims with grounded statements.

Forbidden generic phrases:
- "I hope this message finds you well"
- "This email is regarding"
- "I would like to bring to your attention"
- "Exciting opportunity"
- "Kindly do the needful"
- Overly polished marketing language
If a sentence sounds like a template, rewrite it.

Embodiment:
Write from the perspective of someone who has actually lived this situation.
Mild natural imperfection in tone is fine. Do not sound like a formal announcement.`

const structureBlock = `- Include a subject line.
- Use 3 to 4 meaningful paragraphs; each one adds new information.
- End with a natural sign-off that fits the context.
- Do not use placeholders like [Your Name].
- Do not repeat the taxonomy labels (domain, category) as labels.
- Do not over-explain or polish to the point of sounding artificial.

Write the complete email now.`

const systemPrompt = `You are an experienced professional communicator.
Write emails that feel written by a real person.
Avoid generic filler sentences and textbook phrasing.
Make the email natural and aware of its context.
Do not use placeholders.`

// SystemPrompt is the system message that accompanies every brief.
func SystemPrompt() string {
	return promptstyle.ApplySystem(systemPrompt, "email")
}
