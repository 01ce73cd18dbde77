package brief

import "strings"

// Archetype names the communication pattern a brief asks for.
type Archetype string

const (
	ArchetypeApology       Archetype = "Accountability / Apology"
	ArchetypeClarification Archetype = "Clarification Seeking"
	ArchetypeRequest       Archetype = "Direct Request"
	ArchetypeProblem       Archetype = "Problem Reporting"
	ArchetypeStatusUpdate  Archetype = "Status Update"
	ArchetypePitch         Archetype = "Opportunity Pitch"
	ArchetypeScheduling    Archetype = "Personal Scheduling Request"
	ArchetypeProfessional  Archetype = "Professional Communication"
)

// Rules are checked in order; the first keyword hit wins.
var archetypeRules = []struct {
	archetype Archetype
	keywords  []string
}{
	{ArchetypeApology, []string{"apology"}},
	{ArchetypeClarification, []string{"clarify"}},
	{ArchetypeRequest, []string{"request"}},
	{ArchetypeProblem, []string{"complaint", "issue"}},
	{ArchetypeStatusUpdate, []string{"update"}},
	{ArchetypePitch, []string{"proposal", "investment"}},
	{ArchetypeScheduling, []string{"appointment", "meeting"}},
}

var archetypeGuidance = map[Archetype]string{
	ArchetypeApology:       "Acknowledge responsibility clearly. Avoid defensiveness. Show corrective intent.",
	ArchetypeClarification: "Specify exactly what is unclear. Show that effort was already made.",
	ArchetypeRequest:       "State the request early. Avoid excessive justification.",
	ArchetypeProblem:       "Describe the issue factually. Avoid emotional exaggeration.",
	ArchetypeStatusUpdate:  "Summarize current status efficiently. Highlight next steps.",
	ArchetypePitch:         "Avoid hype. Be grounded. Show strategic relevance to the recipient.",
	ArchetypeScheduling:    "Be practical. Mention availability windows realistically.",
	ArchetypeProfessional:  "Be clear and purposeful. Stay aware of the context.",
}

// Guidance returns the behavioral guidance for a, defaulting to the generic archetype.
func (a Archetype) Guidance() string {
	if g, ok := archetypeGuidance[a]; ok {
		return g
	}
	return archetypeGuidance[ArchetypeProfessional]
}

// inferArchetype matches the intent text first (intent focus, category and
// scenario labels), then the domain and recipient ids and labels.
func inferArchetype(in Input) Archetype {
	intentText := strings.ToLower(strings.Join([]string{
		in.Metadata.IntentFocus, in.Labels.Category, in.Labels.Scenario,
	}, " "))
	if a, ok := matchArchetype(intentText); ok {
		return a
	}
	pairText := strings.ToLower(strings.Join([]string{
		in.Path.Domain(), in.Labels.Domain, in.Path.Recipient(), in.Labels.Recipient,
	}, " "))
	if a, ok := matchArchetype(pairText); ok {
		return a
	}
	return ArchetypeProfessional
}

func matchArchetype(text string) (Archetype, bool) {
	for _, rule := range archetypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.archetype, true
			}
		}
	}
	return "", false
}
