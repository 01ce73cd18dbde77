package promptstyle

import "strings"

const marker = "CORELYTICS_PROMPT_STYLE_V1"

// ApplySystem prepends a short output-discipline block to a system prompt.
// Applying it twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nUse only the situation described in the brief; do not invent names, dates or figures.")
	switch mode {
	case "email":
		b.WriteString("\nReturn only the email itself: an optional subject line, then the body. No preamble, notes or markdown.")
	default:
		b.WriteString("\nDo not add analysis or extra commentary.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return strings.TrimSpace(b.String())
}
