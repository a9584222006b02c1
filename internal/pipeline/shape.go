package pipeline

import "strings"

const explanationMarker = "Explanation:"

// splitRequirements turns a bullet list completion into one entry per line,
// dropping bullet glyphs and blank lines while keeping the model's order.
func splitRequirements(raw string) []string {
	lines := strings.Split(raw, "\n")
	requirements := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-• "))
		if cleaned == "" {
			continue
		}
		requirements = append(requirements, cleaned)
	}
	return requirements
}

// splitBugFix separates corrected code from its explanation at the first
// "Explanation:" marker. It is a heuristic: a marker inside the code itself
// (a string literal or comment) splits there too. Without a marker the whole
// completion is treated as code.
func splitBugFix(raw string) (fixedCode string, explanation string) {
	before, after, found := strings.Cut(raw, explanationMarker)
	if !found {
		return strings.TrimSpace(raw), ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
