package vault

import "strings"

// RepairBlock rewrites a frontmatter block that failed the strict parse,
// quoting unquoted scalar values that contain a colon. A strict parser reads
// the embedded colon as a second key boundary; quoting the whole value fixes
// the single most common authoring mistake in the wild (for example
// `source: Eberron: Rising from the Last War p. 277`).
//
// The pass is line-local and idempotent: a second application is a no-op.
func RepairBlock(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = repairLine(line)
	}
	return strings.Join(lines, "\n")
}

func repairLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line
	}

	idx := strings.Index(line, ":")
	if idx < 0 {
		return line
	}

	// keyPart keeps its leading indentation so block structure survives.
	keyPart := line[:idx]
	valuePart := strings.TrimLeft(line[idx+1:], " \t")
	if valuePart == "" {
		return line
	}

	// Quoted, bracketed, or braced values are structurally valid already or
	// broken in a way a quote cannot fix.
	switch valuePart[0] {
	case '"', '\'', '[', '{':
		return line
	}

	if !strings.Contains(valuePart, ":") {
		return line
	}

	// Best-effort: inner quotes are not escaped.
	return keyPart + `: "` + valuePart + `"`
}
