package pretty

import "strings"

// FormatDiff styles a unified diff line by line: file and hunk headers in
// the header style, additions and removals in their own colors, context
// lines untouched.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "),
			strings.HasPrefix(line, "@@"):
			lines[i] = s.DiffHeader.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = s.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = s.DiffRemove.Render(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
