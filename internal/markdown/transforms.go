package markdown

import (
	"regexp"
	"strings"
)

var (
	// An inline image immediately followed by a pandoc attribute block.
	// Attribute blocks may wrap across lines.
	imageWithAttrs = regexp.MustCompile(`(!\[[^\]]*\]\([^)]*\))\{[^}]*\}`)

	monthYearLine = regexp.MustCompile(
		`^(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}$`)
)

// stripImageAttributes turns ![alt](path){width=50%} into ![alt](path).
func stripImageAttributes(body string) string {
	return imageWithAttrs.ReplaceAllString(body, "$1")
}

// rewriteMediaPaths makes image targets starting with prefix site-root absolute.
func rewriteMediaPaths(prefix string) Transform {
	re := regexp.MustCompile(`(!\[[^\]]*\]\()` + regexp.QuoteMeta(prefix))
	return func(body string) string {
		return re.ReplaceAllString(body, "${1}/"+prefix)
	}
}

type titleState int

const (
	stateIdle titleState = iota
	stateAfterHeadingRemoved
)

// stripTitleArtifacts drops heading lines repeating the title, together with
// a "<Month> <year>" caption and one blank line right after them.
func stripTitleArtifacts(title string) Transform {
	title = strings.TrimSpace(title)
	if title == "" {
		return func(body string) string { return body }
	}
	heading := regexp.MustCompile(`(?i)^#*\s*` + regexp.QuoteMeta(title) + `\s*$`)

	return func(body string) string {
		lines := strings.Split(body, "\n")
		kept := make([]string, 0, len(lines))
		state := stateIdle

		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			switch {
			case heading.MatchString(trimmed):
				state = stateAfterHeadingRemoved
				continue
			case state == stateAfterHeadingRemoved && monthYearLine.MatchString(trimmed):
				continue
			case state == stateAfterHeadingRemoved && trimmed == "":
				state = stateIdle
				continue
			}
			state = stateIdle
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}
}
