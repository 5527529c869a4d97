package pagemd

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
	imageRe      = regexp.MustCompile(`!\[(.*?)\]\(([^)]+)\)`)
	titledDestRe = regexp.MustCompile(`^\S+\s+("[^"]*"|'[^']*')$`)
	illegalRe    = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// MaxFilenameLength caps the title-derived part of an output file name, in characters.
const MaxFilenameLength = 100

// Clean normalizes rendered Markdown. Runs of three or more newlines become
// one blank line, surrounding whitespace is trimmed, and image destinations
// containing spaces are wrapped in angle brackets. Clean is idempotent.
func Clean(markdown string) string {
	markdown = blankLinesRe.ReplaceAllString(markdown, "\n\n")
	markdown = strings.TrimSpace(markdown)

	return imageRe.ReplaceAllStringFunc(markdown, func(match string) string {
		m := imageRe.FindStringSubmatch(match)
		alt, dest := m[1], m[2]
		if !strings.Contains(dest, " ") || strings.HasPrefix(dest, "<") || titledDestRe.MatchString(dest) {
			return match
		}
		return "![" + alt + "](<" + dest + ">)"
	})
}

// FilenameFor derives an output file name from the article title, or from
// the last path segment of the URL when the title is empty.
// The result always ends in .md.
func FilenameFor(title, rawURL string) string {
	name := sanitizeFilename(title)
	if name == "" {
		name = "article"
		if segment := lastPathSegment(rawURL); segment != "" {
			name += "_" + segment
		}
	}
	return name + ".md"
}

func sanitizeFilename(s string) string {
	s = strings.TrimSpace(illegalRe.ReplaceAllString(s, ""))
	if r := []rune(s); len(r) > MaxFilenameLength {
		s = strings.TrimSpace(string(r[:MaxFilenameLength]))
	}
	return s
}

func lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return sanitizeFilename(segments[len(segments)-1])
}
