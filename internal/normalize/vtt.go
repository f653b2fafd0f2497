package normalize

import (
	"fmt"
	"os"
	"strings"
)

// extractTranscript converts a WebVTT caption track into plain transcript
// text, concatenating caption text in timeline order and discarding all
// timing metadata.
func extractTranscript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return parseVTT(string(data))
}

func parseVTT(data string) (string, error) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.TrimPrefix(data, "\uFEFF")

	lines := strings.Split(data, "\n")

	// The signature must be the first non-empty line
	sigSeen := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "WEBVTT") {
			return "", fmt.Errorf("not a WebVTT file")
		}
		sigSeen = true
		break
	}
	if !sigSeen {
		return "", fmt.Errorf("empty caption file")
	}

	var b strings.Builder
	inCue := false
	skipBlock := false
	prevLine := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			inCue = false
			skipBlock = false
			continue
		}
		if i == 0 || strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}
		if skipBlock {
			continue
		}
		// NOTE, STYLE and REGION blocks carry no caption text
		if !inCue && (strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") ||
			strings.HasPrefix(trimmed, "REGION")) {
			skipBlock = true
			continue
		}
		if strings.Contains(trimmed, "-->") {
			inCue = true
			continue
		}
		if !inCue {
			// Cue identifier line preceding the timing line
			continue
		}

		text := stripCueTags(trimmed)
		if text == "" {
			continue
		}
		// Auto-generated subtitles repeat lines across overlapping cues
		if text == prevLine {
			continue
		}
		prevLine = text
		b.WriteString(text)
		b.WriteByte(' ')
	}

	return b.String(), nil
}

// stripCueTags removes inline cue markup such as <c>, </c>, and word
// timestamps like <00:00:01.500>.
func stripCueTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
