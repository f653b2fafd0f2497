package debate

import (
	"strings"
)

// Section identifies one part of a structured debate reply.
type Section string

const (
	SectionSupport    Section = "support"
	SectionCounter    Section = "counter"
	SectionReflection Section = "reflection"
)

// headerSynonyms maps the header words models actually emit to the
// canonical sections. Models frequently swap Counterpoint for Challenge
// and Reflection for Synthesis.
var headerSynonyms = map[string]Section{
	"support":      SectionSupport,
	"counterpoint": SectionCounter,
	"challenge":    SectionCounter,
	"reflection":   SectionReflection,
	"synthesis":    SectionReflection,
}

// requiredSections must all be present for a reply to parse. Reflection
// is optional.
var requiredSections = []Section{SectionSupport, SectionCounter}

// Segment splits a raw debate reply into sections. A section starts at a
// line whose first word is a known header followed by a colon, matched
// case-insensitively and ignoring markdown decoration. It returns the
// extracted sections and the list of required sections that are missing.
func Segment(raw string) (map[Section]string, []Section) {
	sections := make(map[Section]string)

	var current Section
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text != "" && sections[current] == "" {
			sections[current] = text
		}
		buf = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if section, rest, ok := matchHeader(line); ok {
			flush()
			current = section
			if rest != "" {
				buf = append(buf, rest)
			}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	var missing []Section
	for _, section := range requiredSections {
		if sections[section] == "" {
			missing = append(missing, section)
		}
	}
	return sections, missing
}

// matchHeader reports whether the line opens a section, returning the
// section and any text following the colon on the same line.
func matchHeader(line string) (Section, string, bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#*_- ")

	colon := strings.Index(trimmed, ":")
	if colon < 0 {
		return "", "", false
	}

	word := strings.ToLower(strings.TrimRight(strings.TrimSpace(trimmed[:colon]), "*_"))
	section, ok := headerSynonyms[word]
	if !ok {
		return "", "", false
	}

	rest := strings.TrimSpace(strings.TrimLeft(trimmed[colon+1:], "*_ "))
	return section, rest, true
}
