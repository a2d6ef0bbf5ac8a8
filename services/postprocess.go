package services

import (
	"regexp"
	"strings"
)

var mapDirectivePattern = regexp.MustCompile(`\[SHOW_MAP:\s*([^\]]+)\]`)

// sentence-terminal runes; the Devanagari danda terminates Hindi sentences.
func isSentenceTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '।':
		return true
	}
	return false
}

// SplitSentences breaks text into sentence-like units on terminal punctuation,
// keeping the punctuation with its unit. Runs of terminators ("...", "?!")
// stay attached to one unit. Text without any terminator comes back whole.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var units []string
	var current strings.Builder

	for i, r := range runes {
		current.WriteRune(r)
		if isSentenceTerminal(r) {
			// Flush only once the run of terminators ends.
			if i+1 < len(runes) && isSentenceTerminal(runes[i+1]) {
				continue
			}
			if unit := strings.TrimSpace(current.String()); unit != "" {
				units = append(units, unit)
			}
			current.Reset()
		}
	}
	if unit := strings.TrimSpace(current.String()); unit != "" {
		units = append(units, unit)
	}

	if len(units) == 0 {
		if whole := strings.TrimSpace(text); whole != "" {
			return []string{whole}
		}
		return nil
	}
	return units
}

// ExtractMapTarget returns the payload of the first [SHOW_MAP: ...] directive,
// or "" when the text carries none.
func ExtractMapTarget(text string) string {
	match := mapDirectivePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// StripMapDirectives removes every [SHOW_MAP: ...] directive from text. The
// directive is machine-facing and must never reach speech synthesis.
func StripMapDirectives(text string) string {
	return strings.TrimSpace(mapDirectivePattern.ReplaceAllString(text, ""))
}

// ProcessResponse post-processes a full model response: sentence units are
// emitted to onSentence in order, stripped of any navigation directive, so
// the caller can start synthesizing speech before the whole response is
// processed; the untouched full text goes to onComplete. The extracted map
// target is returned, "" when the response has no directive.
func ProcessResponse(text string, onSentence func(string), onComplete func(string)) string {
	mapTarget := ExtractMapTarget(text)

	for _, unit := range SplitSentences(text) {
		spoken := StripMapDirectives(unit)
		if spoken == "" {
			continue
		}
		if onSentence != nil {
			onSentence(spoken)
		}
	}

	if onComplete != nil {
		onComplete(text)
	}
	return mapTarget
}
