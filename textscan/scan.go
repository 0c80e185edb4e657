// Package textscan flags common writing problems in proposal copy: passive
// voice, weak filler words, agency clichés and overlong sentences. It is a
// pure text-to-issues transform with no state and no external calls.
package textscan

import (
	"regexp"
	"sort"
	"strings"
)

// Issue types.
const (
	TypePassive      = "passive"
	TypeWeak         = "weak"
	TypeCliche       = "cliche"
	TypeLongSentence = "long-sentence"
)

// Issue is a single flagged span. Index/Length are byte offsets into the
// scanned text.
type Issue struct {
	Text       string `json:"text"`
	Type       string `json:"type"`
	Suggestion string `json:"suggestion"`
	Index      int    `json:"index"`
	Length     int    `json:"length"`
}

// Irregular past participles the -ed suffix check would miss.
var irregularParticiples = []string{
	"done", "made", "given", "taken", "seen", "known", "shown", "written",
	"built", "sent", "held", "kept", "chosen", "found", "brought", "bought",
	"taught", "thought", "told", "paid", "said", "set", "put", "left", "won",
	"begun", "driven", "drawn", "grown", "thrown", "broken", "spoken",
}

var weakWords = []string{
	"very", "really", "just", "quite", "rather", "somewhat", "perhaps",
	"maybe", "basically", "actually", "literally", "stuff", "things",
	"nice", "good", "great",
}

var cliches = []string{
	"at the end of the day", "think outside the box", "low-hanging fruit",
	"move the needle", "win-win", "best of breed", "synergy",
	"paradigm shift", "game changer", "cutting edge", "circle back",
	"boil the ocean", "take it to the next level",
}

const longSentenceTokens = 25

var (
	passiveRe  = regexp.MustCompile(`(?i)\b(am|are|is|was|were|be|been|being)\s+([A-Za-z]+ed|` + strings.Join(irregularParticiples, "|") + `)\b`)
	weakRe     = regexp.MustCompile(`(?i)\b(` + strings.Join(weakWords, "|") + `)\b`)
	clicheRe   = regexp.MustCompile(`(?i)(` + strings.Join(quoteAll(cliches), "|") + `)`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

func quoteAll(phrases []string) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = regexp.QuoteMeta(p)
	}
	return out
}

// Scan returns every detected issue in text, sorted by index ascending.
func Scan(text string) []Issue {
	var issues []Issue

	for _, loc := range passiveRe.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		issues = append(issues, Issue{
			Text:       match,
			Type:       TypePassive,
			Suggestion: "Rewrite in active voice: name who performs the action.",
			Index:      loc[0],
			Length:     loc[1] - loc[0],
		})
	}

	for _, loc := range weakRe.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		issues = append(issues, Issue{
			Text:       match,
			Type:       TypeWeak,
			Suggestion: "Cut the filler word or replace it with something specific.",
			Index:      loc[0],
			Length:     loc[1] - loc[0],
		})
	}

	for _, loc := range clicheRe.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		issues = append(issues, Issue{
			Text:       match,
			Type:       TypeCliche,
			Suggestion: "Swap the cliché for a concrete claim.",
			Index:      loc[0],
			Length:     loc[1] - loc[0],
		})
	}

	issues = append(issues, scanLongSentences(text)...)

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Index < issues[j].Index })
	return issues
}

// scanLongSentences flags sentences over longSentenceTokens words. The
// reported index is the first occurrence of the trimmed sentence at or
// after a cursor that advances by the raw segment length; with repeated
// identical sentences this can point at an earlier occurrence. Known
// approximation, kept for compatibility with the original behavior.
func scanLongSentences(text string) []Issue {
	var issues []Issue
	cursor := 0
	for _, raw := range sentenceRe.Split(text, -1) {
		trimmed := strings.TrimSpace(raw)
		if len(strings.Fields(trimmed)) > longSentenceTokens {
			pos := cursor
			if idx := strings.Index(text[cursor:], trimmed); idx >= 0 {
				pos = cursor + idx
			}
			issues = append(issues, Issue{
				Text:       trimmed,
				Type:       TypeLongSentence,
				Suggestion: "Split this sentence; aim for under 25 words.",
				Index:      pos,
				Length:     len(trimmed),
			})
		}
		cursor += len(raw)
	}
	return issues
}
