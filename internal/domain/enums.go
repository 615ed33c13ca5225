package domain

import (
	"strings"
	"unicode/utf8"
)

// PartOfSpeech is the one-letter part-of-speech code used both in the input
// word list and in generated entries.
type PartOfSpeech string

const (
	PartOfSpeechArticle          PartOfSpeech = "a"
	PartOfSpeechConjunction      PartOfSpeech = "c"
	PartOfSpeechDeterminer       PartOfSpeech = "d"
	PartOfSpeechExistentialThere PartOfSpeech = "e"
	PartOfSpeechPreposition      PartOfSpeech = "i"
	PartOfSpeechAdjective        PartOfSpeech = "j"
	PartOfSpeechNumber           PartOfSpeech = "m"
	PartOfSpeechNoun             PartOfSpeech = "n"
	PartOfSpeechPronoun          PartOfSpeech = "p"
	PartOfSpeechAdverb           PartOfSpeech = "r"
	PartOfSpeechInfinitiveMarker PartOfSpeech = "t"
	PartOfSpeechInterjection     PartOfSpeech = "u"
	PartOfSpeechVerb             PartOfSpeech = "v"
	PartOfSpeechNegation         PartOfSpeech = "x"
)

// PartsOfSpeech lists every code in the order it is presented to the model.
var PartsOfSpeech = []PartOfSpeech{
	PartOfSpeechArticle,
	PartOfSpeechConjunction,
	PartOfSpeechDeterminer,
	PartOfSpeechExistentialThere,
	PartOfSpeechPreposition,
	PartOfSpeechAdjective,
	PartOfSpeechNumber,
	PartOfSpeechNoun,
	PartOfSpeechPronoun,
	PartOfSpeechAdverb,
	PartOfSpeechInfinitiveMarker,
	PartOfSpeechInterjection,
	PartOfSpeechVerb,
	PartOfSpeechNegation,
}

var partOfSpeechLabels = map[PartOfSpeech]string{
	PartOfSpeechArticle:          "article",
	PartOfSpeechConjunction:      "conjunction",
	PartOfSpeechDeterminer:       "determiner",
	PartOfSpeechExistentialThere: "existential there",
	PartOfSpeechPreposition:      "preposition",
	PartOfSpeechAdjective:        "adjective",
	PartOfSpeechNumber:           "number",
	PartOfSpeechNoun:             "noun",
	PartOfSpeechPronoun:          "pronoun",
	PartOfSpeechAdverb:           "adverb",
	PartOfSpeechInfinitiveMarker: "infinitive marker",
	PartOfSpeechInterjection:     "interjection",
	PartOfSpeechVerb:             "verb",
	PartOfSpeechNegation:         "not",
}

// ParsePartOfSpeech trims and lowercases raw and reports whether the result
// is a known code.
func ParsePartOfSpeech(raw string) (PartOfSpeech, bool) {
	p := PartOfSpeech(strings.ToLower(strings.TrimSpace(raw)))
	return p, p.IsValid()
}

func (p PartOfSpeech) String() string { return string(p) }

// Label returns the human-readable category name, or "" for unknown codes.
func (p PartOfSpeech) Label() string { return partOfSpeechLabels[p] }

func (p PartOfSpeech) IsValid() bool {
	_, ok := partOfSpeechLabels[p]
	return ok
}

// IsCode reports whether p is a single character, known or not. Generated
// entries are stored with any such code.
func (p PartOfSpeech) IsCode() bool {
	return utf8.RuneCountInString(string(p)) == 1
}
