package lexbatch

import (
	"strings"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// ToRecord maps a validated LexemeResult onto the input pair it answers.
// The stored lemma text and input code come from the pair, not from the
// generated echo. Word forms keep their case and are only trimmed, with
// blanks and exact repeats removed. Child texts are trimmed and kept one for
// one, so a child's position is its index in the generated list. Entry
// codes are lowercased but stored even when unknown.
func ToRecord(pair domain.LemmaPair, r LexemeResult) domain.LemmaRecord {
	rec := domain.LemmaRecord{
		Lemma:     pair.Lemma,
		InputPOS:  pair.POS,
		WordForms: surfaceForms(r.WordForms),
		Entries:   make([]domain.Entry, len(r.Entries)),
	}

	for i, e := range r.Entries {
		pos, _ := domain.ParsePartOfSpeech(e.PartOfSpeech)
		rec.Entries[i] = domain.Entry{
			POS:         pos,
			Position:    i,
			Definitions: trimAll(e.Definitions),
			Synonyms:    trimAll(e.Synonyms),
			Antonyms:    trimAll(e.Antonyms),
		}
	}
	return rec
}

func surfaceForms(forms []string) []string {
	seen := make(map[string]struct{}, len(forms))
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func trimAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.TrimSpace(t)
	}
	return out
}
