package domain

// LemmaPair is one input row: a lemma and the part of speech the caller asked
// about. Both fields are normalized (trimmed, lowercase).
type LemmaPair struct {
	Lemma string
	POS   string
}

// LemmaRecord is the full lexical tree for one lemma as written to (or read
// from) the store.
type LemmaRecord struct {
	ID        int64
	Lemma     string
	InputPOS  string
	WordForms []string
	Entries   []Entry
}

// Entry is one part-of-speech sense group of a lemma. Position is the order
// index assigned from the entry's place in the generated list.
type Entry struct {
	ID          int64
	POS         PartOfSpeech
	Position    int
	Definitions []string
	Synonyms    []string
	Antonyms    []string
}

// SaveResult reports what a per-lemma write actually changed.
type SaveResult struct {
	LemmaID        int64
	LemmaCreated   bool
	WordsAttached  int
	EntriesWritten int
	// EntriesSkipped is true when the lemma already owned entries from an
	// earlier write and the new ones were not recorded.
	EntriesSkipped bool
}

// LexiconStats holds row counts for every relation of the lexicon schema.
type LexiconStats struct {
	Lemmas      int
	Words       int
	Entries     int
	Definitions int
	Synonyms    int
	Antonyms    int
}
