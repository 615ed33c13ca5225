// Package lexbatch runs the lexicon build: it turns an input word list into
// one asynchronous batch job, reconciles the job's results with the input
// ordering and persists every valid record. A synchronous mode calls the
// generator lemma by lemma through the same validation and write path.
package lexbatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// ReadPairs reads a tab-separated word list from path. See ParsePairs.
// A missing file yields domain.ErrInputMissing.
func ReadPairs(path string) ([]domain.LemmaPair, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, domain.ErrInputMissing)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := ParsePairs(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return pairs, nil
}

// ParsePairs parses `lemma<TAB>pos` rows. The first row is a header and is
// skipped; rows with fewer than two columns are ignored. Both fields are
// trimmed and lowercased. The position of a pair in the result is its index
// for the whole run.
func ParsePairs(r io.Reader) ([]domain.LemmaPair, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var pairs []domain.LemmaPair
	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse tsv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 2 {
			continue
		}

		pairs = append(pairs, domain.LemmaPair{
			Lemma: domain.NormalizeText(row[0]),
			POS:   domain.NormalizeText(row[1]),
		})
	}
	return pairs, nil
}
