//go:build !wasip1 && !js

package readable_hash

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// SplitSentences
// Segments text into trimmed, non-empty sentences.
func SplitSentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(
		text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTokenization(false),
	)
	if err != nil {
		return nil, err
	}
	sentences := make([]string, 0)
	for _, sentence := range doc.Sentences() {
		trimmed := strings.TrimSpace(sentence.Text)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences, nil
}

// HashSentences
// Splits text into sentences and returns one word hash per sentence, in
// order.
func (model *WordModel) HashSentences(text string, hasher Hasher,
	opts HashOptions) ([]string, error) {
	sentences, err := SplitSentences(text)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, len(sentences))
	for idx, sentence := range sentences {
		hashes[idx] = model.WordHash([]byte(sentence), hasher, opts)
	}
	return hashes, nil
}
