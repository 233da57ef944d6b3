package readable_hash

import (
	"fmt"
	"io"
	"strings"
)

// HashOptions controls how WordHash carves the hash stream into words.
type HashOptions struct {
	Words        int
	BytesPerWord int
	// TargetLen switches to the target-length policy when positive.
	TargetLen int
	Separator string
}

func DefaultHashOptions() HashOptions {
	return HashOptions{
		Words:        6,
		BytesPerWord: 6,
		Separator:    " ",
	}
}

// cacheKey identifies a hasher by its concrete type as well as its name,
// so distinct hashers sharing a name never share cache entries.
func (opts HashOptions) cacheKey(hasher Hasher, input []byte) string {
	return fmt.Sprintf("%T|%s|%d|%d|%d|%q|%s", hasher, hasher.Name(),
		opts.Words, opts.BytesPerWord, opts.TargetLen, opts.Separator, input)
}

// WordHash
// Hashes input and decodes the stream into opts.Words words, each from its
// own opts.BytesPerWord slice of entropy. A bounded hasher that runs dry
// leaves the remaining words short or empty; empty words are dropped.
func (model *WordModel) WordHash(input []byte, hasher Hasher,
	opts HashOptions) string {
	if hasher == nil {
		hasher = Shake256Hasher{}
	}
	key := opts.cacheKey(hasher, input)
	if cached, ok := model.Cache.Get(key); ok {
		model.lruHits.Add(1)
		return cached.(string)
	}
	model.lruMisses.Add(1)

	stream := hasher.Stream(input)
	words := make([]string, 0, max(opts.Words, 0))
	for idx := 0; idx < opts.Words; idx++ {
		entropy := make([]byte, max(opts.BytesPerWord, 0))
		n, _ := io.ReadFull(stream, entropy)
		source := NewSliceReader(entropy[:n])
		var word string
		if opts.TargetLen > 0 {
			word = model.GenerateWordWithTargetLen(source, opts.TargetLen)
		} else {
			word = model.GenerateWord(source)
		}
		if word != "" {
			words = append(words, word)
		}
	}
	result := strings.Join(words, opts.Separator)
	model.Cache.Add(key, result)
	return result
}

// EnglishWordHash
// Returns the default six-word hash of input. A nil hasher means SHAKE256.
func (model *WordModel) EnglishWordHash(input string, hasher Hasher) string {
	return model.WordHash([]byte(input), hasher, DefaultHashOptions())
}
