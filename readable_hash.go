package readable_hash

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash/resources"
	"github.com/wbrown/readable_hash/types"
	"go.uber.org/zap"
)

const WORD_LRU_SZ = 16384
const DEFAULT_MAX_WORD_TOKENS = 256
const DEFAULT_MODEL = "english"

type Token = types.Token
type Tokens = types.Tokens

// WordModel turns entropy into pronounceable words using the n-gram tables
// of one model. It is read-only once built and safe for concurrent use.
type WordModel struct {
	Name            string
	Tokens          []string // Raw token text, including position markers.
	Texts           []string // Token text with markers stripped.
	ContextLen      int
	ProbabilityBits int
	MaxSample       uint32
	// MaxWordTokens bounds the tokens of one word, so that unbounded sources
	// and cyclic tables still terminate.
	MaxWordTokens int
	Cache         *lru.ARCCache
	contexts      []Tokens
	indexes       [3][]types.IndexEntry
	transitions   []types.Transition
	lruHits       atomic.Int64
	lruMisses     atomic.Int64
}

// NewEnglishModel
// Returns the embedded English model. The embedded data is validated at
// build time, so failing to load it is a programming error.
func NewEnglishModel() *WordModel {
	model, err := NewModel(DEFAULT_MODEL)
	if err != nil {
		panic(err)
	}
	return model
}

// NewModel
// Returns a WordModel with the tables loaded for that model id: an embedded
// model name, a local directory or file, or a base URL.
func NewModel(modelId string) (*WordModel, error) {
	return NewModelWithLogger(modelId, zap.NewNop())
}

func NewModelWithLogger(modelId string, logger *zap.Logger) (*WordModel,
	error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := resources.ResolveModelId(modelId, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve model `%s`", modelId)
	}
	model, err := NewModelFromData(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("word model ready",
		zap.String("model", model.Name),
		zap.Int("max_word_tokens", model.MaxWordTokens),
		zap.Int("cache_size", WORD_LRU_SZ))
	return model, nil
}

// NewModelFromData
// Builds a WordModel from already decoded table data, validating it first.
func NewModelFromData(data *types.ModelData) (*WordModel, error) {
	if data == nil {
		return nil, errors.New("nil model data")
	}
	if err := data.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid model `%s`", data.Name)
	}
	texts := make([]string, len(data.Tokens))
	for idx, token := range data.Tokens {
		texts[idx] = stripMarkers(token)
	}
	cache, err := lru.NewARC(WORD_LRU_SZ)
	if err != nil {
		return nil, err
	}
	return &WordModel{
		Name:            data.Name,
		Tokens:          data.Tokens,
		Texts:           texts,
		ContextLen:      data.ContextLen,
		ProbabilityBits: data.ProbabilityBits,
		MaxSample:       types.MaxSample(data.ProbabilityBits),
		MaxWordTokens:   DEFAULT_MAX_WORD_TOKENS,
		Cache:           cache,
		contexts:        data.Contexts,
		indexes: [3][]types.IndexEntry{
			types.TableInitial: data.InitialIndex,
			types.TableMiddle:  data.MiddleIndex,
			types.TableEnd:     data.EndIndex,
		},
		transitions: data.Transitions,
	}, nil
}

// CacheStats returns the hit and miss counts of the word hash cache.
func (model *WordModel) CacheStats() (hits int64, misses int64) {
	return model.lruHits.Load(), model.lruMisses.Load()
}
