package readable_hash

import (
	"strings"

	"github.com/wbrown/readable_hash/types"
)

type terminationPolicy uint8

const (
	// openEnded keeps adding tokens while entropy lasts.
	openEnded terminationPolicy = iota
	// targetLength adds tokens until an end token can reach the target.
	targetLength
)

// wordState is the generation state of a single word. It is owned by one
// generate call and discarded when the word is done.
type wordState struct {
	model   *WordModel
	reader  *BitReader
	policy  terminationPolicy
	target  int
	history Tokens
	text    strings.Builder
}

func (state *wordState) context() Tokens {
	return BuildContext(state.history, state.model.ContextLen)
}

func (state *wordState) limit() int {
	limit := state.model.MaxWordTokens
	if limit <= 0 {
		limit = DEFAULT_MAX_WORD_TOKENS
	}
	if state.policy == targetLength && state.target > 0 {
		limit += state.target
	}
	return limit
}

func (state *wordState) push(token Token) bool {
	if token == types.NoneToken {
		return false
	}
	state.history = append(state.history, token)
	state.text.WriteString(state.model.TokenText(token))
	return true
}

// sampleOrZero reads one sample, or 0 once entropy has run out.
func (state *wordState) sampleOrZero() uint32 {
	raw, err := state.reader.ReadBits(state.model.ProbabilityBits)
	if err != nil {
		return 0
	}
	return raw
}

// reaches reports whether appending token brings the word to the target.
func (state *wordState) reaches(token Token) bool {
	return state.text.Len()+len(state.model.TokenText(token)) >= state.target
}

func (state *wordState) canReach(end []types.Transition) bool {
	if state.text.Len() >= state.target {
		return true
	}
	for _, transition := range end {
		if state.reaches(transition.Token) {
			return true
		}
	}
	return false
}

// start picks the first token. The middle table at the all-sentinel
// context lists the legal starting tokens; models without one fall back to
// their initial table.
func (state *wordState) start() bool {
	model := state.model
	raw, err := state.reader.ReadBits(model.ProbabilityBits)
	if err != nil {
		return false
	}
	context := state.context()
	table := model.Resolve(types.TableMiddle, context)
	if table == nil {
		table = model.Resolve(types.TableInitial, context)
	}
	if table == nil {
		return false
	}
	return state.push(Sample(table, raw, model.MaxSample))
}

// middleOpenEnded appends middle tokens while a full sample is left, and
// returns the end table for the final context.
func (state *wordState) middleOpenEnded() []types.Transition {
	model := state.model
	for len(state.history) < state.limit() &&
		state.reader.HasBits(model.ProbabilityBits) {
		table := model.Resolve(types.TableMiddle, state.context())
		if table == nil {
			break
		}
		raw, err := state.reader.ReadBits(model.ProbabilityBits)
		if err != nil {
			break
		}
		if !state.push(Sample(table, raw, model.MaxSample)) {
			break
		}
	}
	return model.Resolve(types.TableEnd, state.context())
}

// middleToTarget appends middle tokens until the end table of the current
// context can bring the word to the target, and returns that end table.
func (state *wordState) middleToTarget() []types.Transition {
	model := state.model
	for {
		context := state.context()
		middle := model.Resolve(types.TableMiddle, context)
		end := model.Resolve(types.TableEnd, context)
		if middle == nil || len(state.history) >= state.limit() {
			return end
		}
		if end != nil && state.canReach(end) {
			return end
		}
		if !state.push(Sample(middle, state.sampleOrZero(), model.MaxSample)) {
			return end
		}
	}
}

// end appends the terminal token. Under the target-length policy a pick
// that leaves the word short is replaced by the first entry that reaches
// the target, or the last entry when none does.
func (state *wordState) end(table []types.Transition) {
	if len(table) == 0 {
		return
	}
	token := Sample(table, state.sampleOrZero(), state.model.MaxSample)
	if state.policy == targetLength && !state.reaches(token) {
		token = table[len(table)-1].Token
		for _, transition := range table {
			if state.reaches(transition.Token) {
				token = transition.Token
				break
			}
		}
	}
	state.push(token)
}

func (model *WordModel) generate(source ByteSource, policy terminationPolicy,
	targetLen int) (string, Tokens) {
	state := &wordState{
		model:  model,
		reader: NewBitReader(source),
		policy: policy,
		target: targetLen,
	}
	if !state.start() {
		return "", nil
	}
	var endTable []types.Transition
	if policy == targetLength {
		endTable = state.middleToTarget()
	} else {
		endTable = state.middleOpenEnded()
	}
	state.end(endTable)
	return state.text.String(), state.history
}

// GenerateWord
// Decodes entropy from source into one word, adding middle tokens for as
// long as full samples remain. An empty source yields "".
func (model *WordModel) GenerateWord(source ByteSource) string {
	word, _ := model.generate(source, openEnded, 0)
	return word
}

// GenerateWordWithTargetLen
// Decodes entropy from source into one word of at least targetLen bytes
// when the tables allow it, stopping at the shortest reachable length.
func (model *WordModel) GenerateWordWithTargetLen(source ByteSource,
	targetLen int) string {
	word, _ := model.generate(source, targetLength, targetLen)
	return word
}

// GenerateTokens
// Like GenerateWord, but returns the token ids picked instead of their text.
func (model *WordModel) GenerateTokens(source ByteSource) Tokens {
	_, tokens := model.generate(source, openEnded, 0)
	return tokens
}

// GenerateTokensWithTargetLen
// Like GenerateWordWithTargetLen, but returns the token ids picked.
func (model *WordModel) GenerateTokensWithTargetLen(source ByteSource,
	targetLen int) Tokens {
	_, tokens := model.generate(source, targetLength, targetLen)
	return tokens
}
