package readable_hash

import (
	"sort"

	"github.com/wbrown/readable_hash/types"
)

// BuildContext
// Returns the last n tokens of history, left-padded with NoneToken when the
// history is shorter than n. An empty history yields the all-sentinel
// context.
func BuildContext(history Tokens, n int) Tokens {
	if n <= 0 {
		return Tokens{}
	}
	context := make(Tokens, n)
	pad := n - len(history)
	for idx := 0; idx < pad; idx++ {
		context[idx] = types.NoneToken
	}
	if pad < 0 {
		copy(context, history[-pad:])
	} else {
		copy(context[pad:], history)
	}
	return context
}

// findContext locates a context in the model's sorted context list.
func (model *WordModel) findContext(context Tokens) (int, bool) {
	pos := sort.Search(len(model.contexts), func(idx int) bool {
		return types.CompareTokens(model.contexts[idx], context) >= 0
	})
	if pos < len(model.contexts) &&
		types.CompareTokens(model.contexts[pos], context) == 0 {
		return pos, true
	}
	return pos, false
}

// Resolve
// Returns the transition table of the given kind at context, or nil when the
// context is unknown, the model has no tables of that kind, or the table is
// empty.
func (model *WordModel) Resolve(kind types.TableKind,
	context Tokens) []types.Transition {
	if int(kind) >= len(model.indexes) {
		return nil
	}
	index := model.indexes[kind]
	if len(index) == 0 {
		return nil
	}
	pos, found := model.findContext(context)
	if !found {
		return nil
	}
	entry := index[pos]
	if entry.Length == 0 {
		return nil
	}
	return model.transitions[entry.Offset : entry.Offset+entry.Length]
}
