package types

import (
	"github.com/pkg/errors"
)

const MaxProbabilityBits = 32

// CompareTokens orders token sequences lexicographically, the order in which
// model contexts are stored.
func CompareTokens(a, b Tokens) int {
	for idx := 0; idx < len(a) && idx < len(b); idx++ {
		if a[idx] < b[idx] {
			return -1
		} else if a[idx] > b[idx] {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// MaxSample returns the largest raw value a sample of the given width can
// hold.
func MaxSample(bits int) uint32 {
	if bits >= MaxProbabilityBits {
		return ^uint32(0)
	}
	return uint32(1)<<uint(bits) - 1
}

// Index returns the index array for a table kind, or nil when the model has
// no tables of that kind.
func (data *ModelData) Index(kind TableKind) []IndexEntry {
	switch kind {
	case TableInitial:
		return data.InitialIndex
	case TableMiddle:
		return data.MiddleIndex
	case TableEnd:
		return data.EndIndex
	}
	return nil
}

// Table returns the transitions an index entry points at. Callers are
// expected to have validated the data.
func (data *ModelData) Table(entry IndexEntry) []Transition {
	return data.Transitions[entry.Offset : entry.Offset+entry.Length]
}

// Validate checks the structural invariants generation relies on: sorted
// contexts of the right width, index arrays aligned with the contexts,
// in-range token ids and non-decreasing cumulative weights.
func (data *ModelData) Validate() error {
	if data.ProbabilityBits < 1 || data.ProbabilityBits > MaxProbabilityBits {
		return errors.Errorf("probability_bits must be within 1..%d, got %d",
			MaxProbabilityBits, data.ProbabilityBits)
	}
	if data.ContextLen < 0 {
		return errors.Errorf("context_len must not be negative, got %d",
			data.ContextLen)
	}
	numTokens := len(data.Tokens)
	if numTokens == 0 {
		return errors.New("model has no tokens")
	}
	if numTokens > int(NoneToken) {
		return errors.Errorf("model has %d tokens, at most %d are addressable",
			numTokens, int(NoneToken))
	}
	if len(data.Contexts) == 0 {
		return errors.New("model has no contexts")
	}
	for ctxIdx, ctx := range data.Contexts {
		if len(ctx) != data.ContextLen {
			return errors.Errorf("context %d has width %d, expected %d",
				ctxIdx, len(ctx), data.ContextLen)
		}
		for _, token := range ctx {
			if token != NoneToken && int(token) >= numTokens {
				return errors.Errorf("context %d references unknown token %d",
					ctxIdx, token)
			}
		}
		if ctxIdx > 0 && CompareTokens(data.Contexts[ctxIdx-1], ctx) >= 0 {
			return errors.Errorf("contexts are not strictly sorted at %d",
				ctxIdx)
		}
	}
	for _, kind := range []TableKind{TableInitial, TableMiddle, TableEnd} {
		index := data.Index(kind)
		if len(index) == 0 {
			continue
		}
		if len(index) != len(data.Contexts) {
			return errors.Errorf("%s index has %d entries for %d contexts",
				kind, len(index), len(data.Contexts))
		}
		for ctxIdx, entry := range index {
			if entry.Length == 0 {
				continue
			}
			end := uint64(entry.Offset) + uint64(entry.Length)
			if end > uint64(len(data.Transitions)) {
				return errors.Errorf("%s table of context %d overruns "+
					"transitions (%d > %d)", kind, ctxIdx, end,
					len(data.Transitions))
			}
			var last uint32
			for idx, transition := range data.Table(entry) {
				if int(transition.Token) >= numTokens {
					return errors.Errorf("%s table of context %d "+
						"references unknown token %d", kind, ctxIdx,
						transition.Token)
				}
				if idx > 0 && transition.Cumulative < last {
					return errors.Errorf("%s table of context %d has "+
						"decreasing cumulative weight at entry %d", kind,
						ctxIdx, idx)
				}
				last = transition.Cumulative
			}
		}
	}
	return nil
}
