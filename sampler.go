package readable_hash

import (
	"sort"

	"github.com/wbrown/readable_hash/types"
)

// Sample
// Maps a raw sample in [0, rawMax] onto a cumulative transition table and
// returns the first token whose cumulative weight reaches the rescaled
// value. Falls back to the last entry when none does, and returns NoneToken
// for an empty table.
func Sample(transitions []types.Transition, raw uint32,
	rawMax uint32) Token {
	if len(transitions) == 0 {
		return types.NoneToken
	}
	total := transitions[len(transitions)-1].Cumulative
	var scaled uint32
	if total == rawMax || total == 0 || rawMax == 0 {
		scaled = min(raw, total)
	} else {
		scaled = uint32(min(uint64(raw)*uint64(total)/uint64(rawMax),
			uint64(total)))
	}
	pos := sort.Search(len(transitions), func(idx int) bool {
		return transitions[idx].Cumulative >= scaled
	})
	if pos == len(transitions) {
		return transitions[len(transitions)-1].Token
	}
	return transitions[pos].Token
}
