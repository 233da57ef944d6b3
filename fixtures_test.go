package readable_hash

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/readable_hash/types"
)

// fixtureTable is one transition table of a hand-built test model.
type fixtureTable struct {
	Context Tokens
	Kind    types.TableKind
	Entries []types.Transition
}

// newFixtureModel assembles model data from a list of tables, the same
// layout the embedded models use: sorted unique contexts, one index array
// per kind present, and a shared transition array.
func newFixtureModel(t testing.TB, contextLen int, bits int,
	tokens []string, tables ...fixtureTable) *WordModel {
	data := &types.ModelData{
		Name:            t.Name(),
		ContextLen:      contextLen,
		ProbabilityBits: bits,
		Tokens:          tokens,
	}
	for _, table := range tables {
		found := false
		for _, ctx := range data.Contexts {
			if types.CompareTokens(ctx, table.Context) == 0 {
				found = true
				break
			}
		}
		if !found {
			data.Contexts = append(data.Contexts, table.Context)
		}
	}
	sort.Slice(data.Contexts, func(i, j int) bool {
		return types.CompareTokens(data.Contexts[i], data.Contexts[j]) < 0
	})
	indexes := map[types.TableKind][]types.IndexEntry{}
	for _, table := range tables {
		index, ok := indexes[table.Kind]
		if !ok {
			index = make([]types.IndexEntry, len(data.Contexts))
		}
		pos := sort.Search(len(data.Contexts), func(idx int) bool {
			return types.CompareTokens(data.Contexts[idx], table.Context) >= 0
		})
		index[pos] = types.IndexEntry{
			Offset: uint32(len(data.Transitions)),
			Length: uint32(len(table.Entries)),
		}
		data.Transitions = append(data.Transitions, table.Entries...)
		indexes[table.Kind] = index
	}
	data.InitialIndex = indexes[types.TableInitial]
	data.MiddleIndex = indexes[types.TableMiddle]
	data.EndIndex = indexes[types.TableEnd]
	model, err := NewModelFromData(data)
	require.NoError(t, err)
	return model
}

func ctx(tokens ...Token) Tokens {
	return Tokens(tokens)
}

var none = types.NoneToken

// endlessSource never runs dry and always yields the same byte.
type endlessSource struct {
	value byte
}

func (source endlessSource) Read(p []byte) (int, error) {
	for idx := range p {
		p[idx] = source.value
	}
	return len(p), nil
}

func (source endlessSource) Remaining() (int, bool) {
	return 0, false
}
