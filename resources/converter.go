package resources

import (
	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the binary model encoding. The layout follows protobuf
// wire rules, so any protobuf toolchain can read it with a matching
// message definition.
const (
	fieldName            protowire.Number = 1
	fieldContextLen      protowire.Number = 2
	fieldProbabilityBits protowire.Number = 3
	fieldTokens          protowire.Number = 4
	fieldContextCount    protowire.Number = 5
	fieldContexts        protowire.Number = 6
	fieldInitialIndex    protowire.Number = 7
	fieldMiddleIndex     protowire.Number = 8
	fieldEndIndex        protowire.Number = 9
	fieldTransitions     protowire.Number = 10
)

func appendPacked(b []byte, num protowire.Number, values []uint64) []byte {
	if len(values) == 0 {
		return b
	}
	packed := make([]byte, 0, len(values)*2)
	for _, v := range values {
		packed = protowire.AppendVarint(packed, v)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func indexValues(index []types.IndexEntry) []uint64 {
	values := make([]uint64, 0, len(index)*2)
	for _, entry := range index {
		values = append(values, uint64(entry.Offset), uint64(entry.Length))
	}
	return values
}

// EncodeModelBinary
// Serializes model data into the compact binary form stored as `model.bin`.
func EncodeModelBinary(data *types.ModelData) []byte {
	b := make([]byte, 0, 1024)
	if data.Name != "" {
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, data.Name)
	}
	b = protowire.AppendTag(b, fieldContextLen, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(data.ContextLen))
	b = protowire.AppendTag(b, fieldProbabilityBits, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(data.ProbabilityBits))
	for _, token := range data.Tokens {
		b = protowire.AppendTag(b, fieldTokens, protowire.BytesType)
		b = protowire.AppendString(b, token)
	}
	b = protowire.AppendTag(b, fieldContextCount, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(data.Contexts)))

	contexts := make([]uint64, 0, len(data.Contexts)*data.ContextLen)
	for _, ctx := range data.Contexts {
		for _, token := range ctx {
			contexts = append(contexts, uint64(token))
		}
	}
	b = appendPacked(b, fieldContexts, contexts)
	b = appendPacked(b, fieldInitialIndex, indexValues(data.InitialIndex))
	b = appendPacked(b, fieldMiddleIndex, indexValues(data.MiddleIndex))
	b = appendPacked(b, fieldEndIndex, indexValues(data.EndIndex))

	transitions := make([]uint64, 0, len(data.Transitions)*2)
	for _, transition := range data.Transitions {
		transitions = append(transitions, uint64(transition.Token),
			uint64(transition.Cumulative))
	}
	return appendPacked(b, fieldTransitions, transitions)
}

func consumePacked(b []byte) ([]uint64, error) {
	values := make([]uint64, 0, len(b))
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		values = append(values, v)
		b = b[n:]
	}
	return values, nil
}

func pairsToIndex(values []uint64) ([]types.IndexEntry, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("odd number of index values")
	}
	index := make([]types.IndexEntry, 0, len(values)/2)
	for idx := 0; idx < len(values); idx += 2 {
		if values[idx] > 0xFFFFFFFF || values[idx+1] > 0xFFFFFFFF {
			return nil, errors.New("index value overflows 32 bits")
		}
		index = append(index, types.IndexEntry{
			Offset: uint32(values[idx]),
			Length: uint32(values[idx+1]),
		})
	}
	return index, nil
}

// DecodeModelBinary
// Parses the binary form produced by EncodeModelBinary. The result is not
// validated; see types.ModelData.Validate.
func DecodeModelBinary(b []byte) (*types.ModelData, error) {
	data := &types.ModelData{}
	var contextCount uint64
	var contexts []uint64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case typ == protowire.VarintType &&
			(num == fieldContextLen || num == fieldProbabilityBits ||
				num == fieldContextCount):
			v, vn := protowire.ConsumeVarint(b)
			if vn < 0 {
				return nil, protowire.ParseError(vn)
			}
			b = b[vn:]
			switch num {
			case fieldContextLen:
				data.ContextLen = int(v)
			case fieldProbabilityBits:
				data.ProbabilityBits = int(v)
			case fieldContextCount:
				contextCount = v
			}
		case typ == protowire.BytesType:
			v, vn := protowire.ConsumeBytes(b)
			if vn < 0 {
				return nil, protowire.ParseError(vn)
			}
			b = b[vn:]
			var err error
			switch num {
			case fieldName:
				data.Name = string(v)
			case fieldTokens:
				data.Tokens = append(data.Tokens, string(v))
			case fieldContexts:
				contexts, err = consumePacked(v)
			case fieldInitialIndex, fieldMiddleIndex, fieldEndIndex:
				var values []uint64
				var index []types.IndexEntry
				if values, err = consumePacked(v); err == nil {
					index, err = pairsToIndex(values)
				}
				switch num {
				case fieldInitialIndex:
					data.InitialIndex = index
				case fieldMiddleIndex:
					data.MiddleIndex = index
				default:
					data.EndIndex = index
				}
			case fieldTransitions:
				var values []uint64
				if values, err = consumePacked(v); err == nil {
					data.Transitions, err = pairsToTransitions(values)
				}
			}
			if err != nil {
				return nil, errors.Wrapf(err, "field %d", num)
			}
		default:
			vn := protowire.ConsumeFieldValue(num, typ, b)
			if vn < 0 {
				return nil, protowire.ParseError(vn)
			}
			b = b[vn:]
		}
	}
	if data.ContextLen < 0 || (data.ContextLen > 0 &&
		contextCount > uint64(len(contexts))) ||
		uint64(len(contexts)) != contextCount*uint64(data.ContextLen) {
		return nil, errors.Errorf("%d context tokens do not fill %d "+
			"contexts of width %d", len(contexts), contextCount,
			data.ContextLen)
	}
	if data.ContextLen == 0 && contextCount > 1 {
		return nil, errors.Errorf("%d contexts of width 0", contextCount)
	}
	data.Contexts = make([]types.Tokens, contextCount)
	for ctxIdx := range data.Contexts {
		ctx := make(types.Tokens, data.ContextLen)
		for idx := range ctx {
			v := contexts[ctxIdx*data.ContextLen+idx]
			if v > uint64(types.NoneToken) {
				return nil, errors.Errorf("context token %d out of range", v)
			}
			ctx[idx] = types.Token(v)
		}
		data.Contexts[ctxIdx] = ctx
	}
	return data, nil
}

func pairsToTransitions(values []uint64) ([]types.Transition, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("odd number of transition values")
	}
	transitions := make([]types.Transition, 0, len(values)/2)
	for idx := 0; idx < len(values); idx += 2 {
		if values[idx] > uint64(types.NoneToken) {
			return nil, errors.Errorf("transition token %d out of range",
				values[idx])
		}
		if values[idx+1] > 0xFFFFFFFF {
			return nil, errors.New("cumulative weight overflows 32 bits")
		}
		transitions = append(transitions, types.Transition{
			Token:      types.Token(values[idx]),
			Cumulative: uint32(values[idx+1]),
		})
	}
	return transitions, nil
}
