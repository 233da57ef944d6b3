package types

import (
	"encoding/json"
	"fmt"
	"math"
)

type Token uint16
type Tokens []Token

// NoneToken pads contexts that are shorter than the model's window. It is
// never a real token id.
const NoneToken Token = math.MaxUint16

// Markers carried by raw token text.
const (
	StartMarker = "^"
	EndMarker   = "$"
)

type TableKind uint8

const (
	TableInitial TableKind = iota
	TableMiddle
	TableEnd
)

func (kind TableKind) String() string {
	switch kind {
	case TableInitial:
		return "initial"
	case TableMiddle:
		return "middle"
	case TableEnd:
		return "end"
	}
	return fmt.Sprintf("TableKind(%d)", uint8(kind))
}

// Transition is one weighted choice of a transition table. Cumulative is the
// running total of weights up to and including this entry.
type Transition struct {
	Token      Token
	Cumulative uint32
}

// IndexEntry locates a transition table inside ModelData.Transitions.
type IndexEntry struct {
	Offset uint32
	Length uint32
}

// ModelData is the static table set of one model, as stored on disk.
type ModelData struct {
	Name            string       `json:"name"`
	ContextLen      int          `json:"context_len"`
	ProbabilityBits int          `json:"probability_bits"`
	Tokens          []string     `json:"tokens"`
	Contexts        []Tokens     `json:"contexts"`
	InitialIndex    []IndexEntry `json:"initial_index"`
	MiddleIndex     []IndexEntry `json:"middle_index"`
	EndIndex        []IndexEntry `json:"end_index"`
	Transitions     []Transition `json:"transitions"`
}

// Transitions are stored as compact `[token, cumulative]` pairs.
func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{uint32(t.Token), t.Cumulative})
}

func (t *Transition) UnmarshalJSON(data []byte) error {
	var pair [2]uint32
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if pair[0] > math.MaxUint16 {
		return fmt.Errorf("transition token %d out of range", pair[0])
	}
	t.Token = Token(pair[0])
	t.Cumulative = pair[1]
	return nil
}

// Index entries are stored as compact `[offset, length]` pairs.
func (e IndexEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{e.Offset, e.Length})
}

func (e *IndexEntry) UnmarshalJSON(data []byte) error {
	var pair [2]uint32
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.Offset = pair[0]
	e.Length = pair[1]
	return nil
}
