package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/readable_hash"
)

func TestParseEntropy(t *testing.T) {
	entropy, err := parseEntropy("0xDEAD beef\n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, entropy)
	_, err = parseEntropy("xyz")
	assert.Error(t, err)
}

func TestRepl(t *testing.T) {
	model := readable_hash.NewEnglishModel()
	var out bytes.Buffer
	input := "13 37 c0 ff ee 42\nnot hex\n"
	require.NoError(t, repl(model, 0, strings.NewReader(input), &out))

	word := model.GenerateWord(readable_hash.NewSliceReader(
		[]byte{0x13, 0x37, 0xC0, 0xFF, 0xEE, 0x42}))
	assert.Contains(t, out.String(), word+" (6 bytes, 48 bits)")
	assert.Contains(t, out.String(), "error: ")
	assert.True(t, strings.HasSuffix(out.String(), ">>> \n"))
}
