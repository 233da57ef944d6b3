package readable_hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkers(t *testing.T) {
	assert.Equal(t, "be", stripMarkers("^be"))
	assert.Equal(t, "ing", stripMarkers("ing$"))
	assert.Equal(t, "a", stripMarkers("^a$"))
	assert.Equal(t, "ta", stripMarkers("ta"))
}

func TestWordModel_TokenLookup(t *testing.T) {
	token := englishModel.Get("^a")
	if assert.NotNil(t, token) {
		assert.Equal(t, "a", englishModel.TokenText(*token))
	}
	assert.Nil(t, englishModel.Get("a$$"))
	assert.Equal(t, "", englishModel.TokenText(Token(len(englishModel.Tokens))))
	assert.Equal(t, "", englishModel.TokenText(none))

	entropy := []byte{0x13, 0x37, 0xC0, 0xFF, 0xEE, 0x42}
	assert.Equal(t, englishModel.GenerateWord(NewSliceReader(entropy)),
		englishModel.Decode(englishModel.GenerateTokens(
			NewSliceReader(entropy))))
}
